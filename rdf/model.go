package rdf

import "fmt"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI (named node) term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
	// TermDefaultGraph represents the default graph marker.
	TermDefaultGraph
)

// String returns a readable name for the kind.
func (k TermKind) String() string {
	switch k {
	case TermIRI:
		return "NamedNode"
	case TermBlankNode:
		return "BlankNode"
	case TermLiteral:
		return "Literal"
	case TermDefaultGraph:
		return "DefaultGraph"
	default:
		return fmt.Sprintf("TermKind(%d)", uint8(k))
	}
}

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier, without the "_:" prefix.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// DefaultGraph marks a quad as belonging to the default graph.
type DefaultGraph struct{}

// Kind returns TermDefaultGraph.
func (DefaultGraph) Kind() TermKind { return TermDefaultGraph }

// String returns an empty string; the default graph has no name.
func (DefaultGraph) String() string { return "" }

// Quad is an RDF quad (triple + graph name).
type Quad struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
	// G is the graph name. Nil and DefaultGraph{} both denote the default graph.
	G Term
}

// Graph returns the graph term, substituting DefaultGraph for nil.
func (q Quad) Graph() Term {
	if q.G == nil {
		return DefaultGraph{}
	}
	return q.G
}

// InDefaultGraph reports whether the quad is in the default graph.
func (q Quad) InDefaultGraph() bool {
	return q.G == nil || q.G.Kind() == TermDefaultGraph
}

// String renders the quad in an N-Quads like form, mainly for logs.
func (q Quad) String() string {
	s := fmt.Sprintf("%s <%s> %s", renderDebugTerm(q.S), q.P.Value, renderDebugTerm(q.O))
	if !q.InDefaultGraph() {
		s += " " + renderDebugTerm(q.G)
	}
	return s + " ."
}

func renderDebugTerm(t Term) string {
	switch v := t.(type) {
	case nil:
		return "<nil>"
	case IRI:
		return "<" + v.Value + ">"
	default:
		return v.String()
	}
}
