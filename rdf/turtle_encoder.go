package rdf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// TurtleEncodeOptions configures Turtle encoding.
type TurtleEncodeOptions struct {
	// Prefixes maps prefix labels to namespace IRIs. The empty label is
	// written as ":".
	Prefixes map[string]string
	// Indent prefixes continuation lines (four spaces if empty).
	Indent string
}

// TurtleEncoder streams quads of the default graph as Turtle. Consecutive
// quads sharing a subject are grouped with ";", and sharing subject and
// predicate with ",".
type TurtleEncoder struct {
	writer  *bufio.Writer
	opts    TurtleEncodeOptions
	err     error
	started bool
	closed  bool

	// subject and predicate of the open statement, as rendered.
	subject   string
	predicate string
}

// NewTurtleEncoder creates a Turtle encoder writing to w.
func NewTurtleEncoder(w io.Writer, opts TurtleEncodeOptions) *TurtleEncoder {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	return &TurtleEncoder{writer: bufio.NewWriter(w), opts: opts}
}

// Write encodes one quad. Quads that cannot be expressed in Turtle are
// rejected with ErrInvalidQuad, ErrNamedGraph or ErrInvalidIRI before anything
// is written, and the encoder stays usable. I/O errors are sticky.
func (e *TurtleEncoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return ErrWriterClosed
	}
	subject, predicate, object, err := e.render(q)
	if err != nil {
		return err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}

	var chunk string
	switch {
	case e.subject == subject && e.predicate == predicate:
		chunk = ", " + object
	case e.subject == subject:
		chunk = " ;\n" + e.opts.Indent + predicate + " " + object
	case e.subject != "":
		chunk = " .\n" + subject + " " + predicate + " " + object
	default:
		chunk = subject + " " + predicate + " " + object
	}
	if err := e.writeString(chunk); err != nil {
		return err
	}
	e.subject = subject
	e.predicate = predicate
	return nil
}

// Flush writes buffered output to the underlying writer.
func (e *TurtleEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.writer.Flush(); err != nil {
		e.err = &WriteError{Err: err}
		return e.err
	}
	return nil
}

// Close terminates the open statement and flushes. A document without quads
// still receives its prefix header.
func (e *TurtleEncoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return nil
	}
	e.closed = true
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	if e.subject != "" {
		if err := e.writeString(" .\n"); err != nil {
			return err
		}
		e.subject, e.predicate = "", ""
	}
	return e.Flush()
}

func (e *TurtleEncoder) render(q Quad) (subject, predicate, object string, err error) {
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return "", "", "", fmt.Errorf("turtle: missing statement fields: %w", ErrInvalidQuad)
	}
	if !q.InDefaultGraph() {
		return "", "", "", fmt.Errorf("turtle: graph %s: %w", q.Graph(), ErrNamedGraph)
	}
	switch q.S.Kind() {
	case TermIRI, TermBlankNode:
	default:
		return "", "", "", fmt.Errorf("turtle: %s subject: %w", q.S.Kind(), ErrInvalidQuad)
	}
	if q.O.Kind() == TermDefaultGraph {
		return "", "", "", fmt.Errorf("turtle: default graph object: %w", ErrInvalidQuad)
	}

	if subject, err = e.renderTerm(q.S); err != nil {
		return "", "", "", err
	}
	if q.P.Value == rdfTypeIRI {
		predicate = "a"
	} else if predicate, err = e.renderIRI(q.P); err != nil {
		return "", "", "", err
	}
	if object, err = e.renderTerm(q.O); err != nil {
		return "", "", "", err
	}
	return subject, predicate, object, nil
}

func (e *TurtleEncoder) renderTerm(term Term) (string, error) {
	switch value := term.(type) {
	case IRI:
		return e.renderIRI(value)
	case BlankNode:
		if !isQNameLocal(value.ID) {
			return "", fmt.Errorf("turtle: blank node label %q: %w", value.ID, ErrInvalidQuad)
		}
		return value.String(), nil
	case Literal:
		return e.renderLiteral(value)
	default:
		return "", fmt.Errorf("turtle: unsupported term %T: %w", term, ErrInvalidQuad)
	}
}

func (e *TurtleEncoder) renderIRI(iri IRI) (string, error) {
	if err := checkIRIRef(iri.Value); err != nil {
		return "", err
	}
	if qname, ok := abbreviateQName(iri.Value, e.opts.Prefixes); ok {
		return qname, nil
	}
	return "<" + iri.Value + ">", nil
}

func (e *TurtleEncoder) renderLiteral(lit Literal) (string, error) {
	quoted := quoteTurtleString(lit.Lexical)
	if lit.Lang != "" {
		if !isValidLangTag(lit.Lang) {
			return "", fmt.Errorf("turtle: language tag %q: %w", lit.Lang, ErrInvalidQuad)
		}
		return quoted + "@" + lit.Lang, nil
	}
	switch lit.Datatype.Value {
	case "", xsdStringIRI, rdfLangStringIRI:
		return quoted, nil
	}
	dt, err := e.renderIRI(lit.Datatype)
	if err != nil {
		return "", err
	}
	return quoted + "^^" + dt, nil
}

func (e *TurtleEncoder) writeHeader() error {
	e.started = true
	if len(e.opts.Prefixes) == 0 {
		return nil
	}
	for _, prefix := range sortedPrefixKeys(e.opts.Prefixes) {
		line := "@prefix " + prefix + ": <" + e.opts.Prefixes[prefix] + "> .\n"
		if err := e.writeString(line); err != nil {
			return err
		}
	}
	return e.writeString("\n")
}

func (e *TurtleEncoder) writeString(s string) error {
	if _, err := e.writer.WriteString(s); err != nil {
		e.err = &WriteError{Err: err}
		return e.err
	}
	return nil
}

func sortedPrefixKeys(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for key := range prefixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// abbreviateQName picks the longest matching namespace whose remainder is a
// valid local name.
func abbreviateQName(iri string, prefixes map[string]string) (string, bool) {
	if len(prefixes) == 0 {
		return "", false
	}
	bestNS := ""
	bestPrefix := ""
	found := false
	for prefix, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if !isQNameLocal(iri[len(ns):]) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && prefix < bestPrefix) {
			bestNS = ns
			bestPrefix = prefix
			found = true
		}
	}
	if !found {
		return "", false
	}
	return bestPrefix + ":" + iri[len(bestNS):], true
}

func quoteTurtleString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// isValidLangTag reports whether tag matches LANGTAG ([a-zA-Z]+ ('-' [a-zA-Z0-9]+)*).
func isValidLangTag(tag string) bool {
	if tag == "" {
		return false
	}
	parts := strings.Split(tag, "-")
	for i, part := range parts {
		if part == "" {
			return false
		}
		for j := 0; j < len(part); j++ {
			ch := part[j]
			if isLetter(ch) || (i > 0 && isDigit(ch)) {
				continue
			}
			return false
		}
	}
	return true
}
