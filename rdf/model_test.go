package rdf

import "testing"

func TestTermKindsAndStrings(t *testing.T) {
	iri := IRI{Value: "http://example.org/s"}
	if iri.Kind() != TermIRI {
		t.Fatalf("expected IRI kind")
	}
	if iri.String() != "http://example.org/s" {
		t.Fatalf("unexpected IRI string: %s", iri.String())
	}

	blank := BlankNode{ID: "b1"}
	if blank.Kind() != TermBlankNode {
		t.Fatalf("expected blank node kind")
	}
	if blank.String() != "_:b1" {
		t.Fatalf("unexpected blank node string: %s", blank.String())
	}

	litPlain := Literal{Lexical: "plain"}
	if litPlain.Kind() != TermLiteral {
		t.Fatalf("expected literal kind")
	}
	if litPlain.String() != "\"plain\"" {
		t.Fatalf("unexpected literal string: %s", litPlain.String())
	}

	litLang := Literal{Lexical: "hi", Lang: "en"}
	if litLang.String() != "\"hi\"@en" {
		t.Fatalf("unexpected lang literal: %s", litLang.String())
	}

	litDT := Literal{Lexical: "1", Datatype: IRI{Value: "http://example.org/int"}}
	if litDT.String() != "\"1\"^^<http://example.org/int>" {
		t.Fatalf("unexpected datatype literal: %s", litDT.String())
	}

	var g Term = DefaultGraph{}
	if g.Kind() != TermDefaultGraph {
		t.Fatalf("expected default graph kind")
	}
	if TermDefaultGraph.String() != "DefaultGraph" || TermIRI.String() != "NamedNode" {
		t.Fatalf("unexpected kind names: %s %s", TermDefaultGraph, TermIRI)
	}
}

func TestQuadGraph(t *testing.T) {
	q := Quad{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/p"}, O: Literal{Lexical: "o"}}
	if q.Graph().Kind() != TermDefaultGraph {
		t.Fatalf("nil graph should report default graph, got %v", q.Graph().Kind())
	}
	if !q.InDefaultGraph() {
		t.Fatal("expected default graph")
	}
	q.G = DefaultGraph{}
	if !q.InDefaultGraph() {
		t.Fatal("expected explicit default graph")
	}
	q.G = IRI{Value: "http://example.org/g"}
	if q.InDefaultGraph() {
		t.Fatal("expected named graph")
	}
	if got := q.String(); got != `<http://example.org/s> <http://example.org/p> "o" <http://example.org/g> .` {
		t.Fatalf("unexpected quad string: %s", got)
	}
}
