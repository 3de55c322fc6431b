package rdf

import (
	"errors"
	"strings"
	"testing"
)

const (
	testEntityNS = "http://example.org/entity/Person#"
	xsdInteger   = "http://www.w3.org/2001/XMLSchema#integer"
)

func testPrefixes() map[string]string {
	return map[string]string{"": testVocab, "person": testEntityNS}
}

func TestTurtleEncoderGroupsStatements(t *testing.T) {
	var buf strings.Builder
	enc := NewTurtleEncoder(&buf, TurtleEncodeOptions{Prefixes: testPrefixes()})

	s1 := IRI{Value: testEntityNS + "s-1"}
	s2 := IRI{Value: testEntityNS + "s-2"}
	name := IRI{Value: testVocab + "name"}
	quads := []Quad{
		{S: s1, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: testVocab + "Person"}, G: DefaultGraph{}},
		{S: s1, P: name, O: Literal{Lexical: "Ada", Datatype: IRI{Value: xsdStringIRI}}},
		{S: s1, P: name, O: Literal{Lexical: "Lovelace"}},
		{S: s2, P: IRI{Value: testVocab + "age"}, O: Literal{Lexical: "36", Datatype: IRI{Value: xsdInteger}}},
	}
	for _, q := range quads {
		if err := enc.Write(q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "@prefix : <http://example.org/vocab#> .\n" +
		"@prefix person: <http://example.org/entity/Person#> .\n" +
		"\n" +
		"person:s-1 a :Person ;\n" +
		"    :name \"Ada\", \"Lovelace\" .\n" +
		"person:s-2 :age \"36\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestTurtleEncoderCloseWithoutWrite(t *testing.T) {
	var buf strings.Builder
	enc := NewTurtleEncoder(&buf, TurtleEncodeOptions{Prefixes: map[string]string{"": testVocab}})
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "@prefix : <http://example.org/vocab#> .\n\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}

func TestTurtleEncoderClosedError(t *testing.T) {
	var buf strings.Builder
	enc := NewTurtleEncoder(&buf, TurtleEncodeOptions{})
	_ = enc.Close()
	err := enc.Write(Quad{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/p"}, O: IRI{Value: "http://example.org/o"}})
	if !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("expected ErrWriterClosed, got %v", err)
	}
}

func TestTurtleEncoderRejectsInvalidQuads(t *testing.T) {
	s := IRI{Value: "http://example.org/s"}
	p := IRI{Value: "http://example.org/p"}
	o := IRI{Value: "http://example.org/o"}
	tests := []struct {
		name string
		quad Quad
		want error
	}{
		{"missing subject", Quad{P: p, O: o}, ErrInvalidQuad},
		{"missing predicate", Quad{S: s, O: o}, ErrInvalidQuad},
		{"missing object", Quad{S: s, P: p}, ErrInvalidQuad},
		{"literal subject", Quad{S: Literal{Lexical: "x"}, P: p, O: o}, ErrInvalidQuad},
		{"default graph object", Quad{S: s, P: p, O: DefaultGraph{}}, ErrInvalidQuad},
		{"named graph", Quad{S: s, P: p, O: o, G: IRI{Value: "http://example.org/g"}}, ErrNamedGraph},
		{"space in IRI", Quad{S: IRI{Value: "http://example.org/a b"}, P: p, O: o}, ErrInvalidIRI},
		{"invalid character", Quad{S: s, P: p, O: IRI{Value: "http://example.org/<o>"}}, ErrInvalidIRI},
		{"bad language tag", Quad{S: s, P: p, O: Literal{Lexical: "x", Lang: "en_US"}}, ErrInvalidQuad},
	}

	var buf strings.Builder
	enc := NewTurtleEncoder(&buf, TurtleEncodeOptions{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := enc.Write(tt.quad); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	// Rejected quads leave the encoder usable and write nothing.
	if err := enc.Write(Quad{S: s, P: p, O: o}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestTurtleEncoderLiterals(t *testing.T) {
	var buf strings.Builder
	enc := NewTurtleEncoder(&buf, TurtleEncodeOptions{Prefixes: map[string]string{"xsd": "http://www.w3.org/2001/XMLSchema#"}})
	s := BlankNode{ID: "d0b0"}
	p := IRI{Value: "http://example.org/p"}
	objects := []Term{
		Literal{Lexical: "line\nbreak \"quoted\" \\ tab\t"},
		Literal{Lexical: "hallo", Lang: "de-DE", Datatype: IRI{Value: rdfLangStringIRI}},
		Literal{Lexical: "true", Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#boolean"}},
		Literal{Lexical: "\x01"},
	}
	for _, o := range objects {
		if err := enc.Write(Quad{S: s, P: p, O: o}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n\n" +
		`_:d0b0 <http://example.org/p> "line\nbreak \"quoted\" \\ tab\t", "hallo"@de-DE, "true"^^xsd:boolean, "\u0001" .` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTurtleEncoderWriteErrorIsSticky(t *testing.T) {
	enc := NewTurtleEncoder(failingWriter{}, TurtleEncodeOptions{})
	q := Quad{S: IRI{Value: "http://example.org/s"}, P: IRI{Value: "http://example.org/p"}, O: Literal{Lexical: "o"}}
	if err := enc.Write(q); err != nil {
		t.Fatalf("write is buffered, got %v", err)
	}
	err := enc.Close()
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if Code(err) != ErrCodeIOError {
		t.Fatalf("expected ErrCodeIOError, got %v", Code(err))
	}
	if err2 := enc.Write(q); err2 != err {
		t.Fatalf("expected sticky error, got %v", err2)
	}
}

func TestAbbreviateQNameLongestMatch(t *testing.T) {
	prefixes := map[string]string{
		"ex":  "http://example.org/",
		"exv": "http://example.org/vocab/",
		"bad": "http://example.org/vocab/x",
	}
	got, ok := abbreviateQName("http://example.org/vocab/name", prefixes)
	if !ok || got != "exv:name" {
		t.Fatalf("expected exv:name, got %q (%v)", got, ok)
	}
	if _, ok := abbreviateQName("http://example.org/vocab/a/b", map[string]string{"exv": "http://example.org/vocab/"}); ok {
		t.Fatal("local part with '/' must not be abbreviated")
	}
	got, ok = abbreviateQName("http://example.org/vocab/s-a%20b", prefixes)
	if !ok || got != "exv:s-a%20b" {
		t.Fatalf("expected percent escape in local name, got %q (%v)", got, ok)
	}
	if _, ok := abbreviateQName("http://example.org/vocab/s-a%2", prefixes); ok {
		t.Fatal("truncated percent escape must not be abbreviated")
	}
	if _, ok := abbreviateQName("http://example.org/vocab/", prefixes); ok {
		t.Fatal("empty local part must not be abbreviated")
	}
}
