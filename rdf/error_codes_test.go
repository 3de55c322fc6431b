package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestErrorCodeClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"eof", io.EOF, ""},
		{"document too large", fmt.Errorf("wrap: %w", ErrDocumentTooLarge), ErrCodeDocumentTooLarge},
		{"quad limit", &ParseError{Format: "jsonld", Err: ErrQuadLimitExceeded}, ErrCodeQuadLimitExceeded},
		{"invalid IRI", ErrInvalidIRI, ErrCodeInvalidIRI},
		{"named graph", ErrNamedGraph, ErrCodeNamedGraph},
		{"invalid quad", ErrInvalidQuad, ErrCodeInvalidQuad},
		{"canceled", context.Canceled, ErrCodeContextCanceled},
		{"deadline", context.DeadlineExceeded, ErrCodeContextCanceled},
		{"write", &WriteError{Err: errors.New("disk full")}, ErrCodeIOError},
		{"other", errors.New("boom"), ErrCodeParseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseErrorExcerpt(t *testing.T) {
	text := strings.Repeat("x", 100)
	err := wrapParseError("jsonld", 3, text, errors.New("unexpected end of JSON input"))
	msg := err.Error()
	if !strings.HasPrefix(msg, "jsonld (document 3): unexpected end of JSON input") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, strings.Repeat("x", 80)+"...") {
		t.Fatalf("expected truncated excerpt: %s", msg)
	}
	if strings.Contains(msg, strings.Repeat("x", 81)) {
		t.Fatalf("excerpt not truncated: %s", msg)
	}
}

func TestWrapParseErrorKeepsExisting(t *testing.T) {
	inner := &ParseError{Format: "jsonld", Document: 0, Err: ErrInvalidQuad}
	if got := wrapParseError("jsonld", 5, "", fmt.Errorf("ctx: %w", inner)); !errors.Is(got, ErrInvalidQuad) {
		t.Fatalf("expected wrapped sentinel, got %v", got)
	}
	if wrapParseError("jsonld", 0, "", nil) != nil {
		t.Fatal("nil error must stay nil")
	}
	var parseErr *ParseError
	if !errors.As(wrapParseError("jsonld", -1, "", errors.New("x")), &parseErr) || parseErr.Document != -1 {
		t.Fatalf("unexpected wrap: %+v", parseErr)
	}
	if parseErr.Error() != "jsonld: x" {
		t.Fatalf("unexpected message without document: %q", parseErr.Error())
	}
}
