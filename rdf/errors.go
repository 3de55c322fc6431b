package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeDocumentTooLarge indicates a document exceeded the configured size limit.
	ErrCodeDocumentTooLarge ErrorCode = "DOCUMENT_TOO_LARGE"
	// ErrCodeQuadLimitExceeded indicates that the maximum number of quads was exceeded.
	ErrCodeQuadLimitExceeded ErrorCode = "QUAD_LIMIT_EXCEEDED"
	// ErrCodeInvalidQuad indicates a quad that cannot be serialized.
	ErrCodeInvalidQuad ErrorCode = "INVALID_QUAD"
	// ErrCodeInvalidIRI indicates an IRI that cannot be serialized.
	ErrCodeInvalidIRI ErrorCode = "INVALID_IRI"
	// ErrCodeNamedGraph indicates a named graph quad written to a triple format.
	ErrCodeNamedGraph ErrorCode = "NAMED_GRAPH"
	// ErrCodeIOError indicates an I/O error.
	ErrCodeIOError ErrorCode = "IO_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

var (
	// ErrDocumentTooLarge indicates a document exceeded the configured size limit.
	ErrDocumentTooLarge = errors.New("rdf: document exceeds configured limit")
	// ErrQuadLimitExceeded indicates that the maximum number of quads was exceeded.
	ErrQuadLimitExceeded = errors.New("rdf: maximum number of quads exceeded")
	// ErrInvalidQuad indicates a quad with missing or misplaced terms.
	ErrInvalidQuad = errors.New("rdf: invalid quad")
	// ErrInvalidIRI indicates an IRI containing characters Turtle cannot carry.
	ErrInvalidIRI = errors.New("rdf: invalid IRI")
	// ErrNamedGraph indicates a quad outside the default graph.
	ErrNamedGraph = errors.New("rdf: named graphs are not supported by this writer")
	// ErrWriterClosed is returned by writes after Close.
	ErrWriterClosed = errors.New("rdf: writer closed")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error condition).
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	switch {
	case errors.Is(err, ErrDocumentTooLarge):
		return ErrCodeDocumentTooLarge
	case errors.Is(err, ErrQuadLimitExceeded):
		return ErrCodeQuadLimitExceeded
	case errors.Is(err, ErrInvalidIRI):
		return ErrCodeInvalidIRI
	case errors.Is(err, ErrNamedGraph):
		return ErrCodeNamedGraph
	case errors.Is(err, ErrInvalidQuad):
		return ErrCodeInvalidQuad
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}

	var writeErr *WriteError
	if errors.As(err, &writeErr) {
		return ErrCodeIOError
	}

	return ErrCodeParseError
}

// ParseError provides structured context for decode failures.
type ParseError struct {
	Format   string // Format name (e.g., "jsonld")
	Document int    // Index of the failing document in pull order (-1 if unknown)
	Excerpt  string // Leading part of the offending document
	Err      error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Document >= 0 {
		fmt.Fprintf(&msg, " (document %d)", e.Document)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if excerpt := e.formatExcerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

func (e *ParseError) formatExcerpt() string {
	const maxExcerptLen = 80
	if len(e.Excerpt) > maxExcerptLen {
		return e.Excerpt[:maxExcerptLen] + "..."
	}
	return e.Excerpt
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapParseError adds format/document context to a decode error.
func wrapParseError(format string, document int, text string, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{Format: format, Document: document, Excerpt: text, Err: err}
}

// WriteError marks an I/O failure of the underlying writer.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "rdf: write: " + e.Err.Error() }

func (e *WriteError) Unwrap() error { return e.Err }
