package rdf

import (
	"context"
	"io"
)

// QuadReader streams RDF quads from an input in pull mode.
// Next returns io.EOF once the input is exhausted.
type QuadReader interface {
	Next() (Quad, error)
	Close() error
}

// QuadHandler processes quads in push mode.
type QuadHandler interface {
	Handle(Quad) error
}

// QuadHandlerFunc adapts a function to a QuadHandler.
type QuadHandlerFunc func(Quad) error

// Handle calls the underlying function.
func (h QuadHandlerFunc) Handle(q Quad) error { return h(q) }

// PrefixHandler receives prefix mappings discovered while decoding.
type PrefixHandler func(prefix string, iri IRI)

// Drain pulls every quad from reader and pushes it to handler.
// It stops at the first reader or handler error.
// If ctx is nil, context.Background() is used.
func Drain(ctx context.Context, reader QuadReader, handler QuadHandler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		q, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler.Handle(q); err != nil {
			return err
		}
	}
}
