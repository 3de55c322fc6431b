package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/geoknoesis/gqlrdf/rdf"
)

// ErrStrictQuad aborts a type when a quad cannot be written in strict mode.
var ErrStrictQuad = errors.New("export: quad cannot be serialized")

func (e *Exporter) outputPath(typeName string) string {
	return filepath.Join(e.cfg.Export.OutputDir, typeName+".ttl")
}

func (e *Exporter) streamOptions(logger *slog.Logger) rdf.StreamOptions {
	return rdf.StreamOptions{
		JSONLD: rdf.JSONLDOptions{
			ExpandContext: rdf.VocabContext(e.cfg.IRI.Vocab),
			SafeMode:      e.cfg.Export.SafeMode,
		},
		Buffered: !e.cfg.Export.Streaming,
		OnPrefix: func(prefix string, iri rdf.IRI) {
			logger.Debug("context prefix", "prefix", prefix, "iri", iri.Value)
		},
	}
}

// writeTurtle decodes docs and writes the quads to path. On a decode failure
// the file is closed as-is, without terminating the last statement.
func (e *Exporter) writeTurtle(ctx context.Context, logger *slog.Logger, path string, docs []string, prefixes map[string]string) (written, dropped int, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, 0, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, 0, fmt.Errorf("open output file: %w", err)
	}

	stream := rdf.NewQuadStream(ctx, rdf.NewDocumentSource(docs), e.streamOptions(logger))
	defer stream.Close()

	enc := rdf.NewTurtleEncoder(f, rdf.TurtleEncodeOptions{Prefixes: prefixes})
	handler := rdf.QuadHandlerFunc(func(q rdf.Quad) error {
		err := enc.Write(q)
		if err == nil {
			written++
			return nil
		}
		var writeErr *rdf.WriteError
		if errors.As(err, &writeErr) || errors.Is(err, rdf.ErrWriterClosed) {
			return err
		}
		if e.cfg.Export.StrictQuads {
			return fmt.Errorf("%w: %s: %v", ErrStrictQuad, q, err)
		}
		dropped++
		logger.Warn("dropping quad", "quad", q.String(), "code", rdf.Code(err), "error", err)
		return nil
	})

	if err := rdf.Drain(ctx, stream, handler); err != nil {
		f.Close()
		return written, dropped, err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return written, dropped, err
	}
	if err := f.Close(); err != nil {
		return written, dropped, fmt.Errorf("close output file: %w", err)
	}
	return written, dropped, nil
}
