// Package export converts every type of a GraphQL API into a Turtle file.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/geoknoesis/gqlrdf/config"
	"github.com/geoknoesis/gqlrdf/metric"
	"github.com/geoknoesis/gqlrdf/rdf"
	"github.com/geoknoesis/gqlrdf/semantic"
	"github.com/geoknoesis/gqlrdf/source"
	"github.com/geoknoesis/gqlrdf/vocabulary"
)

// EntitySource supplies the schema and the entities of each type.
type EntitySource interface {
	FetchSchema(ctx context.Context) (*source.Schema, error)
	FetchEntities(ctx context.Context, s *source.Schema, def source.TypeDefinition) ([]any, error)
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithProgress sets where progress lines are printed (os.Stdout by default).
func WithProgress(w io.Writer) Option {
	return func(e *Exporter) {
		if w != nil {
			e.progress = w
		}
	}
}

// WithMetrics records per-type metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

// Exporter runs the per-type pipeline: fetch, enrich, decode, write Turtle.
type Exporter struct {
	cfg      config.Config
	src      EntitySource
	minter   vocabulary.Minter
	enricher *semantic.Enricher

	logger   *slog.Logger
	progress io.Writer
	metrics  *metric.Metrics
}

// New creates an Exporter.
func New(cfg config.Config, src EntitySource, opts ...Option) *Exporter {
	minter := vocabulary.NewMinter(cfg.IRI.Vocab, cfg.IRI.EntityBase)
	e := &Exporter{
		cfg:      cfg,
		src:      src,
		minter:   minter,
		enricher: semantic.NewEnricher(minter, cfg.IRI.Vocab),
		logger:   slog.Default(),
		progress: os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run exports every type of the schema, one after the other in declaration
// order. Only a schema fetch failure or cancellation aborts the run; any
// other failure is recorded in the summary and the next type is processed.
func (e *Exporter) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString()}
	logger := e.logger.With("run_id", summary.RunID)

	schema, err := e.src.FetchSchema(ctx)
	if err != nil {
		logger.Error("failed to fetch schema", "error", err)
		return summary, fmt.Errorf("fetch schema: %w", err)
	}
	defs := schema.Types()
	prefixes := e.Prefixes(schema.TypeNames())
	logger.Info("starting export", "types", len(defs), "output_dir", e.cfg.Export.OutputDir)

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		fmt.Fprintf(e.progress, "start downloading %s...\n", def.Canonical)
		result := e.exportType(ctx, logger, schema, def, prefixes)
		summary.Types = append(summary.Types, result)
		fmt.Fprintf(e.progress, "finished downloading %s...\n", def.Canonical)
	}

	e.metrics.RecordRun(time.Now())
	logger.Info("export finished", "summary", summary.String())
	return summary, ctx.Err()
}

// Prefixes returns the prefix table shared by every file of a run: the empty
// prefix for the vocabulary plus one prefix per type namespace.
func (e *Exporter) Prefixes(typeNames []string) map[string]string {
	prefixes := e.minter.TypePrefixes(typeNames)
	prefixes[""] = e.cfg.IRI.Vocab
	return prefixes
}

// ExportType converts a single type with the given prefix table.
func (e *Exporter) ExportType(ctx context.Context, schema *source.Schema, def source.TypeDefinition, prefixes map[string]string) TypeResult {
	return e.exportType(ctx, e.logger, schema, def, prefixes)
}

func (e *Exporter) exportType(ctx context.Context, logger *slog.Logger, schema *source.Schema, def source.TypeDefinition, prefixes map[string]string) (result TypeResult) {
	start := time.Now()
	logger = logger.With("type", def.Canonical)
	result = TypeResult{Type: def.Canonical}
	defer func() {
		result.Duration = time.Since(start)
		e.metrics.RecordType(result.Type, string(result.Status), result.Entities, result.Quads, result.Dropped, result.Duration)
	}()

	entities, err := e.src.FetchEntities(ctx, schema, def)
	switch {
	case errors.Is(err, source.ErrNoResult):
		logger.Warn("no result", "error", err)
		result.Status, result.Err = StatusNoResult, err
		return result
	case err != nil:
		logger.Error("failed to fetch entities", "error", err)
		result.Status, result.Err = StatusFetchFailed, err
		return result
	case len(entities) == 0:
		logger.Info("no entities found")
		result.Status = StatusEmpty
		return result
	}
	result.Entities = len(entities)

	docs, rejected, err := e.enricher.Serialize(entities)
	if err != nil {
		logger.Error("failed to serialize entities", "error", err)
		result.Status, result.Err = StatusFailed, err
		return result
	}
	for _, r := range rejected {
		logger.Warn("dropping entity", "entity_type", r.TypeName, "id", r.ID, "code", rdf.Code(r.Err), "error", r.Err)
	}

	result.File = e.outputPath(def.Canonical)
	written, dropped, err := e.writeTurtle(ctx, logger, result.File, docs, prefixes)
	result.Quads, result.Dropped = written, dropped+len(rejected)
	if err != nil {
		logger.Error("failed to convert entities", "file", result.File, "quads", written, "error", err)
		result.Status, result.Err = StatusFailed, err
		return result
	}
	if result.Dropped > 0 {
		logger.Warn("statements dropped", "quads", dropped, "entities", len(rejected))
	}
	logger.Info("type exported", "file", result.File, "entities", result.Entities, "quads", written)
	result.Status = StatusExported
	return result
}
