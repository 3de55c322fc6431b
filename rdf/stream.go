package rdf

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
)

// DefaultQueueSize is the capacity of the quad channel between the decoder
// goroutine and QuadStream.Next.
const DefaultQueueSize = 64

// Document is one serialized JSON-LD document together with its pull index.
type Document struct {
	Index int
	Text  string
}

// DocumentSource hands out a fixed, in-memory list of serialized documents,
// one per pull. The last remaining document is handed out first; document
// order only affects output order, never graph content.
type DocumentSource struct {
	docs   []string
	pulled int
}

// NewDocumentSource creates a source over a copy of docs.
func NewDocumentSource(docs []string) *DocumentSource {
	return &DocumentSource{docs: append([]string(nil), docs...)}
}

// Next removes and returns the next document. It returns false once the
// source is exhausted.
func (s *DocumentSource) Next() (Document, bool) {
	n := len(s.docs)
	if n == 0 {
		return Document{}, false
	}
	doc := Document{Index: s.pulled, Text: s.docs[n-1]}
	s.docs[n-1] = ""
	s.docs = s.docs[:n-1]
	s.pulled++
	return doc, true
}

// StreamOptions configures a QuadStream.
type StreamOptions struct {
	// JSONLD configures the JSON-LD processor.
	JSONLD JSONLDOptions
	// Buffered collects every document and decodes them as a single JSON-LD
	// array instead of one document at a time.
	Buffered bool
	// QueueSize is the capacity of the output channel (DefaultQueueSize if zero).
	QueueSize int
	// MaxDocumentBytes limits the size of a single document. Zero means unlimited.
	MaxDocumentBytes int
	// MaxQuads limits the number of emitted quads. Zero means unlimited.
	MaxQuads int
	// OnPrefix receives plain-string @context entries as documents are decoded.
	OnPrefix PrefixHandler
}

// QuadStream decodes the documents of a DocumentSource into cleaned quads.
//
// A producer goroutine pulls documents from the source into an unbuffered
// channel, so a document is only pulled once the decoder asks for it. A
// consumer goroutine decodes one document at a time, applies CleanupQuad to
// every quad and sends it to a bounded channel read by Next.
type QuadStream struct {
	quads  chan Quad
	done   chan struct{}
	cancel context.CancelFunc
	err    error
}

// NewQuadStream starts decoding src. The stream must be drained with Next or
// released with Close.
func NewQuadStream(ctx context.Context, src *DocumentSource, opts StreamOptions) *QuadStream {
	if ctx == nil {
		ctx = context.Background()
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &QuadStream{
		quads:  make(chan Quad, queueSize),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	docs := make(chan Document)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return produceDocuments(gctx, src, docs)
	})
	g.Go(func() error {
		if opts.Buffered {
			return s.consumeBuffered(gctx, docs, opts)
		}
		return s.consume(gctx, docs, opts)
	})
	go func() {
		// err is published before quads is closed, so Next observes it.
		s.err = g.Wait()
		close(s.quads)
		close(s.done)
	}()
	return s
}

// Next returns the next cleaned quad. It returns io.EOF after the last quad,
// or the decode error that stopped the stream once every quad emitted before
// the failure has been read.
func (s *QuadStream) Next() (Quad, error) {
	q, ok := <-s.quads
	if ok {
		return q, nil
	}
	if s.err != nil {
		return Quad{}, s.err
	}
	return Quad{}, io.EOF
}

// Close stops decoding and waits for both goroutines to exit.
func (s *QuadStream) Close() error {
	s.cancel()
	for range s.quads {
	}
	<-s.done
	return nil
}

func produceDocuments(ctx context.Context, src *DocumentSource, docs chan<- Document) error {
	defer close(docs)
	for {
		doc, ok := src.Next()
		if !ok {
			return nil
		}
		select {
		case docs <- doc:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *QuadStream) consume(ctx context.Context, docs <-chan Document, opts StreamOptions) error {
	emit := s.emitter(ctx, opts)
	for doc := range docs {
		input, err := loadDocument(doc, opts)
		if err != nil {
			return err
		}
		reportContextPrefixes(input, opts.OnPrefix)
		quads, err := decodeJSONLD(ctx, input, opts.JSONLD, newBlankNodeScope(doc.Index))
		if err != nil {
			return wrapDecodeError(doc, err)
		}
		for _, q := range quads {
			if err := emit(q); err != nil {
				return wrapDecodeError(doc, err)
			}
		}
	}
	return ctx.Err()
}

func (s *QuadStream) consumeBuffered(ctx context.Context, docs <-chan Document, opts StreamOptions) error {
	var inputs []interface{}
	for doc := range docs {
		input, err := loadDocument(doc, opts)
		if err != nil {
			return err
		}
		reportContextPrefixes(input, opts.OnPrefix)
		inputs = append(inputs, input)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return nil
	}
	all := Document{Index: -1}
	quads, err := decodeJSONLD(ctx, inputs, opts.JSONLD, newBlankNodeScope(-1))
	if err != nil {
		return wrapDecodeError(all, err)
	}
	emit := s.emitter(ctx, opts)
	for _, q := range quads {
		if err := emit(q); err != nil {
			return wrapDecodeError(all, err)
		}
	}
	return nil
}

func (s *QuadStream) emitter(ctx context.Context, opts StreamOptions) func(Quad) error {
	emitted := 0
	return func(q Quad) error {
		if opts.MaxQuads > 0 && emitted >= opts.MaxQuads {
			return ErrQuadLimitExceeded
		}
		emitted++
		select {
		case s.quads <- CleanupQuad(q):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func loadDocument(doc Document, opts StreamOptions) (interface{}, error) {
	if opts.MaxDocumentBytes > 0 && len(doc.Text) > opts.MaxDocumentBytes {
		return nil, wrapParseError("jsonld", doc.Index, doc.Text, ErrDocumentTooLarge)
	}
	input, err := parseDocument(doc.Text)
	if err != nil {
		return nil, wrapParseError("jsonld", doc.Index, doc.Text, err)
	}
	markRelativeIDs(input)
	return input, nil
}

// wrapDecodeError attaches document context to processor and limit errors.
// Cancellation is passed through untouched.
func wrapDecodeError(doc Document, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return wrapParseError("jsonld", doc.Index, doc.Text, err)
}
