// Package rdf provides a compact RDF model and the JSON-LD to Turtle path
// used by the exporter.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// It focuses on streaming with a small surface area:
//   - Decode: NewQuadStream() turns serialized JSON-LD documents into cleaned quads (pull).
//   - Encode: NewTurtleEncoder() writes default-graph quads as grouped Turtle (push).
//   - Drain: Drain() connects any QuadReader to a QuadHandler.
//
// JSON-LD processors only keep absolute IRIs. Producers that need a relative
// IRI to survive JSON-LD expansion wrap it with MarkRelative; every quad that
// leaves a QuadStream has already been passed through CleanupQuad, which
// removes the marker again.
//
// Example:
//
//	stream := rdf.NewQuadStream(ctx, rdf.NewDocumentSource(docs), rdf.StreamOptions{
//	    JSONLD: rdf.JSONLDOptions{ExpandContext: rdf.VocabContext(vocab)},
//	})
//	defer stream.Close()
//
//	enc := rdf.NewTurtleEncoder(w, rdf.TurtleEncodeOptions{Prefixes: map[string]string{"": vocab}})
//	err := rdf.Drain(ctx, stream, rdf.QuadHandlerFunc(enc.Write))
//	if err == nil {
//	    err = enc.Close()
//	}
package rdf
