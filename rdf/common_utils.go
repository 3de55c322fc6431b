package rdf

import (
	"fmt"
	"strings"
)

// blankNodeScope relabels blank nodes coming out of the JSON-LD processor.
// The processor restarts its labels for every document, so each document gets
// its own scope and labels never collide inside one output graph.
type blankNodeScope struct {
	document int
	counter  int
	labels   map[string]BlankNode
}

// newBlankNodeScope creates a scope for the given document index.
// A negative index yields unqualified labels.
func newBlankNodeScope(document int) *blankNodeScope {
	return &blankNodeScope{document: document, labels: map[string]BlankNode{}}
}

// node returns the scoped blank node for a processor label, allocating a new
// identifier on first sight.
func (s *blankNodeScope) node(label string) BlankNode {
	label = strings.TrimPrefix(label, "_:")
	if b, ok := s.labels[label]; ok {
		return b
	}
	b := BlankNode{ID: generateBlankNodeID(s.document, s.counter)}
	s.counter++
	s.labels[label] = b
	return b
}

// generateBlankNodeID formats a scoped blank node identifier.
// Format: "d<document>b<counter>" (e.g., "d3b0"), or "b<counter>" without a document.
func generateBlankNodeID(document, counter int) string {
	if document < 0 {
		return fmt.Sprintf("b%d", counter)
	}
	return fmt.Sprintf("d%db%d", document, counter)
}
