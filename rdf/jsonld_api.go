package rdf

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

const (
	xsdStringIRI     = "http://www.w3.org/2001/XMLSchema#string"
	rdfLangStringIRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
	rdfTypeIRI       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	defaultGraphName = "@default"
)

// JSONLDOptions configures JSON-LD processing.
type JSONLDOptions struct {
	// BaseIRI resolves relative IRIs. Defaults to RelativeIRIMarker when empty.
	BaseIRI string
	// ExpandContext provides an external context for expansion.
	ExpandContext interface{}
	// SafeMode makes the processor fail on values it would otherwise drop.
	SafeMode bool
	// DocumentLoader resolves remote contexts. Nil uses the processor default.
	DocumentLoader DocumentLoader
}

// VocabContext returns a context binding @vocab to vocab.
func VocabContext(vocab string) map[string]interface{} {
	return map[string]interface{}{"@vocab": vocab}
}

// DocumentLoader resolves remote contexts/documents.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, iri string) (RemoteDocument, error)
}

// DocumentLoaderFunc adapts a function to a DocumentLoader.
type DocumentLoaderFunc func(ctx context.Context, iri string) (RemoteDocument, error)

// LoadDocument calls the underlying function.
func (f DocumentLoaderFunc) LoadDocument(ctx context.Context, iri string) (RemoteDocument, error) {
	return f(ctx, iri)
}

// RemoteDocument represents a fetched JSON-LD document.
type RemoteDocument struct {
	DocumentURL string
	Document    interface{}
	ContextURL  string
}

type jsonGoldDocumentLoader struct {
	ctx   context.Context
	inner DocumentLoader
}

func (l jsonGoldDocumentLoader) LoadDocument(iri string) (*ld.RemoteDocument, error) {
	if l.inner == nil {
		return ld.NewDefaultDocumentLoader(nil).LoadDocument(iri)
	}
	remote, err := l.inner.LoadDocument(l.ctx, iri)
	if err != nil {
		return nil, err
	}
	return &ld.RemoteDocument{
		DocumentURL: remote.DocumentURL,
		Document:    remote.Document,
		ContextURL:  remote.ContextURL,
	}, nil
}

func newJSONGoldOptions(ctx context.Context, opts JSONLDOptions) *ld.JsonLdOptions {
	base := opts.BaseIRI
	if base == "" {
		base = RelativeIRIMarker
	}
	goldOpts := ld.NewJsonLdOptions(base)
	goldOpts.Base = base
	if opts.ExpandContext != nil {
		goldOpts.ExpandContext = opts.ExpandContext
	}
	goldOpts.SafeMode = opts.SafeMode
	if opts.DocumentLoader != nil {
		goldOpts.DocumentLoader = jsonGoldDocumentLoader{ctx: ctx, inner: opts.DocumentLoader}
	}
	return goldOpts
}

// decodeJSONLD converts a parsed JSON-LD value into quads. Blank nodes are
// relabeled through scope.
func decodeJSONLD(ctx context.Context, input interface{}, opts JSONLDOptions, scope *blankNodeScope) ([]Quad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(input, newJSONGoldOptions(ctx, opts))
	if err != nil {
		return nil, err
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	return datasetQuads(dataset, scope)
}

// datasetQuads flattens a json-gold dataset, default graph first and named
// graphs in lexical order.
func datasetQuads(dataset *ld.RDFDataset, scope *blankNodeScope) ([]Quad, error) {
	if dataset == nil {
		return nil, nil
	}
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == defaultGraphName || names[j] == defaultGraphName {
			return names[i] == defaultGraphName && names[j] != defaultGraphName
		}
		return names[i] < names[j]
	})

	var quads []Quad
	for _, name := range names {
		for _, gq := range dataset.Graphs[name] {
			if gq == nil {
				continue
			}
			q, err := quadFromGold(gq, scope)
			if err != nil {
				return nil, err
			}
			quads = append(quads, q)
		}
	}
	return quads, nil
}

func quadFromGold(gq *ld.Quad, scope *blankNodeScope) (Quad, error) {
	s, err := termFromGold(gq.Subject, scope)
	if err != nil {
		return Quad{}, err
	}
	p, err := termFromGold(gq.Predicate, scope)
	if err != nil {
		return Quad{}, err
	}
	pred, ok := p.(IRI)
	if !ok {
		return Quad{}, fmt.Errorf("jsonld: predicate %s is not an IRI", p)
	}
	o, err := termFromGold(gq.Object, scope)
	if err != nil {
		return Quad{}, err
	}
	var g Term = DefaultGraph{}
	if gq.Graph != nil {
		if g, err = termFromGold(gq.Graph, scope); err != nil {
			return Quad{}, err
		}
	}
	return Quad{S: s, P: pred, O: o, G: g}, nil
}

func termFromGold(node ld.Node, scope *blankNodeScope) (Term, error) {
	switch n := node.(type) {
	case nil:
		return nil, fmt.Errorf("jsonld: missing term")
	case ld.IRI:
		return IRI{Value: n.Value}, nil
	case *ld.IRI:
		return IRI{Value: n.Value}, nil
	case ld.BlankNode:
		return scope.node(n.Attribute), nil
	case *ld.BlankNode:
		return scope.node(n.Attribute), nil
	case ld.Literal:
		return literalFromGold(n.Value, n.Datatype, n.Language), nil
	case *ld.Literal:
		return literalFromGold(n.Value, n.Datatype, n.Language), nil
	default:
		return nil, fmt.Errorf("jsonld: unsupported term %T", node)
	}
}

func literalFromGold(value, datatype, language string) Literal {
	lit := Literal{Lexical: value, Lang: language}
	if datatype != "" {
		lit.Datatype = IRI{Value: datatype}
	}
	return lit
}

// reportContextPrefixes hands every plain-string entry of the document's
// top-level @context to handler, in key order. @vocab is reported under the
// empty prefix; expanded term definitions are skipped.
func reportContextPrefixes(input interface{}, handler PrefixHandler) {
	if handler == nil {
		return
	}
	obj, ok := input.(map[string]interface{})
	if !ok {
		return
	}
	ctxMap, ok := obj["@context"].(map[string]interface{})
	if !ok {
		return
	}
	keys := make([]string, 0, len(ctxMap))
	for key := range ctxMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value, ok := ctxMap[key].(string)
		if !ok {
			continue
		}
		prefix := key
		if key == "@vocab" {
			prefix = ""
		} else if len(key) > 0 && key[0] == '@' {
			continue
		}
		iri, _ := UnmarkTerm(IRI{Value: value})
		handler(prefix, iri.(IRI))
	}
}

// markRelativeIDs rewrites every relative @id of a parsed document with
// MarkRelative, so it leaves the processor unresolved. Blank node labels,
// absolute and compact IRIs, and @context subtrees are left alone. A document
// that declares its own @base keeps its relative IRIs for the processor to
// resolve.
func markRelativeIDs(input interface{}) {
	if obj, ok := input.(map[string]interface{}); ok {
		if ctxMap, ok := obj["@context"].(map[string]interface{}); ok {
			if _, hasBase := ctxMap["@base"]; hasBase {
				return
			}
		}
	}
	walkRelativeIDs(input)
}

func walkRelativeIDs(value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, item := range v {
			switch key {
			case "@context":
				continue
			case "@id":
				if id, ok := item.(string); ok && isRelativeRef(id) {
					v[key] = MarkRelative(id)
				}
				continue
			}
			walkRelativeIDs(item)
		}
	case []interface{}:
		for _, item := range v {
			walkRelativeIDs(item)
		}
	}
}

func isRelativeRef(id string) bool {
	if id == "" || strings.HasPrefix(id, "_:") || strings.HasPrefix(id, "@") {
		return false
	}
	return !IsAbsoluteIRI(id)
}

// parseDocument decodes one JSON-LD document text.
func parseDocument(text string) (interface{}, error) {
	var input interface{}
	if err := json.Unmarshal([]byte(text), &input); err != nil {
		return nil, err
	}
	return input, nil
}
