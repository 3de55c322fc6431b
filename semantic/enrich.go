package semantic

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/geoknoesis/gqlrdf/rdf"
	"github.com/geoknoesis/gqlrdf/vocabulary"
)

// JSON-LD and GraphQL field names used during enrichment.
const (
	KeyContext  = "@context"
	KeyVocab    = "@vocab"
	KeyGraph    = "@graph"
	KeyID       = "@id"
	KeyType     = "@type"
	FieldID     = "id"
	FieldTypeOf = "__typename"
)

// Enricher annotates entities with @id and @type and wraps them into JSON-LD
// documents.
type Enricher struct {
	minter   vocabulary.Minter
	vocabIRI string
}

// NewEnricher creates an Enricher minting IRIs with minter. vocabIRI becomes
// the @vocab of every document.
func NewEnricher(minter vocabulary.Minter, vocabIRI string) *Enricher {
	return &Enricher{minter: minter, vocabIRI: vocabIRI}
}

// Rejection records an entity that was left out because the IRIs minted for
// it are not well-formed.
type Rejection struct {
	TypeName string
	ID       string
	Err      error
}

// Enrich walks v bottom-up. Every mapping that carries a non-empty id and
// __typename receives @id and @type and loses __typename; every other value
// keeps its shape. A mapping that already has @id is left alone, so enriching
// twice is a no-op. Entities whose IRIs do not validate are removed from
// their parent; a rejected top-level entity yields nil.
func (e *Enricher) Enrich(v Value) Value {
	out, _ := e.EnrichChecked(v)
	return out
}

// EnrichChecked is Enrich that also reports the rejected entities.
func (e *Enricher) EnrichChecked(v Value) (Value, []Rejection) {
	var rejected []Rejection
	out, ok := e.walk(v, &rejected)
	if !ok {
		return nil, rejected
	}
	return out, rejected
}

func (e *Enricher) walk(v Value, rejected *[]Rejection) (Value, bool) {
	switch val := v.(type) {
	case Sequence:
		out := make(Sequence, 0, len(val))
		for _, item := range val {
			if enriched, ok := e.walk(item, rejected); ok {
				out = append(out, enriched)
			}
		}
		return out, true
	case Mapping:
		out := make(Mapping, len(val)+1)
		for k, item := range val {
			if enriched, ok := e.walk(item, rejected); ok {
				out[k] = enriched
			}
		}
		if r := e.annotate(out); r != nil {
			*rejected = append(*rejected, *r)
			return nil, false
		}
		return out, true
	default:
		return v, true
	}
}

// annotate adds @id and @type to m in place when m is an entity.
func (e *Enricher) annotate(m Mapping) *Rejection {
	if _, ok := m[KeyID]; ok {
		return nil
	}
	id, ok := entityID(m[FieldID])
	if !ok {
		return nil
	}
	typeName, ok := typeNameOf(m[FieldTypeOf])
	if !ok {
		return nil
	}
	canonical := vocabulary.CanonicalTypeName(typeName)
	classIRI := rdf.MarkRelative(e.minter.ClassIRI(canonical))
	entityIRI := rdf.MarkRelative(e.minter.EntityIRI(id, canonical))
	for _, iri := range []string{classIRI, entityIRI} {
		if err := rdf.ValidateIRI(iri); err != nil {
			return &Rejection{TypeName: typeName, ID: id, Err: err}
		}
	}
	delete(m, FieldTypeOf)
	m[KeyType] = Scalar{V: classIRI}
	m[KeyID] = Scalar{V: entityIRI}
	return nil
}

// entityID accepts non-empty strings and numbers.
func entityID(v Value) (string, bool) {
	s, ok := v.(Scalar)
	if !ok {
		return "", false
	}
	switch id := s.V.(type) {
	case string:
		return id, id != ""
	case json.Number:
		return id.String(), id != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	default:
		return "", false
	}
}

func typeNameOf(v Value) (string, bool) {
	s, ok := v.(Scalar)
	if !ok {
		return "", false
	}
	name, ok := s.V.(string)
	return name, ok && name != ""
}

// Document enriches v and wraps it under a @context binding @vocab. A
// sequence is placed under @graph; a scalar leaves only the context.
func (e *Enricher) Document(v Value) Mapping {
	return e.wrap(e.Enrich(v))
}

func (e *Enricher) wrap(enriched Value) Mapping {
	doc := Mapping{}
	switch val := enriched.(type) {
	case Mapping:
		for k, item := range val {
			doc[k] = item
		}
	case Sequence:
		doc[KeyGraph] = val
	}
	doc[KeyContext] = Mapping{KeyVocab: Scalar{V: e.vocabIRI}}
	return doc
}

// Serialize turns every entity into one JSON-LD document text. Map keys are
// written in sorted order, so equal input gives byte-identical output.
// Rejected entities are returned instead of serialized; a rejected top-level
// entity produces no document.
func (e *Enricher) Serialize(entities []any) ([]string, []Rejection, error) {
	docs := make([]string, 0, len(entities))
	var rejected []Rejection
	for i, entity := range entities {
		enriched, r := e.EnrichChecked(FromInterface(entity))
		rejected = append(rejected, r...)
		if enriched == nil && len(r) > 0 {
			continue
		}
		data, err := json.Marshal(e.wrap(enriched))
		if err != nil {
			return nil, rejected, fmt.Errorf("serialize entity %d: %w", i, err)
		}
		docs = append(docs, string(data))
	}
	return docs, rejected, nil
}
