// Package source fetches the JSON Schema and the entities of a GraphQL API.
package source

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/geoknoesis/gqlrdf/vocabulary"
)

// Reference prefixes understood by Schema.Resolve.
const (
	defsRefPrefix        = "#/$defs/"
	definitionsRefPrefix = "#/definitions/"
)

// Properties keeps object properties in declaration order.
type Properties = orderedmap.OrderedMap[string, *Node]

// Node is the subset of a JSON Schema needed to build queries.
type Node struct {
	Ref        string      `json:"$ref,omitempty"`
	Type       TypeSet     `json:"type,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
	Items      *Node       `json:"items,omitempty"`
	AnyOf      []*Node     `json:"anyOf,omitempty"`
	OneOf      []*Node     `json:"oneOf,omitempty"`
	AllOf      []*Node     `json:"allOf,omitempty"`
	Required   []string    `json:"required,omitempty"`
}

// HasProperty reports whether the node declares name.
func (n *Node) HasProperty(name string) bool {
	if n == nil || n.Properties == nil {
		return false
	}
	_, ok := n.Properties.Get(name)
	return ok
}

// TypeSet is the "type" keyword, given either as a string or a list.
type TypeSet []string

// UnmarshalJSON accepts both forms.
func (t *TypeSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TypeSet{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("schema type: %w", err)
	}
	*t = many
	return nil
}

// Has reports whether the set contains name.
func (t TypeSet) Has(name string) bool {
	for _, v := range t {
		if v == name {
			return true
		}
	}
	return false
}

// Schema is a root JSON Schema whose definitions enumerate exportable types.
type Schema struct {
	Node
	Defs        *Properties `json:"$defs,omitempty"`
	Definitions *Properties `json:"definitions,omitempty"`
}

// TypeDefinition is one exportable type of a schema.
type TypeDefinition struct {
	// Name is the key of the definition.
	Name string
	// Canonical is Name without the container suffix.
	Canonical string
	Node      *Node
}

// DecodeSchema parses a JSON Schema document, keeping declaration order.
func DecodeSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &s, nil
}

// definitions returns $defs, falling back to definitions.
func (s *Schema) definitions() *Properties {
	if s.Defs != nil {
		return s.Defs
	}
	return s.Definitions
}

// Types lists the schema's definitions in declaration order.
func (s *Schema) Types() []TypeDefinition {
	defs := s.definitions()
	if defs == nil {
		return nil
	}
	types := make([]TypeDefinition, 0, defs.Len())
	for pair := defs.Oldest(); pair != nil; pair = pair.Next() {
		types = append(types, TypeDefinition{
			Name:      pair.Key,
			Canonical: vocabulary.CanonicalTypeName(pair.Key),
			Node:      pair.Value,
		})
	}
	return types
}

// TypeNames lists the definition names in declaration order.
func (s *Schema) TypeNames() []string {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return names
}

// Resolve looks up a local reference such as "#/$defs/Person".
func (s *Schema) Resolve(ref string) (*Node, bool) {
	var name string
	var defs *Properties
	switch {
	case strings.HasPrefix(ref, defsRefPrefix):
		name, defs = ref[len(defsRefPrefix):], s.Defs
	case strings.HasPrefix(ref, definitionsRefPrefix):
		name, defs = ref[len(definitionsRefPrefix):], s.Definitions
	default:
		return nil, false
	}
	if defs == nil {
		return nil, false
	}
	node, ok := defs.Get(name)
	return node, ok && node != nil
}
