// Package vocabulary mints the class and entity IRIs of exported graphs.
package vocabulary

import (
	"strings"

	"github.com/geoknoesis/gqlrdf/rdf"
)

// Default base IRIs for the exhibition vocabulary.
const (
	DefaultVocabIRI   = "http://ontologies.slub-dresden.de/exhibition/"
	DefaultEntityBase = DefaultVocabIRI + "entity"
)

// ContainerSuffix is the suffix GraphQL type names carry for object types.
const ContainerSuffix = "Type"

// entityMarker separates an entity id from the type namespace fragment.
const entityMarker = "s-"

// Minter builds class and entity IRIs for GraphQL types.
type Minter struct {
	// VocabBase is prepended to type names to form class IRIs.
	VocabBase string
	// EntityBase is the root of every entity IRI, without a trailing slash.
	EntityBase string
}

// NewMinter creates a Minter for the given bases.
func NewMinter(vocabBase, entityBase string) Minter {
	return Minter{VocabBase: vocabBase, EntityBase: entityBase}
}

// ClassIRI returns the class IRI of a canonical type name.
//
// Example:
//
//	m.ClassIRI("Person") // "http://ontologies.slub-dresden.de/exhibition/Person"
func (m Minter) ClassIRI(typeName string) string {
	return m.VocabBase + typeName
}

// EntityIRI returns the IRI of one entity of a canonical type.
// An empty id yields the type namespace. Bytes of id outside the RFC 3986
// unreserved set are percent-encoded, "%" included, so distinct ids never
// share an IRI.
//
// Examples:
//   - EntityIRI("42", "Person") -> "<EntityBase>/Person#s-42"
//   - EntityIRI("a b", "Person") -> "<EntityBase>/Person#s-a%20b"
//   - EntityIRI("", "Person")   -> "<EntityBase>/Person#"
func (m Minter) EntityIRI(id, typeName string) string {
	var b strings.Builder
	b.Grow(len(m.EntityBase) + len(typeName) + len(id) + 4)
	b.WriteString(m.EntityBase)
	b.WriteByte('/')
	b.WriteString(typeName)
	b.WriteByte('#')
	if id != "" {
		b.WriteString(entityMarker)
		writeEscapedID(&b, id)
	}
	return b.String()
}

func writeEscapedID(b *strings.Builder, id string) {
	const hex = "0123456789ABCDEF"
	for i := 0; i < len(id); i++ {
		c := id[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return c == '-' || c == '.' || c == '_' || c == '~'
}

// TypeNamespace returns the namespace shared by every entity IRI of a type.
func (m Minter) TypeNamespace(typeName string) string {
	return m.EntityIRI("", typeName)
}

// CanonicalTypeName strips ContainerSuffix from a GraphQL type name.
// A name that is nothing but the suffix is returned unchanged.
func CanonicalTypeName(graphqlName string) string {
	if graphqlName == ContainerSuffix {
		return graphqlName
	}
	return strings.TrimSuffix(graphqlName, ContainerSuffix)
}

// TypePrefixes maps the lower-cased canonical name of every type to its
// namespace, for use as Turtle prefixes. Names that cannot be declared as a
// prefix are skipped. When two names collide after lower-casing, the first
// one wins.
func (m Minter) TypePrefixes(typeNames []string) map[string]string {
	prefixes := make(map[string]string, len(typeNames))
	for _, name := range typeNames {
		canonical := CanonicalTypeName(name)
		prefix := strings.ToLower(canonical)
		if prefix == "" || !rdf.IsValidPrefixName(prefix) {
			continue
		}
		if _, exists := prefixes[prefix]; exists {
			continue
		}
		prefixes[prefix] = m.TypeNamespace(canonical)
	}
	return prefixes
}
