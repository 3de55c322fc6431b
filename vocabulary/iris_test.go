package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassAndEntityIRI(t *testing.T) {
	m := NewMinter(DefaultVocabIRI, DefaultEntityBase)

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "class IRI",
			got:      m.ClassIRI("Person"),
			expected: "http://ontologies.slub-dresden.de/exhibition/Person",
		},
		{
			name:     "entity IRI with id",
			got:      m.EntityIRI("42", "Person"),
			expected: "http://ontologies.slub-dresden.de/exhibition/entity/Person#s-42",
		},
		{
			name:     "entity IRI with reserved characters",
			got:      m.EntityIRI("a b/50%", "Person"),
			expected: "http://ontologies.slub-dresden.de/exhibition/entity/Person#s-a%20b%2F50%25",
		},
		{
			name:     "entity IRI with non-ASCII id",
			got:      m.EntityIRI("ä", "Person"),
			expected: "http://ontologies.slub-dresden.de/exhibition/entity/Person#s-%C3%A4",
		},
		{
			name:     "entity IRI without id",
			got:      m.EntityIRI("", "Person"),
			expected: "http://ontologies.slub-dresden.de/exhibition/entity/Person#",
		},
		{
			name:     "type namespace",
			got:      m.TypeNamespace("Exhibit"),
			expected: "http://ontologies.slub-dresden.de/exhibition/entity/Exhibit#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestEntityIRIDeterministicAndDistinct(t *testing.T) {
	m := NewMinter("http://example.org/v#", "http://example.org/e")

	assert.Equal(t, m.EntityIRI("1", "Person"), m.EntityIRI("1", "Person"))
	assert.NotEqual(t, m.EntityIRI("1", "Person"), m.EntityIRI("1", "Exhibit"))
	assert.NotEqual(t, m.EntityIRI("1", "Person"), m.EntityIRI("2", "Person"))
	assert.NotEqual(t, m.EntityIRI("a b", "Person"), m.EntityIRI("a%20b", "Person"))
}

func TestCanonicalTypeName(t *testing.T) {
	tests := map[string]string{
		"PersonType":     "Person",
		"Person":         "Person",
		"Type":           "Type",
		"TypeType":       "Type",
		"ExhibitionType": "Exhibition",
		"":               "",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, CanonicalTypeName(in), "input %q", in)
	}
}

func TestTypePrefixes(t *testing.T) {
	m := NewMinter("http://example.org/v#", "http://example.org/e")

	prefixes := m.TypePrefixes([]string{"PersonType", "Exhibit", "person", "1Bad", "Type"})

	assert.Equal(t, map[string]string{
		"person":  "http://example.org/e/Person#",
		"exhibit": "http://example.org/e/Exhibit#",
		"type":    "http://example.org/e/Type#",
	}, prefixes)
}

func TestTypePrefixesMatchEntityIRIs(t *testing.T) {
	m := NewMinter(DefaultVocabIRI, DefaultEntityBase)
	prefixes := m.TypePrefixes([]string{"PersonType"})

	iri := m.EntityIRI("42", CanonicalTypeName("PersonType"))
	assert.Equal(t, prefixes["person"]+"s-42", iri)
}
