package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"$defs": {
		"PersonType": {
			"type": "object",
			"properties": {
				"id": {"type": "string"},
				"name": {"type": ["string", "null"]},
				"externalId": {"type": "string"},
				"address": {"$ref": "#/$defs/AddressType"},
				"friends": {"type": "array", "items": {"$ref": "#/$defs/PersonType"}},
				"tags": {"type": "array", "items": {"type": "string"}}
			}
		},
		"AddressType": {
			"type": "object",
			"properties": {
				"street": {"type": "string"},
				"city": {"anyOf": [{"type": "null"}, {"$ref": "#/$defs/CityType"}]}
			}
		},
		"CityType": {
			"type": "object",
			"properties": {
				"id": {"type": "string"},
				"label": {"type": "string"}
			}
		},
		"Exhibit": {
			"type": "object",
			"properties": {"title": {"type": "string"}}
		}
	}
}`

func TestDecodeSchemaKeepsDeclarationOrder(t *testing.T) {
	s, err := DecodeSchema([]byte(testSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{"PersonType", "AddressType", "CityType", "Exhibit"}, s.TypeNames())

	types := s.Types()
	require.Len(t, types, 4)
	assert.Equal(t, "Person", types[0].Canonical)
	assert.Equal(t, "Exhibit", types[3].Canonical)

	var props []string
	for pair := types[0].Node.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props = append(props, pair.Key)
	}
	assert.Equal(t, []string{"id", "name", "externalId", "address", "friends", "tags"}, props)
}

func TestDecodeSchemaTypeForms(t *testing.T) {
	s, err := DecodeSchema([]byte(testSchema))
	require.NoError(t, err)

	person, ok := s.Resolve("#/$defs/PersonType")
	require.True(t, ok)
	name, ok := person.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, TypeSet{"string", "null"}, name.Type)
	assert.True(t, person.Type.Has("object"))
	assert.True(t, person.HasProperty("id"))
	assert.False(t, person.HasProperty("missing"))
}

func TestSchemaDefinitionsFallback(t *testing.T) {
	s, err := DecodeSchema([]byte(`{"definitions": {"B": {"type": "object"}, "A": {"type": "object"}}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, s.TypeNames())
	_, ok := s.Resolve("#/definitions/A")
	assert.True(t, ok)
	_, ok = s.Resolve("#/$defs/A")
	assert.False(t, ok)
	_, ok = s.Resolve("http://example.org/schema#A")
	assert.False(t, ok)
}

func TestSchemaWithoutDefinitions(t *testing.T) {
	s, err := DecodeSchema([]byte(`{"type": "object"}`))
	require.NoError(t, err)
	assert.Empty(t, s.Types())
}

func TestDecodeSchemaInvalid(t *testing.T) {
	_, err := DecodeSchema([]byte(`{"$defs": [}`))
	assert.Error(t, err)

	_, err = DecodeSchema([]byte(`{"type": 5}`))
	assert.Error(t, err)
}
