package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/gqlrdf/rdf"
)

func TestSerializeScenario(t *testing.T) {
	e := newTestEnricher()

	docs, rejected, err := e.Serialize([]any{
		decode(t, `{"id":"42","__typename":"PersonType","name":"Ada"}`),
	})

	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, docs, 1)
	assert.Equal(t,
		`{"@context":{"@vocab":"`+testVocab+`"},`+
			`"@id":"`+testEntity+`/Person#s-42",`+
			`"@type":"`+testVocab+`Person",`+
			`"id":"42","name":"Ada"}`,
		docs[0])
}

func TestSerializeIsByteStable(t *testing.T) {
	e := newTestEnricher()
	entities := []any{
		decode(t, `{"id":"1","__typename":"PersonType","b":2,"a":[1,2],"nested":{"z":1,"y":2}}`),
		decode(t, `{"name":"untyped"}`),
	}

	first, _, err := e.Serialize(entities)
	require.NoError(t, err)
	second, _, err := e.Serialize(entities)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSerializeRejectsMalformedIRIs(t *testing.T) {
	e := newTestEnricher()

	docs, rejected, err := e.Serialize([]any{
		decode(t, `{"id":"1","__typename":"PersonType","friends":[`+
			`{"id":"8","__typename":"PersonType"},`+
			`{"id":"9","__typename":"Bad Type"}]}`),
		decode(t, `{"id":"2","__typename":"Odd{Type}"}`),
		decode(t, `{"id":"a b","__typename":"PersonType"}`),
	})

	require.NoError(t, err)
	require.Len(t, rejected, 2)
	assert.Equal(t, "Bad Type", rejected[0].TypeName)
	assert.Equal(t, "9", rejected[0].ID)
	assert.ErrorIs(t, rejected[0].Err, rdf.ErrInvalidIRI)
	assert.Equal(t, "Odd{Type}", rejected[1].TypeName)

	require.Len(t, docs, 2)
	assert.Contains(t, docs[0], `"friends":[{"@id":"`+testEntity+`/Person#s-8"`)
	assert.NotContains(t, docs[0], "Bad Type")
	assert.Contains(t, docs[1], `"@id":"`+testEntity+`/Person#s-a%20b"`)
}

func TestDocumentWrapsSequencesUnderGraph(t *testing.T) {
	e := newTestEnricher()

	doc := e.Document(FromInterface(decode(t, `[{"id":"1","__typename":"PersonType"},{"name":"x"}]`)))

	graph, ok := doc[KeyGraph].(Sequence)
	require.True(t, ok, "expected @graph sequence, got %v", doc)
	require.Len(t, graph, 2)
	assert.Contains(t, graph[0].(Mapping), KeyID)
	assert.Equal(t, map[string]any{KeyVocab: testVocab}, doc[KeyContext].Interface())
}

func TestDocumentScalarGivesContextOnly(t *testing.T) {
	e := newTestEnricher()

	doc := e.Document(Scalar{V: "lonely"})

	assert.Equal(t, map[string]any{
		KeyContext: map[string]any{KeyVocab: testVocab},
	}, doc.Interface())
}

func TestFromInterfaceShapes(t *testing.T) {
	v := FromInterface(decode(t, `{"a":[1,{"b":null}],"c":"d"}`))

	m, ok := v.(Mapping)
	require.True(t, ok)
	assert.Equal(t, KindMapping, m.Kind())
	assert.Equal(t, KindSequence, m["a"].Kind())
	assert.Equal(t, KindScalar, m["c"].Kind())
	assert.Equal(t, "mapping", KindMapping.String())
	assert.Equal(t, v, FromInterface(v))
}
