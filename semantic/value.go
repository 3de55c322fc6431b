// Package semantic turns fetched GraphQL entities into JSON-LD documents by
// annotating every typed object with @id and @type.
package semantic

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	// KindScalar is a string, number, boolean or null.
	KindScalar Kind = iota
	// KindSequence is an ordered list of values.
	KindSequence
	// KindMapping is an object keyed by field name.
	KindMapping
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is an entity value: Scalar, Sequence or Mapping.
type Value interface {
	Kind() Kind
	// Interface returns the plain Go form (any, []any, map[string]any).
	Interface() any
}

// Scalar holds a string, number, boolean or nil.
type Scalar struct {
	V any
}

// Kind returns KindScalar.
func (Scalar) Kind() Kind { return KindScalar }

// Interface returns the wrapped value.
func (s Scalar) Interface() any { return s.V }

// Sequence is an ordered list of values.
type Sequence []Value

// Kind returns KindSequence.
func (Sequence) Kind() Kind { return KindSequence }

// Interface returns the elements as []any.
func (s Sequence) Interface() any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = interfaceOf(v)
	}
	return out
}

// Mapping is an object keyed by field name.
type Mapping map[string]Value

// Kind returns KindMapping.
func (Mapping) Kind() Kind { return KindMapping }

// Interface returns the fields as map[string]any.
func (m Mapping) Interface() any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = interfaceOf(v)
	}
	return out
}

// MarshalJSON encodes the mapping with sorted keys.
func (m Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Interface())
}

func interfaceOf(v Value) any {
	if v == nil {
		return nil
	}
	return v.Interface()
}

// FromInterface converts decoded JSON (as produced by encoding/json into an
// any) into a Value. Values of other types are kept as scalars.
func FromInterface(v any) Value {
	switch val := v.(type) {
	case Value:
		return val
	case map[string]any:
		m := make(Mapping, len(val))
		for k, x := range val {
			m[k] = FromInterface(x)
		}
		return m
	case []any:
		s := make(Sequence, len(val))
		for i, x := range val {
			s[i] = FromInterface(x)
		}
		return s
	case []map[string]any:
		s := make(Sequence, len(val))
		for i, x := range val {
			s[i] = FromInterface(x)
		}
		return s
	default:
		return Scalar{V: v}
	}
}
