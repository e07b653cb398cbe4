package criteria

import (
	"go.alis.build/criteria/maps"
)

// Kind identifies the shape of a decoded query value.
type Kind int

const (
	// KindScalar is a single string value, e.g. "age>=18" decodes to Scalar("18").
	KindScalar Kind = iota
	// KindList is an ordered list of strings, e.g. "tag[]=a&tag[]=b".
	KindList
	// KindMap is an ordered nested mapping, e.g. "-order[name]=asc".
	KindMap
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a single decoded query value.
//
// The zero Value is the empty scalar.
type Value struct {
	kind   Kind
	scalar string
	list   []string
	nested *maps.OrderedMap[string, Value]
}

// Scalar returns a scalar Value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// List returns a list Value holding a copy of the given strings.
func List(values ...string) Value {
	return Value{kind: KindList, list: append([]string{}, values...)}
}

// Nested returns a map Value. A nil map is treated as empty.
func Nested(m *maps.OrderedMap[string, Value]) Value {
	if m == nil {
		m = maps.NewOrderedMap[string, Value]()
	}
	return Value{kind: KindMap, nested: m}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsArray reports whether the value is array-shaped, i.e. a list or a map.
func (v Value) IsArray() bool {
	return v.kind == KindList || v.kind == KindMap
}

// Scalar returns the string held by a scalar value.
// The boolean is false for lists and maps.
func (v Value) Scalar() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}
	return v.scalar, true
}

// List returns a copy of the strings held by a list value.
// The boolean is false for scalars and maps.
func (v Value) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string{}, v.list...), true
}

// Map returns the mapping held by a map value.
// The boolean is false for scalars and lists.
func (v Value) Map() (*maps.OrderedMap[string, Value], bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.nested, true
}

// Strings flattens the value into its scalar leaves, in order.
//
//	Scalar("a")                      -> ["a"]
//	List("a", "b")                   -> ["a", "b"]
//	Nested({"x": "a", "y": ["b"]})   -> ["a", "b"]
func (v Value) Strings() []string {
	switch v.kind {
	case KindList:
		return append([]string{}, v.list...)
	case KindMap:
		out := []string{}
		v.nested.Range(func(_ int, _ string, child Value) bool {
			out = append(out, child.Strings()...)
			return true
		})
		return out
	default:
		return []string{v.scalar}
	}
}

// Interface returns the value as a string or a []string. Maps are flattened.
func (v Value) Interface() any {
	if v.kind == KindScalar {
		return v.scalar
	}
	return v.Strings()
}

// Equal reports whether two values have the same shape and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		a, b := v.nested.Pairs(), other.nested.Pairs()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].Key != b[i].Key || !a[i].Value.Equal(b[i].Value) {
				return false
			}
		}
		return true
	}
}

// Params is an insertion-ordered mapping of query keys to values.
type Params = maps.OrderedMap[string, Value]

// Param is a single key-value entry of Params.
type Param = maps.Pair[string, Value]

// NewParams returns an empty Params.
func NewParams() *Params {
	return maps.NewOrderedMap[string, Value]()
}

// ParamsOf returns Params holding the given entries in order.
func ParamsOf(params ...Param) *Params {
	return maps.FromPairs(params...)
}

// P is shorthand for a Param entry.
func P(key string, value Value) Param {
	return Param{Key: key, Value: value}
}
