// Package lenient decodes the small JSON-like objects returned by quote
// providers into a generic, ordered Value tree.
//
// It is not a JSON library: arrays are not recognized and string contents are
// kept verbatim (no escape decoding). Malformed input never fails, it degrades
// to an empty object or to a raw string value.
package lenient

import "fmt"

// Kind is the type of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is an immutable node of the decoded tree. The zero Value is Null.
type Value struct {
	kind    Kind
	b       bool
	n       float64
	integer bool
	s       string
	obj     *Map
}

// NullValue returns the Null value.
func NullValue() Value { return Value{} }

// BoolValue returns a Bool value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue returns a floating point Number value.
func NumberValue(n float64) Value { return Value{kind: Number, n: n} }

// IntegerValue returns a Number value decoded from an integral literal.
func IntegerValue(n int64) Value { return Value{kind: Number, n: float64(n), integer: true} }

// StringValue returns a String value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ObjectValue returns an Object value wrapping m. m must not be modified afterwards.
func ObjectValue(m *Map) Value {
	if m == nil {
		m = &Map{}
	}
	return Value{kind: Object, obj: m}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

// IsInteger reports whether v is a Number decoded from a literal without a decimal point.
func (v Value) IsInteger() bool { return v.kind == Number && v.integer }

func (v Value) Bool() (b, ok bool) { return v.b, v.kind == Bool }

// Float returns the number held by v.
func (v Value) Float() (float64, bool) { return v.n, v.kind == Number }

// Str returns the text held by v.
func (v Value) Str() (string, bool) { return v.s, v.kind == String }

// Object returns the ordered mapping held by v.
func (v Value) Object() (*Map, bool) {
	if v.kind != Object {
		return nil, false
	}
	return v.obj, true
}

// Get returns the member key of an Object value.
// It reports false if v is not an Object or has no such key.
func (v Value) Get(key string) (Value, bool) {
	m, ok := v.Object()
	if !ok {
		return Value{}, false
	}
	return m.Get(key)
}

// Lookup walks nested objects following keys.
func (v Value) Lookup(keys ...string) (Value, bool) {
	cur := v
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Interface converts v into plain Go values: nil, bool, float64, string and
// map[string]any for objects. This is the shape generic JSON tooling expects.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return v.n
	case String:
		return v.s
	case Object:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.keys {
			out[k] = v.obj.vals[k].Interface()
		}
		return out
	default:
		return nil
	}
}

// String returns a compact debug representation of v.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return fmt.Sprint(v.b)
	case Number:
		return fmt.Sprint(v.n)
	case String:
		return fmt.Sprintf("%q", v.s)
	case Object:
		return v.obj.String()
	default:
		return "null"
	}
}

// Map is an insertion-ordered mapping from string to Value.
// It is read-only outside this package.
type Map struct {
	keys []string
	vals map[string]Value
}

// set stores val under key. A new key is appended to the order, an existing
// key keeps its position and takes the new value.
func (m *Map) set(key string, val Value) {
	if m.vals == nil {
		m.vals = make(map[string]Value)
	}
	if _, exists := m.vals[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	val, ok := m.vals[key]
	return val, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Map) String() string {
	s := "{"
	for i, k := range m.Keys() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%q: %v", k, m.vals[k])
	}
	return s + "}"
}
