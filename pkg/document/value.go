// Package document provides a generic, order-preserving document model for
// Unity assets exported as YAML, with explicit fallible field access.
package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Access errors.
var (
	ErrMissingField    = errors.New("missing field")
	ErrWrongKind       = errors.New("wrong value kind")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Map
)

// String returns the kind name.
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
	case Array:
		return "array"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field is a single key/value pair of a map value.
type Field struct {
	Key   string
	Value Value
}

// Value is a node of a generic document. Scalars keep their source text so
// that identifiers which happen to look numeric survive untouched.
type Value struct {
	kind   Kind
	text   string
	items  []Value
	fields []Field
}

// AccessError describes a failed field, index or type access.
type AccessError struct {
	Path string // dotted path of the access, e.g. "MonoBehaviour.ChildPresets[2]"
	Want Kind
	Got  Kind
	Err  error
}

func (e *AccessError) Error() string {
	switch {
	case errors.Is(e.Err, ErrWrongKind):
		return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Want, e.Got)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *AccessError) Unwrap() error { return e.Err }

// NullValue returns a null value.
func NullValue() Value { return Value{kind: Null} }

// BoolValue returns a boolean scalar.
func BoolValue(b bool) Value { return Value{kind: Bool, text: strconv.FormatBool(b)} }

// NumberValue returns a numeric scalar with the given source text.
func NumberValue(text string) Value { return Value{kind: Number, text: text} }

// StringValue returns a string scalar.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayValue returns an array holding items in order.
func ArrayValue(items ...Value) Value {
	return Value{kind: Array, items: items}
}

// MapValue returns a map holding fields in order. Later duplicates of a key
// shadow nothing: Get returns the first match.
func MapValue(fields ...Field) Value {
	return Value{kind: Map, fields: fields}
}

// F is shorthand for building a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == Null }

// Len returns the number of items or fields, and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Map:
		return len(v.fields)
	default:
		return 0
	}
}

// Has reports whether v is a map containing key.
func (v Value) Has(key string) bool {
	_, ok := v.field(key)
	return ok
}

func (v Value) field(key string) (Value, bool) {
	if v.kind != Map {
		return Value{}, false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Get returns the value stored under key.
func (v Value) Get(key string) (Value, error) {
	if v.kind != Map {
		return Value{}, &AccessError{Path: key, Want: Map, Got: v.kind, Err: ErrWrongKind}
	}
	f, ok := v.field(key)
	if !ok {
		return Value{}, &AccessError{Path: key, Err: ErrMissingField}
	}
	return f, nil
}

// Lookup walks nested maps following keys.
func (v Value) Lookup(keys ...string) (Value, error) {
	cur := v
	for i, k := range keys {
		next, err := cur.Get(k)
		if err != nil {
			var ae *AccessError
			if errors.As(err, &ae) {
				ae.Path = strings.Join(keys[:i+1], ".")
			}
			return Value{}, err
		}
		cur = next
	}
	return cur, nil
}

// Index returns the i-th item of an array.
func (v Value) Index(i int) (Value, error) {
	path := fmt.Sprintf("[%d]", i)
	if v.kind != Array {
		return Value{}, &AccessError{Path: path, Want: Array, Got: v.kind, Err: ErrWrongKind}
	}
	if i < 0 || i >= len(v.items) {
		return Value{}, &AccessError{Path: path, Err: ErrIndexOutOfRange}
	}
	return v.items[i], nil
}

// Items returns the items of an array. A null value yields no items, as
// Unity writes empty lists as "key: []" but hand-edited files may leave them blank.
func (v Value) Items() ([]Value, error) {
	switch v.kind {
	case Array:
		return v.items, nil
	case Null:
		return nil, nil
	default:
		return nil, &AccessError{Want: Array, Got: v.kind, Err: ErrWrongKind}
	}
}

// Fields returns the fields of a map in source order.
func (v Value) Fields() ([]Field, error) {
	if v.kind != Map {
		return nil, &AccessError{Want: Map, Got: v.kind, Err: ErrWrongKind}
	}
	return v.fields, nil
}

// AsString returns the text of a scalar. Numbers and booleans are returned
// in their source spelling.
func (v Value) AsString() (string, error) {
	switch v.kind {
	case String, Number, Bool:
		return v.text, nil
	case Null:
		return "", nil
	default:
		return "", &AccessError{Want: String, Got: v.kind, Err: ErrWrongKind}
	}
}

// AsInt returns the value of an integral number.
func (v Value) AsInt() (int64, error) {
	if v.kind != Number {
		return 0, &AccessError{Want: Number, Got: v.kind, Err: ErrWrongKind}
	}
	n, err := strconv.ParseInt(v.text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as integer: %w", v.text, err)
	}
	return n, nil
}

// AsBool returns the value of a boolean scalar.
func (v Value) AsBool() (bool, error) {
	if v.kind != Bool {
		return false, &AccessError{Want: Bool, Got: v.kind, Err: ErrWrongKind}
	}
	return v.text == "true", nil
}

// Interface converts v to plain Go values: nil, bool, int64/float64, string,
// []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.text == "true"
	case Number:
		if n, err := strconv.ParseInt(v.text, 0, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}
		return v.text
	case String:
		return v.text
	case Array:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	case Map:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			if _, dup := out[f.Key]; !dup {
				out[f.Key] = f.Value.Interface()
			}
		}
		return out
	default:
		return nil
	}
}
