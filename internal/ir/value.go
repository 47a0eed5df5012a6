package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf16"
)

// Value is a sealed interface over payload values.
// Only Null, String, Int, Float, Bool, Array and Object implement it.
type Value interface {
	irValue()
}

// Null is the JSON null value.
type Null struct{}

func (Null) irValue() {}

// String is a string payload value.
type String string

func (String) irValue() {}

// Int is an integer payload value. Always int64, never float64.
type Int int64

func (Int) irValue() {}

// Float is a non-integral number, such as a pointer coordinate. It is always
// finite. Canonical JSON renders it in its shortest round-trip form, so an
// integral Float and the equal Int render identically.
type Float float64

func (Float) irValue() {}

// Bool is a boolean payload value.
type Bool bool

func (Bool) irValue() {}

// Array is an ordered list of values.
type Array []Value

func (Array) irValue() {}

// Object maps string keys to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) irValue() {}

// Pair is a key-value pair for Object construction.
type Pair struct {
	Key   string
	Value Value
}

// O is shorthand for Pair.
// Example: Obj(O("target", Obj(O("value", String("hi")))))
func O(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// Obj builds an Object from pairs. Later pairs overwrite earlier ones.
func Obj(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// Get returns the value stored under key.
func (obj Object) Get(key string) (Value, bool) {
	v, ok := obj[key]
	return v, ok
}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's sort.Strings compares UTF-8 bytes, which differs for characters
// outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

// KindOf names the JSON kind of v, for decode diagnostics.
func KindOf(v Value) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case Null:
		return "null"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Parse decodes a JSON document into a Value.
// null is accepted (as Null). Integers become Int, any other number Float.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: trailing data after value")
	}
	return FromGo(raw)
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// MustParse is Parse that panics on error. For test fixtures only.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("ir.MustParse(%q): %v", s, err))
	}
	return v
}

// FromGo converts a decoded Go value (from encoding/json with UseNumber, or
// from yaml.v3) into a Value.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("number out of int64 range: %d", val)
		}
		return Int(int64(val)), nil
	case float64:
		return fromFloat(val)
	case float32:
		return fromFloat(float64(val))
	case json.Number:
		s := string(val)
		if !strings.ContainsAny(s, ".eE") {
			if n, err := val.Int64(); err == nil {
				return Int(n), nil
			}
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", s)
		}
		return fromFloat(f)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			e, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = e
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			e, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			obj[k] = e
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// fromFloat keeps integral numbers as Int (yaml.v3 hands back float64 for
// "3.0") and rejects NaN and infinities, which JSON cannot carry.
func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("number is not finite: %v", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return Int(int64(f)), nil
	}
	return Float(f), nil
}

// ToGo converts a Value back into plain Go values (map[string]any, []any,
// string, int64, float64, bool, nil).
func ToGo(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Bool:
		return bool(val)
	case Array:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = ToGo(e)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = ToGo(e)
		}
		return out
	default:
		return nil
	}
}
