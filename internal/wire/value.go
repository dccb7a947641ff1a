// Package wire provides the constrained value model for call arguments and
// responses. Scenario files and the journal both speak in these values, so
// everything that crosses the engine boundary has a deterministic rendering.
//
// Only string, int64, bool, array, and object values exist. No floats and
// no nulls: both break deterministic trace comparison, and neither has a
// stable equality the matcher could rank distances against.
package wire

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Value is a sealed interface over the constrained value types. Only
// String, Int, Bool, Array, and Object implement it.
type Value interface {
	wireValue() // Sealed - only these types implement it
}

// String is a string value.
type String string

func (String) wireValue() {}

// Int is an integer value. Always int64, never float64.
type Int int64

func (Int) wireValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) wireValue() {}

// Array is an ordered list of values.
type Array []Value

func (Array) wireValue() {}

// Object is a map of string keys to values. Use SortedKeys for
// deterministic iteration.
type Object map[string]Value

func (Object) wireValue() {}

// SortedKeys returns the object's keys in ascending byte order.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromAny converts a YAML- or JSON-decoded value into a Value. Floats and
// nulls are rejected; YAML integers arrive as int or int64 depending on
// the decoder, and both are accepted.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null values are not allowed")
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint64:
		return Int(int64(val)), nil
	case json.Number:
		return fromNumber(val)
	case float64:
		// YAML hands back float64 for some numeric forms; accept only
		// exact integers.
		if val == float64(int64(val)) {
			return Int(int64(val)), nil
		}
		return nil, fmt.Errorf("float values are not allowed: %v", val)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = converted
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = converted
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// FromAnyMap converts a decoded map into an Object. A nil map converts to
// an empty Object.
func FromAnyMap(m map[string]any) (Object, error) {
	obj := make(Object, len(m))
	for k, v := range m {
		converted, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		obj[k] = converted
	}
	return obj, nil
}

// Equal reports deep equality of two values. Values of different shapes
// are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, elem := range av {
			other, present := bv[k]
			if !present || !Equal(elem, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
