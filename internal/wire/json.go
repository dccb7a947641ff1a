package wire

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseObject decodes a canonical JSON object, as written to journal
// rows, back into an Object. Floats and nulls are rejected just as on
// the way in.
func ParseObject(data string) (Object, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse object: %w", err)
	}
	return FromAnyMap(raw)
}

// Parse decodes a canonical JSON value back into a Value.
func Parse(data string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	return FromAny(raw)
}

// fromNumber converts a json.Number, rejecting floats.
func fromNumber(n json.Number) (Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return nil, fmt.Errorf("float values are not allowed: %s", s)
	}
	i, err := n.Int64()
	if err != nil {
		return nil, fmt.Errorf("number out of int64 range: %s", s)
	}
	return Int(i), nil
}
