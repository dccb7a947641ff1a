package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFromAny_Conversions verifies YAML-decoded values convert with
// integer floats accepted and true floats/nulls rejected.
func TestFromAny_Conversions(t *testing.T) {
	got, err := FromAny(map[string]any{
		"name":  "widget",
		"count": 3,
		"flags": []any{true, int64(7)},
	})
	require.NoError(t, err)
	assert.Equal(t, Object{
		"name":  String("widget"),
		"count": Int(3),
		"flags": Array{Bool(true), Int(7)},
	}, got)

	got, err = FromAny(float64(5))
	require.NoError(t, err)
	assert.Equal(t, Int(5), got)

	_, err = FromAny(float64(5.5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float")

	_, err = FromAny(nil)
	require.Error(t, err)

	_, err = FromAny([]any{"ok", nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")
}

// TestEqual verifies deep equality across shapes.
func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal strings", String("a"), String("a"), true},
		{"different strings", String("a"), String("b"), false},
		{"string vs int", String("1"), Int(1), false},
		{"equal arrays", Array{Int(1), Int(2)}, Array{Int(1), Int(2)}, true},
		{"array length mismatch", Array{Int(1)}, Array{Int(1), Int(2)}, false},
		{"equal objects", Object{"a": Int(1)}, Object{"a": Int(1)}, true},
		{"object key mismatch", Object{"a": Int(1)}, Object{"b": Int(1)}, false},
		{
			"nested",
			Object{"a": Array{Object{"x": Bool(true)}}},
			Object{"a": Array{Object{"x": Bool(true)}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

// TestMarshalCanonical_Deterministic verifies sorted keys and stable
// output for map values.
func TestMarshalCanonical_Deterministic(t *testing.T) {
	obj := Object{
		"zeta":  Int(1),
		"alpha": String("x"),
		"mid":   Array{Bool(false), String("y")},
	}

	data, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"x","mid":[false,"y"],"zeta":1}`, string(data))

	// Repeated marshals are byte-identical.
	again, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

// TestMarshalCanonical_NoHTMLEscaping verifies < > & survive unescaped.
func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(String("a<b&c>d"))
	require.NoError(t, err)
	assert.Equal(t, `"a<b&c>d"`, string(data))
}

// TestMarshalCanonical_NFCNormalization verifies decomposed and composed
// forms of the same text encode identically.
func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	composed := String("café")
	decomposed := String("café")

	a, err := MarshalCanonical(composed)
	require.NoError(t, err)
	b, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
