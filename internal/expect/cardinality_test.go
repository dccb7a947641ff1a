package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCardinality_Decrement verifies exhaustion and interval arithmetic.
func TestCardinality_Decrement(t *testing.T) {
	tests := []struct {
		name      string
		card      Cardinality
		want      Cardinality
		exhausted bool
	}{
		{name: "exactly once exhausts", card: Exactly(1), exhausted: true},
		{name: "exactly twice", card: Exactly(2), want: Exactly(1)},
		{name: "between shrinks both ends", card: Between(2, 4), want: Between(1, 3)},
		{name: "between with zero min", card: Between(0, 3), want: Between(0, 2)},
		{name: "at most once exhausts", card: Between(0, 1), exhausted: true},
		{name: "at least keeps unbounded max", card: AtLeast(3), want: AtLeast(2)},
		{name: "at least once clears to any", card: AtLeast(1), want: AnyTimes()},
		{name: "any times is a fixpoint", card: AnyTimes(), want: AnyTimes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.card.Decrement()
			if tt.exhausted {
				assert.False(t, ok, "expected exhaustion")
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCardinality_MandatoryAcrossDecrements covers the interval property:
// a [lo,hi] expectation stays mandatory until decremented lo times.
func TestCardinality_MandatoryAcrossDecrements(t *testing.T) {
	card := Between(2, 4)

	card, ok := card.Decrement()
	require.True(t, ok)
	assert.True(t, card.Mandatory(), "one of two mandatory occurrences seen")

	card, ok = card.Decrement()
	require.True(t, ok)
	assert.False(t, card.Mandatory(), "minimum met after two occurrences")

	card, ok = card.Decrement()
	require.True(t, ok)
	assert.False(t, card.Mandatory())

	_, ok = card.Decrement()
	assert.False(t, ok, "fourth occurrence exhausts [2,4]")
}

// TestCardinality_String verifies report text.
func TestCardinality_String(t *testing.T) {
	tests := []struct {
		card Cardinality
		want string
	}{
		{Exactly(1), "exactly once"},
		{Exactly(2), "exactly twice"},
		{Exactly(5), "exactly 5 times"},
		{Between(2, 4), "2 to 4 times"},
		{Between(0, 3), "at most 3 times"},
		{AtLeast(1), "at least once"},
		{AtLeast(3), "at least 3 times"},
		{AnyTimes(), "any number of times"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.card.String())
	}
}

// TestPriority_Ordering verifies low sorts strictly below normal.
func TestPriority_Ordering(t *testing.T) {
	assert.Less(t, int(PriorityLow), int(PriorityNormal))
	assert.Equal(t, "low priority", PriorityLow.String())
	assert.Equal(t, "", PriorityNormal.String())
}
