package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClock_MonotonicAndResettable verifies the clock contract.
func TestClock_MonotonicAndResettable(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())

	c.Reset()
	assert.Equal(t, int64(1), c.Next(), "reset rewinds to the start")
}

// TestSessionID verifies the deterministic default.
func TestSessionID(t *testing.T) {
	assert.Equal(t, "test-session-default", SessionID(""))
	assert.Equal(t, "run-42", SessionID("run-42"))
}
