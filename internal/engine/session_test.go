package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/prestige/internal/expect"
)

// TestSession_RegisterDispatchFinish walks a session through the whole
// lifecycle.
func TestSession_RegisterDispatchFinish(t *testing.T) {
	s := NewSession(nil)
	s.Add(expectation(expect.PriorityNormal, expect.Exactly(1), "Cart.total", nil, 7))

	got, err := s.Dispatch(call("Cart.total"))
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	assert.Equal(t, expect.Node(expect.Empty{}), s.Tree())
	assert.NoError(t, s.Finish())
}

// TestSession_FinishWithoutDispatch verifies an untouched mandatory
// expectation fails teardown but leaves the session usable.
func TestSession_FinishWithoutDispatch(t *testing.T) {
	s := NewSession(nil)
	s.Add(expectation(expect.PriorityNormal, expect.Exactly(1), "Cart.total", nil, 7))

	err := s.Finish()
	require.Error(t, err)
	assert.True(t, IsUnmet(err))

	// The tree survived the failed teardown; the call still dispatches.
	got, err := s.Dispatch(call("Cart.total"))
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.NoError(t, s.Finish())
}

// TestSession_ErrorKeepsTree verifies dispatch errors do not consume
// expectations.
func TestSession_ErrorKeepsTree(t *testing.T) {
	s := NewSession(nil)
	s.Add(expectation(expect.PriorityNormal, expect.Exactly(1), "Cart.add", []string{"foo"}, nil))

	_, err := s.Dispatch(call("Cart.add", "bar"))
	require.Error(t, err)
	assert.True(t, IsPartialMatch(err))

	_, err = s.Dispatch(call("Cart.add", "foo"))
	assert.NoError(t, err)
}

// TestSession_ResponseRegistersFurtherExpectations verifies a response
// body may re-enter the session: its registrations compose with the
// already-committed residual.
func TestSession_ResponseRegistersFurtherExpectations(t *testing.T) {
	s := NewSession(nil)

	opening := testMatcher{method: "Door.open", performs: func(expect.Call) (any, error) {
		s.Add(expectation(expect.PriorityNormal, expect.Exactly(1), "Door.close", nil, true))
		return true, nil
	}}
	s.Register(expect.PriorityNormal, expect.Exactly(1), &expect.Step{
		Location:    "session_test.go:1",
		Description: "Door.open()",
		Matcher:     opening,
	})

	got, err := s.Dispatch(call("Door.open"))
	require.NoError(t, err)
	assert.Equal(t, true, got)

	// The nested expectation is now mandatory.
	err = s.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Door.close()")

	got, err = s.Dispatch(call("Door.close"))
	require.NoError(t, err)
	assert.Equal(t, true, got)
	assert.NoError(t, s.Finish())
}
