package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestJournal creates a journal backed by a temp-dir database.
func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir() + "/journal.db")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

// TestJournal_RecordAndRead verifies the write/read round trip in seq
// order.
func TestJournal_RecordAndRead(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	id, err := j.BeginSession(ctx, "", "cart-basic", 1)
	require.NoError(t, err)
	require.NotEmpty(t, id, "fresh UUID assigned")

	events := []Event{
		{SessionID: id, Seq: 2, Call: "Cart.addItem", Args: `{"name":"widget"}`, Outcome: OutcomeMatched, Matched: `Cart.addItem({"name":"widget"})`, Result: `true`},
		{SessionID: id, Seq: 3, Call: "Cart.total", Args: `{}`, Outcome: OutcomePartial, Detail: "call Cart.total() matched no expectation's arguments"},
		{SessionID: id, Seq: 4, Call: "", Args: "", Outcome: OutcomeFinished},
	}
	for _, ev := range events {
		require.NoError(t, j.Record(ctx, ev))
	}

	got, err := j.Events(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

// TestJournal_ExplicitSessionID verifies a caller-chosen ID is kept, for
// deterministic golden runs.
func TestJournal_ExplicitSessionID(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	id, err := j.BeginSession(ctx, "session-fixed-01", "cart-basic", 1)
	require.NoError(t, err)
	assert.Equal(t, "session-fixed-01", id)

	// Reusing the ID is a constraint violation, not a silent overwrite.
	_, err = j.BeginSession(ctx, "session-fixed-01", "cart-basic", 2)
	assert.Error(t, err)
}

// TestJournal_LastSession verifies scenario lookup picks the latest run.
func TestJournal_LastSession(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	_, err := j.BeginSession(ctx, "run-a", "cart-basic", 1)
	require.NoError(t, err)
	_, err = j.BeginSession(ctx, "run-b", "cart-basic", 5)
	require.NoError(t, err)
	_, err = j.BeginSession(ctx, "run-c", "other", 9)
	require.NoError(t, err)

	last, err := j.LastSession(ctx, "cart-basic")
	require.NoError(t, err)
	assert.Equal(t, "run-b", last.ID)

	_, err = j.LastSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	sessions, err := j.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "run-a", sessions[0].ID)
}

// TestJournal_DuplicateSeqRejected verifies the logical clock contract:
// one sequence number per row within a session.
func TestJournal_DuplicateSeqRejected(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	id, err := j.BeginSession(ctx, "", "cart-basic", 1)
	require.NoError(t, err)

	ev := Event{SessionID: id, Seq: 2, Call: "Cart.total", Args: "{}", Outcome: OutcomeMatched}
	require.NoError(t, j.Record(ctx, ev))
	assert.Error(t, j.Record(ctx, ev))
}
