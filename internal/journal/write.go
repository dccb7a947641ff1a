package journal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Outcome classifies how a dispatched call was resolved.
type Outcome string

const (
	// OutcomeMatched means exactly one expectation absorbed the call.
	OutcomeMatched Outcome = "matched"

	// OutcomeNoMatch means no expectation's shape matched the call.
	OutcomeNoMatch Outcome = "no_match"

	// OutcomePartial means shapes matched but no argument predicates did.
	OutcomePartial Outcome = "partial_match"

	// OutcomeAmbiguous means several equal-priority expectations matched.
	OutcomeAmbiguous Outcome = "ambiguous"

	// OutcomeUnmet records a failed teardown check.
	OutcomeUnmet Outcome = "unmet"

	// OutcomeFinished records a clean teardown.
	OutcomeFinished Outcome = "finished"
)

// Session identifies one recorded verification run.
type Session struct {
	ID         string
	Scenario   string
	StartedSeq int64
}

// Event is one journal row: a dispatched call or a teardown check.
type Event struct {
	SessionID string
	Seq       int64
	Call      string
	Args      string // canonical JSON
	Outcome   Outcome
	Matched   string // winning expectation's description
	Result    string // canonical JSON of the returned value
	Detail    string // error text for failed outcomes
}

// BeginSession registers a new session and returns its ID. An empty id
// gets a fresh UUIDv7; passing an explicit id keeps golden runs
// deterministic.
func (j *Journal) BeginSession(ctx context.Context, id, scenario string, startedSeq int64) (string, error) {
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO sessions (id, scenario, started_seq)
		VALUES (?, ?, ?)
	`, id, scenario, startedSeq)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	return id, nil
}

// Record inserts one event. Duplicate (session, seq) pairs are rejected;
// the caller owns the logical clock and must never reuse a sequence
// number within a session.
func (j *Journal) Record(ctx context.Context, ev Event) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO events (session_id, seq, call, args, outcome, matched, result, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ev.SessionID,
		ev.Seq,
		ev.Call,
		ev.Args,
		string(ev.Outcome),
		ev.Matched,
		ev.Result,
		ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}
