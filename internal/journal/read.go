package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound reports a missing session.
var ErrNotFound = errors.New("journal: session not found")

// Events returns every event of a session in sequence order.
func (j *Journal) Events(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT session_id, seq, call, args, outcome, matched, result, detail
		FROM events
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var outcome string
		if err := rows.Scan(&ev.SessionID, &ev.Seq, &ev.Call, &ev.Args, &outcome, &ev.Matched, &ev.Result, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Outcome = Outcome(outcome)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// Sessions lists all recorded sessions in start order.
func (j *Journal) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, scenario, started_seq
		FROM sessions
		ORDER BY started_seq, id
	`)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Scenario, &s.StartedSeq); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return sessions, nil
}

// LastSession returns the most recently started session for a scenario.
func (j *Journal) LastSession(ctx context.Context, scenario string) (Session, error) {
	var s Session
	err := j.db.QueryRowContext(ctx, `
		SELECT id, scenario, started_seq
		FROM sessions
		WHERE scenario = ?
		ORDER BY started_seq DESC, id DESC
		LIMIT 1
	`, scenario).Scan(&s.ID, &s.Scenario, &s.StartedSeq)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: scenario %q", ErrNotFound, scenario)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read last session: %w", err)
	}
	return s, nil
}
