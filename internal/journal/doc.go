// Package journal provides durable storage for verification runs.
//
// A journal records every call a session dispatched: the call, its
// arguments in canonical JSON, the outcome (matched, no match, partial
// match, ambiguous, or unmet at teardown), the winning expectation's
// description, and the returned value. Rows are grouped by session and
// ordered by a logical sequence number, never wall-clock time, so a
// recorded run can be replayed and compared byte for byte.
//
// The journal never stores expectation-tree state; replay rebuilds the
// tree from the scenario file and re-dispatches the recorded calls.
//
// Uses SQLite with WAL mode for concurrent read access.
package journal
