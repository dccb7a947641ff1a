// Package harness provides a conformance testing framework for the
// prestige dispatch engine.
//
// A scenario file declares a set of expectations (calls, argument values,
// return values, cardinalities, priorities, ordering groups), a script of
// observed calls with the outcome each one should produce, and a teardown
// expectation. The harness builds the expectation tree through the real
// engine, dispatches the script one call at a time, checks every outcome,
// runs the teardown check, and records the whole run in a journal.
//
// Each scenario runs against a fresh in-memory journal with a
// deterministic logical clock and a fixed session ID, so the resulting
// trace is byte-identical across runs and suitable for golden file
// comparison (see RunWithGolden).
package harness
