// Package engine implements call dispatch over expectation trees.
//
// Dispatch verifies one observed call against the live steps of a tree:
// enumerate live steps, match each against the call, partition into
// partial and full matches, filter full matches to the top priority, and
// either commit exactly one residual tree or fail with a typed error.
//
// The engine is strictly synchronous: calls are verified one at a time in
// the order observed. Session serializes access with a single exclusive
// lock; at most one dispatch is in flight per session at any instant.
// On any dispatch error the tree is left unchanged, so a caller may catch
// the error and continue the session.
//
// All four error kinds (NoMatchError, PartialMatchError,
// AmbiguousMatchError, UnmetExpectationsError) are terminal for the
// operation that raised them and carry the diagnostics the test harness
// renders.
package engine
