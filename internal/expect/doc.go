// Package expect implements the expectation-tree model for prestige.
//
// An expectation tree describes which calls a test session still permits,
// how many times, with what priority, and in what order. The tree is built
// from four node shapes only:
//   - Empty: nothing outstanding
//   - Single: one repeatable expectation (priority + cardinality + step)
//   - Unordered: all children live simultaneously
//   - Ordered: children satisfied left to right
//
// This package contains the pure algorithms over trees: Combine, Simplify,
// Excess, Live, and Format. It performs no I/O and holds no mutable state;
// every operation takes a tree and returns a tree. Dispatch against a call
// lives in internal/engine.
//
// Key design constraints:
//   - The Node interface is sealed - only the four shapes implement it
//   - Steps are immutable after registration; only the surrounding
//     cardinality changes, and only via Decrement during dispatch
//   - Every residual tree handed to callers is already simplified
package expect
