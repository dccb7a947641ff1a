package engine

import (
	"errors"
	"fmt"
	"strings"
)

// NoMatchError reports a call whose method/shape matches no registered
// expectation at all.
type NoMatchError struct {
	// Call is the rendered description of the rejected call.
	Call string

	// Expected is the formatted tree of expectations that were live.
	Expected string
}

// Error implements the error interface.
func (e *NoMatchError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("unexpected call %s: no expectation matches", e.Call)
	}
	return fmt.Sprintf("unexpected call %s: no expectation matches\nexpected:\n%s", e.Call, e.Expected)
}

// Candidate is one near-miss carried by a PartialMatchError.
type Candidate struct {
	// Description renders the candidate expectation.
	Description string

	// Distance counts the argument positions that failed to match.
	Distance int
}

// PartialMatchError reports a call that matched the method/shape of some
// expectations but no expectation's argument predicates. Closest holds the
// nearest candidates, ascending by distance, at most five.
type PartialMatchError struct {
	Call    string
	Closest []Candidate
}

// MaxReportedCandidates caps the near-misses carried by a
// PartialMatchError.
const MaxReportedCandidates = 5

// Error implements the error interface.
func (e *PartialMatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "call %s matched no expectation's arguments", e.Call)
	if len(e.Closest) > 0 {
		b.WriteString("\nclosest candidates:")
		for _, c := range e.Closest {
			fmt.Fprintf(&b, "\n  %s (%d mismatched argument(s))", c.Description, c.Distance)
		}
	}
	return b.String()
}

// AmbiguousMatchError reports two or more expectations of equal top
// priority fully matching the same call.
type AmbiguousMatchError struct {
	Call    string
	Matches []string
}

// Error implements the error interface.
func (e *AmbiguousMatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "call %s matches %d expectations of equal priority:", e.Call, len(e.Matches))
	for _, m := range e.Matches {
		fmt.Fprintf(&b, "\n  %s", m)
	}
	return b.String()
}

// UnmetExpectationsError reports mandatory expectations left unsatisfied
// at teardown. Residual carries the formatted excess tree.
type UnmetExpectationsError struct {
	Residual string
}

// Error implements the error interface.
func (e *UnmetExpectationsError) Error() string {
	return fmt.Sprintf("unmet expectations:\n%s", e.Residual)
}

// IsNoMatch reports whether the error is a NoMatchError.
// Uses errors.As to handle wrapped errors.
func IsNoMatch(err error) bool {
	var e *NoMatchError
	return errors.As(err, &e)
}

// IsPartialMatch reports whether the error is a PartialMatchError.
func IsPartialMatch(err error) bool {
	var e *PartialMatchError
	return errors.As(err, &e)
}

// IsAmbiguous reports whether the error is an AmbiguousMatchError.
func IsAmbiguous(err error) bool {
	var e *AmbiguousMatchError
	return errors.As(err, &e)
}

// IsUnmet reports whether the error is an UnmetExpectationsError.
func IsUnmet(err error) bool {
	var e *UnmetExpectationsError
	return errors.As(err, &e)
}
