package expect

import "fmt"

// Priority ranks expectations when several fully match the same call.
// Higher wins; equal priorities among full matches are never auto-resolved.
type Priority int

const (
	// PriorityLow marks catch-all defaults that must never shadow a
	// normal expectation.
	PriorityLow Priority = -10

	// PriorityNormal is the default priority for registered expectations.
	PriorityNormal Priority = 0
)

// String returns the modifier text used in reports, or "" for normal.
func (p Priority) String() string {
	if p <= PriorityLow {
		return "low priority"
	}
	return ""
}

// Unbounded marks a cardinality with no upper limit.
const Unbounded = -1

// Cardinality is the closed interval [Min, Max] of remaining permitted
// occurrences for an expectation. Max == Unbounded means no upper limit.
//
// Invariants: Min >= 0, and Min <= Max unless Max is Unbounded.
type Cardinality struct {
	Min int
	Max int
}

// Exactly returns the cardinality [n, n].
func Exactly(n int) Cardinality {
	return Cardinality{Min: n, Max: n}
}

// AtLeast returns the cardinality [n, unbounded).
func AtLeast(n int) Cardinality {
	return Cardinality{Min: n, Max: Unbounded}
}

// Between returns the cardinality [lo, hi].
func Between(lo, hi int) Cardinality {
	return Cardinality{Min: lo, Max: hi}
}

// AnyTimes returns the cardinality [0, unbounded) - satisfiable zero or
// more times, never mandatory, never exhausted.
func AnyTimes() Cardinality {
	return Cardinality{Min: 0, Max: Unbounded}
}

// Unlimited reports whether the cardinality has no upper bound.
func (c Cardinality) Unlimited() bool {
	return c.Max == Unbounded
}

// Mandatory reports whether at least one more occurrence is required.
func (c Cardinality) Mandatory() bool {
	return c.Min > 0
}

// Decrement consumes one occurrence. The second return is false when the
// expectation is exhausted by this occurrence (the resulting max would be
// zero) and the step must be removed from future consideration.
//
// An unbounded cardinality never exhausts: [0, unbounded) decrements to
// itself, [n, unbounded) to [n-1, unbounded).
func (c Cardinality) Decrement() (Cardinality, bool) {
	min := c.Min
	if min > 0 {
		min--
	}
	if c.Unlimited() {
		return Cardinality{Min: min, Max: Unbounded}, true
	}
	if c.Max <= 1 {
		return Cardinality{}, false
	}
	return Cardinality{Min: min, Max: c.Max - 1}, true
}

// String renders the cardinality as report text.
func (c Cardinality) String() string {
	switch {
	case c.Min == 0 && c.Unlimited():
		return "any number of times"
	case c.Unlimited():
		return fmt.Sprintf("at least %s", timesText(c.Min))
	case c.Min == c.Max:
		return fmt.Sprintf("exactly %s", timesText(c.Min))
	case c.Min == 0:
		return fmt.Sprintf("at most %s", timesText(c.Max))
	default:
		return fmt.Sprintf("%d to %d times", c.Min, c.Max)
	}
}

func timesText(n int) string {
	switch n {
	case 1:
		return "once"
	case 2:
		return "twice"
	default:
		return fmt.Sprintf("%d times", n)
	}
}
