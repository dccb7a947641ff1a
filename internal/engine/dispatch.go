package engine

import (
	"sort"

	"github.com/roach88/prestige/internal/expect"
)

// Match is the successful outcome of a dispatch: the committed response,
// the residual tree to thread forward, and the winning expectation's
// description for diagnostics and journaling.
type Match struct {
	Response    expect.Response
	Residual    expect.Node
	Description string
	Priority    expect.Priority
}

// Dispatch verifies one call against the tree. It is a pure function: on
// failure the caller's tree is untouched and the error is one of
// NoMatchError, PartialMatchError, or AmbiguousMatchError.
//
// Exactly one expectation may absorb a call. When several fully match,
// only those at the maximum present priority remain candidates: a low
// priority catch-all is never selected while a normal expectation
// matches. Equal priorities among the remaining candidates are an
// ambiguity error, never silently resolved.
func Dispatch(tree expect.Node, call expect.Call) (*Match, error) {
	live := expect.Live(tree)

	var partial []Candidate
	var full []*Match
	for _, ls := range live {
		outcome := ls.Step.Matcher.Match(call)
		switch outcome.Kind {
		case expect.MatchPartial:
			partial = append(partial, Candidate{
				Description: ls.Step.Description,
				Distance:    outcome.Distance,
			})
		case expect.MatchFull:
			full = append(full, &Match{
				Response:    outcome.Response,
				Residual:    ls.Residual,
				Description: ls.Step.Description,
				Priority:    ls.Priority,
			})
		}
	}

	full = filterTopPriority(full)

	switch {
	case len(full) == 0 && len(partial) == 0:
		return nil, &NoMatchError{
			Call:     call.Description(),
			Expected: expect.Format(tree, 1),
		}
	case len(full) == 0:
		return nil, &PartialMatchError{
			Call:    call.Description(),
			Closest: closestCandidates(partial),
		}
	case len(full) == 1:
		return full[0], nil
	default:
		matches := make([]string, len(full))
		for i, m := range full {
			matches[i] = m.Description
		}
		return nil, &AmbiguousMatchError{
			Call:    call.Description(),
			Matches: matches,
		}
	}
}

// Finish checks the tree at teardown. It succeeds when no mandatory
// expectations remain; otherwise it fails with the formatted residual.
func Finish(tree expect.Node) error {
	residual := expect.Excess(tree)
	if expect.IsEmpty(residual) {
		return nil
	}
	return &UnmetExpectationsError{Residual: expect.Format(residual, 1)}
}

// filterTopPriority keeps only the full matches at the maximum priority
// present, preserving registration order.
func filterTopPriority(full []*Match) []*Match {
	if len(full) <= 1 {
		return full
	}
	top := full[0].Priority
	for _, m := range full[1:] {
		if m.Priority > top {
			top = m.Priority
		}
	}
	kept := full[:0]
	for _, m := range full {
		if m.Priority == top {
			kept = append(kept, m)
		}
	}
	return kept
}

// closestCandidates ranks near-misses ascending by distance, ties broken
// by registration order, capped at MaxReportedCandidates.
func closestCandidates(partial []Candidate) []Candidate {
	sort.SliceStable(partial, func(i, j int) bool {
		return partial[i].Distance < partial[j].Distance
	})
	if len(partial) > MaxReportedCandidates {
		partial = partial[:MaxReportedCandidates]
	}
	return partial
}
