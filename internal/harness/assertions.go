package harness

import (
	"fmt"
	"strings"
)

// Assertion validates the recorded trace after a scenario's script and
// teardown have run.
type Assertion struct {
	// Type selects the assertion:
	//   - "outcome_count": Outcome appears exactly Count times
	//   - "call_order": Calls appear in the given relative order
	//   - "unmet_contains": the teardown residual names Description
	Type string `yaml:"type"`

	// Outcome and Count are used by outcome_count.
	Outcome string `yaml:"outcome,omitempty"`
	Count   int    `yaml:"count,omitempty"`

	// Calls is used by call_order. Intervening calls are allowed.
	Calls []string `yaml:"calls,omitempty"`

	// Description is used by unmet_contains.
	Description string `yaml:"description,omitempty"`
}

// EvaluateAssertions checks every assertion against the result's trace
// and returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case "outcome_count":
			err = assertOutcomeCount(result.Trace, a)
		case "call_order":
			err = assertCallOrder(result.Trace, a)
		case "unmet_contains":
			err = assertUnmetContains(result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return failures
}

func assertOutcomeCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if ev.Outcome == a.Outcome {
			count++
		}
	}
	if count != a.Count {
		return fmt.Errorf("outcome_count: want %d %q events, got %d", a.Count, a.Outcome, count)
	}
	return nil
}

func assertCallOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, ev := range trace {
		if next < len(a.Calls) && ev.Type == "call" && ev.Call == a.Calls[next] {
			next++
		}
	}
	if next < len(a.Calls) {
		return fmt.Errorf("call_order: %q not found in order after position %d", a.Calls[next], next)
	}
	return nil
}

func assertUnmetContains(trace []TraceEvent, a Assertion) error {
	for _, ev := range trace {
		if ev.Type != "teardown" {
			continue
		}
		if ev.Outcome != "unmet" {
			return fmt.Errorf("unmet_contains: teardown outcome is %q", ev.Outcome)
		}
		if !strings.Contains(ev.Detail, a.Description) {
			return fmt.Errorf("unmet_contains: residual does not mention %q:\n%s", a.Description, ev.Detail)
		}
		return nil
	}
	return fmt.Errorf("unmet_contains: no teardown event in trace")
}
