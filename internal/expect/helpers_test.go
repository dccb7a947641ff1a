package expect

// Test fixtures shared by the expect package tests. The stub matcher never
// matches anything; these tests exercise tree structure, not dispatch.

type stubMatcher struct {
	desc string
}

func (m stubMatcher) Describe() string { return m.desc }

func (m stubMatcher) Match(call Call) MatchOutcome { return NoMatch() }

// step builds an immutable test step with the given description.
func step(desc string) *Step {
	return &Step{
		Location:    Location("expect_test.go:1"),
		Description: desc,
		Matcher:     stubMatcher{desc: desc},
	}
}

// leaf builds a normal-priority Single around a fresh step.
func leaf(desc string, card Cardinality) Single {
	return NewSingle(PriorityNormal, card, step(desc))
}

// descriptions projects live steps onto their step descriptions, keeping
// enumeration order.
func descriptions(steps []LiveStep) []string {
	out := make([]string, len(steps))
	for i, ls := range steps {
		out[i] = ls.Step.Description
	}
	return out
}
