package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/prestige/internal/expect"
)

// Test fixtures: a minimal method+args call model with an equality
// matcher, enough to exercise dispatch without the full harness stack.

type testCall struct {
	method string
	args   []string
}

func (c testCall) Description() string {
	return fmt.Sprintf("%s(%s)", c.method, strings.Join(c.args, ", "))
}

type testMatcher struct {
	method   string
	args     []string
	returns  any
	performs func(expect.Call) (any, error)
}

func (m testMatcher) Describe() string {
	return fmt.Sprintf("%s(%s)", m.method, strings.Join(m.args, ", "))
}

func (m testMatcher) Match(call expect.Call) expect.MatchOutcome {
	c, ok := call.(testCall)
	if !ok || c.method != m.method {
		return expect.NoMatch()
	}
	distance := 0
	for i := 0; i < len(m.args) || i < len(c.args); i++ {
		if i >= len(m.args) || i >= len(c.args) || m.args[i] != c.args[i] {
			distance++
		}
	}
	if distance > 0 {
		return expect.PartialMatch(distance)
	}
	perform := m.performs
	if perform == nil {
		returns := m.returns
		perform = func(expect.Call) (any, error) { return returns, nil }
	}
	return expect.FullMatch(expect.ResponseFunc(perform))
}

// expectation builds a leaf node for the given method/args returning ret.
func expectation(p expect.Priority, c expect.Cardinality, method string, args []string, ret any) expect.Single {
	m := testMatcher{method: method, args: args, returns: ret}
	return expect.NewSingle(p, c, &expect.Step{
		Location:    "session_test.go:1",
		Description: m.Describe(),
		Matcher:     m,
	})
}

// call builds a test call.
func call(method string, args ...string) testCall {
	return testCall{method: method, args: args}
}
