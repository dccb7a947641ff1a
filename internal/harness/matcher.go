package harness

import (
	"fmt"

	"github.com/roach88/prestige/internal/expect"
	"github.com/roach88/prestige/internal/wire"
)

// CallRecord is the harness's call descriptor: a method name plus named
// arguments as wire values.
type CallRecord struct {
	Method string
	Args   wire.Object
}

// Description implements expect.Call.
func (c CallRecord) Description() string {
	return renderCall(c.Method, c.Args)
}

// ValueMatcher matches calls by method name and per-argument value
// equality, and responds with a fixed return value. It is the step
// payload behind every scenario expectation.
type ValueMatcher struct {
	Method  string
	Args    wire.Object
	Returns wire.Value // nil means the call returns nothing
}

// Describe implements expect.Matcher.
func (m ValueMatcher) Describe() string {
	return renderCall(m.Method, m.Args)
}

// Match implements expect.Matcher. A different method name is no match at
// all; a matching name with differing arguments is a partial match whose
// distance counts the argument names that disagree (missing on either
// side counts as a disagreement).
func (m ValueMatcher) Match(call expect.Call) expect.MatchOutcome {
	c, ok := call.(CallRecord)
	if !ok || c.Method != m.Method {
		return expect.NoMatch()
	}

	distance := 0
	for name, want := range m.Args {
		got, present := c.Args[name]
		if !present || !wire.Equal(want, got) {
			distance++
		}
	}
	for name := range c.Args {
		if _, present := m.Args[name]; !present {
			distance++
		}
	}
	if distance > 0 {
		return expect.PartialMatch(distance)
	}

	returns := m.Returns
	return expect.FullMatch(expect.ResponseFunc(func(expect.Call) (any, error) {
		if returns == nil {
			return nil, nil
		}
		return returns, nil
	}))
}

func renderCall(method string, args wire.Object) string {
	if len(args) == 0 {
		return method + "()"
	}
	return fmt.Sprintf("%s(%s)", method, wire.Render(args))
}
