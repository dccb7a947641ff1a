package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/prestige/internal/expect"
	"github.com/roach88/prestige/internal/journal"
	"github.com/roach88/prestige/internal/wire"
)

// Scenario defines a conformance test scenario: the expectations to
// register, the call script to dispatch, and what each step and the
// teardown check should produce.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files and journal
	// sessions are keyed by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// SessionID is an optional fixed journal session ID for deterministic
	// golden comparison. Empty means "test-session-default".
	SessionID string `yaml:"session_id,omitempty"`

	// Expectations are the fragments registered before the script runs,
	// in order.
	Expectations []ExpectationSpec `yaml:"expectations"`

	// Calls is the script of observed calls with their wanted outcomes.
	Calls []CallStep `yaml:"calls"`

	// Teardown states what the final check should produce. A nil
	// teardown wants a clean finish.
	Teardown *Want `yaml:"teardown,omitempty"`

	// Assertions validate the recorded trace after the script completes.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectationSpec is one declared expectation fragment. Exactly one of
// Call, Sequence, or Group must be set.
type ExpectationSpec struct {
	// Call is the expected method name for a leaf expectation.
	Call string `yaml:"call,omitempty"`

	// Args are the expected argument values (exact match per name).
	Args map[string]any `yaml:"args,omitempty"`

	// Returns is the value dispatched calls receive.
	Returns any `yaml:"returns,omitempty"`

	// Times is the cardinality: "once" (default), "any", "N", "N+",
	// or "N..M".
	Times string `yaml:"times,omitempty"`

	// Priority is "normal" (default) or "low".
	Priority string `yaml:"priority,omitempty"`

	// Sequence declares an ordered group of child fragments.
	Sequence []ExpectationSpec `yaml:"sequence,omitempty"`

	// Group declares an unordered group of child fragments.
	Group []ExpectationSpec `yaml:"group,omitempty"`
}

// CallStep is one scripted call and its wanted outcome.
type CallStep struct {
	Call string         `yaml:"call"`
	Args map[string]any `yaml:"args,omitempty"`

	// Want states the outcome this step should produce. Nil wants a
	// match with no particular return value.
	Want *Want `yaml:"want,omitempty"`
}

// Want states the outcome of a call step or teardown check.
type Want struct {
	// Returns is the wanted return value for a matched call.
	Returns any `yaml:"returns,omitempty"`

	// Error names the wanted failure: "no_match", "partial_match",
	// "ambiguous", or "unmet" (teardown only). Empty wants success.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	return &s, nil
}

// FindScenarioFiles lists *.yaml files under dir, optionally filtered by
// a glob pattern on the base name.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenarios dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		if filter != "" {
			ok, err := filepath.Match(filter, strings.TrimSuffix(entry.Name(), ".yaml"))
			if err != nil {
				return nil, fmt.Errorf("bad filter %q: %w", filter, err)
			}
			if !ok {
				continue
			}
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// BuildTree converts the scenario's expectation specs into one combined
// tree, registering fragments in declaration order.
func (s *Scenario) BuildTree() (expect.Node, error) {
	tree := expect.Node(expect.Empty{})
	for i, spec := range s.Expectations {
		fragment, err := buildFragment(spec, fmt.Sprintf("%s/expectations[%d]", s.Name, i))
		if err != nil {
			return nil, err
		}
		tree = expect.Combine(tree, fragment)
	}
	return tree, nil
}

func buildFragment(spec ExpectationSpec, location string) (expect.Node, error) {
	set := 0
	if spec.Call != "" {
		set++
	}
	if len(spec.Sequence) > 0 {
		set++
	}
	if len(spec.Group) > 0 {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%s: exactly one of call, sequence, group must be set", location)
	}

	switch {
	case len(spec.Sequence) > 0:
		children, err := buildChildren(spec.Sequence, location+"/sequence")
		if err != nil {
			return nil, err
		}
		return expect.Sequence(children...), nil
	case len(spec.Group) > 0:
		children, err := buildChildren(spec.Group, location+"/group")
		if err != nil {
			return nil, err
		}
		return expect.Group(children...), nil
	default:
		return buildLeaf(spec, location)
	}
}

func buildChildren(specs []ExpectationSpec, location string) ([]expect.Node, error) {
	children := make([]expect.Node, len(specs))
	for i, child := range specs {
		built, err := buildFragment(child, fmt.Sprintf("%s[%d]", location, i))
		if err != nil {
			return nil, err
		}
		children[i] = built
	}
	return children, nil
}

func buildLeaf(spec ExpectationSpec, location string) (expect.Node, error) {
	args, err := wire.FromAnyMap(spec.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: args: %w", location, err)
	}

	var returns wire.Value
	if spec.Returns != nil {
		returns, err = wire.FromAny(spec.Returns)
		if err != nil {
			return nil, fmt.Errorf("%s: returns: %w", location, err)
		}
	}

	card, err := ParseCardinality(spec.Times)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	priority, err := ParsePriority(spec.Priority)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}

	matcher := ValueMatcher{Method: spec.Call, Args: args, Returns: returns}
	return expect.NewSingle(priority, card, &expect.Step{
		Location:    expect.Location(location),
		Description: matcher.Describe(),
		Matcher:     matcher,
	}), nil
}

// ParseCardinality parses the scenario "times" notation: "once" or ""
// (exactly once), "any" (zero or more), "N" (exactly N), "N+" (at least
// N), "N..M" (between N and M).
func ParseCardinality(s string) (expect.Cardinality, error) {
	switch s {
	case "", "once":
		return expect.Exactly(1), nil
	case "any":
		return expect.AnyTimes(), nil
	}

	if lo, hi, ok := strings.Cut(s, ".."); ok {
		min, err := strconv.Atoi(lo)
		if err != nil {
			return expect.Cardinality{}, fmt.Errorf("bad times %q", s)
		}
		max, err := strconv.Atoi(hi)
		if err != nil || max < min || min < 0 {
			return expect.Cardinality{}, fmt.Errorf("bad times %q", s)
		}
		return expect.Between(min, max), nil
	}

	if rest, found := strings.CutSuffix(s, "+"); found {
		min, err := strconv.Atoi(rest)
		if err != nil || min < 0 {
			return expect.Cardinality{}, fmt.Errorf("bad times %q", s)
		}
		return expect.AtLeast(min), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return expect.Cardinality{}, fmt.Errorf("bad times %q", s)
	}
	return expect.Exactly(n), nil
}

// ParsePriority parses "normal" (default) or "low".
func ParsePriority(s string) (expect.Priority, error) {
	switch s {
	case "", "normal":
		return expect.PriorityNormal, nil
	case "low":
		return expect.PriorityLow, nil
	default:
		return 0, fmt.Errorf("bad priority %q", s)
	}
}

// wantOutcome maps a Want to the journal outcome it implies for a call
// step.
func wantOutcome(w *Want) journal.Outcome {
	if w == nil || w.Error == "" {
		return journal.OutcomeMatched
	}
	switch w.Error {
	case "no_match":
		return journal.OutcomeNoMatch
	case "partial_match":
		return journal.OutcomePartial
	case "ambiguous":
		return journal.OutcomeAmbiguous
	case "unmet":
		return journal.OutcomeUnmet
	default:
		return journal.Outcome(w.Error)
	}
}
