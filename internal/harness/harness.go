package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/prestige/internal/engine"
	"github.com/roach88/prestige/internal/expect"
	"github.com/roach88/prestige/internal/journal"
	"github.com/roach88/prestige/internal/testutil"
	"github.com/roach88/prestige/internal/wire"
)

// Harness executes one scenario against the real dispatch engine,
// threading the expectation tree forward call by call and recording each
// outcome in the journal.
type Harness struct {
	journal *journal.Journal
	clock   *testutil.Clock
	logger  *slog.Logger
}

// Run executes a scenario in a fresh in-memory journal and returns the
// result. The error return covers malformed scenarios and journal
// failures; expectation mismatches land in the result's Errors instead.
//
// A scenario with no session_id runs under the deterministic default ID
// so golden traces stay byte-identical across runs.
func Run(scenario *Scenario) (*Result, error) {
	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer j.Close()
	return run(scenario, j, testutil.SessionID(scenario.SessionID))
}

// RunWithJournal executes a scenario recording into the given journal.
// The CLI uses this to persist runs for later trace inspection and
// replay. A scenario with no session_id gets a fresh UUID, so repeated
// runs into the same journal never collide.
func RunWithJournal(scenario *Scenario, j *journal.Journal) (*Result, error) {
	return run(scenario, j, scenario.SessionID)
}

func run(scenario *Scenario, j *journal.Journal, sessionID string) (*Result, error) {
	h := &Harness{
		journal: j,
		clock:   testutil.NewClock(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()
	sessionID, err := j.BeginSession(ctx, sessionID, scenario.Name, h.clock.Next())
	if err != nil {
		return nil, err
	}

	tree, err := scenario.BuildTree()
	if err != nil {
		return nil, err
	}

	result := NewResult(sessionID)
	for i, step := range scenario.Calls {
		tree, err = h.executeStep(ctx, i, step, tree, result)
		if err != nil {
			return nil, err
		}
	}

	if err := h.executeTeardown(ctx, scenario.Teardown, tree, result); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// executeStep dispatches one scripted call, journals it, and validates
// the outcome against the step's want clause. The returned tree is the
// residual on a match and the input unchanged on any dispatch error.
func (h *Harness) executeStep(ctx context.Context, i int, step CallStep, tree expect.Node, result *Result) (expect.Node, error) {
	args, err := wire.FromAnyMap(step.Args)
	if err != nil {
		return tree, fmt.Errorf("call step %d: args: %w", i, err)
	}
	rec := CallRecord{Method: step.Call, Args: args}

	event := journal.Event{
		SessionID: result.SessionID,
		Seq:       h.clock.Next(),
		Call:      step.Call,
		Args:      wire.Render(args),
	}

	match, dispatchErr := engine.Dispatch(tree, rec)
	if dispatchErr != nil {
		event.Outcome = classifyDispatchError(dispatchErr)
		event.Detail = dispatchErr.Error()
	} else {
		tree = match.Residual
		event.Outcome = journal.OutcomeMatched
		event.Matched = match.Description

		value, performErr := match.Response.Perform(rec)
		if performErr != nil {
			return tree, fmt.Errorf("call step %d: response: %w", i, performErr)
		}
		event.Result = renderResult(value)
		h.validateReturns(i, step, value, result)
	}

	if err := h.journal.Record(ctx, event); err != nil {
		return tree, err
	}
	result.Trace = append(result.Trace, TraceEvent{
		Type:    "call",
		Seq:     event.Seq,
		Call:    event.Call,
		Args:    event.Args,
		Outcome: string(event.Outcome),
		Matched: event.Matched,
		Result:  event.Result,
		Detail:  event.Detail,
	})

	if want := wantOutcome(step.Want); want != event.Outcome {
		result.AddError(fmt.Sprintf("call step %d (%s): want outcome %s, got %s: %s",
			i, rec.Description(), want, event.Outcome, event.Detail))
	}

	h.logger.Debug("call step executed",
		"step", i,
		"call", rec.Description(),
		"outcome", event.Outcome,
	)
	return tree, nil
}

// executeTeardown runs the final excess check, journals it, and validates
// it against the scenario's teardown clause.
func (h *Harness) executeTeardown(ctx context.Context, want *Want, tree expect.Node, result *Result) error {
	event := journal.Event{
		SessionID: result.SessionID,
		Seq:       h.clock.Next(),
		Outcome:   journal.OutcomeFinished,
	}

	finishErr := engine.Finish(tree)
	if finishErr != nil {
		event.Outcome = journal.OutcomeUnmet
		event.Detail = finishErr.Error()
	}

	if err := h.journal.Record(ctx, event); err != nil {
		return err
	}
	result.Trace = append(result.Trace, TraceEvent{
		Type:    "teardown",
		Seq:     event.Seq,
		Outcome: string(event.Outcome),
		Detail:  event.Detail,
	})

	wanted := journal.OutcomeFinished
	if want != nil && want.Error == "unmet" {
		wanted = journal.OutcomeUnmet
	}
	if wanted != event.Outcome {
		result.AddError(fmt.Sprintf("teardown: want outcome %s, got %s: %s",
			wanted, event.Outcome, event.Detail))
	}
	return nil
}

// validateReturns compares a matched call's return value with the want
// clause, when one names a value.
func (h *Harness) validateReturns(i int, step CallStep, value any, result *Result) {
	if step.Want == nil || step.Want.Returns == nil {
		return
	}
	want, err := wire.FromAny(step.Want.Returns)
	if err != nil {
		result.AddError(fmt.Sprintf("call step %d: bad want.returns: %v", i, err))
		return
	}
	got, ok := value.(wire.Value)
	if !ok || !wire.Equal(want, got) {
		result.AddError(fmt.Sprintf("call step %d (%s): want return %s, got %s",
			i, step.Call, wire.Render(want), renderResult(value)))
	}
}

// classifyDispatchError maps engine errors onto journal outcomes.
func classifyDispatchError(err error) journal.Outcome {
	switch {
	case engine.IsNoMatch(err):
		return journal.OutcomeNoMatch
	case engine.IsPartialMatch(err):
		return journal.OutcomePartial
	case engine.IsAmbiguous(err):
		return journal.OutcomeAmbiguous
	default:
		return journal.OutcomeNoMatch
	}
}

// renderResult renders a response's return value for trace and journal
// rows. Responses built from scenarios always return wire values or nil.
func renderResult(value any) string {
	if value == nil {
		return ""
	}
	if v, ok := value.(wire.Value); ok {
		return wire.Render(v)
	}
	return fmt.Sprintf("%v", value)
}
