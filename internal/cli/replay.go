package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/prestige/internal/engine"
	"github.com/roach88/prestige/internal/expect"
	"github.com/roach88/prestige/internal/harness"
	"github.com/roach88/prestige/internal/journal"
	"github.com/roach88/prestige/internal/wire"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Session string // explicit session ID; empty means latest for the scenario
}

// Divergence reports one recorded event whose replayed outcome differs.
type Divergence struct {
	Seq      int64  `json:"seq"`
	Call     string `json:"call,omitempty"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayResult is the replay command's output.
type ReplayResult struct {
	SessionID   string       `json:"session_id"`
	Scenario    string       `json:"scenario"`
	Events      int          `json:"events"`
	Divergences []Divergence `json:"divergences,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <journal-db> <scenario-file>",
		Short: "Re-dispatch a recorded session",
		Long: `Replay a recorded session's calls against a scenario's expectations.

Each recorded call is dispatched through a fresh expectation tree built
from the scenario file, and every outcome is compared against what the
journal recorded. Divergences mean the scenario's expectations no
longer describe the recorded run.

Exit codes:
  0 - Replay matched the recording
  1 - One or more events diverged
  2 - Command error (missing journal, malformed scenario, etc.)

Examples:
  prestige replay runs.db scenarios/cart-basic.yaml
  prestige replay runs.db scenarios/cart-basic.yaml --session 0191a2b3-...`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "session ID to replay (default: latest for the scenario)")

	return cmd
}

func runReplay(opts *ReplayOptions, dbPath, scenarioPath string, cmd *cobra.Command) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", dbPath))
	}

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	tree, err := scenario.BuildTree()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build expectations", err)
	}

	j, err := journal.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	ctx := context.Background()
	session, err := resolveReplaySession(ctx, j, opts.Session, scenario.Name)
	if err != nil {
		return err
	}

	events, err := j.Events(ctx, session.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}

	result := ReplayResult{SessionID: session.ID, Scenario: session.Scenario}
	for _, ev := range events {
		if ev.Call == "" {
			// Teardown rows replay against the residual tree below.
			continue
		}
		result.Events++

		replayed, residual, derr := replayEvent(tree, ev)
		if derr != nil {
			return derr
		}
		tree = residual
		if replayed != recordedSummary(ev) {
			result.Divergences = append(result.Divergences, Divergence{
				Seq:      ev.Seq,
				Call:     ev.Call,
				Recorded: recordedSummary(ev),
				Replayed: replayed,
			})
		}
	}

	if td := teardownEvent(events); td != nil {
		result.Events++
		replayed := replayTeardown(tree)
		if replayed != string(td.Outcome) {
			result.Divergences = append(result.Divergences, Divergence{
				Seq:      td.Seq,
				Recorded: string(td.Outcome),
				Replayed: replayed,
			})
		}
	}

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	if len(result.Divergences) == 0 {
		return formatter.Print(result, fmt.Sprintf("✓ replay of %s matched %d event(s)", session.ID, result.Events))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✗ replay of %s diverged at %d event(s)\n", session.ID, len(result.Divergences))
	for _, d := range result.Divergences {
		fmt.Fprintf(&b, "  [%d]", d.Seq)
		if d.Call != "" {
			fmt.Fprintf(&b, " %s", d.Call)
		}
		fmt.Fprintf(&b, "\n    recorded: %s\n    replayed: %s\n", d.Recorded, d.Replayed)
	}
	if err := formatter.Print(result, strings.TrimRight(b.String(), "\n")); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d event(s) diverged", len(result.Divergences)))
}

// replayEvent re-dispatches one recorded call and summarizes the outcome
// in the same shape recordedSummary uses. The tree only advances on a
// full match, mirroring the live engine.
func replayEvent(tree expect.Node, ev journal.Event) (string, expect.Node, error) {
	args := wire.Object{}
	if ev.Args != "" {
		parsed, err := wire.ParseObject(ev.Args)
		if err != nil {
			return "", tree, WrapExitError(ExitCommandError, fmt.Sprintf("malformed recorded args at seq %d", ev.Seq), err)
		}
		args = parsed
	}

	match, err := engine.Dispatch(tree, harness.CallRecord{Method: ev.Call, Args: args})
	switch {
	case err == nil:
		value, perr := match.Response.Perform(harness.CallRecord{Method: ev.Call, Args: args})
		if perr != nil {
			return "", tree, WrapExitError(ExitCommandError, fmt.Sprintf("response failed at seq %d", ev.Seq), perr)
		}
		return fmt.Sprintf("%s %s = %s", journal.OutcomeMatched, match.Description, renderReplayValue(value)), match.Residual, nil
	case engine.IsNoMatch(err):
		return string(journal.OutcomeNoMatch), tree, nil
	case engine.IsPartialMatch(err):
		return string(journal.OutcomePartial), tree, nil
	case engine.IsAmbiguous(err):
		return string(journal.OutcomeAmbiguous), tree, nil
	default:
		return "", tree, WrapExitError(ExitCommandError, fmt.Sprintf("dispatch failed at seq %d", ev.Seq), err)
	}
}

func replayTeardown(tree expect.Node) string {
	if err := engine.Finish(tree); err != nil {
		return string(journal.OutcomeUnmet)
	}
	return string(journal.OutcomeFinished)
}

// recordedSummary flattens a recorded event into the comparable shape:
// outcome alone for failures, outcome plus winning expectation and
// result for matches.
func recordedSummary(ev journal.Event) string {
	if ev.Outcome != journal.OutcomeMatched {
		return string(ev.Outcome)
	}
	result := ev.Result
	if result == "" {
		result = "null"
	}
	return fmt.Sprintf("%s %s = %s", ev.Outcome, ev.Matched, result)
}

func renderReplayValue(value any) string {
	if value == nil {
		return "null"
	}
	if v, ok := value.(wire.Value); ok {
		return wire.Render(v)
	}
	return fmt.Sprintf("%v", value)
}

// teardownEvent returns the recorded teardown row, if any. It is always
// the last event of a completed run.
func teardownEvent(events []journal.Event) *journal.Event {
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev.Outcome == journal.OutcomeFinished || ev.Outcome == journal.OutcomeUnmet {
			return &ev
		}
	}
	return nil
}

// resolveReplaySession picks the session to replay: explicit --session,
// or the latest recorded for the scenario.
func resolveReplaySession(ctx context.Context, j *journal.Journal, id, scenario string) (journal.Session, error) {
	if id != "" {
		return resolveSession(ctx, j, id, "")
	}
	session, err := j.LastSession(ctx, scenario)
	if errors.Is(err, journal.ErrNotFound) {
		return journal.Session{}, NewExitError(ExitCommandError, fmt.Sprintf("no sessions recorded for scenario %q", scenario))
	}
	if err != nil {
		return journal.Session{}, WrapExitError(ExitCommandError, "failed to find session", err)
	}
	return session, nil
}
