package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/prestige/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Session  string // explicit session ID; empty means latest
	Scenario string // scope "latest" to this scenario
	List     bool   // list sessions instead of dumping events
}

// TraceEventView is one journal event shaped for output.
type TraceEventView struct {
	Seq     int64  `json:"seq"`
	Call    string `json:"call,omitempty"`
	Args    string `json:"args,omitempty"`
	Outcome string `json:"outcome"`
	Matched string `json:"matched,omitempty"`
	Result  string `json:"result,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// TraceResult is the trace command's output.
type TraceResult struct {
	SessionID string           `json:"session_id"`
	Scenario  string           `json:"scenario,omitempty"`
	Events    []TraceEventView `json:"events"`
}

// SessionListResult is the output of trace --list.
type SessionListResult struct {
	Sessions []SessionView `json:"sessions"`
}

// SessionView is one recorded session shaped for output.
type SessionView struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <journal-db>",
		Short: "Inspect a recorded journal",
		Long: `Dump the event trace of a recorded session from a journal database.

Without --session, the most recent session is shown. Use --list to
enumerate recorded sessions.

Examples:
  prestige trace runs.db
  prestige trace runs.db --list
  prestige trace runs.db --session 0191a2b3-...
  prestige trace runs.db --scenario cart-basic`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "session ID to dump (default: latest)")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "restrict the latest-session lookup to this scenario")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list recorded sessions")

	return cmd
}

func runTrace(opts *TraceOptions, dbPath string, cmd *cobra.Command) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", dbPath))
	}

	j, err := journal.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	ctx := context.Background()

	if opts.List {
		return listSessions(ctx, j, formatter)
	}

	session, err := resolveSession(ctx, j, opts.Session, opts.Scenario)
	if err != nil {
		return err
	}

	events, err := j.Events(ctx, session.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}

	result := TraceResult{SessionID: session.ID, Scenario: session.Scenario}
	for _, ev := range events {
		result.Events = append(result.Events, TraceEventView{
			Seq:     ev.Seq,
			Call:    ev.Call,
			Args:    ev.Args,
			Outcome: string(ev.Outcome),
			Matched: ev.Matched,
			Result:  ev.Result,
			Detail:  ev.Detail,
		})
	}

	return formatter.Print(result, renderTrace(result))
}

// resolveSession returns the session to dump: the explicit one when a
// --session was given, otherwise the most recently started session,
// scoped to --scenario if set.
func resolveSession(ctx context.Context, j *journal.Journal, id, scenario string) (journal.Session, error) {
	if id != "" {
		sessions, err := j.Sessions(ctx)
		if err != nil {
			return journal.Session{}, WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, s := range sessions {
			if s.ID == id {
				return s, nil
			}
		}
		return journal.Session{}, NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", id))
	}

	if scenario != "" {
		session, err := j.LastSession(ctx, scenario)
		if errors.Is(err, journal.ErrNotFound) {
			return journal.Session{}, NewExitError(ExitCommandError, fmt.Sprintf("no sessions recorded for scenario %q", scenario))
		}
		if err != nil {
			return journal.Session{}, WrapExitError(ExitCommandError, "failed to find session", err)
		}
		return session, nil
	}

	sessions, err := j.Sessions(ctx)
	if err != nil {
		return journal.Session{}, WrapExitError(ExitCommandError, "failed to list sessions", err)
	}
	if len(sessions) == 0 {
		return journal.Session{}, NewExitError(ExitCommandError, "no sessions recorded")
	}
	return sessions[len(sessions)-1], nil
}

func listSessions(ctx context.Context, j *journal.Journal, formatter *OutputFormatter) error {
	sessions, err := j.Sessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	result := SessionListResult{}
	var b strings.Builder
	for _, s := range sessions {
		result.Sessions = append(result.Sessions, SessionView{ID: s.ID, Scenario: s.Scenario})
		fmt.Fprintf(&b, "%s  %s\n", s.ID, s.Scenario)
	}
	if len(sessions) == 0 {
		b.WriteString("no sessions recorded")
	}
	return formatter.Print(result, strings.TrimRight(b.String(), "\n"))
}

func renderTrace(result TraceResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "session %s (%s)\n", result.SessionID, result.Scenario)
	for _, ev := range result.Events {
		fmt.Fprintf(&b, "  [%d] %s", ev.Seq, ev.Outcome)
		if ev.Call != "" {
			fmt.Fprintf(&b, " %s(%s)", ev.Call, ev.Args)
		}
		if ev.Matched != "" {
			fmt.Fprintf(&b, " -> %s", ev.Matched)
		}
		if ev.Result != "" {
			fmt.Fprintf(&b, " = %s", ev.Result)
		}
		if ev.Detail != "" {
			fmt.Fprintf(&b, "\n      %s", strings.ReplaceAll(ev.Detail, "\n", "\n      "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
