package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/prestige/internal/harness"
	"github.com/roach88/prestige/internal/journal"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter  string // scenario filter (glob pattern)
	Journal string // journal database path; empty means in-memory only
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario suite",
		Long: `Run every scenario file in a directory through the dispatch engine.

Each scenario registers its expectations, dispatches its call script,
checks every outcome, and runs the teardown check.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  prestige test ./scenarios
  prestige test ./scenarios --filter "cart-*"
  prestige test ./scenarios --journal runs.db
  prestige test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "persist runs to this journal database")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	files, err := harness.FindScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, "no scenario files found")
	}

	var j *journal.Journal
	if opts.Journal != "" {
		j, err = journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer j.Close()
	}

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	result := TestResult{}
	for _, file := range files {
		sr := runScenarioFile(file, j)
		result.Scenarios = append(result.Scenarios, sr)
		result.Total++
		if sr.Pass {
			result.Passed++
			formatter.Printf("PASS %s\n", sr.Name)
		} else {
			result.Failed++
			formatter.Printf("FAIL %s\n", sr.Name)
			for _, msg := range sr.Errors {
				formatter.Printf("  %s\n", indentContinuation(msg))
			}
		}
	}

	summary := fmt.Sprintf("%d scenarios: %d passed, %d failed", result.Total, result.Passed, result.Failed)
	if err := formatter.Print(result, summary); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// runScenarioFile loads and executes one scenario file, folding load
// errors into the per-scenario result.
func runScenarioFile(file string, j *journal.Journal) ScenarioResult {
	name := strings.TrimSuffix(filepath.Base(file), ".yaml")

	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{Name: name, Pass: false, Errors: []string{err.Error()}}
	}

	var result *harness.Result
	if j != nil {
		result, err = harness.RunWithJournal(scenario, j)
	} else {
		result, err = harness.Run(scenario)
	}
	if err != nil {
		return ScenarioResult{Name: scenario.Name, Pass: false, Errors: []string{err.Error()}}
	}

	return ScenarioResult{Name: scenario.Name, Pass: result.Pass, Errors: result.Errors}
}

// indentContinuation keeps multi-line error messages aligned under their
// scenario line.
func indentContinuation(msg string) string {
	return strings.ReplaceAll(msg, "\n", "\n  ")
}
