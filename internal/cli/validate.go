package cli

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/prestige/internal/harness"
)

//go:embed schema.cue
var scenarioSchema string

// ValidationError is one schema or structural problem found in a
// scenario file.
type ValidationError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// ValidationResult holds validation results across all checked files.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario YAML files against the scenario schema.

Checks structure, cardinality syntax, priorities, and wanted outcomes
without dispatching any calls. Faster than a full test run for
development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	files, err := harness.FindScenarioFiles(scenariosDir, "")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no scenario files found in %s", scenariosDir))
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(scenarioSchema)
	if err := schema.Err(); err != nil {
		return WrapExitError(ExitCommandError, "compiling scenario schema", err)
	}
	scenarioDef := schema.LookupPath(cue.ParsePath("#Scenario"))
	if !scenarioDef.Exists() {
		return NewExitError(ExitCommandError, "scenario schema missing #Scenario definition")
	}

	result := ValidationResult{Valid: true, Files: len(files)}
	for _, file := range files {
		rel := filepath.Base(file)
		for _, msg := range validateScenarioFile(ctx, scenarioDef, file) {
			result.Errors = append(result.Errors, ValidationError{File: rel, Message: msg})
		}
	}
	result.Valid = len(result.Errors) == 0

	if result.Valid {
		return formatter.Print(result, fmt.Sprintf("✓ %d scenario file(s) valid", result.Files))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✗ validation failed with %d error(s)\n", len(result.Errors))
	for _, ve := range result.Errors {
		fmt.Fprintf(&b, "  %s: %s\n", ve.File, ve.Message)
	}
	if err := formatter.Print(result, strings.TrimRight(b.String(), "\n")); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}

// validateScenarioFile checks one YAML file against the schema, then
// runs the structural checks the schema cannot express (tree building,
// cardinality parsing).
func validateScenarioFile(ctx *cue.Context, scenarioDef cue.Value, path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("reading file: %v", err)}
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("parsing YAML: %v", err)}
	}
	if doc == nil {
		return []string{"empty scenario file"}
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return []string{fmt.Sprintf("encoding document: %v", err)}
	}

	unified := scenarioDef.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var msgs []string
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}

	// Schema passed; make sure the expectation tree actually builds.
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return []string{err.Error()}
	}
	if _, err := scenario.BuildTree(); err != nil {
		return []string{err.Error()}
	}
	return nil
}
