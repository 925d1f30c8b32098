package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/slider/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
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
		Use:   "test <scenarios>",
		Short: "Run scripted screen and settings scenarios",
		Long: `Run scenario files against a fresh in-memory settings database, the
default artifact layout and the built-in chirp table.

<scenarios> is a scenario file or a directory searched recursively for
.yaml/.yml files. When golden/<name>.golden exists next to a scenario, its
trace and final screen must match it.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  slider test ./scenarios
  slider test ./scenarios --filter "controller_*"
  slider test ./scenarios --update
  slider test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	info, err := os.Stat(path)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeScenario, fmt.Sprintf("scenarios not found: %s", path), nil)
	}

	files := []string{path}
	if info.IsDir() {
		if files, err = harness.FindScenarios(path); err != nil {
			return f.Fail(ExitCommandError, ErrCodeScenario, fmt.Sprintf("failed to find scenarios: %v", err), nil)
		}
	}
	if files, err = filterScenarios(files, opts.Filter); err != nil {
		return f.Fail(ExitCommandError, ErrCodeScenario, err.Error(), nil)
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	if len(files) == 0 && !f.isJSON() {
		fmt.Fprintln(f.Writer, "No scenarios found.")
		return nil
	}

	for _, file := range files {
		f.VerboseLog("running %s", file)
		sr := runScenario(file, opts)
		result.add(sr)
		if !f.isJSON() {
			printScenarioResult(f, sr)
		}
	}
	return reportTests(f, result)
}

func (r *TestResult) add(sr ScenarioResult) {
	r.Scenarios = append(r.Scenarios, sr)
	if sr.Pass {
		r.Passed++
	} else {
		r.Failed++
	}
}

// filterScenarios keeps the files whose base name (without extension)
// matches the glob pattern.
func filterScenarios(files []string, pattern string) ([]string, error) {
	if pattern == "" {
		return files, nil
	}
	var kept []string
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
		if matched {
			kept = append(kept, file)
		}
	}
	return kept, nil
}

// runScenario executes a single scenario and returns the result.
func runScenario(file string, opts *TestOptions) ScenarioResult {
	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(file),
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return ScenarioResult{
			Name:   scenario.Name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	sr := ScenarioResult{Name: scenario.Name, Pass: result.Pass, Errors: result.Errors}
	snapshot := harness.TraceSnapshot{
		ScenarioName: scenario.Name,
		Trace:        result.Trace,
		Screen:       result.Screen,
	}.String()
	goldenPath := goldenFilePath(file, scenario.Name)

	if opts.Update {
		if err := writeGolden(goldenPath, snapshot); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to update golden file: %v", err))
		}
		return sr
	}

	golden, err := os.ReadFile(goldenPath)
	switch {
	case os.IsNotExist(err):
		// No golden file - assertions only
	case err != nil:
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to read golden file: %v", err))
	case string(golden) != snapshot:
		sr.Pass = false
		sr.Errors = append(sr.Errors, "trace does not match golden file (run with --update to regenerate)")
	}
	return sr
}

// goldenFilePath returns golden/<name>.golden next to the scenario file.
func goldenFilePath(scenarioFile, name string) string {
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

func writeGolden(path, snapshot string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	return os.WriteFile(path, []byte(snapshot), 0644)
}

func printScenarioResult(f *OutputFormatter, sr ScenarioResult) {
	if sr.Pass {
		fmt.Fprintf(f.Writer, "✓ %s\n", sr.Name)
		return
	}
	fmt.Fprintf(f.Writer, "✗ %s\n", sr.Name)
	for _, e := range sr.Errors {
		fmt.Fprintf(f.Writer, "  %s\n", e)
	}
}

// reportTests prints the run summary and turns any failure into exit code 1.
func reportTests(f *OutputFormatter, result TestResult) error {
	if result.Failed == 0 {
		if f.isJSON() {
			return f.Success(result)
		}
		if result.Total > 0 {
			fmt.Fprintf(f.Writer, "\n%d passed, 0 failed, %d total\n", result.Passed, result.Total)
		}
		fmt.Fprintln(f.Writer, "✓ All scenarios passed")
		return nil
	}

	if f.isJSON() {
		err := f.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeScenario,
				Message: fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total),
			},
		})
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
}
