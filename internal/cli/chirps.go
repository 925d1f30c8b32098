package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/slider/internal/dialogue"
)

// ChirpValidationResult is the JSON payload of chirps validate.
type ChirpValidationResult struct {
	Valid  bool                       `json:"valid"`
	Lines  int                        `json:"lines,omitempty"`
	Errors []dialogue.ValidationError `json:"errors,omitempty"`
}

// NewChirpsCommand creates the chirps command group.
func NewChirpsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chirps",
		Short: "Browse and validate companion chirp lines",
	}

	cmd.AddCommand(newChirpsListCommand(rootOpts))
	cmd.AddCommand(newChirpsShowCommand(rootOpts))
	cmd.AddCommand(newChirpsValidateCommand(rootOpts))

	return cmd
}

// loadChirps returns the table in path, or the built-in table when path is empty.
func loadChirps(path string) (*dialogue.Table, error) {
	if path == "" {
		return dialogue.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return dialogue.Load(data)
}

func newChirpsListCommand(opts *RootOptions) *cobra.Command {
	var (
		file      string
		smallTalk bool
		available bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chirp lines",
		Long: `List chirp lines in table order. --small-talk keeps only the random
small talk lines; --available orders the sayable lines by priority.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			table, err := loadChirps(file)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeInvalidChirps, err.Error(), nil)
			}

			lines := table.Lines()
			switch {
			case smallTalk:
				lines = table.SmallTalk()
			case available:
				lines = table.Available()
			}

			if f.Format == "json" {
				return f.Success(lines)
			}
			for _, l := range lines {
				repeat := ""
				if l.Repeatable {
					repeat = " (repeatable)"
				}
				fmt.Fprintf(f.Writer, "%-40s %d  %s%s\n", l.ID, l.EffectivePriority(), l.Text, repeat)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "chirp table YAML (default: built-in table)")
	cmd.Flags().BoolVar(&smallTalk, "small-talk", false, "only small talk lines")
	cmd.Flags().BoolVar(&available, "available", false, "only sayable lines, highest priority first")

	return cmd
}

// ChirpView is the JSON payload of chirps show.
type ChirpView struct {
	dialogue.Line
	Rendered string   `json:"rendered"`
	Vars     []string `json:"vars,omitempty"`
}

func newChirpsShowCommand(opts *RootOptions) *cobra.Command {
	var (
		file string
		vars map[string]string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one chirp with its markers filled in",
		Long: `Print one chirp. Markers such as <var>Cat</var> are replaced with the
values given by --var Cat=Whiskers; unset markers print their name.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			table, err := loadChirps(file)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeInvalidChirps, err.Error(), nil)
			}

			line, ok := table.Lookup(args[0])
			if !ok {
				return f.Fail(ExitCommandError, ErrCodeUnknownChirp, fmt.Sprintf("unknown chirp %q", args[0]), nil)
			}

			view := ChirpView{
				Line:     line,
				Rendered: dialogue.Render(line.Text, vars),
				Vars:     dialogue.Vars(line.Text),
			}
			if f.Format == "json" {
				return f.Success(view)
			}
			return f.Success(view.Rendered)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "chirp table YAML (default: built-in table)")
	cmd.Flags().StringToStringVar(&vars, "var", nil, "marker value as name=value (repeatable)")

	return cmd
}

func newChirpsValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a chirp table against the chirp schema",
		Long: `Check a chirp table: strict YAML, the chirp schema (id shape, non-empty
text, priority 1 or 2) and unique ids. Every problem is reported.

Exit codes:
  0 - Table is valid
  1 - Table has problems
  2 - File could not be read`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			data, err := os.ReadFile(args[0])
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("failed to read %s: %v", args[0], err), nil)
			}

			table, err := dialogue.Load(data)
			if err != nil {
				var verrs dialogue.ValidationErrors
				if !errors.As(err, &verrs) {
					return f.Fail(ExitCommandError, ErrCodeInvalidChirps, err.Error(), nil)
				}
				return outputChirpErrors(f, verrs)
			}

			if f.Format == "json" {
				return f.Success(ChirpValidationResult{Valid: true, Lines: table.Len()})
			}
			fmt.Fprintf(f.Writer, "✓ %d chirps valid\n", table.Len())
			return nil
		},
	}
}

func outputChirpErrors(f *OutputFormatter, errs dialogue.ValidationErrors) error {
	if f.Format == "json" {
		if err := f.encode(CLIResponse{
			Status: "error",
			Data:   ChirpValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
			TraceID: newTraceID(),
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(f.Writer, "✗ Validation failed")
	fmt.Fprintln(f.Writer)
	for _, e := range errs {
		if e.Line > 0 {
			fmt.Fprintf(f.Writer, "line %d\n", e.Line)
		}
		fmt.Fprintf(f.Writer, "  %s: %s: %s\n\n", e.Code, e.Field, e.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
