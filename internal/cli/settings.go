package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/slider/internal/settings"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and edit persisted settings",
		Long: `Inspect and edit the settings stored in the preferences database.

Settings are addressed by preference key (masterVolume) or name
(MasterVolume). The database is created with every default on first use.`,
	}

	cmd.AddCommand(newSettingsListCommand(rootOpts))
	cmd.AddCommand(newSettingsGetCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))
	cmd.AddCommand(newSettingsResetCommand(rootOpts))
	cmd.AddCommand(newSettingsExportCommand(rootOpts))
	cmd.AddCommand(newSettingsImportCommand(rootOpts))

	return cmd
}

func newSettingsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List every setting with its current and default value",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			return withSession(cmd.Context(), opts, f, func(s *session) error {
				items := s.registry.Items()
				if f.Format == "json" {
					return f.Success(items)
				}
				for _, item := range items {
					fmt.Fprintf(f.Writer, "%-26s %-6s %v (default %v)\n", item.Key, item.Kind, item.Current, item.Default)
				}
				return nil
			})
		},
	}
}

func newSettingsGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <key>",
		Short:         "Print one setting's current value",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			return withSession(cmd.Context(), opts, f, func(s *session) error {
				item, err := findItem(s.registry, args[0])
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeUnknownSetting, err.Error(), nil)
				}
				if f.Format == "json" {
					return f.Success(item)
				}
				return f.Success(item.Current)
			})
		},
	}
}

func newSettingsSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change and persist one setting",
		Long: `Change and persist one setting. The value is parsed according to the
setting's kind: true/false, an integer, a decimal number, or text.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			return withSession(cmd.Context(), opts, f, func(s *session) error {
				id, ok := settings.ParseID(args[0])
				if !ok {
					return f.Fail(ExitCommandError, ErrCodeUnknownSetting, fmt.Sprintf("unknown setting %q", args[0]), nil)
				}
				e, err := s.registry.Entry(cmd.Context(), id)
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeUnknownSetting, err.Error(), nil)
				}
				v, err := settings.ParseValue(e.Kind(), args[1])
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeInvalidValue,
						fmt.Sprintf("%s expects a %s value: %v", e.Key(), e.Kind(), err), nil)
				}
				if err := e.SetAny(cmd.Context(), v); err != nil {
					return f.Fail(ExitCommandError, ErrCodeInvalidValue, err.Error(), nil)
				}
				f.VerboseLog("set %s to %v", e.Key(), v)

				item, _ := findItem(s.registry, e.Key())
				if f.Format == "json" {
					return f.Success(item)
				}
				return f.Success(fmt.Sprintf("%s = %v", item.Key, item.Current))
			})
		},
	}
}

func newSettingsResetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [key...]",
		Short: "Restore defaults",
		Long: `Restore the listed settings to their defaults, or every setting when
no key is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			ctx := cmd.Context()
			return withSession(ctx, opts, f, func(s *session) error {
				if len(args) == 0 {
					if err := s.registry.ResetAll(ctx); err != nil {
						return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
					}
					return f.Success(fmt.Sprintf("reset %d settings", s.registry.Len()))
				}

				for _, key := range args {
					id, ok := settings.ParseID(key)
					if !ok {
						return f.Fail(ExitCommandError, ErrCodeUnknownSetting, fmt.Sprintf("unknown setting %q", key), nil)
					}
					e, err := s.registry.Entry(ctx, id)
					if err != nil {
						return f.Fail(ExitCommandError, ErrCodeUnknownSetting, err.Error(), nil)
					}
					if err := e.Reset(ctx); err != nil {
						return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
					}
				}
				return f.Success(fmt.Sprintf("reset %d settings", len(args)))
			})
		},
	}
}

func newSettingsExportCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every setting as YAML",
		Long: `Write the current value of every setting as a YAML mapping of
preference key to value, to stdout or the file given with --output.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			return withSession(cmd.Context(), opts, f, func(s *session) error {
				var buf bytes.Buffer
				if err := s.registry.Export(&buf); err != nil {
					return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
				}

				if output != "" {
					if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
						return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("failed to write %s: %v", output, err), nil)
					}
					return f.Success(fmt.Sprintf("exported %d settings to %s", s.registry.Len(), output))
				}

				if f.Format == "json" {
					values := make(map[string]any, s.registry.Len())
					for _, item := range s.registry.Items() {
						values[item.Key] = item.Current
					}
					return f.Success(values)
				}
				_, err := f.Writer.Write(buf.Bytes())
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")

	return cmd
}

func newSettingsImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Apply settings from a YAML file",
		Long: `Apply a YAML mapping of preference key to value. Settings not listed
keep their value. Nothing is written if any entry is invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			data, err := os.ReadFile(args[0])
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("failed to read %s: %v", args[0], err), nil)
			}
			return withSession(cmd.Context(), opts, f, func(s *session) error {
				if err := s.registry.Import(cmd.Context(), bytes.NewReader(data)); err != nil {
					code := ErrCodeInvalidValue
					if settings.IsUnknownKey(err) {
						code = ErrCodeUnknownSetting
					}
					return f.Fail(ExitCommandError, code, err.Error(), nil)
				}
				return f.Success(fmt.Sprintf("imported %s", args[0]))
			})
		},
	}
}

// findItem returns the registered setting named by key.
func findItem(r *settings.Registry, key string) (settings.Item, error) {
	id, ok := settings.ParseID(key)
	if !ok {
		return settings.Item{}, fmt.Errorf("unknown setting %q", key)
	}
	for _, item := range r.Items() {
		if item.ID == id {
			return item, nil
		}
	}
	return settings.Item{}, fmt.Errorf("setting %q is not registered", key)
}
