package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/roach88/slider/internal/artifact"
	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/inventory"
)

// inventoryOptions describe the player state the screen is built from.
type inventoryOptions struct {
	Items      []string // name or name@area
	Anchor     bool
	Controller bool
	Area       string
}

func (o *inventoryOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&o.Items, "item", nil, "collected item as name or name@area (repeatable)")
	cmd.Flags().BoolVar(&o.Anchor, "anchor", false, "the anchor has been collected")
	cmd.Flags().BoolVar(&o.Controller, "controller", false, "start on a controller instead of the mouse")
	cmd.Flags().StringVar(&o.Area, "area", "", "area the player is in")
}

// player builds the inventory described by the flags.
func (o *inventoryOptions) player() (*inventory.Player, error) {
	p := inventory.NewPlayer()
	for _, arg := range o.Items {
		name, area, err := parseItem(arg)
		if err != nil {
			return nil, err
		}
		p.Add(name, area)
	}
	if o.Anchor {
		p.CollectAnchor()
	}
	return p, nil
}

func (o *inventoryOptions) area() (inventory.Area, error) {
	if o.Area == "" {
		return inventory.AreaNone, nil
	}
	a, ok := inventory.ParseArea(o.Area)
	if !ok {
		return inventory.AreaNone, fmt.Errorf("unknown area %q", o.Area)
	}
	return a, nil
}

// parseItem splits "name@area". The area is optional.
func parseItem(arg string) (string, inventory.Area, error) {
	name, areaName, found := strings.Cut(arg, "@")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", inventory.AreaNone, fmt.Errorf("item %q has no name", arg)
	}
	if !found {
		return name, inventory.AreaNone, nil
	}
	area, ok := inventory.ParseArea(strings.TrimSpace(areaName))
	if !ok {
		return "", inventory.AreaNone, fmt.Errorf("item %q: unknown area %q", arg, areaName)
	}
	return name, area, nil
}

// buildScreen creates the artifact screen for the flags. The scheme comes
// from the session so the persisted keyboard-only setting applies.
func buildScreen(o *inventoryOptions, scheme *controls.Scheme) (*artifact.Screen, error) {
	p, err := o.player()
	if err != nil {
		return nil, err
	}
	area, err := o.area()
	if err != nil {
		return nil, err
	}
	if o.Controller {
		scheme.SetDevice(controls.Controller)
	}
	return artifact.NewScreen(artifact.DefaultLayout(), p, scheme, artifact.Table{},
		artifact.WithArea(area), artifact.WithLogger(slog.Default())), nil
}

// NewInventoryCommand creates the inventory command group.
func NewInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Preview the artifact inventory screen",
		Long: `Preview the artifact inventory screen for a given set of collected
items. Items are named as in the game (Boots, "Oil #2", Breadge@Caves).`,
	}

	cmd.AddCommand(newInventoryShowCommand(rootOpts))
	cmd.AddCommand(newInventoryViewCommand(rootOpts))

	return cmd
}

func newInventoryShowCommand(opts *RootOptions) *cobra.Command {
	inv := &inventoryOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the screen state",
		Example: `  slider inventory show --item Boots --item Breadge@Caves --item Breadge@Desert --anchor
  slider inventory show --controller --item Sunglasses@Ocean --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			return withSession(cmd.Context(), opts, f, func(s *session) error {
				screen, err := buildScreen(inv, s.scheme)
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeInvalidItem, err.Error(), nil)
				}
				screen.Enable()
				defer screen.Disable()

				if f.Format == "json" {
					return f.Success(screen.State())
				}
				_, err = fmt.Fprint(f.Writer, screen.Snapshot())
				return err
			})
		},
	}
	inv.register(cmd)

	return cmd
}

// newTerminal opens the screen inventory view draws on.
var newTerminal = func() (tcell.Screen, error) {
	return tcell.NewScreen()
}

func newInventoryViewCommand(opts *RootOptions) *cobra.Command {
	inv := &inventoryOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the screen interactively",
		Long: `Browse the artifact screen in the terminal.

Keys:
  ←/→ h/l   move the selection
  c         toggle between controller and mouse
  q Esc     quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts, cmd)
			return withSession(cmd.Context(), opts, f, func(s *session) error {
				screen, err := buildScreen(inv, s.scheme)
				if err != nil {
					return f.Fail(ExitCommandError, ErrCodeInvalidItem, err.Error(), nil)
				}
				return runView(cmd.Context(), screen)
			})
		},
	}
	inv.register(cmd)

	return cmd
}

// runView draws screen on a terminal until the user quits.
func runView(ctx context.Context, screen *artifact.Screen) error {
	term, err := newTerminal()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	events := make(chan tcell.Event)
	done := make(chan struct{})
	go func() {
		defer close(events)
		for {
			ev := term.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		term.Fini()
	}()

	return artifact.Run(ctx, screen, artifact.NewRenderer(term), events)
}
