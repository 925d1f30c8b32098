package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/slider/internal/artifact"
	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/dialogue"
	"github.com/roach88/slider/internal/inventory"
	"github.com/roach88/slider/internal/prefs"
	"github.com/roach88/slider/internal/settings"
	"github.com/roach88/slider/internal/store"
)

var errNothingSelectable = errors.New("nothing selectable")

// Harness holds the live objects a scenario drives.
type Harness struct {
	store    *store.Store
	registry *settings.Registry
	scheme   *controls.Scheme
	player   *inventory.Player
	screen   *artifact.Screen
	chirps   *dialogue.Table
	logger   *slog.Logger

	seq    int64
	result *Result
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and register default settings
// 2. Execute setup steps (untraced)
// 3. Subscribe to every setting's changes
// 4. Execute flow steps with expect validation
// 5. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	device, err := parseDevice(scenario.Device)
	if err != nil {
		return nil, err
	}
	area := inventory.AreaNone
	if scenario.Area != "" {
		var ok bool
		if area, ok = inventory.ParseArea(scenario.Area); !ok {
			return nil, fmt.Errorf("unknown area %q", scenario.Area)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in scenarios
	scheme := controls.NewScheme(device)
	player := inventory.NewPlayer()
	registry := settings.New(st,
		settings.WithLogger(logger),
		settings.WithInit(settings.Defaults(settings.Hooks{KeyboardOnly: scheme.SetKeyboardOnly})),
	)

	h := &Harness{
		store:    st,
		registry: registry,
		scheme:   scheme,
		player:   player,
		screen: artifact.NewScreen(artifact.DefaultLayout(), player, scheme, artifact.Table{},
			artifact.WithArea(area), artifact.WithLogger(logger)),
		chirps: dialogue.Default(),
		logger: logger,
		result: NewResult(),
	}

	ctx := context.Background()
	if err := registry.EnsureInitialized(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}

	for i, step := range scenario.Setup {
		if err := h.execute(ctx, step); err != nil {
			return nil, fmt.Errorf("setup step %d (%s): %w", i, step.Do, err)
		}
	}

	for _, id := range registry.IDs() {
		key := id.PrefsKey()
		if _, err := registry.OnChanged(id, func(v any) { h.traceNotify(key, v) }); err != nil {
			return nil, fmt.Errorf("failed to subscribe to %s: %w", id, err)
		}
	}

	h.executeFlow(ctx, scenario.Flow)

	actx := &AssertionContext{
		Ctx:      ctx,
		Registry: registry,
		Screen:   h.screen,
		Player:   player,
		Scheme:   scheme,
		Chirps:   h.chirps,
	}
	for _, errMsg := range EvaluateAssertions(h.result, scenario.Assertions, actx) {
		h.result.AddError(errMsg)
	}

	h.result.Screen = h.screen.State()
	h.result.Settings = registry.Items()
	return h.result, nil
}

// executeFlow runs every flow step, tracing it and checking its expect clause.
func (h *Harness) executeFlow(ctx context.Context, flow []Step) {
	for i, step := range flow {
		h.seq++
		h.result.Trace = append(h.result.Trace, TraceEvent{
			Seq:  h.seq,
			Kind: KindStep,
			Step: step.Do,
			Args: step.Args,
		})
		idx := len(h.result.Trace) - 1

		err := h.execute(ctx, step)
		outcome := "ok"
		if err != nil {
			outcome = "error: " + err.Error()
		}
		h.result.Trace[idx].Outcome = outcome

		h.logger.Debug("flow step completed", "step", i, "do", step.Do, "outcome", outcome)
		h.checkExpect(i, step, err)
	}
}

func (h *Harness) checkExpect(i int, step Step, err error) {
	var want ExpectClause
	if step.Expect != nil {
		want = *step.Expect
	}

	switch {
	case err != nil && want.Error == "":
		h.result.AddError(fmt.Sprintf("flow[%d] %s: unexpected error: %v", i, step.Do, err))
	case err != nil && !strings.Contains(err.Error(), want.Error):
		h.result.AddError(fmt.Sprintf("flow[%d] %s: error %q does not contain %q", i, step.Do, err, want.Error))
	case err == nil && want.Error != "":
		h.result.AddError(fmt.Sprintf("flow[%d] %s: expected error containing %q", i, step.Do, want.Error))
	}

	if want.Text != nil && h.screen.Text() != *want.Text {
		h.result.AddError(fmt.Sprintf("flow[%d] %s: text is %q, want %q", i, step.Do, h.screen.Text(), *want.Text))
	}
	if want.Selected != nil {
		got := ""
		if sel := h.screen.Selected(); sel != nil && sel.Highlighted() {
			got = sel.DisplayName
		}
		if got != *want.Selected {
			h.result.AddError(fmt.Sprintf("flow[%d] %s: selected is %q, want %q", i, step.Do, got, *want.Selected))
		}
	}
}

func (h *Harness) traceNotify(key string, v any) {
	h.seq++
	h.result.Trace = append(h.result.Trace, TraceEvent{
		Seq:    h.seq,
		Kind:   KindNotify,
		Source: key,
		Value:  v,
	})
}

func (h *Harness) execute(ctx context.Context, step Step) error {
	switch step.Do {
	case StepAcquire:
		item, err := stringArg(step.Args, "item")
		if err != nil {
			return err
		}
		area := inventory.AreaNone
		if _, ok := step.Args["area"]; ok {
			name, err := stringArg(step.Args, "area")
			if err != nil {
				return err
			}
			if area, ok = inventory.ParseArea(name); !ok {
				return fmt.Errorf("unknown area %q", name)
			}
		}
		h.player.Add(item, area)

	case StepCollectAnchor:
		h.player.CollectAnchor()

	case StepEnableScreen:
		h.screen.Enable()

	case StepDisableScreen:
		h.screen.Disable()

	case StepSelectLeftmost:
		if !h.screen.TrySelectLeftmost() {
			return errNothingSelectable
		}

	case StepSelectRightmost:
		if !h.screen.TrySelectRightmost() {
			return errNothingSelectable
		}

	case StepSelectNext:
		dir, err := intArg(step.Args, "dir")
		if err != nil {
			return err
		}
		if !h.screen.SelectNext(dir) {
			return errNothingSelectable
		}

	case StepSetDevice:
		name, err := stringArg(step.Args, "device")
		if err != nil {
			return err
		}
		d, err := parseDevice(name)
		if err != nil {
			return err
		}
		h.scheme.SetDevice(d)

	case StepSetSetting:
		key, err := stringArg(step.Args, "key")
		if err != nil {
			return err
		}
		id, ok := settings.ParseID(key)
		if !ok {
			return fmt.Errorf("unknown setting %q", key)
		}
		e, err := h.registry.Entry(ctx, id)
		if err != nil {
			return err
		}
		v, err := coerce(e.Kind(), step.Args["value"])
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		return e.SetAny(ctx, v)

	case StepResetSettings:
		return h.registry.ResetAll(ctx)

	case StepMarkChirpUsed:
		id, err := stringArg(step.Args, "id")
		if err != nil {
			return err
		}
		return h.chirps.MarkUsed(id)

	default:
		return fmt.Errorf("unknown step %q", step.Do)
	}
	return nil
}

func parseDevice(name string) (controls.Device, error) {
	switch strings.ToLower(name) {
	case "", "mouse":
		return controls.Mouse, nil
	case "keyboard":
		return controls.Keyboard, nil
	case "controller":
		return controls.Controller, nil
	default:
		return controls.Mouse, fmt.Errorf("unknown device %q", name)
	}
}

func stringArg(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("missing arg %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("arg %q must be a string, got %T", name, v)
	}
	return s, nil
}

func intArg(args map[string]interface{}, name string) (int, error) {
	v, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("missing arg %q", name)
	}
	i, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("arg %q must be an integer, got %T", name, v)
	}
	return i, nil
}

// coerce converts a YAML scalar to the Go type a setting of kind holds.
// Integers are accepted for float settings.
func coerce(kind prefs.Kind, v interface{}) (interface{}, error) {
	switch kind {
	case prefs.KindFloat:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int:
			return float64(x), nil
		}
	case prefs.KindInt:
		if x, ok := v.(int); ok {
			return x, nil
		}
	case prefs.KindBool:
		if x, ok := v.(bool); ok {
			return x, nil
		}
	case prefs.KindString:
		if x, ok := v.(string); ok {
			return x, nil
		}
	}
	return nil, fmt.Errorf("%w: got %T for a %s setting", prefs.ErrKindMismatch, v, kind)
}
