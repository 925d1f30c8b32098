package harness

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/slider/internal/artifact"
	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/dialogue"
	"github.com/roach88/slider/internal/inventory"
	"github.com/roach88/slider/internal/settings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  %s\n", event)
		}
	}
	return buf.String()
}

// AssertionContext gives assertions access to the live scenario objects.
type AssertionContext struct {
	Ctx      context.Context
	Registry *settings.Registry
	Screen   *artifact.Screen
	Player   *inventory.Player
	Scheme   *controls.Scheme
	Chirps   *dialogue.Table
}

// EvaluateAssertions checks every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result.Trace, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertTraceContains:
		return assertTraceContains(trace, a)
	case AssertTraceOrder:
		return assertTraceOrder(trace, a)
	case AssertTraceCount:
		return assertTraceCount(trace, a)
	case AssertNotifications:
		return assertNotifications(trace, a)
	case AssertCounter:
		return assertCounter(actx, a)
	case AssertIcon:
		return assertIcon(actx, a)
	case AssertSetting:
		return assertSetting(actx, a)
	case AssertListeners:
		return assertListeners(actx, a)
	case AssertChirp:
		return assertChirp(actx, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertTraceContains checks if the trace contains a step matching
// the specified action and args (subset match).
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if event.Kind == KindStep && event.Step == a.Step && matchArgs(event.Args, a.Args) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("step %s with args %v", a.Step, a.Args),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that steps appear in the given order.
// Steps don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(a.Steps) && event.Kind == KindStep && event.Step == a.Steps[next] {
			next++
		}
	}
	if next == len(a.Steps) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("steps in order %v", a.Steps),
		Actual:   fmt.Sprintf("%s not found after %v", a.Steps[next], a.Steps[:next]),
		Trace:    trace,
	}
}

// assertTraceCount checks that a step appears exactly Count times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	n := 0
	for _, event := range trace {
		if event.Kind == KindStep && event.Step == a.Step {
			n++
		}
	}
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%s %d times", a.Step, a.Count),
		Actual:   fmt.Sprintf("%d times", n),
		Trace:    trace,
	}
}

// assertNotifications checks how many change notifications a setting sent.
func assertNotifications(trace []TraceEvent, a Assertion) error {
	n := 0
	for _, event := range trace {
		if event.Kind == KindNotify && event.Source == a.Key {
			n++
		}
	}
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertNotifications,
		Expected: fmt.Sprintf("%d notifications from %s", a.Count, a.Key),
		Actual:   fmt.Sprintf("%d", n),
		Trace:    trace,
	}
}

func assertCounter(actx *AssertionContext, a Assertion) error {
	got := actx.Screen.Counter(artifact.Counter(a.Counter))
	want := artifact.CounterState{Text: a.Text, Visible: a.Visible}
	if got == want {
		return nil
	}
	return &AssertionError{
		Type:     AssertCounter,
		Expected: fmt.Sprintf("%s counter %+v", a.Counter, want),
		Actual:   fmt.Sprintf("%+v", got),
	}
}

func assertIcon(actx *AssertionContext, a Assertion) error {
	for _, c := range actx.Screen.Entries() {
		if c.Key != a.Item {
			continue
		}
		if c.Visible() == a.Visible {
			return nil
		}
		return &AssertionError{
			Type:     AssertIcon,
			Expected: fmt.Sprintf("%s visible=%t", a.Item, a.Visible),
			Actual:   fmt.Sprintf("visible=%t", c.Visible()),
		}
	}
	return &AssertionError{
		Type:     AssertIcon,
		Expected: fmt.Sprintf("icon %s", a.Item),
		Actual:   "no such icon",
	}
}

func assertSetting(actx *AssertionContext, a Assertion) error {
	id, ok := settings.ParseID(a.Key)
	if !ok {
		return fmt.Errorf("unknown setting %q", a.Key)
	}
	e, err := actx.Registry.Entry(actx.Ctx, id)
	if err != nil {
		return err
	}
	want, err := coerce(e.Kind(), a.Value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", a.Key, err)
	}
	if reflect.DeepEqual(e.CurrentAny(), want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSetting,
		Expected: fmt.Sprintf("%s = %v", a.Key, want),
		Actual:   fmt.Sprintf("%v", e.CurrentAny()),
	}
}

// assertListeners checks the number of live inventory and control scheme
// subscriptions.
func assertListeners(actx *AssertionContext, a Assertion) error {
	n := actx.Player.Listeners() + actx.Scheme.Subscribers()
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertListeners,
		Expected: fmt.Sprintf("%d listeners", a.Count),
		Actual:   fmt.Sprintf("%d", n),
	}
}

func assertChirp(actx *AssertionContext, a Assertion) error {
	line, ok := actx.Chirps.Lookup(a.ID)
	if !ok {
		return fmt.Errorf("unknown chirp %q", a.ID)
	}
	if line.Used == a.Used {
		return nil
	}
	return &AssertionError{
		Type:     AssertChirp,
		Expected: fmt.Sprintf("%s used=%t", a.ID, a.Used),
		Actual:   fmt.Sprintf("used=%t", line.Used),
	}
}

// matchArgs reports whether every expected arg is present in actual with
// the same value.
func matchArgs(actual, expected map[string]interface{}) bool {
	for k, want := range expected {
		got, ok := actual[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
