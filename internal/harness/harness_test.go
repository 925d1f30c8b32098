package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
	require.NoError(t, err)
	return s
}

func TestRun_ControllerWalkthrough(t *testing.T) {
	result, err := Run(loadTestScenario(t, "controller_walkthrough"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Trace, 14)
	assert.Len(t, result.Settings, 23)
}

func TestRun_ResetDefaults(t *testing.T) {
	result, err := Run(loadTestScenario(t, "reset_defaults"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	notifies := 0
	for _, e := range result.Trace {
		if e.Kind == KindNotify {
			notifies++
		}
	}
	assert.Equal(t, 1+23, notifies)
}

func TestRun_ExpectFailures(t *testing.T) {
	text := "Collection"
	wrong := "Boots"
	scenario := &Scenario{
		Name:        "expect_failures",
		Description: "every kind of expect mismatch",
		Flow: []Step{
			{Do: StepEnableScreen, Expect: &ExpectClause{Text: &text, Selected: &wrong}},
			{Do: StepSelectLeftmost},
			{Do: StepCollectAnchor, Expect: &ExpectClause{Error: "boom"}},
			{Do: StepSetSetting, Args: map[string]interface{}{"key": "vsync", "value": 1}, Expect: &ExpectClause{Error: "nope"}},
		},
		Assertions: []Assertion{{Type: AssertListeners, Count: 99}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], `selected is "", want "Boots"`)
	assert.Contains(t, result.Errors[1], "flow[1] select_leftmost: unexpected error: nothing selectable")
	assert.Contains(t, result.Errors[2], `expected error containing "boom"`)
	assert.Contains(t, result.Errors[3], `does not contain "nope"`)
	assert.Contains(t, result.Errors[4], "Assertion failed: listeners")
}

func TestRun_StepErrors(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want string
	}{
		{"missing arg", Step{Do: StepAcquire}, `missing arg "item"`},
		{"wrong arg type", Step{Do: StepAcquire, Args: map[string]interface{}{"item": 3}}, "must be a string"},
		{"bad area", Step{Do: StepAcquire, Args: map[string]interface{}{"item": "Boots", "area": "Moon"}}, `unknown area "Moon"`},
		{"bad dir", Step{Do: StepSelectNext, Args: map[string]interface{}{"dir": "left"}}, "must be an integer"},
		{"bad device", Step{Do: StepSetDevice, Args: map[string]interface{}{"device": "wheel"}}, `unknown device "wheel"`},
		{"unknown setting", Step{Do: StepSetSetting, Args: map[string]interface{}{"key": "gamma", "value": 1}}, `unknown setting "gamma"`},
		{"wrong kind", Step{Do: StepSetSetting, Args: map[string]interface{}{"key": "locale", "value": 1}}, "got int for a string setting"},
		{"unknown chirp", Step{Do: StepMarkChirpUsed, Args: map[string]interface{}{"id": "Nope"}}, "E204"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := tt.step
			step.Expect = &ExpectClause{Error: tt.want}
			result, err := Run(&Scenario{
				Name:        tt.name,
				Description: "step error",
				Flow:        []Step{step},
				Assertions:  []Assertion{{Type: AssertListeners}},
			})
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_SetupErrorAborts(t *testing.T) {
	_, err := Run(&Scenario{
		Name:        "bad_setup",
		Description: "setup fails",
		Setup:       []Step{{Do: StepSelectLeftmost}},
		Flow:        []Step{{Do: StepEnableScreen}},
		Assertions:  []Assertion{{Type: AssertListeners}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup step 0 (select_leftmost)")
}

func TestTraceEvent_String(t *testing.T) {
	step := TraceEvent{Seq: 3, Kind: KindStep, Step: "acquire", Args: map[string]interface{}{"item": "Oil #1", "area": "Factory"}, Outcome: "ok"}
	assert.Equal(t, "#3 acquire area=Factory item=Oil #1 -> ok", step.String())

	notify := TraceEvent{Seq: 4, Kind: KindNotify, Source: "vsync", Value: true}
	assert.Equal(t, "#4 notify vsync=true", notify.String())
}

func TestCoerce(t *testing.T) {
	v, err := coerce("float", 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = coerce("int", 1.5)
	assert.Error(t, err)
}
