package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/slider/internal/artifact"
	"github.com/roach88/slider/internal/inventory"
)

// Scenario is a scripted session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Device is the starting input device: mouse (default), keyboard or
	// controller.
	Device string `yaml:"device,omitempty"`

	// Area is the area the player is in. Used to translate collectible names.
	Area string `yaml:"area,omitempty"`

	// Setup steps run before the flow and are not traced.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow is the traced list of steps.
	Flow []Step `yaml:"flow"`

	// Assertions are checked against the final state and trace.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one action in a scenario.
type Step struct {
	// Do names the action, one of the Step* constants.
	Do string `yaml:"do"`

	// Args are the action's arguments.
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Expect is checked right after the step runs.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// Step actions.
const (
	StepAcquire         = "acquire"          // item, area
	StepCollectAnchor   = "collect_anchor"   //
	StepEnableScreen    = "enable_screen"    //
	StepDisableScreen   = "disable_screen"   //
	StepSelectLeftmost  = "select_leftmost"  //
	StepSelectRightmost = "select_rightmost" //
	StepSelectNext      = "select_next"      // dir
	StepSetDevice       = "set_device"       // device
	StepSetSetting      = "set_setting"      // key, value
	StepResetSettings   = "reset_settings"   //
	StepMarkChirpUsed   = "mark_chirp_used"  // id
)

var knownSteps = map[string]bool{
	StepAcquire:         true,
	StepCollectAnchor:   true,
	StepEnableScreen:    true,
	StepDisableScreen:   true,
	StepSelectLeftmost:  true,
	StepSelectRightmost: true,
	StepSelectNext:      true,
	StepSetDevice:       true,
	StepSetSetting:      true,
	StepResetSettings:   true,
	StepMarkChirpUsed:   true,
}

// ExpectClause describes the state right after a step.
// Only set fields are checked.
type ExpectClause struct {
	// Text is the screen's name line.
	Text *string `yaml:"text,omitempty"`

	// Selected is the display name of the focused icon, "" for none.
	Selected *string `yaml:"selected,omitempty"`

	// Error is a substring the step's error must contain. A step with an
	// error and no expected error fails the scenario.
	Error string `yaml:"error,omitempty"`
}

// Assertion checks the final state or the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Step is the action name (trace_contains, trace_count).
	Step string `yaml:"step,omitempty"`

	// Steps is the expected action order (trace_order).
	Steps []string `yaml:"steps,omitempty"`

	// Args are matched as a subset (trace_contains).
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Count is the expected number of occurrences (trace_count,
	// notifications, listeners).
	Count int `yaml:"count,omitempty"`

	// Counter names a badge (counter).
	Counter string `yaml:"counter,omitempty"`

	// Text is the expected badge text (counter).
	Text string `yaml:"text,omitempty"`

	// Visible is the expected visibility (counter, icon).
	Visible bool `yaml:"visible,omitempty"`

	// Item is an icon's inventory name (icon).
	Item string `yaml:"item,omitempty"`

	// Key is a setting's preference key (setting, notifications).
	Key string `yaml:"key,omitempty"`

	// Value is the expected setting value (setting).
	Value interface{} `yaml:"value,omitempty"`

	// ID is a chirp id and Used its expected flag (chirp).
	ID   string `yaml:"id,omitempty"`
	Used bool   `yaml:"used,omitempty"`
}

// Assertion types.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertCounter       = "counter"
	AssertIcon          = "icon"
	AssertSetting       = "setting"
	AssertNotifications = "notifications"
	AssertListeners     = "listeners"
	AssertChirp         = "chirp"
)

// LoadScenario reads a scenario file. Unknown keys are errors so a typo in
// an assertion never silently passes.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted.
func FindScenarios(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := parseDevice(s.Device); err != nil {
		return err
	}
	if s.Area != "" {
		if _, ok := inventory.ParseArea(s.Area); !ok {
			return fmt.Errorf("unknown area %q", s.Area)
		}
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if step.Expect != nil {
			return fmt.Errorf("setup[%d]: expect is only allowed in flow steps", i)
		}
	}
	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(step Step) error {
	if step.Do == "" {
		return fmt.Errorf("do is required")
	}
	if !knownSteps[step.Do] {
		return fmt.Errorf("unknown step %q", step.Do)
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertTraceContains:
		if a.Step == "" {
			return fmt.Errorf("assertions[%d]: step is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Steps) == 0 {
			return fmt.Errorf("assertions[%d]: steps list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Step == "" {
			return fmt.Errorf("assertions[%d]: step is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertCounter:
		if !validCounter(a.Counter) {
			return fmt.Errorf("assertions[%d]: unknown counter %q", index, a.Counter)
		}
	case AssertIcon:
		if a.Item == "" {
			return fmt.Errorf("assertions[%d]: item is required for icon", index)
		}
	case AssertSetting:
		if a.Key == "" || a.Value == nil {
			return fmt.Errorf("assertions[%d]: key and value are required for setting", index)
		}
	case AssertNotifications:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for notifications", index)
		}
	case AssertListeners:
	case AssertChirp:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for chirp", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

func validCounter(name string) bool {
	for _, c := range artifact.Counters {
		if string(c) == name {
			return true
		}
	}
	return false
}
