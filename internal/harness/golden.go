package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/slider/internal/artifact"
)

// TraceSnapshot is the golden form of a scenario run: its trace and the
// final artifact screen.
type TraceSnapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Screen       artifact.State
}

// String renders the snapshot as stable plain text.
func (s TraceSnapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", s.ScenarioName)
	b.WriteString("trace:\n")
	for _, e := range s.Trace {
		fmt.Fprintf(&b, "%s\n", e)
	}
	b.WriteString("screen:\n")
	b.WriteString(s.Screen.String())
	return b.String()
}

// RunWithGolden executes a scenario and compares its snapshot against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Screen:       result.Screen,
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, []byte(snapshot.String()))
}
