package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/slider/internal/artifact"
	"github.com/roach88/slider/internal/settings"
)

// Trace event kinds.
const (
	KindStep   = "step"
	KindNotify = "notify"
)

// TraceEvent is either a flow step or a setting change notification.
type TraceEvent struct {
	Seq     int64                  `json:"seq"`
	Kind    string                 `json:"kind"`
	Step    string                 `json:"step,omitempty"`
	Args    map[string]interface{} `json:"args,omitempty"`
	Outcome string                 `json:"outcome,omitempty"`
	Source  string                 `json:"source,omitempty"`
	Value   interface{}            `json:"value,omitempty"`
}

// String renders the event on one line, arguments sorted by name.
func (e TraceEvent) String() string {
	if e.Kind == KindNotify {
		return fmt.Sprintf("#%d notify %s=%v", e.Seq, e.Source, e.Value)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", e.Seq, e.Step)
	keys := make([]string, 0, len(e.Args))
	for k := range e.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Args[k])
	}
	fmt.Fprintf(&b, " -> %s", e.Outcome)
	return b.String()
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains flow steps and notifications in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Screen is the artifact screen after the flow.
	Screen artifact.State `json:"screen"`

	// Settings are the registered settings after the flow.
	Settings []settings.Item `json:"settings"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
