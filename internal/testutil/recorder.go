package testutil

import "fmt"

// Event is one notification captured by a Recorder.
// Seq starts at 1 and increases by one per recorded event, across all sources.
type Event struct {
	Seq    int64
	Source string
	Value  any
}

// Recorder captures notifications from any number of sources in delivery
// order, so tests can assert ordering across listeners exactly.
type Recorder struct {
	seq    int64
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Listener returns a callback that records every value it receives under source.
func (r *Recorder) Listener(source string) func(any) {
	return func(v any) {
		r.seq++
		r.events = append(r.events, Event{Seq: r.seq, Source: source, Value: v})
	}
}

// Record returns a typed callback recording under source.
func Record[T any](r *Recorder, source string) func(T) {
	l := r.Listener(source)
	return func(v T) { l(v) }
}

// Signal returns a no-argument callback recording a nil value under source.
func (r *Recorder) Signal(source string) func() {
	l := r.Listener(source)
	return func() { l(nil) }
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Sources returns the source of each recorded event, in order.
func (r *Recorder) Sources() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Source
	}
	return out
}

// Values returns the values recorded under source, in order.
func (r *Recorder) Values(source string) []any {
	var out []any
	for _, e := range r.events {
		if e.Source == source {
			out = append(out, e.Value)
		}
	}
	return out
}

// Count returns how many events were recorded under source.
func (r *Recorder) Count(source string) int {
	n := 0
	for _, e := range r.events {
		if e.Source == source {
			n++
		}
	}
	return n
}

// Reset clears recorded events. The next event gets Seq 1.
func (r *Recorder) Reset() {
	r.seq = 0
	r.events = nil
}

func (e Event) String() string {
	return fmt.Sprintf("#%d %s=%v", e.Seq, e.Source, e.Value)
}
