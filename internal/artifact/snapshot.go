package artifact

import (
	"fmt"
	"strconv"
	"strings"
)

// IconState is one icon as the player sees it.
type IconState struct {
	Name      string  `json:"name"`
	Key       string  `json:"key"`
	X         float64 `json:"x"`
	Visible   bool    `json:"visible"`
	Navigable bool    `json:"navigable"`
	Selected  bool    `json:"selected"`
}

// State is a point-in-time copy of a screen.
type State struct {
	Text     string                   `json:"text"`
	Golden   bool                     `json:"golden"`
	Icons    []IconState              `json:"icons"`
	Counters map[Counter]CounterState `json:"counters"`
}

// State captures the screen.
func (s *Screen) State() State {
	st := State{
		Text:     s.text,
		Golden:   s.golden,
		Icons:    make([]IconState, 0, len(s.layout.Entries)),
		Counters: make(map[Counter]CounterState, len(Counters)),
	}
	for _, c := range s.layout.Entries {
		st.Icons = append(st.Icons, IconState{
			Name:      c.DisplayName,
			Key:       c.Key,
			X:         c.X,
			Visible:   c.visible,
			Navigable: c.navigable,
			Selected:  c.highlighted,
		})
	}
	for _, c := range Counters {
		st.Counters[c] = s.counters[c]
	}
	return st
}

// Snapshot renders the screen state as stable plain text.
func (s *Screen) Snapshot() string {
	return s.State().String()
}

func (st State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "text: %s\n", st.Text)
	fmt.Fprintf(&b, "golden: %t\n", st.Golden)
	b.WriteString("icons:\n")
	for _, ic := range st.Icons {
		vis := "hidden"
		if ic.Visible {
			vis = "visible"
		}
		fmt.Fprintf(&b, "  %s x=%s %s", ic.Name, strconv.FormatFloat(ic.X, 'g', -1, 64), vis)
		if ic.Navigable {
			b.WriteString(" nav")
		}
		if ic.Selected {
			b.WriteString(" selected")
		}
		b.WriteByte('\n')
	}
	b.WriteString("counters:\n")
	for _, c := range Counters {
		cs := st.Counters[c]
		shown := "hidden"
		if cs.Visible {
			shown = "shown"
		}
		fmt.Fprintf(&b, "  %s: %s (%s)\n", c, cs.Text, shown)
	}
	return b.String()
}
