package artifact

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/roach88/slider/internal/controls"
)

// ViewHelp is the key help shown by Run.
const ViewHelp = "←/→ select  c toggle controller  q quit"

// Scheme returns the control scheme the screen follows.
func (s *Screen) Scheme() *controls.Scheme { return s.scheme }

// Run enables s, draws it with r and handles keys from events until q,
// Escape, a closed channel or ctx is done. The screen is disabled on return.
func Run(ctx context.Context, s *Screen, r *Renderer, events <-chan tcell.Event) error {
	s.Enable()
	defer s.Disable()

	if r.Help == "" {
		r.Help = ViewHelp
	}

	for {
		r.Draw(s)

		var ev tcell.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok || e == nil {
				return nil
			}
			ev = e
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyLeft:
				s.SelectNext(-1)
			case tcell.KeyRight:
				s.SelectNext(1)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return nil
				case 'h':
					s.SelectNext(-1)
				case 'l':
					s.SelectNext(1)
				case 'c', 'C':
					toggleController(s)
				}
			}
		}
	}
}

func toggleController(s *Screen) {
	sc := s.Scheme()
	if sc.Device() == controls.Controller {
		sc.SetDevice(controls.Mouse)
		s.UpdateText(s.tr.Single(KeyCollection))
		return
	}
	sc.SetDevice(controls.Controller)
	s.TrySelectLeftmost()
}
