package artifact

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Glyphs maps inventory names to their icon.
var Glyphs = map[string]string{
	ItemAnchor:       "⚓",
	ItemBoots:        "👢",
	ItemBootsUpgrade: "🥾",
	ItemScroll:       "📜",
	ItemScrollScrap:  "📃",
	ItemBreadge:      "🍞",
	ItemSunglasses:   "😎",
	ItemOil:          "⛽",
}

const goldenBreadgeGlyph = "🍔"

var counterIcon = map[Counter]string{
	CounterBreadge:    ItemBreadge,
	CounterSunglasses: ItemSunglasses,
	CounterOil:        ItemOil,
}

// Screen rows used by the renderer.
const (
	RowText    = 0
	RowIcons   = 2
	RowCounter = 3
	RowHelp    = 5
)

// Renderer draws a Screen onto a terminal.
type Renderer struct {
	screen tcell.Screen

	// CellWidth is the number of columns per unit of icon X.
	CellWidth int
	// Left is the column of the icon at X=0.
	Left int
	// Help is drawn at RowHelp when non-empty.
	Help string
}

// NewRenderer creates a renderer for scr.
func NewRenderer(scr tcell.Screen) *Renderer {
	return &Renderer{screen: scr, CellWidth: 6, Left: 2}
}

// Column returns the column an icon at x is drawn at.
func (r *Renderer) Column(x float64) int {
	return r.Left + int(x*float64(r.CellWidth))
}

// Draw paints s and shows the result.
func (r *Renderer) Draw(s *Screen) {
	r.screen.Clear()
	st := s.State()

	r.putText(r.Left, RowText, st.Text, tcell.StyleDefault.Bold(true))

	cols := make(map[string]int, len(st.Icons))
	for _, ic := range st.Icons {
		if !ic.Visible {
			continue
		}
		col := r.Column(ic.X)
		cols[ic.Key] = col

		glyph := Glyphs[ic.Key]
		if ic.Key == ItemBreadge && st.Golden {
			glyph = goldenBreadgeGlyph
		}
		if glyph == "" {
			glyph = string([]rune(ic.Name)[:1])
		}
		style := tcell.StyleDefault
		if ic.Selected {
			style = style.Reverse(true)
		}
		r.putGlyph(col, RowIcons, glyph, style)
	}

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, c := range Counters {
		cs := st.Counters[c]
		col, ok := cols[counterIcon[c]]
		if !cs.Visible || !ok {
			continue
		}
		r.putText(col, RowCounter, "x"+cs.Text, dim)
	}

	if r.Help != "" {
		r.putText(r.Left, RowHelp, r.Help, dim)
	}
	r.screen.Show()
}

// putGlyph draws a single glyph, filling the second column of wide glyphs.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// putText writes s from (x, y), stopping at the right edge.
func (r *Renderer) putText(x, y int, s string, style tcell.Style) {
	sw, _ := r.screen.Size()
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if x+w > sw {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += w
	}
}
