// Package artifact is the artifact inventory screen: which collected items
// are shown, the counters for items found in several places, and focus
// navigation for controller and keyboard-only play.
package artifact

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/inventory"
)

// Counter names an item family with a count badge.
type Counter string

const (
	CounterBreadge    Counter = "breadge"
	CounterSunglasses Counter = "sunglasses"
	CounterOil        Counter = "oil"
)

// Counters lists the badges in display order.
var Counters = []Counter{CounterBreadge, CounterSunglasses, CounterOil}

// CounterState is a badge's text and whether it is shown.
type CounterState struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// Option configures a Screen.
type Option func(*Screen)

// WithArea sets the area collectible names are translated for.
func WithArea(a inventory.Area) Option {
	return func(s *Screen) { s.area = a }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.logger = l
		}
	}
}

// Screen is the artifact inventory screen.
type Screen struct {
	layout Layout
	inv    inventory.Store
	scheme *controls.Scheme
	tr     Translator
	area   inventory.Area
	logger *slog.Logger

	text     string
	counters map[Counter]CounterState
	golden   bool
	selected *Collectible
	enabled  bool
	unsub    func()
}

// NewScreen creates a disabled screen.
func NewScreen(layout Layout, inv inventory.Store, scheme *controls.Scheme, tr Translator, opts ...Option) *Screen {
	if tr == nil {
		tr = Table{}
	}
	s := &Screen{
		layout:   layout,
		inv:      inv,
		scheme:   scheme,
		tr:       tr,
		logger:   slog.Default(),
		counters: make(map[Counter]CounterState, len(Counters)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enable shows the screen: icons are refreshed, focus goes to the leftmost
// icon when navigating without a mouse (otherwise the title is shown), and
// counters follow inventory acquisitions until Disable.
func (s *Screen) Enable() {
	if s.enabled {
		return
	}
	s.enabled = true
	for _, c := range s.layout.Entries {
		c.Enable(s.scheme)
	}

	s.UpdateIcons()
	if !s.scheme.UsingControllerOrKeyboardOnly() || !s.TrySelectLeftmost() {
		s.UpdateText(s.tr.Single(KeyCollection))
	}

	s.UpdateCounters()
	s.unsub = s.inv.OnCollectibleAcquired(func(inventory.Event) { s.UpdateCounters() })
	s.logger.Debug("artifact screen enabled", "area", s.area.String())
}

// Disable hides the screen and drops every subscription it holds.
func (s *Screen) Disable() {
	if !s.enabled {
		return
	}
	s.enabled = false
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	for _, c := range s.layout.Entries {
		c.Disable()
	}
	s.logger.Debug("artifact screen disabled")
}

// Enabled reports whether the screen is shown.
func (s *Screen) Enabled() bool { return s.enabled }

// UpdateIcons sets every icon's visibility from the inventory.
func (s *Screen) UpdateIcons() {
	for _, c := range s.layout.Entries {
		c.SetVisible(s.inv.Contains(c.Key))
	}

	l := s.layout
	if l.Oil != nil {
		l.Oil.SetVisible(s.countOil() > 0)
	}
	if l.Anchor != nil {
		l.Anchor.SetVisible(s.inv.HasCollectedAnchor())
	}

	hasUpgrade := s.inv.Contains(ItemBootsUpgrade)
	if l.Boots != nil {
		l.Boots.SetVisible(!hasUpgrade && s.inv.Contains(ItemBoots))
	}
	if l.BootsUpgrade != nil {
		l.BootsUpgrade.SetVisible(hasUpgrade)
	}

	hasScroll := s.inv.Contains(ItemScroll)
	if l.Scroll != nil {
		l.Scroll.SetVisible(hasScroll)
	}
	if l.ScrollScrap != nil {
		l.ScrollScrap.SetVisible(!hasScroll && s.inv.Contains(ItemScrollScrap))
	}

	if l.Breadge != nil && s.inv.ContainsIn(ItemLegendaryCheeseBurger, inventory.MagiTech) {
		l.Breadge.DisplayName = s.tr.Single(KeyLegendaryCheeseburger)
		s.golden = true
	}
}

// UpdateCounters recounts the badge families. A badge is shown only when
// more than one of its items has been collected.
func (s *Screen) UpdateCounters() {
	breadge, sunglasses := 0, 0
	for _, a := range inventory.Areas() {
		if s.inv.ContainsIn(ItemBreadge, a) {
			breadge++
		}
		if s.inv.ContainsIn(ItemSunglasses, a) {
			sunglasses++
		}
	}

	s.counters[CounterBreadge] = counterState(breadge)
	s.counters[CounterSunglasses] = counterState(sunglasses)
	s.counters[CounterOil] = counterState(s.countOil())
}

func (s *Screen) countOil() int {
	n := 0
	for i := 1; i <= OilVariants; i++ {
		if s.inv.Contains(OilName(i)) {
			n++
		}
	}
	return n
}

// OilName returns the inventory name of the i-th oil collectible.
func OilName(i int) string {
	return fmt.Sprintf("%s #%d", ItemOil, i)
}

func counterState(n int) CounterState {
	return CounterState{Text: strconv.Itoa(n), Visible: n > 1}
}

// Counter returns the current state of a badge.
func (s *Screen) Counter(c Counter) CounterState {
	return s.counters[c]
}

// TrySelectLeftmost selects the visible, navigable icon with the smallest
// X. The first icon wins a tie. Reports whether anything was selected.
func (s *Screen) TrySelectLeftmost() bool {
	var leftmost *Collectible
	smallest := math.MaxFloat64
	for _, c := range s.layout.Entries {
		if c.navigable && c.visible && c.X < smallest {
			leftmost = c
			smallest = c.X
		}
	}
	if leftmost == nil {
		return false
	}
	s.Select(leftmost)
	return true
}

// TrySelectRightmost selects the visible, navigable icon with the largest
// X. The first icon wins a tie. Reports whether anything was selected.
func (s *Screen) TrySelectRightmost() bool {
	var rightmost *Collectible
	largest := -math.MaxFloat64
	for _, c := range s.layout.Entries {
		if c.navigable && c.visible && c.X > largest {
			rightmost = c
			largest = c.X
		}
	}
	if rightmost == nil {
		return false
	}
	s.Select(rightmost)
	return true
}

// SelectNext moves focus to the nearest selectable icon right (dir > 0) or
// left (dir < 0) of the current one. Without a current selection it picks
// the leftmost or rightmost icon. Reports whether focus moved.
func (s *Screen) SelectNext(dir int) bool {
	if s.selected == nil {
		if dir < 0 {
			return s.TrySelectRightmost()
		}
		return s.TrySelectLeftmost()
	}

	from := s.selected.X
	var best *Collectible
	for _, c := range s.layout.Entries {
		if c == s.selected || !c.navigable || !c.visible {
			continue
		}
		d := c.X - from
		if dir < 0 {
			d = -d
		}
		if d <= 0 {
			continue
		}
		if best == nil || math.Abs(c.X-from) < math.Abs(best.X-from) {
			best = c
		}
	}
	if best == nil {
		return false
	}
	s.Select(best)
	return true
}

// Select focuses c, highlights it and shows its localized name.
func (s *Screen) Select(c *Collectible) {
	if s.selected != nil && s.selected != c {
		s.selected.highlighted = false
	}
	s.selected = c
	c.highlighted = true
	s.UpdateText(c.Name(s.tr, s.area))
}

// Selected returns the focused icon, or nil.
func (s *Screen) Selected() *Collectible {
	return s.selected
}

// UpdateText sets the name line under the icons.
func (s *Screen) UpdateText(text string) {
	s.text = text
}

// Text returns the name line.
func (s *Screen) Text() string { return s.text }

// Golden reports whether the breadge icon shows its golden form.
func (s *Screen) Golden() bool { return s.golden }

// Entries returns the screen's icons.
func (s *Screen) Entries() []*Collectible { return s.layout.Entries }
