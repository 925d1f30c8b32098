package artifact

import (
	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/inventory"
)

// Collectible is one icon on the artifact inventory screen.
type Collectible struct {
	// DisplayName is shown in place of the localized name where one is
	// needed verbatim, such as the golden breadge.
	DisplayName string

	// Key is the inventory name the icon tracks.
	Key string

	// Special items are translated as special items rather than as
	// area collectibles.
	Special bool

	// X is the horizontal position used for leftmost/rightmost selection.
	X float64

	visible     bool
	navigable   bool
	highlighted bool

	scheme *controls.Scheme
	unsub  func()
}

// NewCollectible creates a hidden, non-navigable icon.
func NewCollectible(displayName, key string, x float64) *Collectible {
	return &Collectible{DisplayName: displayName, Key: key, X: x}
}

// NewSpecial creates a hidden special-item icon.
func NewSpecial(displayName, key string, x float64) *Collectible {
	c := NewCollectible(displayName, key, x)
	c.Special = true
	return c
}

func (c *Collectible) Visible() bool { return c.visible }
func (c *Collectible) Navigable() bool { return c.navigable }
func (c *Collectible) Highlighted() bool { return c.highlighted }

// SetVisible shows or hides the icon.
func (c *Collectible) SetVisible(v bool) {
	c.visible = v
}

// Enable follows scheme: navigation is on while a controller or
// keyboard-only menus are in use.
func (c *Collectible) Enable(scheme *controls.Scheme) {
	c.Disable()
	c.scheme = scheme
	c.unsub = scheme.OnChanged(c.toggleNavigation)
	c.toggleNavigation()
}

// Disable stops following the control scheme.
func (c *Collectible) Disable() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
	c.scheme = nil
}

func (c *Collectible) toggleNavigation() {
	if c.scheme.UsingControllerOrKeyboardOnly() {
		c.navigable = true
		return
	}
	c.navigable = false
	c.highlighted = false
}

// Name returns the localized name shown when the icon is selected.
func (c *Collectible) Name(tr Translator, area inventory.Area) string {
	if c.Special {
		return tr.SpecialItem(c.Key).String()
	}
	return tr.Collectible(c.Key, area).String()
}
