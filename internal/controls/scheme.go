// Package controls tracks which input device the player is using.
package controls

import "github.com/roach88/slider/internal/setting"

// Device is an input device family.
type Device int

const (
	Mouse Device = iota
	Keyboard
	Controller
)

func (d Device) String() string {
	switch d {
	case Mouse:
		return "mouse"
	case Keyboard:
		return "keyboard"
	case Controller:
		return "controller"
	default:
		return "unknown"
	}
}

// Scheme is the active control scheme.
type Scheme struct {
	device       Device
	keyboardOnly bool
	changed      setting.Observers[struct{}]
}

// NewScheme creates a scheme using device.
func NewScheme(device Device) *Scheme {
	return &Scheme{device: device}
}

// Device returns the current device.
func (s *Scheme) Device() Device { return s.device }

// KeyboardOnly reports whether menus are navigated without the mouse.
func (s *Scheme) KeyboardOnly() bool { return s.keyboardOnly }

// UsingControllerOrKeyboardOnly reports whether menus need focus navigation.
func (s *Scheme) UsingControllerOrKeyboardOnly() bool {
	return s.device == Controller || s.keyboardOnly
}

// SetDevice switches device. Subscribers run only if it changed.
func (s *Scheme) SetDevice(d Device) {
	if s.device == d {
		return
	}
	s.device = d
	s.changed.Notify(struct{}{})
}

// SetKeyboardOnly updates the keyboard-only flag. Subscribers run only if it
// changed. Its signature lets it be passed as the settings KeyboardOnly hook.
func (s *Scheme) SetKeyboardOnly(on bool) {
	if s.keyboardOnly == on {
		return
	}
	s.keyboardOnly = on
	s.changed.Notify(struct{}{})
}

// OnChanged subscribes fn to scheme changes.
func (s *Scheme) OnChanged(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	return s.changed.Add(func(struct{}) { fn() })
}

// Subscribers returns the number of change listeners.
func (s *Scheme) Subscribers() int {
	return s.changed.Len()
}
