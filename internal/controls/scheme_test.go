package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/slider/internal/testutil"
)

func TestUsingControllerOrKeyboardOnly(t *testing.T) {
	tests := []struct {
		device       Device
		keyboardOnly bool
		want         bool
	}{
		{Mouse, false, false},
		{Keyboard, false, false},
		{Keyboard, true, true},
		{Mouse, true, true},
		{Controller, false, true},
	}
	for _, tt := range tests {
		s := NewScheme(tt.device)
		s.SetKeyboardOnly(tt.keyboardOnly)
		assert.Equal(t, tt.want, s.UsingControllerOrKeyboardOnly(), "%s keyboardOnly=%v", tt.device, tt.keyboardOnly)
	}
}

func TestOnChanged_OnlyOnActualChange(t *testing.T) {
	s := NewScheme(Mouse)
	rec := testutil.NewRecorder()
	s.OnChanged(rec.Signal("scheme"))

	s.SetDevice(Mouse)
	s.SetKeyboardOnly(false)
	assert.Equal(t, 0, rec.Count("scheme"))

	s.SetDevice(Controller)
	s.SetKeyboardOnly(true)
	s.SetKeyboardOnly(true)
	assert.Equal(t, 2, rec.Count("scheme"))
}

func TestOnChanged_Unsubscribe(t *testing.T) {
	s := NewScheme(Keyboard)
	rec := testutil.NewRecorder()
	unsub := s.OnChanged(rec.Signal("a"))
	s.OnChanged(rec.Signal("b"))
	assert.Equal(t, 2, s.Subscribers())

	unsub()
	unsub()
	s.SetDevice(Controller)
	assert.Equal(t, []string{"b"}, rec.Sources())
	assert.Equal(t, 1, s.Subscribers())
}

func TestOnChanged_Nil(t *testing.T) {
	s := NewScheme(Mouse)
	s.OnChanged(nil)()
	assert.Equal(t, 0, s.Subscribers())
}

func TestDevice_String(t *testing.T) {
	assert.Equal(t, "controller", Controller.String())
	assert.Equal(t, "unknown", Device(7).String())
}
