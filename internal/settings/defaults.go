package settings

import (
	"context"
	"errors"
)

const (
	// TargetFrameRateDisabled means the frame rate is not capped.
	TargetFrameRateDisabled = -1

	// DefaultLocale is the locale used until the player picks one.
	DefaultLocale = "en"

	// DefaultResolution is the initial window resolution.
	DefaultResolution = "1920x1080"

	defaultVolume = 0.5
)

// Hooks are the subsystems the default settings push their values into.
// Every field is optional.
type Hooks struct {
	MasterVolume   func(float64)
	SFXVolume      func(float64)
	MusicVolume    func(float64)
	AmbienceVolume func(float64)

	// MiniPlayerIcon is told to refresh the player tracker.
	MiniPlayerIcon func(bool)

	// RunInBackground keeps audio playing when the window loses focus.
	RunInBackground func(bool)

	// KeyboardOnly forwards the keyboard-only menu setting to input handling.
	KeyboardOnly func(bool)

	// ControllerDeadzone receives the minimum stick deadzone.
	ControllerDeadzone func(min float64)

	// TargetFrameRate is the frame rate the application currently runs at,
	// used to pick the high-fps smoothing default. Zero means not capped.
	TargetFrameRate int
}

// IsHighFPS reports whether fps counts as a high frame rate.
func IsHighFPS(fps int) bool {
	return fps > 50
}

// ControllerDeadzoneMin returns the stick deadzone for the larger-deadzone setting.
func ControllerDeadzoneMin(larger bool) float64 {
	if larger {
		return 0.75
	}
	return 0.25
}

// Defaults returns the bulk registration of every game setting.
func Defaults(h Hooks) InitFunc {
	return func(ctx context.Context, r *Registry) error {
		var errs []error
		check := func(err error) {
			if err != nil {
				errs = append(errs, err)
			}
		}

		_, err := RegisterAndLoad(ctx, r, MasterVolume, defaultVolume, h.MasterVolume)
		check(err)
		_, err = RegisterAndLoad(ctx, r, SFXVolume, defaultVolume, h.SFXVolume)
		check(err)
		_, err = RegisterAndLoad(ctx, r, MusicVolume, defaultVolume, h.MusicVolume)
		check(err)
		_, err = RegisterAndLoad(ctx, r, AmbienceVolume, defaultVolume, h.AmbienceVolume)
		check(err)
		_, err = RegisterAndLoad[float64](ctx, r, ScreenShake, 0.5, nil)
		check(err)

		for _, id := range []ID{BigTextEnabled, HighContrastTextEnabled} {
			_, err = RegisterAndLoad[bool](ctx, r, id, false, nil)
			check(err)
		}
		_, err = RegisterAndLoad[bool](ctx, r, PixelFontEnabled, true, nil)
		check(err)
		for _, id := range []ID{Colorblind, DevConsole} {
			_, err = RegisterAndLoad[bool](ctx, r, id, false, nil)
			check(err)
		}
		_, err = RegisterAndLoad[bool](ctx, r, HideCursor, true, nil)
		check(err)
		_, err = RegisterAndLoad(ctx, r, MiniPlayerIcon, false, h.MiniPlayerIcon)
		check(err)
		// Not exposed in the menu at the moment.
		_, err = RegisterAndLoad[bool](ctx, r, AutoMove, false, nil)
		check(err)
		_, err = RegisterAndLoad(ctx, r, PlayAudioWhenUnfocused, false, h.RunInBackground)
		check(err)
		_, err = RegisterAndLoad[string](ctx, r, Locale, DefaultLocale, nil)
		check(err)
		_, err = RegisterAndLoad(ctx, r, KeyboardOnly, false, h.KeyboardOnly)
		check(err)

		var onDeadzone func(bool)
		if h.ControllerDeadzone != nil {
			onDeadzone = func(larger bool) { h.ControllerDeadzone(ControllerDeadzoneMin(larger)) }
		}
		_, err = RegisterAndLoad(ctx, r, LargerControllerDeadzone, false, onDeadzone)
		check(err)

		fps := h.TargetFrameRate
		if fps == 0 {
			fps = TargetFrameRateDisabled
		}
		smoothing := fps == TargetFrameRateDisabled || IsHighFPS(fps)
		_, err = RegisterAndLoad[bool](ctx, r, HighFpsSmoothing, smoothing, nil)
		check(err)
		_, err = RegisterAndLoad[bool](ctx, r, ShowTimer, false, nil)
		check(err)

		check(registerGraphics(ctx, r))

		return errors.Join(errs...)
	}
}

func registerGraphics(ctx context.Context, r *Registry) error {
	_, err1 := RegisterAndLoad[bool](ctx, r, FullScreen, true, nil)
	_, err2 := RegisterAndLoad[string](ctx, r, Resolution, DefaultResolution, nil)
	_, err3 := RegisterAndLoad[bool](ctx, r, Vsync, false, nil)
	_, err4 := RegisterAndLoad[int](ctx, r, TargetFrameRate, TargetFrameRateDisabled, nil)
	return errors.Join(err1, err2, err3, err4)
}
