package settings

import (
	"strconv"
	"strings"
)

// ID identifies a setting. Append new identifiers at the end: the numeric
// values are persisted by editors and must not shift.
type ID int

const (
	MasterVolume ID = iota
	SFXVolume
	MusicVolume
	AmbienceVolume
	ScreenShake
	BigTextEnabled
	HighContrastTextEnabled
	HideCursor
	MiniPlayerIcon
	AutoMove
	Colorblind
	DevConsole
	FullScreen
	Resolution
	Vsync
	TargetFrameRate
	PlayAudioWhenUnfocused
	Locale
	PixelFontEnabled
	KeyboardOnly
	LargerControllerDeadzone
	HighFpsSmoothing // interpolate the player sprite on drawn frames instead of fixed updates
	ShowTimer
)

type idInfo struct {
	name string
	key  string
}

// Preference keys are stored verbatim by the backend. Never rename one
// without migrating the stored value.
var ids = [...]idInfo{
	MasterVolume:             {"MasterVolume", "masterVolume"},
	SFXVolume:                {"SFXVolume", "sfxVolume"},
	MusicVolume:              {"MusicVolume", "musicVolume"},
	AmbienceVolume:           {"AmbienceVolume", "ambienceVolume"},
	ScreenShake:              {"ScreenShake", "screenShake"},
	BigTextEnabled:           {"BigTextEnabled", "bigTextEnabled"},
	HighContrastTextEnabled:  {"HighContrastTextEnabled", "highContrastTextEnabled"},
	HideCursor:               {"HideCursor", "hideCursor"},
	MiniPlayerIcon:           {"MiniPlayerIcon", "miniPlayerIcon"},
	AutoMove:                 {"AutoMove", "autoMove"},
	Colorblind:               {"Colorblind", "colorblind"},
	DevConsole:               {"DevConsole", "devConsole"},
	FullScreen:               {"FullScreen", "fullScreen"},
	Resolution:               {"Resolution", "resolution"},
	Vsync:                    {"Vsync", "vsync"},
	TargetFrameRate:          {"TargetFrameRate", "targetFrameRate"},
	PlayAudioWhenUnfocused:   {"PlayAudioWhenUnfocused", "playAudioWhenUnfocused"},
	Locale:                   {"Locale", "locale"},
	PixelFontEnabled:         {"PixelFontEnabled", "pixelFontEnabled"},
	KeyboardOnly:             {"KeyboardOnly", "keyboardOnly"},
	LargerControllerDeadzone: {"LargerControllerDeadzone", "largerControllerDeadzone"},
	HighFpsSmoothing:         {"HighFpsSmoothing", "highFpsSmoothing"},
	ShowTimer:                {"ShowTimer", "showTimer"},
}

func (id ID) valid() bool {
	return id >= 0 && int(id) < len(ids)
}

// PrefsKey returns the backend key for id, or "" for an unknown id.
func (id ID) PrefsKey() string {
	if !id.valid() {
		return ""
	}
	return ids[id].key
}

func (id ID) String() string {
	if !id.valid() {
		return "ID(" + strconv.Itoa(int(id)) + ")"
	}
	return ids[id].name
}

// All returns every known identifier in declaration order.
func All() []ID {
	out := make([]ID, len(ids))
	for i := range ids {
		out[i] = ID(i)
	}
	return out
}

// ParseID resolves a preference key ("masterVolume") or identifier name
// ("MasterVolume", case-insensitive).
func ParseID(s string) (ID, bool) {
	for i, info := range ids {
		if info.key == s || strings.EqualFold(info.name, s) {
			return ID(i), true
		}
	}
	return 0, false
}
