package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/slider/internal/prefs"
	"github.com/roach88/slider/internal/store"
	"github.com/roach88/slider/internal/testutil"
)

func TestIsHighFPS(t *testing.T) {
	assert.False(t, IsHighFPS(30))
	assert.False(t, IsHighFPS(50))
	assert.True(t, IsHighFPS(51))
	assert.True(t, IsHighFPS(144))
}

func TestControllerDeadzoneMin(t *testing.T) {
	assert.Equal(t, 0.75, ControllerDeadzoneMin(true))
	assert.Equal(t, 0.25, ControllerDeadzoneMin(false))
}

func TestDefaults_RegistersEverySetting(t *testing.T) {
	ctx := context.Background()
	r := New(prefs.NewMemory(), WithInit(Defaults(Hooks{})))

	require.NoError(t, r.EnsureInitialized(ctx))
	assert.Equal(t, len(All()), r.Len())

	ids := r.IDs()
	assert.Equal(t, []ID{MasterVolume, SFXVolume, MusicVolume, AmbienceVolume, ScreenShake}, ids[:5])

	checks := []struct {
		id   ID
		want any
	}{
		{MasterVolume, 0.5},
		{ScreenShake, 0.5},
		{PixelFontEnabled, true},
		{HideCursor, true},
		{BigTextEnabled, false},
		{Locale, "en"},
		{FullScreen, true},
		{Resolution, "1920x1080"},
		{TargetFrameRate, -1},
		{HighFpsSmoothing, true},
		{ShowTimer, false},
	}
	for _, c := range checks {
		e, err := r.Entry(ctx, c.id)
		require.NoError(t, err, c.id.String())
		assert.Equal(t, c.want, e.CurrentAny(), c.id.String())
		assert.Equal(t, c.want, e.DefaultAny(), c.id.String())
	}
}

func TestDefaults_HighFpsSmoothingFollowsFrameRate(t *testing.T) {
	tests := []struct {
		fps  int
		want bool
	}{
		{0, true},
		{TargetFrameRateDisabled, true},
		{30, false},
		{50, false},
		{60, true},
	}
	for _, tt := range tests {
		r := New(prefs.NewMemory(), WithInit(Defaults(Hooks{TargetFrameRate: tt.fps})))
		require.NoError(t, r.EnsureInitialized(context.Background()))
		s := MustGet[bool](context.Background(), r, HighFpsSmoothing)
		assert.Equal(t, tt.want, s.Default(), "fps=%d", tt.fps)
	}
}

func TestDefaults_HooksReceivePersistedValues(t *testing.T) {
	ctx := context.Background()
	backend := prefs.NewMemory()
	require.NoError(t, backend.Put(ctx, "musicVolume", prefs.FloatValue(0.2)))
	require.NoError(t, backend.Put(ctx, "largerControllerDeadzone", prefs.BoolValue(true)))

	rec := testutil.NewRecorder()
	hooks := Hooks{
		MasterVolume:       testutil.Record[float64](rec, "master"),
		MusicVolume:        testutil.Record[float64](rec, "music"),
		ControllerDeadzone: testutil.Record[float64](rec, "deadzone"),
		KeyboardOnly:       testutil.Record[bool](rec, "keyboard"),
	}
	r := New(backend, WithInit(Defaults(hooks)))
	require.NoError(t, r.EnsureInitialized(ctx))

	assert.Equal(t, []any{0.5}, rec.Values("master"))
	assert.Equal(t, []any{0.2}, rec.Values("music"))
	assert.Equal(t, []any{0.75}, rec.Values("deadzone"))
	// false is the zero value, so loading it is not a change
	assert.Equal(t, 0, rec.Count("keyboard"))

	rec.Reset()
	require.NoError(t, MustGet[bool](ctx, r, KeyboardOnly).Set(ctx, true))
	require.NoError(t, MustGet[bool](ctx, r, LargerControllerDeadzone).Set(ctx, false))
	assert.Equal(t, []any{true}, rec.Values("keyboard"))
	assert.Equal(t, []any{0.25}, rec.Values("deadzone"))
}

func TestDefaults_PersistAcrossStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	st, err := store.Open(path)
	require.NoError(t, err)
	r := New(st, WithInit(Defaults(Hooks{})))
	require.NoError(t, r.EnsureInitialized(ctx))
	require.NoError(t, MustGet[float64](ctx, r, SFXVolume).Set(ctx, 0.8))
	require.NoError(t, MustGet[string](ctx, r, Locale).Set(ctx, "de"))
	require.NoError(t, st.Close())

	st, err = store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	keys, err := st.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, len(All()))

	r = New(st, WithInit(Defaults(Hooks{})))
	require.NoError(t, r.EnsureInitialized(ctx))
	assert.Equal(t, 0.8, MustGet[float64](ctx, r, SFXVolume).Current())
	assert.Equal(t, "de", MustGet[string](ctx, r, Locale).Current())

	require.NoError(t, r.ResetAll(ctx))
	assert.Equal(t, 0.5, MustGet[float64](ctx, r, SFXVolume).Current())

	stored, found, err := st.Lookup(ctx, "locale")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, prefs.StringValue("en"), stored)
}
