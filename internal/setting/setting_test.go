package setting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/slider/internal/prefs"
	"github.com/roach88/slider/internal/testutil"
)

// failingBackend rejects every write.
type failingBackend struct {
	*prefs.Memory
}

func (failingBackend) Put(context.Context, string, prefs.Value) error {
	return errors.New("disk full")
}

func TestLoad_NoPersistedValueWritesDefault(t *testing.T) {
	ctx := context.Background()
	backend := prefs.NewMemory()
	s := New("masterVolume", 0.5, backend)

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 0.5, s.Current())

	stored, found, err := backend.Lookup(ctx, "masterVolume")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, prefs.FloatValue(0.5), stored)
}

func TestLoad_UsesPersistedValue(t *testing.T) {
	ctx := context.Background()
	backend := prefs.NewMemory()
	require.NoError(t, backend.Put(ctx, "hideCursor", prefs.BoolValue(false)))

	s := New("hideCursor", true, backend)
	require.NoError(t, s.Load(ctx))

	assert.False(t, s.Current())
	assert.True(t, s.Default())
}

func TestLoad_WrongStoredKindFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	backend := prefs.NewMemory()
	require.NoError(t, backend.Put(ctx, "locale", prefs.IntValue(3)))

	s := New("locale", "en", backend)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "en", s.Current())

	stored, _, _ := backend.Lookup(ctx, "locale")
	assert.Equal(t, prefs.StringValue("en"), stored)
}

func TestLoad_NotifiesOnlyWhenValueDiffersFromZero(t *testing.T) {
	ctx := context.Background()
	rec := testutil.NewRecorder()

	// default false == zero value: no notification
	quiet := New("bigTextEnabled", false, prefs.NewMemory())
	quiet.Subscribe(testutil.Record[bool](rec, "bigTextEnabled"))
	require.NoError(t, quiet.Load(ctx))

	// default true != zero value: one notification
	loud := New("pixelFontEnabled", true, prefs.NewMemory())
	loud.Subscribe(testutil.Record[bool](rec, "pixelFontEnabled"))
	require.NoError(t, loud.Load(ctx))

	assert.Equal(t, 0, rec.Count("bigTextEnabled"))
	assert.Equal(t, []any{true}, rec.Values("pixelFontEnabled"))
}

func TestLoad_ReloadNotifiesOnExternalChange(t *testing.T) {
	ctx := context.Background()
	backend := prefs.NewMemory()
	rec := testutil.NewRecorder()

	s := New("sfxVolume", 0.5, backend)
	s.Subscribe(testutil.Record[float64](rec, "sfx"))
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 1, rec.Count("sfx"), "reload with unchanged value is silent")

	require.NoError(t, backend.Put(ctx, "sfxVolume", prefs.FloatValue(0.9)))
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []any{0.5, 0.9}, rec.Values("sfx"))
}

func TestLoad_BackendError(t *testing.T) {
	s := New("vsync", true, failingBackend{prefs.NewMemory()})
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vsync")
	assert.False(t, s.Current())
}

func TestSet_RoundTripThroughReload(t *testing.T) {
	ctx := context.Background()
	backend := prefs.NewMemory()

	first := New("targetFrameRate", -1, backend)
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.Set(ctx, 144))

	second := New("targetFrameRate", -1, backend)
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, 144, second.Current())
}

func TestSet_NotifiesEverySubscriberInOrder(t *testing.T) {
	ctx := context.Background()
	rec := testutil.NewRecorder()
	s := New("screenShake", 0.5, prefs.NewMemory())

	s.Subscribe(testutil.Record[float64](rec, "audio"))
	s.Subscribe(testutil.Record[float64](rec, "ui"))
	require.NoError(t, s.Set(ctx, 0.2))

	assert.Equal(t, []string{"audio", "ui"}, rec.Sources())
	assert.Equal(t, 2, s.Subscribers())
}

func TestSet_BackendErrorLeavesValue(t *testing.T) {
	rec := testutil.NewRecorder()
	s := New("autoMove", false, failingBackend{prefs.NewMemory()})
	s.Subscribe(testutil.Record[bool](rec, "autoMove"))

	require.Error(t, s.Set(context.Background(), true))
	assert.False(t, s.Current())
	assert.Empty(t, rec.Events())
}

func TestSetAny_TypeChecked(t *testing.T) {
	ctx := context.Background()
	var e Entry = New("musicVolume", 0.5, prefs.NewMemory())

	err := e.SetAny(ctx, "loud")
	require.ErrorIs(t, err, prefs.ErrKindMismatch)
	assert.Contains(t, err.Error(), "want float64")

	err = e.SetAny(ctx, 1)
	require.ErrorIs(t, err, prefs.ErrKindMismatch, "int is not silently coerced to float64")

	require.NoError(t, e.SetAny(ctx, 0.8))
	assert.Equal(t, 0.8, e.CurrentAny())
}

func TestReset_AlwaysNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	rec := testutil.NewRecorder()
	s := New("colorblind", false, prefs.NewMemory())
	require.NoError(t, s.Load(ctx))
	s.SubscribeAny(rec.Listener("colorblind"))

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, []any{false}, rec.Values("colorblind"))

	require.NoError(t, s.Set(ctx, true))
	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, []any{false, true, false}, rec.Values("colorblind"))
	assert.False(t, s.Current())
}

func TestKind(t *testing.T) {
	backend := prefs.NewMemory()
	assert.Equal(t, prefs.KindBool, New("a", true, backend).Kind())
	assert.Equal(t, prefs.KindInt, New("b", 1, backend).Kind())
	assert.Equal(t, prefs.KindFloat, New("c", 1.0, backend).Kind())
	assert.Equal(t, prefs.KindString, New("d", "x", backend).Kind())
}

func TestEntry_DefaultAny(t *testing.T) {
	var e Entry = New("locale", "en", prefs.NewMemory())
	assert.Equal(t, "en", e.DefaultAny())
	assert.Equal(t, "", e.CurrentAny())
	assert.Equal(t, "locale", e.Key())
}
