// Package setting holds the typed, persisted setting record and its
// observer list.
package setting

import (
	"context"
	"fmt"

	"github.com/roach88/slider/internal/prefs"
)

// Scalar is the set of value types a setting can hold.
type Scalar interface {
	bool | int | float64 | string
}

// Entry is the untyped view of a Setting, used where settings of different
// types sit side by side (registries, CLIs, exports).
type Entry interface {
	Key() string
	Kind() prefs.Kind
	CurrentAny() any
	DefaultAny() any
	SetAny(ctx context.Context, v any) error
	Load(ctx context.Context) error
	Reset(ctx context.Context) error
	SubscribeAny(fn func(any)) (unsubscribe func())
}

// Setting is a named value with a default, persisted through a prefs.Backend.
//
// Invariant: Current equals the last value set, loaded, or reset.
type Setting[T Scalar] struct {
	key     string
	def     T
	cur     T
	backend prefs.Backend
	changed Observers[T]
}

var _ Entry = (*Setting[bool])(nil)

// New creates a setting holding the zero value of T until Load is called.
func New[T Scalar](key string, def T, backend prefs.Backend) *Setting[T] {
	return &Setting[T]{key: key, def: def, backend: backend}
}

func (s *Setting[T]) Key() string { return s.key }
func (s *Setting[T]) Default() T { return s.def }
func (s *Setting[T]) Current() T { return s.cur }
func (s *Setting[T]) CurrentAny() any { return s.cur }
func (s *Setting[T]) DefaultAny() any { return s.def }

// Kind reports the backend kind values of this setting are stored as.
func (s *Setting[T]) Kind() prefs.Kind {
	var zero T
	return valueOf(zero).Kind
}

// Subscribe registers fn to be called with the new value on every change
// notification.
func (s *Setting[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return s.changed.Add(fn)
}

// SubscribeAny is Subscribe for callers holding an Entry.
func (s *Setting[T]) SubscribeAny(fn func(any)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	return s.changed.Add(func(v T) { fn(v) })
}

// Subscribers returns the number of change listeners.
func (s *Setting[T]) Subscribers() int {
	return s.changed.Len()
}

// Set persists v, makes it current and notifies subscribers.
// On a backend error nothing changes.
func (s *Setting[T]) Set(ctx context.Context, v T) error {
	if err := s.backend.Put(ctx, s.key, valueOf(v)); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	s.cur = v
	s.changed.Notify(v)
	return nil
}

// SetAny is Set with a checked conversion from an untyped value.
func (s *Setting[T]) SetAny(ctx context.Context, v any) error {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return fmt.Errorf("set %s: %w: got %T, want %T", s.key, prefs.ErrKindMismatch, v, zero)
	}
	return s.Set(ctx, typed)
}

// Load reads the persisted value. When nothing is stored, or the stored
// value has a different kind, the default becomes current and is written
// through. Subscribers are notified only if the loaded value differs from
// the value held before loading.
func (s *Setting[T]) Load(ctx context.Context) error {
	stored, found, err := s.backend.Lookup(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	v, ok := fromValue[T](stored)
	if !found || !ok {
		v = s.def
		if err := s.backend.Put(ctx, s.key, valueOf(v)); err != nil {
			return fmt.Errorf("load %s: write default: %w", s.key, err)
		}
	}

	prev := s.cur
	s.cur = v
	if v != prev {
		s.changed.Notify(v)
	}
	return nil
}

// Reset persists the default, makes it current and notifies subscribers
// exactly once, even if the value was already the default.
func (s *Setting[T]) Reset(ctx context.Context) error {
	if err := s.backend.Put(ctx, s.key, valueOf(s.def)); err != nil {
		return fmt.Errorf("reset %s: %w", s.key, err)
	}
	s.cur = s.def
	s.changed.Notify(s.def)
	return nil
}

func valueOf[T Scalar](v T) prefs.Value {
	switch x := any(v).(type) {
	case bool:
		return prefs.BoolValue(x)
	case int:
		return prefs.IntValue(x)
	case float64:
		return prefs.FloatValue(x)
	default:
		return prefs.StringValue(any(v).(string))
	}
}

func fromValue[T Scalar](v prefs.Value) (T, bool) {
	typed, ok := v.Any().(T)
	return typed, ok
}
