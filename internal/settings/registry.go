package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/slider/internal/prefs"
	"github.com/roach88/slider/internal/setting"
)

// InitFunc performs the bulk registration of settings.
type InitFunc func(ctx context.Context, r *Registry) error

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithInit sets the bulk registration run by EnsureInitialized.
func WithInit(fn InitFunc) Option {
	return func(r *Registry) { r.init = fn }
}

// WithLenientLookup makes a lookup of an unregistered id log a warning and
// rerun the bulk registration before failing.
func WithLenientLookup() Option {
	return func(r *Registry) { r.lenient = true }
}

// Registry maps setting identifiers to typed, persisted settings.
type Registry struct {
	backend prefs.Backend
	logger  *slog.Logger
	init    InitFunc
	lenient bool

	entries map[ID]setting.Entry
	order   []ID
	buses   map[ID]*setting.Observers[any]
}

// New creates an empty registry persisting through backend.
func New(backend prefs.Backend, opts ...Option) *Registry {
	r := &Registry{
		backend: backend,
		logger:  slog.Default(),
		entries: make(map[ID]setting.Entry),
		buses:   make(map[ID]*setting.Observers[any]),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backend returns the preferences backend.
func (r *Registry) Backend() prefs.Backend {
	return r.backend
}

// EnsureInitialized runs the bulk registration if nothing is registered yet.
//
// The guard is "registry non-empty": after a bulk registration that failed
// part-way, call Clear before trying again.
func (r *Registry) EnsureInitialized(ctx context.Context) error {
	if len(r.entries) > 0 || r.init == nil {
		return nil
	}
	r.logger.Debug("initializing settings")
	if err := r.init(ctx, r); err != nil {
		return fmt.Errorf("initialize settings: %w", err)
	}
	r.logger.Debug("settings initialized", "count", len(r.entries))
	return nil
}

// RegisterAndLoad creates the setting for id, stores it (replacing any
// earlier registration and its registry-level listeners) and loads its
// persisted value. onChanged, if non-nil, becomes the first subscriber and
// so runs during the load when the loaded value is not the zero value.
//
// The setting is registered even when loading fails.
func RegisterAndLoad[T setting.Scalar](ctx context.Context, r *Registry, id ID, def T, onChanged func(T)) (*setting.Setting[T], error) {
	key := id.PrefsKey()
	if key == "" {
		return nil, &Error{Code: ErrCodeUnknownKey, ID: id, Message: fmt.Sprintf("no preference key for %s", id)}
	}

	s := setting.New(key, def, r.backend)
	if onChanged != nil {
		s.Subscribe(onChanged)
	}

	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	r.entries[id] = s

	bus := &setting.Observers[any]{}
	r.buses[id] = bus
	s.SubscribeAny(bus.Notify)

	r.logger.Debug("setting registered", "setting", id.String(), "key", key, "default", def)

	if err := s.Load(ctx); err != nil {
		return s, fmt.Errorf("register %s: %w", id, err)
	}
	return s, nil
}

// Get returns the setting registered for id as a Setting[T].
func Get[T setting.Scalar](ctx context.Context, r *Registry, id ID) (*setting.Setting[T], error) {
	e, err := r.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	s, ok := e.(*setting.Setting[T])
	if !ok {
		var want T
		return nil, &Error{
			Code:    ErrCodeTypeMismatch,
			ID:      id,
			Message: fmt.Sprintf("setting %s holds %s, requested %T", id, e.Kind(), want),
		}
	}
	return s, nil
}

// MustGet is Get that panics on error. Use only where a missing or
// mistyped setting is a programming error.
func MustGet[T setting.Scalar](ctx context.Context, r *Registry, id ID) *setting.Setting[T] {
	s, err := Get[T](ctx, r, id)
	if err != nil {
		panic(err)
	}
	return s
}

// Entry returns the untyped setting registered for id.
func (r *Registry) Entry(ctx context.Context, id ID) (setting.Entry, error) {
	return r.lookup(ctx, id)
}

func (r *Registry) lookup(ctx context.Context, id ID) (setting.Entry, error) {
	if e, ok := r.entries[id]; ok {
		return e, nil
	}
	if !r.lenient || r.init == nil {
		return nil, notInitialized(id)
	}

	r.logger.Warn("setting not registered, settings were likely not initialized; reinitializing",
		"setting", id.String())
	if err := r.init(ctx, r); err != nil {
		return nil, fmt.Errorf("reinitialize settings: %w", err)
	}
	if e, ok := r.entries[id]; ok {
		return e, nil
	}
	return nil, notInitialized(id)
}

// OnChanged subscribes fn to every change of id. The subscription belongs
// to the current registration: registering id again drops it.
func (r *Registry) OnChanged(id ID, fn func(any)) (unsubscribe func(), err error) {
	bus, ok := r.buses[id]
	if !ok {
		return func() {}, notInitialized(id)
	}
	return bus.Add(fn), nil
}

// ResetAll resets every registered setting to its default, in registration
// order. Each setting notifies exactly once. Every setting is attempted;
// the returned error joins all failures.
func (r *Registry) ResetAll(ctx context.Context) error {
	var errs []error
	for _, id := range r.order {
		if err := r.entries[id].Reset(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.logger.Debug("settings reset to defaults", "count", len(r.order), "failed", len(errs))
	return errors.Join(errs...)
}

// IDs returns registered identifiers in first-registration order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered settings.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Clear drops every registration and listener. Persisted values are kept.
func (r *Registry) Clear() {
	r.entries = make(map[ID]setting.Entry)
	r.buses = make(map[ID]*setting.Observers[any])
	r.order = nil
}
