package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/settings"
	"github.com/roach88/slider/internal/store"
)

// session is an opened preferences database with every default setting
// registered.
type session struct {
	store    *store.Store
	registry *settings.Registry
	scheme   *controls.Scheme
}

// openSession opens the --db database and registers the default settings.
// The keyboard-only setting drives the returned control scheme.
func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	slog.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, err
	}

	scheme := controls.NewScheme(controls.Mouse)
	registry := settings.New(st,
		settings.WithLogger(slog.Default()),
		settings.WithInit(settings.Defaults(settings.Hooks{KeyboardOnly: scheme.SetKeyboardOnly})),
	)
	if err := registry.EnsureInitialized(ctx); err != nil {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	slog.Debug("settings ready", "count", registry.Len())

	return &session{store: st, registry: registry, scheme: scheme}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// withSession opens a session, runs fn and closes it. A database that
// cannot be opened is reported as a command error.
func withSession(ctx context.Context, opts *RootOptions, f *OutputFormatter, fn func(*session) error) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), map[string]string{"db": opts.Database})
	}
	defer s.Close()
	return fn(s)
}
