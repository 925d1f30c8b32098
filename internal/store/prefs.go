package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/slider/internal/prefs"
)

var _ prefs.Backend = (*Store)(nil)

// Entry is one stored preference with its write sequence.
type Entry struct {
	Key   string
	Value prefs.Value
	Seq   int64
}

// Lookup returns the value stored under key.
// found is false (with a nil error) when the key has never been written.
func (s *Store) Lookup(ctx context.Context, key string) (prefs.Value, bool, error) {
	var kind, text string
	err := s.db.QueryRowContext(ctx,
		`SELECT kind, value FROM prefs WHERE key = ?`,
		prefs.NormalizeKey(key),
	).Scan(&kind, &text)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs.Value{}, false, nil
	}
	if err != nil {
		return prefs.Value{}, false, fmt.Errorf("lookup %q: %w", key, err)
	}

	v, err := prefs.Decode(prefs.Kind(kind), text)
	if err != nil {
		return prefs.Value{}, false, fmt.Errorf("lookup %q: %w", key, err)
	}
	return v, true, nil
}

// Put writes value under key, replacing any previous value and kind.
func (s *Store) Put(ctx context.Context, key string, v prefs.Value) error {
	if key == "" {
		return errors.New("put: empty key")
	}
	text, err := v.Encode()
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}

	seq := s.clock.next()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO prefs (key, kind, value, seq)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			value = excluded.value,
			seq = excluded.seq
	`,
		prefs.NormalizeKey(key),
		string(v.Kind),
		text,
		seq,
	)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, prefs.NormalizeKey(key)); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys returns every stored key, ordered by key COLLATE BINARY.
// Returns an empty slice (not nil) when the table is empty.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM prefs ORDER BY key COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}

// History returns every stored preference in write order (seq ASC, key ASC).
func (s *Store) History(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, kind, value, seq
		FROM prefs
		ORDER BY seq ASC, key COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var kind, text string
		if err := rows.Scan(&e.Key, &kind, &text, &e.Seq); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Value, err = prefs.Decode(prefs.Kind(kind), text)
		if err != nil {
			return nil, fmt.Errorf("history %q: %w", e.Key, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Seq returns the sequence number of the most recent write.
func (s *Store) Seq() int64 {
	return s.clock.current()
}
