package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/slider/internal/prefs"
)

// createTestStore opens a file-backed store under t.TempDir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustPut(t *testing.T, s *Store, key string, v prefs.Value) {
	t.Helper()
	require.NoError(t, s.Put(context.Background(), key, v), "Put(%q)", key)
}

func columnNames(t *testing.T, s *Store, table string) []string {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func indexNames(t *testing.T, s *Store, table string) []string {
	t.Helper()
	rows, err := s.DB().Query(
		"SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND name NOT LIKE 'sqlite_%'",
		table)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func userVersion(t *testing.T, s *Store) int {
	t.Helper()
	v, err := s.userVersion()
	require.NoError(t, err)
	return v
}
