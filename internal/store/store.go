package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// pragma is a connection setting and the value SQLite reports once applied.
type pragma struct {
	name   string
	value  string
	report string
}

// pragmas are applied in order on open. WAL lets the menu read while a
// write is in flight; NORMAL sync is enough for preferences.
var pragmas = []pragma{
	{name: "journal_mode", value: "WAL", report: "wal"},
	{name: "synchronous", value: "NORMAL", report: "1"},
	{name: "busy_timeout", value: "5000", report: "5000"},
	{name: "foreign_keys", value: "ON", report: "1"},
}

// migrations[i] upgrades a database at user_version i to i+1.
var migrations = []func(*sql.Tx) error{
	// 0 -> 1: index on seq for History.
	func(tx *sql.Tx) error {
		_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_prefs_seq ON prefs(seq)`)
		return err
	},
}

// schemaVersion is the user_version of a fully migrated database.
var schemaVersion = len(migrations)

// Store is a prefs.Backend over a single SQLite table.
type Store struct {
	db    *sql.DB
	clock *clock
}

// Open creates or opens the preferences database at path (":memory:" for
// a private in-memory database), applies pragmas, creates the table and
// runs pending migrations. Reopening an existing database is safe and
// resumes its write sequence.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: SQLite has a single writer, and ":memory:" is per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("failed to set pragma %s: %w", p.name, err)
		}
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var last int64
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM prefs`).Scan(&last); err != nil {
		return fmt.Errorf("failed to read write sequence: %w", err)
	}
	s.clock = newClockAt(last)
	return nil
}

// migrate runs each pending migration in its own transaction, bumping
// user_version in the same transaction.
func (s *Store) migrate() error {
	version, err := s.userVersion()
	if err != nil {
		return err
	}
	for v := version; v < schemaVersion; v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
		if err := migrations[v](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: set user_version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
	}
	return nil
}

func (s *Store) userVersion() (int, error) {
	var v int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return v, nil
}

// Close closes the database. Closing twice is harmless.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the connection for diagnostics and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// checkPragmas reports every pragma whose current value differs from the
// one Open sets.
func (s *Store) checkPragmas() error {
	var bad []string
	for _, p := range pragmas {
		var got string
		if err := s.db.QueryRow("PRAGMA " + p.name).Scan(&got); err != nil {
			return fmt.Errorf("query pragma %s: %w", p.name, err)
		}
		if !strings.EqualFold(got, p.report) {
			bad = append(bad, fmt.Sprintf("%s = %q, want %q", p.name, got, p.report))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("pragmas not applied: %s", strings.Join(bad, "; "))
	}
	return nil
}
