// Package store provides SQLite-backed durable storage for player preferences.
//
// The store implements prefs.Backend over a single table:
//   - prefs: key (primary key), kind, encoded value, write sequence
//
// # Ordering
//
// Every write is stamped with a strictly increasing seq from a logical
// clock that resumes from MAX(seq) when the database is reopened. History
// queries order by seq, never by timestamps. Key listings use
// ORDER BY key COLLATE BINARY so results are identical across platforms.
//
// # Configuration
//
// Open sets journal_mode=WAL, synchronous=NORMAL, busy_timeout=5000 and
// foreign_keys=ON, then brings the schema up to date. Each migration runs in
// its own transaction together with the PRAGMA user_version bump, so an
// interrupted upgrade resumes at the step that failed.
//
// Keys are NFC-normalised through prefs.NormalizeKey before they reach SQL.
package store
