// Package prefs defines the preferences backend the settings registry
// persists through.
//
// A backend is a flat string-keyed store of scalar values (bool, int,
// float, string). Keys are the literal preference keys of the settings
// identifiers and must stay stable across releases; renaming one needs a
// migration.
//
// Keys are NFC-normalised at the boundary so that visually identical keys
// written by different tools address the same row.
package prefs
