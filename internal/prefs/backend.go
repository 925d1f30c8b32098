package prefs

import (
	"context"
	"errors"

	"golang.org/x/text/unicode/norm"
)

// ErrKindMismatch is returned when a value does not have the expected kind.
var ErrKindMismatch = errors.New("value kind mismatch")

// Backend is a string-keyed store of scalar preference values.
//
// Lookup reports found=false (and no error) when the key was never written.
// Implementations are not required to be safe for concurrent use.
type Backend interface {
	Lookup(ctx context.Context, key string) (v Value, found bool, err error)
	Put(ctx context.Context, key string, v Value) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// NormalizeKey returns the canonical (NFC) form of a preference key.
func NormalizeKey(key string) string {
	return norm.NFC.String(key)
}
