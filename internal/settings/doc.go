// Package settings is the player-settings registry: a keyed store of typed,
// persisted setting values with change notification.
//
// A Registry is an explicit instance, not process-global state. Consumers
// that need settings receive the registry at construction and call
// EnsureInitialized, which runs the bulk registration (see Defaults) the
// first time while the registry is still empty.
//
// Typed access goes through Get[T]; asking for an unregistered id returns a
// NOT_INITIALIZED error and asking with the wrong T returns TYPE_MISMATCH.
// Values are never coerced between types. WithLenientLookup restores the
// forgiving behaviour of running the bulk registration again on a miss.
//
// The registry is not safe for concurrent use. All access is expected from
// the single UI/main-loop goroutine.
package settings
