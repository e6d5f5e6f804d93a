package backend

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a key holds no stored entry. The secure store
// returns it from Get; the router treats it as plain absence, not a failure.
var ErrNotFound = errors.New("backend: not found")

// ErrQuotaExceeded reports that a cloud-store write would push the store past
// one of its platform ceilings (total size, key count, or per-value size).
var ErrQuotaExceeded = errors.New("backend: quota exceeded")

// LocalStore is a persistent string-keyed store for the scalar shapes the
// Value union covers. Presence is part of Get: a key that was never written
// reports ok=false, which is what lets the router distinguish "never set"
// from an explicitly stored zero value.
//
// Implementations must be safe for concurrent use.
type LocalStore interface {
	Get(key string) (Value, bool, error)
	Set(key string, value Value) error
	Delete(key string) error
}

// CloudStore is the device-synced key-value store. It shares the local
// store's surface plus an explicit flush; writes may fail with
// ErrQuotaExceeded because the platform store is small.
type CloudStore interface {
	Get(key string) (Value, bool, error)
	Set(key string, value Value) error
	Delete(key string) error

	// Synchronize requests prompt propagation of pending writes.
	Synchronize() error
}

// SecureStore is the encrypted credential store. It has no type system of
// its own, only byte blobs. Get returns ErrNotFound for a missing item;
// Delete of a missing item is a no-op, matching platform behaviour.
type SecureStore interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Delete(key string) error
}

// Error wraps a genuine backend failure with the operation and key it hit.
// It exists for diagnostics below the router boundary; the router logs it
// and collapses the result to absence, so it never reaches call sites.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("backend: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
