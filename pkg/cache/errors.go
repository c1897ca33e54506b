package cache

import (
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned by [Open] for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// StoreError reports a failed store operation.
type StoreError struct {
	Backend string // "file", "redis", ...
	Op      string // "read" or "write"
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Backend: backend, Op: op, Err: err}
}
