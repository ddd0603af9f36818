package recycler

import (
	"errors"
	"fmt"
)

// Sentinel errors. Configuration failures wrap one of these.
var (
	ErrMissingReference = errors.New("missing reference")
	ErrInvalidLayout    = errors.New("invalid layout")
	ErrPoolExhausted    = errors.New("element pool exhausted")
	ErrNotInitialized   = errors.New("recycler not initialized")
)

// ConfigurationError reports a required collaborator or setting that is
// missing or unusable. It aborts initialization.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("recycler: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configError(field string, err error) error {
	return &ConfigurationError{Field: field, Err: err}
}

// IndexBoundsViolation describes an index computation that would address
// outside the pool or the data set. These are logged and skipped, never
// returned from ProcessScroll.
type IndexBoundsViolation struct {
	Kind  string // "pool" or "data"
	Index int
	Limit int
}

func (e *IndexBoundsViolation) Error() string {
	return fmt.Sprintf("recycler: %s index %d out of range [0, %d)", e.Kind, e.Index, e.Limit)
}

// checkIndex returns a violation when idx is outside [0, limit).
func checkIndex(kind string, idx, limit int) *IndexBoundsViolation {
	if idx < 0 || idx >= limit {
		return &IndexBoundsViolation{Kind: kind, Index: idx, Limit: limit}
	}
	return nil
}
