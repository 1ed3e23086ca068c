package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateUserID indicates PseudoUserID is not unique in the final table.
	ErrDuplicateUserID = errors.New("pseudo user id is not unique")
	// ErrDuplicateRecordingID indicates a recording was assigned as the first
	// recording of more than one user.
	ErrDuplicateRecordingID = errors.New("first recording id is not unique")
	// ErrMissingUserID indicates a final row has no PseudoUserID.
	ErrMissingUserID = errors.New("pseudo user id is missing")
)

// SourceReadError reports that a source table could not be loaded. It aborts
// the run before any transform.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("reading source %q: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// CoercionError reports a non-empty value that could not be parsed into its
// target type. Present-but-unparseable is data corruption, so this is fatal;
// absent values never produce it.
type CoercionError struct {
	Column string
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coercing column %s value %q: %v", e.Column, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// IntegrityError reports a violated uniqueness or non-nullability invariant.
// Invariant is one of the sentinel errors above so callers can distinguish
// which check failed; Rows holds the offending row indices.
type IntegrityError struct {
	Invariant error
	Column    string
	Rows      []int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation on column %s (rows %v): %v", e.Column, e.Rows, e.Invariant)
}

func (e *IntegrityError) Unwrap() error { return e.Invariant }
