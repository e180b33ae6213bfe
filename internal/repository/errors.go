// Package repository holds the PostgreSQL-backed job and user stores.
//
// The sentinel errors here are shared with the in-memory stores so callers
// can match on them regardless of the backing implementation.
package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user with the same email exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrMissingURL is returned when a posting without a URL is upserted.
	ErrMissingURL = errors.New("job posting has no url")
)
