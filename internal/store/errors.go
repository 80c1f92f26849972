package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned for missing or malformed input.
var ErrValidation = errors.New("invalid input")

// ErrConflict is returned when a record with the same key already exists.
var ErrConflict = errors.New("already exists")

// ErrConfiguration is returned when the store is constructed without its
// required settings.
var ErrConfiguration = errors.New("missing configuration")
