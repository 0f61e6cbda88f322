// Package store persists booking and payment records in line-oriented,
// comma-delimited flat files.  This file defines the sentinel errors shared
// across the package.  These are the only failures surfaced to callers as
// hard errors; I/O problems on the backing files are logged and degrade to
// empty results or no-ops, so callers cannot distinguish "no data" from
// "file unreadable" without inspecting the logs.
package store

import "errors"

// ErrConflict is returned when an append would duplicate an existing
// booking ID.
var ErrConflict = errors.New("booking id already exists")

// ErrNotFound is returned when a lookup or field update targets a booking
// ID that is not present in the store.
var ErrNotFound = errors.New("booking not found")

// ErrValidation is returned when a record is missing a required field.
// Use errors.Is to test for it; the returned error names the field.
var ErrValidation = errors.New("invalid booking record")
