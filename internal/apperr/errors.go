// Package apperr defines sentinel errors shared across service layers.
package apperr

import "errors"

var (
	// ErrNotFound means a code resolves to no tracked path.
	ErrNotFound = errors.New("not found")
	// ErrFileMissing means a path is tracked but the file is gone on disk.
	// The stale index entry is left in place; only a delete event evicts it.
	ErrFileMissing = errors.New("file missing")
)
