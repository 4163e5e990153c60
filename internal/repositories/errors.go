package repositories

import "errors"

// ErrNotFound is returned when no record exists for the given identifier.
// Implementations wrap it with context; callers match it with errors.Is.
var ErrNotFound = errors.New("record not found")
