package task

import "errors"

// ErrNotFound is returned when a record id does not exist in the store.
var ErrNotFound = errors.New("task not found")
