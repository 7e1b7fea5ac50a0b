package repositories

import "errors"

// ErrNotFound is wrapped by lookups that miss
var ErrNotFound = errors.New("not found")
