package repository

import "errors"

// ErrDuplicateKey is returned when an insert violates a uniqueness constraint.
var ErrDuplicateKey = errors.New("duplicate key")
