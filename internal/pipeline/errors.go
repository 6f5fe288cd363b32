package pipeline

import "errors"

// ErrNotFound indicates the candidate does not exist for the caller.
var ErrNotFound = errors.New("candidate not found")
