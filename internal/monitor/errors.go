package monitor

import "errors"

// ErrNotFound indicates the health check does not exist for the caller.
var ErrNotFound = errors.New("health check not found")
