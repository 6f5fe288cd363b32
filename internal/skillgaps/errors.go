package skillgaps

import "errors"

// ErrNotFound indicates the analysis does not exist for the caller.
var ErrNotFound = errors.New("skill analysis not found")
