package moderation

import "errors"

// ErrNotFound indicates the content flag does not exist for the caller.
var ErrNotFound = errors.New("content flag not found")
