package coverletters

import "errors"

// ErrNotFound indicates the cover letter does not exist for the caller.
var ErrNotFound = errors.New("cover letter not found")
