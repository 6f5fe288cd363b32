package resumes

import "errors"

// ErrNotFound indicates the resume does not exist for the caller.
var ErrNotFound = errors.New("resume not found")

// ErrFileTooLarge is returned for imports above maxImportSize.
var ErrFileTooLarge = errors.New("file too large")
