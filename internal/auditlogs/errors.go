package auditlogs

import "errors"

// ErrNotFound indicates the audit log entry does not exist for the caller.
var ErrNotFound = errors.New("audit log not found")
