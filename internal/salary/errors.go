package salary

import (
	"errors"

	"recruitedge-api/internal/shared/validation"
)

// ErrNotFound indicates the research record does not exist for the caller.
var ErrNotFound = errors.New("salary research not found")

// checkRange enforces minSalary <= maxSalary when both are set.
func checkRange(r Research) error {
	if r.MinSalary != nil && r.MaxSalary != nil && *r.MinSalary > *r.MaxSalary {
		return validation.Invalid("maxSalary", "must be greater than or equal to minSalary")
	}
	return nil
}
