package jobpostings

import (
	"errors"

	"recruitedge-api/internal/shared/validation"
)

// ErrNotFound indicates the posting does not exist for the caller.
var ErrNotFound = errors.New("job posting not found")

func checkSalary(p JobPosting) error {
	if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
		return validation.Invalid("salaryMax", "must be greater than or equal to salaryMin")
	}
	return nil
}
