package salary

import "time"

const DefaultCurrency = "USD"

// Percentiles of a salary distribution.
type Percentiles struct {
	P10 int64 `json:"p10" binding:"min=0"`
	P25 int64 `json:"p25" binding:"min=0"`
	P50 int64 `json:"p50" binding:"min=0"`
	P75 int64 `json:"p75" binding:"min=0"`
	P90 int64 `json:"p90" binding:"min=0"`
}

// Research is one saved salary lookup for a role and location.
type Research struct {
	ID              string       `json:"id"`
	UserID          string       `json:"userId"`
	JobTitle        string       `json:"jobTitle"`
	Location        string       `json:"location"`
	YearsExperience int          `json:"yearsExperience"`
	Industry        string       `json:"industry,omitempty"`
	Currency        string       `json:"currency"`
	MinSalary       *int64       `json:"minSalary"`
	MaxSalary       *int64       `json:"maxSalary"`
	MedianSalary    *int64       `json:"medianSalary"`
	Percentiles     *Percentiles `json:"percentiles"`
	Tips            []string     `json:"tips"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
