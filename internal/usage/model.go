package usage

import "time"

// Window is the length of one metering period.
const Window = 30 * 24 * time.Hour

// Plans in ascending order.
const (
	PlanFree       = "free"
	PlanStarter    = "starter"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// PlanLimits is the number of usage units each plan grants per window.
var PlanLimits = map[string]int{
	PlanFree:       25,
	PlanStarter:    100,
	PlanPro:        500,
	PlanEnterprise: 5000,
}

// LimitFor returns the unit limit for plan, falling back to the free plan.
func LimitFor(plan string) int {
	if n, ok := PlanLimits[plan]; ok {
		return n
	}
	return PlanLimits[PlanFree]
}

// Usage represents a user's plan consumption snapshot.
type Usage struct {
	Plan     string    `json:"plan"`
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resetsAt"`
}

// Remaining returns the units left in the current window.
func (u Usage) Remaining() int {
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}

func freshUsage(plan string, now time.Time) Usage {
	return Usage{
		Plan:     plan,
		Limit:    LimitFor(plan),
		Used:     0,
		ResetsAt: now.Add(Window),
	}
}

// roll starts a new window when the current one has elapsed.
func roll(u Usage, now time.Time) (Usage, bool) {
	if now.Before(u.ResetsAt) {
		return u, false
	}
	u.Used = 0
	u.ResetsAt = now.Add(Window)
	return u, true
}
