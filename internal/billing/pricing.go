package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"recruitedge-api/internal/usage"
)

const invoiceDueAfter = 14 * 24 * time.Hour

// MonthlyPriceCents is the per-seat monthly price of each plan.
var MonthlyPriceCents = map[string]int64{
	usage.PlanFree:       0,
	usage.PlanStarter:    2900,
	usage.PlanPro:        9900,
	usage.PlanEnterprise: 49900,
}

// Amount prices a subscription. A yearly cycle costs ten months.
func Amount(plan, cycle string, seats int) int64 {
	months := int64(1)
	if cycle == CycleYearly {
		months = 10
	}
	return MonthlyPriceCents[plan] * int64(seats) * months
}

// PeriodEnd returns the end of the billing period starting at start.
func PeriodEnd(start time.Time, cycle string) time.Time {
	if cycle == CycleYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// InvoiceNumber formats INV-YYYYMM-xxxxxx.
func InvoiceNumber(issued time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "INV-" + issued.UTC().Format("200601") + "-" + suffix
}
