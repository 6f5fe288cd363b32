package billing

import (
	"testing"
	"time"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		plan  string
		cycle string
		seats int
		want  int64
	}{
		{plan: "free", cycle: CycleMonthly, seats: 5, want: 0},
		{plan: "starter", cycle: CycleMonthly, seats: 1, want: 2900},
		{plan: "pro", cycle: CycleMonthly, seats: 4, want: 39600},
		{plan: "pro", cycle: CycleYearly, seats: 1, want: 99000},
		{plan: "enterprise", cycle: CycleYearly, seats: 2, want: 998000},
	}
	for _, tc := range cases {
		if got := Amount(tc.plan, tc.cycle, tc.seats); got != tc.want {
			t.Fatalf("Amount(%s, %s, %d) = %d, want %d", tc.plan, tc.cycle, tc.seats, got, tc.want)
		}
	}
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	if got := PeriodEnd(start, CycleYearly); !got.Equal(time.Date(2027, 1, 31, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("yearly end = %v", got)
	}
	if got := PeriodEnd(start, CycleMonthly); !got.Equal(start.AddDate(0, 1, 0)) {
		t.Fatalf("monthly end = %v", got)
	}
}
