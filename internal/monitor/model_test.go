package monitor

import "testing"

func TestWorst(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{in: nil, want: StatusHealthy},
		{in: []string{StatusHealthy, StatusHealthy}, want: StatusHealthy},
		{in: []string{StatusHealthy, StatusDegraded}, want: StatusDegraded},
		{in: []string{StatusDown, StatusDegraded, StatusHealthy}, want: StatusDown},
	}
	for _, tc := range cases {
		if got := Worst(tc.in...); got != tc.want {
			t.Fatalf("Worst(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
