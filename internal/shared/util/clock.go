package util

import "time"

// Now returns the current UTC time truncated to microseconds so values
// survive a Postgres timestamptz round trip unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NextTimestamp returns a time strictly after prev.
func NextTimestamp(prev time.Time) time.Time {
	now := Now()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}
