package util

import (
	"testing"
	"time"
)

func TestNextTimestampStrictlyIncreases(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
	next := NextTimestamp(future)
	if !next.After(future) {
		t.Fatalf("expected %s after %s", next, future)
	}

	past := time.Now().UTC().Add(-time.Hour)
	if got := NextTimestamp(past); !got.After(past) {
		t.Fatalf("expected %s after %s", got, past)
	}
}
