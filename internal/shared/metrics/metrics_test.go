package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var buf strings.Builder
	snap := h.Snapshot()
	var cumulative uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
		buf.WriteString(formatFloat(snap.buckets[i]))
		buf.WriteString("=")
		buf.WriteString(formatFloat(float64(cumulative)))
		buf.WriteString(" ")
	}
	if got := strings.TrimSpace(buf.String()); got != "10=1 100=2" {
		t.Fatalf("unexpected cumulative buckets: %s", got)
	}
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
}

func TestRenderIncludesLabeledCounters(t *testing.T) {
	IncInteraction("resume-builder")
	IncInteraction("resume-builder")
	out := Render()
	if !strings.Contains(out, `interactions_recorded_total{agent="resume-builder"}`) {
		t.Fatalf("expected labeled interaction counter in output:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE health_probe_duration_ms histogram") {
		t.Fatalf("expected probe histogram in output")
	}
}
