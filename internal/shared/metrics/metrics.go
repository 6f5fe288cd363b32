package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	eventsPublishedTotal     atomic.Uint64
	eventsPublishFailedTotal atomic.Uint64
	workerReceivedTotal      atomic.Uint64
	workerProcessedTotal     atomic.Uint64
	workerDiscardedTotal     atomic.Uint64
	workerFailedTotal        atomic.Uint64
	trackingFailedTotal      atomic.Uint64
	usageLimitReachedTotal   atomic.Uint64

	interactionsTotal = newCounterVec("agent")
	generationsTotal  = newCounterVec("agent")

	generationDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000})
	probeDuration      = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 3000})
)

// IncInteraction counts a recorded interaction for agent.
func IncInteraction(agent string) {
	interactionsTotal.Inc(agent)
}

// IncTrackingFailed counts interactions that could not be persisted.
func IncTrackingFailed() {
	trackingFailedTotal.Add(1)
}

// IncEventPublished counts a successfully published interaction event.
func IncEventPublished() {
	eventsPublishedTotal.Add(1)
}

// IncEventPublishFailed counts a failed publish.
func IncEventPublishFailed() {
	eventsPublishFailedTotal.Add(1)
}

// IncWorkerReceived counts an event taken off the queue.
func IncWorkerReceived() {
	workerReceivedTotal.Add(1)
}

// IncWorkerDiscarded counts a malformed event dropped without processing.
func IncWorkerDiscarded() {
	workerDiscardedTotal.Add(1)
}

// IncWorkerProcessed counts an event the worker handled.
func IncWorkerProcessed() {
	workerProcessedTotal.Add(1)
}

// IncWorkerFailed counts an event the worker gave up on.
func IncWorkerFailed() {
	workerFailedTotal.Add(1)
}

// IncUsageLimitReached counts requests rejected by the usage meter.
func IncUsageLimitReached() {
	usageLimitReachedTotal.Add(1)
}

// ObserveGeneration records one mock-AI generation for agent.
func ObserveGeneration(agent string, d time.Duration) {
	generationsTotal.Inc(agent)
	generationDuration.Observe(durationMs(d))
}

// ObserveProbe records the duration of one health probe.
func ObserveProbe(d time.Duration) {
	probeDuration.Observe(durationMs(d))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "interactions_recorded_total", "Interactions recorded per agent", interactionsTotal)
	writeCounter(&buf, "interactions_tracking_failed_total", "Interactions that failed to persist", trackingFailedTotal.Load())
	writeCounter(&buf, "events_published_total", "Interaction events published", eventsPublishedTotal.Load())
	writeCounter(&buf, "events_publish_failed_total", "Interaction events that failed to publish", eventsPublishFailedTotal.Load())
	writeCounter(&buf, "worker_events_received_total", "Events received by the worker", workerReceivedTotal.Load())
	writeCounter(&buf, "worker_events_processed_total", "Events processed by the worker", workerProcessedTotal.Load())
	writeCounter(&buf, "worker_events_failed_total", "Events the worker failed to process", workerFailedTotal.Load())
	writeCounter(&buf, "worker_events_discarded_total", "Malformed events the worker dropped", workerDiscardedTotal.Load())
	writeCounter(&buf, "usage_limit_reached_total", "Requests rejected by the usage limit", usageLimitReachedTotal.Load())
	writeCounterVec(&buf, "generations_total", "Mock AI generations per agent", generationsTotal)
	writeHistogram(&buf, "generation_duration_ms", "Mock AI generation duration in milliseconds", generationDuration.Snapshot())
	writeHistogram(&buf, "health_probe_duration_ms", "Health probe duration in milliseconds", probeDuration.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	label  string
	values map[string]uint64
}

func newCounterVec(label string) *counterVec {
	return &counterVec{label: label, values: make(map[string]uint64)}
}

func (v *counterVec) Inc(value string) {
	if value == "" {
		value = "unknown"
	}
	v.mu.Lock()
	v.values[value]++
	v.mu.Unlock()
}

func (v *counterVec) snapshot() ([]string, map[string]uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	keys := make([]string, 0, len(v.values))
	out := make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		keys = append(keys, k)
		out[k] = n
	}
	sort.Strings(keys)
	return keys, out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe stores the value in the first bucket that fits; Render accumulates.
func (h *histogram) Observe(value float64) {
	if value < 0 {
		value = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help string, v *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys, values := v.snapshot()
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, v.label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
