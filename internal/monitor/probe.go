package monitor

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"recruitedge-api/internal/shared/metrics"
	"recruitedge-api/internal/shared/util"
)

const (
	defaultProbeTimeout  = 3 * time.Second
	defaultDegradedAfter = time.Second
)

// Probe checks one component. Check returns nil when the component is reachable.
type Probe struct {
	Component string
	Check     func(ctx context.Context) error
}

// Pinger is implemented by the object store and the queue clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingProbe adapts a Pinger to a Probe.
func PingProbe(component string, p Pinger) Probe {
	return Probe{Component: component, Check: p.Ping}
}

// runProbes executes every probe concurrently under one deadline. A probe
// that errors is down; one slower than degradedAfter is degraded.
func runProbes(ctx context.Context, probes []Probe, timeout, degradedAfter time.Duration) []HealthCheck {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	if degradedAfter <= 0 {
		degradedAfter = defaultDegradedAfter
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checks := make([]HealthCheck, len(probes))
	// Probe failures are reported as rows, so the group never short-circuits.
	var g errgroup.Group
	for i, p := range probes {
		g.Go(func() error {
			started := time.Now()
			err := p.Check(ctx)
			elapsed := time.Since(started)
			metrics.ObserveProbe(elapsed)

			latency := int(elapsed.Milliseconds())
			hc := HealthCheck{
				Component: p.Component,
				Status:    StatusHealthy,
				LatencyMs: &latency,
				CheckedAt: util.Now(),
			}
			switch {
			case err != nil:
				hc.Status = StatusDown
				hc.Message = err.Error()
			case elapsed > degradedAfter:
				hc.Status = StatusDegraded
				hc.Message = "slow response"
			default:
				hc.Message = "ok"
			}
			checks[i] = hc
			return nil
		})
	}
	_ = g.Wait()
	return checks
}
