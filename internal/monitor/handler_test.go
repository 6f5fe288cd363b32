package monitor_test

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/monitor"
	"recruitedge-api/internal/shared/testutil"
)

func newTestRouter(t *testing.T, probes ...monitor.Probe) (*gin.Engine, *testutil.Tracker) {
	t.Helper()
	tracker := &testutil.Tracker{}
	svc := &monitor.Service{
		Repo:          monitor.NewMemoryRepo(),
		Probes:        probes,
		Tracker:       tracker,
		Timeout:       200 * time.Millisecond,
		DegradedAfter: 50 * time.Millisecond,
	}
	return testutil.Router(func(rg *gin.RouterGroup) {
		monitor.NewHandler(svc).RegisterRoutes(rg)
	}), tracker
}

func TestHealthCheckCRUD(t *testing.T) {
	router, tracker := newTestRouter(t)

	resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/health-checks", "ops-1", `{"component":"payments","status":"degraded","latencyMs":420,"message":"elevated p99"}`)
	testutil.ExpectStatus(t, resp, http.StatusCreated)
	hc := testutil.Decode[monitor.HealthCheck](t, resp)
	if hc.LatencyMs == nil || *hc.LatencyMs != 420 || hc.CheckedAt.IsZero() {
		t.Fatalf("unexpected health check %+v", hc)
	}

	path := "/api/agents/test/health-checks/" + hc.ID
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodGet, path, "ops-1", nil), http.StatusOK)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodGet, path, "ops-2", nil), http.StatusNotFound)

	resp = testutil.Do(t, router, http.MethodGet, "/api/agents/test/health-checks?status=healthy", "ops-1", nil)
	if list := testutil.Decode[testutil.ListBody[monitor.HealthCheck]](t, resp); len(list.Items) != 0 {
		t.Fatalf("expected no healthy rows, got %d", len(list.Items))
	}

	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodDelete, path, "ops-1", nil), http.StatusNoContent)
	testutil.ExpectStatus(t, testutil.Do(t, router, http.MethodDelete, path, "ops-1", nil), http.StatusNotFound)

	want := []string{"create", "delete"}
	if got := tracker.Actions(); !reflect.DeepEqual(got, want) {
		t.Fatalf("tracked actions = %v, want %v", got, want)
	}
}

func TestHealthCheckValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing component", body: `{"status":"healthy"}`, field: "component"},
		{name: "unknown status", body: `{"component":"db","status":"sleepy"}`, field: "status"},
		{name: "negative latency", body: `{"component":"db","status":"healthy","latencyMs":-1}`, field: "latencyMs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/health-checks", "ops-1", tc.body)
			testutil.ExpectStatus(t, resp, http.StatusBadRequest)
			if body := testutil.Decode[testutil.ErrorBody](t, resp); len(body.Details) == 0 || body.Details[0].Field != tc.field {
				t.Fatalf("unexpected error %+v", body)
			}
		})
	}
}

func TestRunProbesReportsWorstStatus(t *testing.T) {
	ok := monitor.Probe{Component: "database", Check: func(context.Context) error { return nil }}
	slow := monitor.Probe{Component: "object_store", Check: func(ctx context.Context) error {
		select {
		case <-time.After(80 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}}
	broken := monitor.Probe{Component: "event_queue", Check: func(context.Context) error { return errors.New("connection refused") }}

	router, tracker := newTestRouter(t, ok, slow, broken)
	resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/health-checks/run", "ops-1", nil)
	testutil.ExpectStatus(t, resp, http.StatusOK)
	result := testutil.Decode[monitor.RunResult](t, resp)
	if result.Overall != monitor.StatusDown || len(result.Checks) != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	got := map[string]string{}
	for _, hc := range result.Checks {
		got[hc.Component] = hc.Status
	}
	want := map[string]string{"database": "healthy", "object_store": "degraded", "event_queue": "down"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}

	resp = testutil.Do(t, router, http.MethodGet, "/api/agents/test/health-checks", "ops-1", nil)
	if list := testutil.Decode[testutil.ListBody[monitor.HealthCheck]](t, resp); len(list.Items) != 3 {
		t.Fatalf("expected 3 persisted rows, got %d", len(list.Items))
	}
	if actions := tracker.Actions(); len(actions) != 1 || actions[0] != "run" {
		t.Fatalf("tracked actions = %v", actions)
	}
}

func TestRunProbesHonoursDeadline(t *testing.T) {
	hung := monitor.Probe{Component: "database", Check: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	router, _ := newTestRouter(t, hung)

	started := time.Now()
	resp := testutil.Do(t, router, http.MethodPost, "/api/agents/test/health-checks/run", "ops-1", nil)
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("run took %s", elapsed)
	}
	result := testutil.Decode[monitor.RunResult](t, resp)
	if result.Overall != monitor.StatusDown {
		t.Fatalf("hung probe should be down, got %+v", result)
	}
}
