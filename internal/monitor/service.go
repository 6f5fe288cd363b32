package monitor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
)

const resourceType = "health_check"

// Service contains business logic for the system monitor.
type Service struct {
	Repo    Repo
	Probes  []Probe
	Tracker interactions.Tracker
	// Timeout bounds a whole probe run; DegradedAfter marks slow probes.
	Timeout       time.Duration
	DegradedAfter time.Duration
}

// Create records a health check reported by the caller.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (HealthCheck, error) {
	now := util.Now()
	hc := HealthCheck{
		ID:        uuid.NewString(),
		UserID:    userID,
		Component: req.Component,
		Status:    req.Status,
		LatencyMs: req.LatencyMs,
		Message:   req.Message,
		CheckedAt: now,
		CreatedAt: now,
	}
	if req.CheckedAt != nil {
		hc.CheckedAt = req.CheckedAt.UTC()
	}
	if err := s.Repo.Create(ctx, hc); err != nil {
		return HealthCheck{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, hc.ID, map[string]any{"component": hc.Component, "status": hc.Status})
	return hc, nil
}

// Get returns one of userID's health checks.
func (s *Service) Get(ctx context.Context, userID, id string) (HealthCheck, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's health checks, newest first.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]HealthCheck, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Delete removes one of userID's health checks.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, id, nil)
	return nil
}

// Run probes every configured component concurrently and stores one row per
// component. Overall is the worst status observed.
func (s *Service) Run(ctx context.Context, userID string) (RunResult, error) {
	checks := runProbes(ctx, s.Probes, s.Timeout, s.DegradedAfter)
	statuses := make([]string, 0, len(checks))
	for i := range checks {
		checks[i].ID = uuid.NewString()
		checks[i].UserID = userID
		checks[i].CreatedAt = checks[i].CheckedAt
		if err := s.Repo.Create(ctx, checks[i]); err != nil {
			return RunResult{}, err
		}
		statuses = append(statuses, checks[i].Status)
	}
	result := RunResult{Overall: Worst(statuses...), Checks: checks}
	s.track(ctx, userID, interactions.ActionRun, "", map[string]any{"overall": result.Overall, "components": len(checks)})
	return result, nil
}

func (s *Service) track(ctx context.Context, userID, action, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.SystemMonitor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
