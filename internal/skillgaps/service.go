package skillgaps

import (
	"context"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
)

const resourceType = "skill_analysis"

// Service contains business logic for skill gap analyses.
type Service struct {
	Repo    Repo
	AI      Recommender
	Tracker interactions.Tracker
}

// Create derives gaps, readiness and recommendations and stores the analysis.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Analysis, error) {
	now := util.Now()
	a := derive(Analysis{
		ID:         uuid.NewString(),
		UserID:     userID,
		TargetRole: req.TargetRole,
		Skills:     req.Skills,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, s.AI)
	if err := s.Repo.Create(ctx, a); err != nil {
		return Analysis{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, a)
	return a, nil
}

// Get returns one of userID's analyses.
func (s *Service) Get(ctx context.Context, userID, id string) (Analysis, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's analyses.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]Analysis, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Update applies the supplied fields and recomputes the derived ones.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (Analysis, error) {
	a, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Analysis{}, err
	}
	req.apply(&a)
	a = derive(a, s.AI)
	a.UpdatedAt = util.NextTimestamp(a.UpdatedAt)
	if err := s.Repo.Update(ctx, a); err != nil {
		return Analysis{}, err
	}
	s.track(ctx, userID, interactions.ActionUpdate, a)
	return a, nil
}

// Delete removes one of userID's analyses.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, Analysis{ID: id})
	return nil
}

func (s *Service) track(ctx context.Context, userID, action string, a Analysis) {
	if s.Tracker == nil {
		return
	}
	var meta map[string]any
	if action != interactions.ActionDelete {
		meta = map[string]any{"targetRole": a.TargetRole, "readinessScore": a.ReadinessScore}
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.SkillGapAnalyzer,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   a.ID,
		Metadata:     meta,
	})
}
