package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
	"recruitedge-api/internal/shared/validation"
)

const resourceType = "candidate"

// Postings checks that a job posting belongs to the caller.
type Postings interface {
	Exists(ctx context.Context, userID, id string) (bool, error)
}

// Service contains business logic for the talent pipeline.
type Service struct {
	Repo     Repo
	Postings Postings
	Tracker  interactions.Tracker
}

// Create adds a candidate, by default in the sourced stage.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Candidate, error) {
	c := req.toCandidate()
	if err := s.checkPosting(ctx, userID, c.JobPostingID); err != nil {
		return Candidate{}, err
	}
	now := util.Now()
	c.ID = uuid.NewString()
	c.UserID = userID
	c.StageChangedAt = now
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.Repo.Create(ctx, c); err != nil {
		return Candidate{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, c.ID, map[string]any{"stage": c.Stage, "jobPostingId": c.JobPostingID})
	return c, nil
}

// Get returns one of userID's candidates.
func (s *Service) Get(ctx context.Context, userID, id string) (Candidate, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's candidates.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]Candidate, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Update applies the supplied fields. A stage change stamps stageChangedAt.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (Candidate, error) {
	c, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Candidate{}, err
	}
	prevStage, prevPosting := c.Stage, c.JobPostingID
	req.apply(&c)
	if c.JobPostingID != prevPosting {
		if err := s.checkPosting(ctx, userID, c.JobPostingID); err != nil {
			return Candidate{}, err
		}
	}
	c.UpdatedAt = util.NextTimestamp(c.UpdatedAt)
	if c.Stage != prevStage {
		c.StageChangedAt = c.UpdatedAt
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return Candidate{}, err
	}
	s.track(ctx, userID, interactions.ActionUpdate, c.ID, nil)
	return c, nil
}

// MoveStage moves a candidate to stage and stamps stageChangedAt.
func (s *Service) MoveStage(ctx context.Context, userID, id, stage string) (Candidate, error) {
	c, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Candidate{}, err
	}
	from := c.Stage
	c.Stage = stage
	c.UpdatedAt = util.NextTimestamp(c.UpdatedAt)
	c.StageChangedAt = c.UpdatedAt
	if err := s.Repo.Update(ctx, c); err != nil {
		return Candidate{}, err
	}
	s.track(ctx, userID, interactions.ActionMove, c.ID, map[string]any{"from": from, "to": stage})
	return c, nil
}

// Delete removes one of userID's candidates.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, id, nil)
	return nil
}

// Summary counts userID's candidates per stage, optionally for one posting.
func (s *Service) Summary(ctx context.Context, userID, jobPostingID string) (Summary, error) {
	counts, err := s.Repo.CountByStage(ctx, userID, jobPostingID)
	if err != nil {
		return Summary{}, err
	}
	return newSummary(counts), nil
}

func (s *Service) checkPosting(ctx context.Context, userID, id string) error {
	if id == "" || s.Postings == nil {
		return nil
	}
	ok, err := s.Postings.Exists(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("check job posting: %w", err)
	}
	if !ok {
		return validation.Invalid("jobPostingId", "must reference one of your job postings")
	}
	return nil
}

func (s *Service) track(ctx context.Context, userID, action, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.TalentPipeline,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
