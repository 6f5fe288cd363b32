package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
)

const resourceType = "content_flag"

// Service contains business logic for content moderation.
type Service struct {
	Repo    Repo
	Tracker interactions.Tracker
}

// Create opens a flag, defaulting to medium severity and open status.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (ContentFlag, error) {
	f := req.toFlag()
	now := util.Now()
	f.ID = uuid.NewString()
	f.UserID = userID
	f.CreatedAt = now
	f.UpdatedAt = now
	stampResolved(&f, now)
	if err := s.Repo.Create(ctx, f); err != nil {
		return ContentFlag{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, f.ID, map[string]any{"contentType": f.ContentType, "reason": f.Reason, "severity": f.Severity})
	return f, nil
}

// Get returns one of userID's content flags.
func (s *Service) Get(ctx context.Context, userID, id string) (ContentFlag, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's content flags.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]ContentFlag, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Update applies the supplied fields. resolvedAt follows the status.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (ContentFlag, error) {
	f, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return ContentFlag{}, err
	}
	req.apply(&f)
	f.UpdatedAt = util.NextTimestamp(f.UpdatedAt)
	stampResolved(&f, f.UpdatedAt)
	if err := s.Repo.Update(ctx, f); err != nil {
		return ContentFlag{}, err
	}
	s.track(ctx, userID, interactions.ActionUpdate, f.ID, map[string]any{"status": f.Status})
	return f, nil
}

// Resolve closes a flag as resolved, or dismissed when dismiss is set, and
// stamps resolvedAt.
func (s *Service) Resolve(ctx context.Context, userID, id string, req ResolveRequest) (ContentFlag, error) {
	f, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return ContentFlag{}, err
	}
	f.Status = StatusResolved
	if req.Dismiss {
		f.Status = StatusDismissed
	}
	f.Resolution = req.Resolution
	f.UpdatedAt = util.NextTimestamp(f.UpdatedAt)
	resolved := f.UpdatedAt
	f.ResolvedAt = &resolved
	if err := s.Repo.Update(ctx, f); err != nil {
		return ContentFlag{}, err
	}
	s.track(ctx, userID, interactions.ActionResolve, f.ID, map[string]any{"status": f.Status})
	return f, nil
}

// Delete removes one of userID's content flags.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, id, nil)
	return nil
}

func stampResolved(f *ContentFlag, at time.Time) {
	if !closed(f.Status) {
		f.ResolvedAt = nil
		return
	}
	if f.ResolvedAt == nil {
		resolved := at
		f.ResolvedAt = &resolved
	}
}

func (s *Service) track(ctx context.Context, userID, action, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.ContentModerator,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
