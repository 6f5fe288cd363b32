package salary

import (
	"context"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/mockai"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
	"recruitedge-api/internal/usage"
)

const resourceType = "salary_research"

// Service contains business logic for salary research.
type Service struct {
	Repo    Repo
	AI      *mockai.Engine
	Usage   *usage.Service
	Tracker interactions.Tracker
}

// Create stores a research record entered by the user.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Research, error) {
	res := req.toResearch()
	if err := checkRange(res); err != nil {
		return Research{}, err
	}
	now := util.Now()
	res.ID = uuid.NewString()
	res.UserID = userID
	res.CreatedAt = now
	res.UpdatedAt = now
	if err := s.Repo.Create(ctx, res); err != nil {
		return Research{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, res.ID, nil)
	return res, nil
}

// Generate estimates a market range for the role and stores it.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (Research, error) {
	if _, err := s.Usage.Consume(ctx, userID, 1); err != nil {
		return Research{}, err
	}
	est, err := s.AI.Salary(ctx, mockai.SalaryInput{
		JobTitle:        req.JobTitle,
		Location:        req.Location,
		Industry:        req.Industry,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		s.Usage.Release(ctx, userID, 1)
		return Research{}, err
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	now := util.Now()
	res := Research{
		ID:              uuid.NewString(),
		UserID:          userID,
		JobTitle:        req.JobTitle,
		Location:        req.Location,
		YearsExperience: req.YearsExperience,
		Industry:        req.Industry,
		Currency:        currency,
		MinSalary:       &est.Min,
		MaxSalary:       &est.Max,
		MedianSalary:    &est.Median,
		Percentiles: &Percentiles{
			P10: est.Percentiles.P10,
			P25: est.Percentiles.P25,
			P50: est.Percentiles.P50,
			P75: est.Percentiles.P75,
			P90: est.Percentiles.P90,
		},
		Tips:      est.Tips,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		s.Usage.Release(ctx, userID, 1)
		return Research{}, err
	}
	s.track(ctx, userID, interactions.ActionGenerate, res.ID, map[string]any{
		"jobTitle": req.JobTitle,
		"location": req.Location,
		"median":   est.Median,
	})
	return res, nil
}

// Get returns one of userID's research records.
func (s *Service) Get(ctx context.Context, userID, id string) (Research, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's research records.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]Research, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Update applies the supplied fields, rechecks the range and bumps updatedAt.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (Research, error) {
	res, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Research{}, err
	}
	req.apply(&res)
	if err := checkRange(res); err != nil {
		return Research{}, err
	}
	res.UpdatedAt = util.NextTimestamp(res.UpdatedAt)
	if err := s.Repo.Update(ctx, res); err != nil {
		return Research{}, err
	}
	s.track(ctx, userID, interactions.ActionUpdate, res.ID, nil)
	return res, nil
}

// Delete removes one of userID's research records.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, id, nil)
	return nil
}

func (s *Service) track(ctx context.Context, userID, action, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.SalaryNegotiator,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
