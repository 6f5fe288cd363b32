package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/extract"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/mockai"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/storage/object"
	"recruitedge-api/internal/shared/telemetry"
	"recruitedge-api/internal/shared/util"
	"recruitedge-api/internal/shared/validation"
	"recruitedge-api/internal/usage"
)

const (
	resourceType  = "resume"
	maxImportSize = 10 << 20 // 10MB
	summaryWords  = 60
)

// Service contains business logic for resumes.
type Service struct {
	Repo    Repo
	Store   object.ObjectStore
	AI      *mockai.Engine
	Usage   *usage.Service
	Tracker interactions.Tracker
}

// Create stores a new resume for userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Resume, error) {
	res := req.toResume()
	now := util.Now()
	res.ID = uuid.NewString()
	res.UserID = userID
	res.CreatedAt = now
	res.UpdatedAt = now
	res = normalize(res)
	res.Completeness = Completeness(res)

	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, res.ID, nil)
	return res, nil
}

// Get returns one of userID's resumes.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's resumes.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]Resume, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Update applies the supplied fields and bumps updatedAt.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (Resume, error) {
	return s.patch(ctx, userID, id, req, interactions.ActionUpdate)
}

// Autosave is Update recorded as an autosave interaction.
func (s *Service) Autosave(ctx context.Context, userID, id string, req UpdateRequest) (Resume, error) {
	return s.patch(ctx, userID, id, req, interactions.ActionAutosave)
}

func (s *Service) patch(ctx context.Context, userID, id string, req UpdateRequest, action string) (Resume, error) {
	res, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	req.apply(&res)
	res = normalize(res)
	res.Completeness = Completeness(res)
	res.UpdatedAt = util.NextTimestamp(res.UpdatedAt)

	if err := s.Repo.Update(ctx, res); err != nil {
		return Resume{}, err
	}
	s.track(ctx, userID, action, res.ID, map[string]any{"completeness": res.Completeness})
	return res, nil
}

// Delete removes one of userID's resumes and its source file, if any.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	res, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if res.SourceStorageKey != "" && s.Store != nil {
		if err := s.Store.Delete(ctx, res.SourceStorageKey); err != nil {
			return fmt.Errorf("delete source file: %w", err)
		}
	}
	s.track(ctx, userID, interactions.ActionDelete, id, nil)
	return nil
}

// Import turns an uploaded PDF, DOCX or text file into a draft resume.
// The upload is kept in the object store and one usage unit is consumed.
func (s *Service) Import(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Resume{}, validation.Invalid("file", "file name is required")
	}
	data, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxImportSize {
		return Resume{}, ErrFileTooLarge
	}
	if len(data) == 0 {
		return Resume{}, validation.Invalid("file", "file is empty")
	}

	_, mimeType, err := object.Sniff(bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("sniff upload: %w", err)
	}
	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return Resume{}, validation.Invalid("file", "must be a PDF, DOCX or plain text file")
		}
		if errors.Is(err, extract.ErrNoText) {
			return Resume{}, validation.Invalid("file", "file contains no readable text")
		}
		return Resume{}, validation.Invalid("file", "unable to read file contents")
	}

	if _, err := s.Usage.Consume(ctx, userID, 1); err != nil {
		return Resume{}, err
	}

	stored, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		s.Usage.Release(ctx, userID, 1)
		return Resume{}, fmt.Errorf("store upload: %w", err)
	}

	now := util.Now()
	res := normalize(Resume{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)),
		Status:           StatusDraft,
		PersonalInfo:     PersonalInfo{Summary: mockai.Summarize(text, summaryWords)},
		Skills:           s.AI.DetectSkills(text),
		SourceFileName:   fileName,
		SourceStorageKey: stored.Key,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	res.Completeness = Completeness(res)

	if err := s.Repo.Create(ctx, res); err != nil {
		if derr := s.Store.Delete(context.WithoutCancel(ctx), stored.Key); derr != nil {
			telemetry.Error("resumes.import.cleanup_failed", map[string]any{"user_id": userID, "key": stored.Key, "error": derr.Error()})
		}
		s.Usage.Release(ctx, userID, 1)
		return Resume{}, err
	}
	s.track(ctx, userID, interactions.ActionImport, res.ID, map[string]any{
		"fileName":  fileName,
		"mimeType":  stored.MimeType,
		"sizeBytes": stored.SizeBytes,
		"skills":    len(res.Skills),
	})
	return res, nil
}

func (s *Service) track(ctx context.Context, userID, action, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.ResumeBuilder,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
