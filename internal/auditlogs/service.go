package auditlogs

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"recruitedge-api/internal/queue"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/telemetry"
	"recruitedge-api/internal/shared/util"
)

// ErrInvalidEvent is returned for events that cannot be audited.
var ErrInvalidEvent = errors.New("invalid audit event")

// Service contains business logic for the audit log. Writing an entry is
// not itself tracked as an interaction.
type Service struct {
	Repo Repo
}

// Create appends an entry. actorId defaults to the caller and ipAddress and
// requestId to the values of the current request.
func (s *Service) Create(ctx context.Context, userID, clientIP string, req CreateRequest) (AuditLog, error) {
	entry := AuditLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     strings.TrimSpace(req.Action),
		Agent:      req.Agent,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		ActorID:    req.ActorID,
		Details:    req.Details,
		IPAddress:  req.IPAddress,
		RequestID:  req.RequestID,
		CreatedAt:  util.Now(),
	}
	if entry.ActorID == "" {
		entry.ActorID = userID
	}
	if entry.IPAddress == "" {
		entry.IPAddress = clientIP
	}
	if entry.RequestID == "" {
		entry.RequestID = telemetry.RequestIDFromContext(ctx)
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return AuditLog{}, err
	}
	return entry, nil
}

// Get returns one of userID's audit log entries.
func (s *Service) Get(ctx context.Context, userID, id string) (AuditLog, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's audit log, newest first.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]AuditLog, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// RecordEvent writes the audit entry for an interaction event. The entry
// reuses the interaction id, so redelivering an event is harmless.
func (s *Service) RecordEvent(ctx context.Context, evt queue.Event) error {
	if strings.TrimSpace(evt.InteractionID) == "" || strings.TrimSpace(evt.UserID) == "" || evt.Action == "" {
		return ErrInvalidEvent
	}
	created := evt.OccurredAt.UTC()
	if created.IsZero() {
		created = util.Now()
	}
	details := evt.Metadata
	if details == nil {
		details = map[string]any{}
	}
	return s.Repo.Create(ctx, AuditLog{
		ID:         evt.InteractionID,
		UserID:     evt.UserID,
		Action:     evt.Action,
		Agent:      evt.Agent,
		EntityType: evt.ResourceType,
		EntityID:   evt.ResourceID,
		ActorID:    evt.UserID,
		Details:    details,
		RequestID:  evt.RequestID,
		CreatedAt:  created,
	})
}

// Publisher returns a queue.Publisher that writes events straight to the
// audit log. It stands in for a real queue in single-process setups.
func (s *Service) Publisher() queue.Publisher {
	return queue.PublisherFunc(s.RecordEvent)
}
