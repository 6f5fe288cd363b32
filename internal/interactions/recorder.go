package interactions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recruitedge-api/internal/queue"
	"recruitedge-api/internal/shared/metrics"
	"recruitedge-api/internal/shared/telemetry"
	"recruitedge-api/internal/shared/util"
)

const publishTimeout = 3 * time.Second

// Tracker records agent mutations. Implementations never fail the caller.
type Tracker interface {
	Track(ctx context.Context, e Entry)
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Track(context.Context, Entry) {}

// Recorder stores an interaction row and then publishes it as an event.
type Recorder struct {
	Repo      Repo
	Publisher queue.Publisher
}

// Track writes the interaction. Errors are logged and counted, never returned.
func (r *Recorder) Track(ctx context.Context, e Entry) {
	it := Interaction{
		ID:           uuid.NewString(),
		UserID:       e.UserID,
		Agent:        e.Agent,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		RequestID:    telemetry.RequestIDFromContext(ctx),
		Metadata:     e.Metadata,
		CreatedAt:    util.Now(),
	}

	// The request may already be cancelled once the response is written.
	bg := telemetry.Detach(ctx)

	if r.Repo != nil {
		if err := r.Repo.Create(bg, it); err != nil {
			metrics.IncTrackingFailed()
			telemetry.ErrorContext(ctx, "interaction.track_failed", logFields(it, err))
			return
		}
	}
	metrics.IncInteraction(it.Agent)

	if r.Publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(bg, publishTimeout)
	defer cancel()
	if err := r.Publisher.Publish(pubCtx, ToEvent(it)); err != nil {
		metrics.IncEventPublishFailed()
		telemetry.ErrorContext(ctx, "interaction.publish_failed", logFields(it, err))
		return
	}
	metrics.IncEventPublished()
}

// ToEvent converts a stored interaction into its queue payload.
func ToEvent(it Interaction) queue.Event {
	return queue.Event{
		InteractionID: it.ID,
		UserID:        it.UserID,
		Agent:         it.Agent,
		Action:        it.Action,
		ResourceType:  it.ResourceType,
		ResourceID:    it.ResourceID,
		RequestID:     it.RequestID,
		Metadata:      it.Metadata,
		OccurredAt:    it.CreatedAt,
		Version:       queue.EventVersion,
	}
}

func logFields(it Interaction, err error) map[string]any {
	return map[string]any{
		"interaction_id": it.ID,
		"user_id":        it.UserID,
		"agent":          it.Agent,
		"action":         it.Action,
		"resource_id":    it.ResourceID,
		"error":          err,
	}
}

var (
	_ Tracker = (*Recorder)(nil)
	_ Tracker = Nop{}
)
