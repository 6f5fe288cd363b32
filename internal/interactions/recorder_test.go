package interactions

import (
	"context"
	"errors"
	"testing"

	"recruitedge-api/internal/queue"
	"recruitedge-api/internal/shared/telemetry"
)

type failingRepo struct{}

func (failingRepo) Create(context.Context, Interaction) error { return errors.New("db down") }
func (failingRepo) ListByUser(context.Context, string, Filter, int, int) ([]Interaction, error) {
	return nil, errors.New("db down")
}

func TestRecorderStoresAndPublishes(t *testing.T) {
	repo := NewMemoryRepo()
	var published []queue.Event
	rec := &Recorder{
		Repo: repo,
		Publisher: queue.PublisherFunc(func(ctx context.Context, evt queue.Event) error {
			published = append(published, evt)
			return nil
		}),
	}

	ctx := telemetry.WithRequestID(context.Background(), "req-1")
	rec.Track(ctx, Entry{UserID: "u-1", Agent: "resume-builder", Action: ActionCreate, ResourceType: "resume", ResourceID: "r-1"})

	items, err := repo.ListByUser(context.Background(), "u-1", Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(items))
	}
	if items[0].RequestID != "req-1" || items[0].ID == "" {
		t.Fatalf("unexpected interaction %+v", items[0])
	}
	if len(published) != 1 || published[0].InteractionID != items[0].ID {
		t.Fatalf("expected published event for interaction, got %+v", published)
	}
}

func TestRecorderSwallowsFailures(t *testing.T) {
	called := false
	rec := &Recorder{
		Repo: failingRepo{},
		Publisher: queue.PublisherFunc(func(ctx context.Context, evt queue.Event) error {
			called = true
			return nil
		}),
	}
	rec.Track(context.Background(), Entry{UserID: "u-1", Agent: "billing-manager", Action: ActionCreate})
	if called {
		t.Fatalf("expected publish to be skipped when the row was not stored")
	}

	rec = &Recorder{
		Repo: NewMemoryRepo(),
		Publisher: queue.PublisherFunc(func(ctx context.Context, evt queue.Event) error {
			return errors.New("queue down")
		}),
	}
	rec.Track(context.Background(), Entry{UserID: "u-1", Agent: "billing-manager", Action: ActionCreate})
}

func TestRecorderKeepsRowWhenRequestCancelled(t *testing.T) {
	repo := NewMemoryRepo()
	rec := &Recorder{Repo: repo}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec.Track(ctx, Entry{UserID: "u-2", Agent: "content-moderator", Action: ActionUpdate})

	items, _ := repo.ListByUser(context.Background(), "u-2", Filter{}, 20, 0)
	if len(items) != 1 {
		t.Fatalf("expected interaction to be stored, got %d", len(items))
	}
}

func TestMemoryRepoFilters(t *testing.T) {
	repo := NewMemoryRepo()
	rec := &Recorder{Repo: repo}
	rec.Track(context.Background(), Entry{UserID: "u-1", Agent: "a", Action: ActionCreate})
	rec.Track(context.Background(), Entry{UserID: "u-1", Agent: "b", Action: ActionDelete})
	rec.Track(context.Background(), Entry{UserID: "u-9", Agent: "a", Action: ActionCreate})

	items, _ := repo.ListByUser(context.Background(), "u-1", Filter{Agent: "a"}, 20, 0)
	if len(items) != 1 || items[0].Agent != "a" {
		t.Fatalf("unexpected agent filter result %+v", items)
	}
	items, _ = repo.ListByUser(context.Background(), "u-1", Filter{Action: ActionDelete}, 20, 0)
	if len(items) != 1 || items[0].Action != ActionDelete {
		t.Fatalf("unexpected action filter result %+v", items)
	}
}
