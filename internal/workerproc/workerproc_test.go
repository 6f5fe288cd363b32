package workerproc

import (
	"context"
	"errors"
	"testing"

	"recruitedge-api/internal/queue"
)

type recordingSink struct {
	events []queue.Event
	err    error
}

func (s *recordingSink) RecordEvent(ctx context.Context, evt queue.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, evt)
	return nil
}

func TestParseMessage(t *testing.T) {
	valid, _ := queue.EncodeEvent(queue.Event{InteractionID: "i-1", UserID: "u-1", Action: "create"})
	noID, _ := queue.EncodeEvent(queue.Event{UserID: "u-1", Action: "create", RequestID: "req-1"})

	cases := []struct {
		name          string
		body          string
		unrecoverable bool
	}{
		{name: "valid", body: string(valid)},
		{name: "empty", body: "   ", unrecoverable: true},
		{name: "bad json", body: "{nope", unrecoverable: true},
		{name: "missing id", body: string(noID), unrecoverable: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, meta, err := ParseMessage(tc.body)
			if tc.unrecoverable {
				if err == nil || !Unrecoverable(err) {
					t.Fatalf("expected unrecoverable error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMessage: %v", err)
			}
			if meta.BodyLen != len(tc.body) || len(meta.BodySHA) != 64 {
				t.Fatalf("unexpected meta %+v", meta)
			}
		})
	}
}

func TestHandleMessage(t *testing.T) {
	body, _ := queue.EncodeEvent(queue.Event{InteractionID: "i-1", UserID: "u-1", Action: "pay", RequestID: "req-7"})

	sink := &recordingSink{}
	if err := HandleMessage(context.Background(), sink, string(body)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(sink.events) != 1 || sink.events[0].Action != "pay" {
		t.Fatalf("unexpected events %+v", sink.events)
	}

	boom := errors.New("db down")
	err := HandleMessage(context.Background(), &recordingSink{err: boom}, string(body))
	var procErr ErrProcess
	if !errors.As(err, &procErr) || procErr.InteractionID != "i-1" || !errors.Is(err, boom) {
		t.Fatalf("expected ErrProcess wrapping sink error, got %v", err)
	}
	if Unrecoverable(err) {
		t.Fatalf("sink failures must be retried")
	}

	if err := HandleMessage(context.Background(), nil, string(body)); err == nil {
		t.Fatalf("expected error without sink")
	}
}
