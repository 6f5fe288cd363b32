package queue

import "context"

// Publisher sends interaction events to a queue backend.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, evt Event) error

func (f PublisherFunc) Publish(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Handler processes one raw event body taken off a queue.
type Handler func(ctx context.Context, body []byte) error
