package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"recruitedge-api/internal/queue"
	"recruitedge-api/internal/shared/telemetry"
)

// EventSink stores one interaction event. The audit log service is the
// production implementation.
type EventSink interface {
	RecordEvent(ctx context.Context, evt queue.Event) error
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrMissingInteractionID indicates an event without an interaction or user id.
type ErrMissingInteractionID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingInteractionID) Error() string { return "missing interaction id" }

// ErrProcess indicates the sink failed after the event parsed cleanly.
type ErrProcess struct {
	InteractionID string
	RequestID     string
	Err           error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process event"
	}
	return "process event: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// Unrecoverable reports whether err describes a payload that will never
// succeed, so the message should be dropped instead of retried.
func Unrecoverable(err error) bool {
	var empty ErrEmptyBody
	var decode ErrDecode
	var missing ErrMissingInteractionID
	return errors.As(err, &empty) || errors.As(err, &decode) || errors.As(err, &missing)
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Event, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Event{}, meta, ErrEmptyBody{Meta: meta}
	}

	evt, err := queue.DecodeEvent([]byte(body))
	if err != nil {
		return queue.Event{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(evt.InteractionID) == "" || strings.TrimSpace(evt.UserID) == "" {
		return evt, meta, ErrMissingInteractionID{Meta: meta, RequestID: evt.RequestID}
	}
	return evt, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded event in the context for reuse.
func WithParsedMessage(ctx context.Context, evt queue.Event) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, evt)
}

func parsedMessageFromContext(ctx context.Context) (queue.Event, bool) {
	if ctx == nil {
		return queue.Event{}, false
	}
	evt, ok := ctx.Value(parsedMessageKey{}).(queue.Event)
	return evt, ok
}

// HandleMessage parses, validates, and records a message payload.
func HandleMessage(ctx context.Context, sink EventSink, body string) error {
	if sink == nil {
		return errors.New("audit sink not configured")
	}

	evt, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		evt, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}

	ctxWithRequest := telemetry.WithRequestID(ctx, evt.RequestID)
	if err := sink.RecordEvent(ctxWithRequest, evt); err != nil {
		return ErrProcess{InteractionID: evt.InteractionID, RequestID: evt.RequestID, Err: err}
	}
	return nil
}
