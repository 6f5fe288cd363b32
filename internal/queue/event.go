package queue

import (
	"encoding/json"
	"time"
)

// EventVersion is bumped when the payload shape changes.
const EventVersion = 1

// Event is the interaction payload consumed by the audit worker.
type Event struct {
	InteractionID string         `json:"interactionId"`
	UserID        string         `json:"userId"`
	Agent         string         `json:"agent"`
	Action        string         `json:"action"`
	ResourceType  string         `json:"resourceType,omitempty"`
	ResourceID    string         `json:"resourceId,omitempty"`
	RequestID     string         `json:"requestId,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	OccurredAt    time.Time      `json:"occurredAt"`
	Version       int            `json:"version"`
}

// EncodeEvent returns the JSON representation of an event.
func EncodeEvent(evt Event) ([]byte, error) {
	if evt.Version == 0 {
		evt.Version = EventVersion
	}
	return json.Marshal(evt)
}

// DecodeEvent parses a JSON payload into an Event.
func DecodeEvent(payload []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}
