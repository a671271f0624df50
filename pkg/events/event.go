package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NoteChange is the cross-instance mirror of a local change-feed event.
type NoteChange struct {
	Kind       string
	NoteId     string
	OccurredAt time.Time
}

func (e NoteChange) EventType() string {
	return "NOTE_CHANGED"
}

func (e NoteChange) Payload() map[string]interface{} {
	return map[string]interface{}{
		"kind":    e.Kind,
		"note_id": e.NoteId,
	}
}

func (e NoteChange) Timestamp() time.Time {
	return e.OccurredAt
}
