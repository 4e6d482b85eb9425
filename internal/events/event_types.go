package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers. The values double as
// the wire-level event names pushed to realtime clients.
type EventType string

const (
	EventComplaintCreated EventType = "complaintCreated"
	EventComplaintUpdated EventType = "complaintUpdated"
	EventComplaintDeleted EventType = "complaintDeleted"
	EventNewMessage       EventType = "newMessage"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ComplaintPayload carries the full complaint for created/updated events.
type ComplaintPayload struct {
	Complaint *domain.Complaint `json:"complaint"`
}

// ComplaintDeletedPayload carries only the identity of the removed record.
type ComplaintDeletedPayload struct {
	ComplaintID string `json:"complaint_id"`
}

// MessagePayload carries the full message for newMessage events.
type MessagePayload struct {
	Message *domain.Message `json:"message"`
}
