package dto

import "time"

// CreateMessageRequest payload. Sender identity is a display name, not a
// user reference.
type CreateMessageRequest struct {
	ComplaintID string   `json:"complaint_id" validate:"required"`
	SenderName  string   `json:"sender_name" validate:"required"`
	Body        string   `json:"body" validate:"required"`
	Attachments []string `json:"attachments"`
}

// MarkReadRequest payload: flips read for every message on the complaint
// not sent by the caller.
type MarkReadRequest struct {
	ComplaintID string `json:"complaint_id" validate:"required"`
	CallerName  string `json:"caller_name" validate:"required"`
}

// MessageResponse is the thread entry shape.
type MessageResponse struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaint_id"`
	SenderName  string    `json:"sender_name"`
	Body        string    `json:"body"`
	Attachments []string  `json:"attachments"`
	Read        bool      `json:"read"`
	SentAt      time.Time `json:"sent_at"`
}
