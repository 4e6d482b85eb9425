package domain

import "time"

// Message is one entry in a complaint's thread. Identity is the denormalized
// sender display name: the unread model compares names, not user ids.
type Message struct {
	ID          string
	ComplaintID string
	SenderName  string
	Body        string
	Attachments []string
	Read        bool
	SentAt      time.Time
}
