package domain

import "time"

// Feedback is a customer rating left on a complaint. AgentID is the agent
// assigned at creation time, nil if the complaint was never assigned.
type Feedback struct {
	ID          string
	UserID      string
	ComplaintID string
	AgentID     *string
	Rating      int
	Comment     string
	CreatedAt   time.Time

	// SubmitterName is populated on joined reads only.
	SubmitterName string
}
