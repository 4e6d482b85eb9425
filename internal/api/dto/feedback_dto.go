package dto

import "time"

// CreateFeedbackRequest payload. Rating bounds are enforced both here and
// in the service.
type CreateFeedbackRequest struct {
	ComplaintID string `json:"complaint_id" validate:"required"`
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment     string `json:"comment"`
}

// FeedbackResponse is the feedback shape.
type FeedbackResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ComplaintID   string    `json:"complaint_id"`
	AgentID       *string   `json:"agent_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	SubmitterName string    `json:"submitter_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
