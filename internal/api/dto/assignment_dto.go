package dto

import "time"

// CreateAssignmentRequest payload.
type CreateAssignmentRequest struct {
	ComplaintID string `json:"complaint_id" validate:"required"`
	AgentID     string `json:"agent_id" validate:"required"`
	AgentName   string `json:"agent_name" validate:"required"`
}

// AssignmentResponse is the assignment shape, with the referenced
// complaint attached on joined reads.
type AssignmentResponse struct {
	ID          string             `json:"id"`
	AgentID     string             `json:"agent_id"`
	ComplaintID string             `json:"complaint_id"`
	AgentName   string             `json:"agent_name"`
	Status      string             `json:"status"`
	AssignedAt  time.Time          `json:"assigned_at"`
	Complaint   *ComplaintResponse `json:"complaint,omitempty"`
}
