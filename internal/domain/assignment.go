package domain

import "time"

// AgentAssignmentCap is the maximum number of active assignments an agent
// may hold at assignment-creation time. An assignment is active while its
// complaint status is not Resolved.
const AgentAssignmentCap = 3

// Assignment pairs a complaint with exactly one agent. A complaint has at
// most one assignment; the storage layer enforces this with a unique
// constraint on the complaint reference.
type Assignment struct {
	ID          string
	AgentID     string
	ComplaintID string
	// AgentName is denormalized at write time; it is a display value,
	// not a foreign key.
	AgentName  string
	Status     string
	AssignedAt time.Time

	// Complaint is populated on joined reads only.
	Complaint *Complaint
}
