package domain

import "time"

// ComplaintStatus enumerates the conventional lifecycle states for complaints.
// The set is open-ended on purpose: the generic update endpoint may write
// values outside it, and readers must tolerate that.
type ComplaintStatus string

const (
	ComplaintStatusPending  ComplaintStatus = "Pending"
	ComplaintStatusAssigned ComplaintStatus = "Assigned"
	ComplaintStatusResolved ComplaintStatus = "Resolved"
)

// Complaint is the aggregate for filed grievances.
type Complaint struct {
	ID          string
	UserID      string
	Address     string
	City        string
	State       string
	Contact     string
	Comment     string
	Status      ComplaintStatus
	Attachments []ComplaintAttachment
	CreatedAt   time.Time

	// Submitter is populated on joined reads only.
	Submitter *User
}

// ComplaintAttachment references an uploaded file stored in the blob store.
type ComplaintAttachment struct {
	ID           string
	ComplaintID  string
	StoragePath  string
	DisplayName  string
	OriginalName string
	CreatedAt    time.Time
}
