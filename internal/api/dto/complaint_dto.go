package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload. Attachments arrive as multipart files
// alongside these form fields.
type CreateComplaintRequest struct {
	Address string `json:"address" form:"address"`
	City    string `json:"city" form:"city"`
	State   string `json:"state" form:"state"`
	Contact string `json:"contact" form:"contact"`
	Comment string `json:"comment" form:"comment" validate:"required"`
}

// UpdateComplaintRequest payload; absent fields stay untouched. Status is
// free text by contract.
type UpdateComplaintRequest struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Contact *string `json:"contact"`
	Comment *string `json:"comment"`
	Status  *string `json:"status"`
}

// AttachmentResponse describes a stored attachment reference.
type AttachmentResponse struct {
	ID           string `json:"id"`
	StoragePath  string `json:"storage_path"`
	DisplayName  string `json:"display_name"`
	OriginalName string `json:"original_name"`
}

// ComplaintResponse is the full complaint shape.
type ComplaintResponse struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	Address     string                 `json:"address"`
	City        string                 `json:"city"`
	State       string                 `json:"state"`
	Contact     string                 `json:"contact"`
	Comment     string                 `json:"comment"`
	Status      domain.ComplaintStatus `json:"status"`
	Attachments []AttachmentResponse   `json:"attachments"`
	CreatedAt   time.Time              `json:"created_at"`
	Submitter   *UserResponse          `json:"submitter,omitempty"`
}
