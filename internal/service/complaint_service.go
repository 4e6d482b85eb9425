package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintService coordinates complaint CRUD and lifecycle notifications.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	attachments repository.AttachmentRepository
	dispatcher  events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	AttachmentRepo repository.AttachmentRepository
	Dispatcher     events.Dispatcher
}

// ComplaintCreateInput describes the creation payload.
type ComplaintCreateInput struct {
	Address     string
	City        string
	State       string
	Contact     string
	Comment     string
	Attachments []AttachmentInput
}

// AttachmentInput references an already-stored upload.
type AttachmentInput struct {
	StoragePath  string
	DisplayName  string
	OriginalName string
}

// ComplaintUpdateInput carries arbitrary field updates. Nil fields are left
// unchanged; anything set is written verbatim, status included. No
// transition or value validation happens here on purpose.
type ComplaintUpdateInput struct {
	Address *string
	City    *string
	State   *string
	Contact *string
	Comment *string
	Status  *string
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		attachments: deps.AttachmentRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateComplaint files a complaint for a user. Status starts at Pending.
func (s *ComplaintService) CreateComplaint(ctx context.Context, userID string, input ComplaintCreateInput) (*domain.Complaint, error) {
	complaint := &domain.Complaint{
		UserID:  userID,
		Address: strings.TrimSpace(input.Address),
		City:    strings.TrimSpace(input.City),
		State:   strings.TrimSpace(input.State),
		Contact: strings.TrimSpace(input.Contact),
		Comment: strings.TrimSpace(input.Comment),
		Status:  domain.ComplaintStatusPending,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	for _, att := range input.Attachments {
		record := &domain.ComplaintAttachment{
			ComplaintID:  complaint.ID,
			StoragePath:  att.StoragePath,
			DisplayName:  att.DisplayName,
			OriginalName: att.OriginalName,
		}
		if err := s.attachments.Create(ctx, record); err != nil {
			return nil, apperrors.MapError(err)
		}
		complaint.Attachments = append(complaint.Attachments, *record)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventComplaintCreated,
		Payload: events.ComplaintPayload{Complaint: complaint},
	})
	return complaint, nil
}

// ListComplaints returns every complaint in natural store order.
func (s *ComplaintService) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.complaints.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// ListComplaintsForUser returns the complaints a user has filed.
func (s *ComplaintService) ListComplaintsForUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// GetComplaint fetches one complaint with attachments.
func (s *ComplaintService) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// UpdateComplaint applies arbitrary field updates and emits the updated
// record to realtime clients.
func (s *ComplaintService) UpdateComplaint(ctx context.Context, id string, input ComplaintUpdateInput) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if input.Address != nil {
		complaint.Address = *input.Address
	}
	if input.City != nil {
		complaint.City = *input.City
	}
	if input.State != nil {
		complaint.State = *input.State
	}
	if input.Contact != nil {
		complaint.Contact = *input.Contact
	}
	if input.Comment != nil {
		complaint.Comment = *input.Comment
	}
	if input.Status != nil {
		complaint.Status = domain.ComplaintStatus(*input.Status)
	}
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventComplaintUpdated,
		Payload: events.ComplaintPayload{Complaint: complaint},
	})
	return complaint, nil
}

// DeleteComplaint removes the complaint record. Assignments, messages, and
// feedback referencing it are not cascaded; orphaned records persist and
// remain readable by id. The deletion event carries only the identifier.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, id string) error {
	if err := s.complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"complaint_id": id})
		}
		return apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventComplaintDeleted,
		Payload: events.ComplaintDeletedPayload{ComplaintID: id},
	})
	return nil
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
