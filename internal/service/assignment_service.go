package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AssignmentService encodes the assignment workflow: at most one assignment
// per complaint, at most AgentAssignmentCap active assignments per agent.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	complaints  repository.ComplaintRepository
	dispatcher  events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	ComplaintRepo  repository.ComplaintRepository
	Dispatcher     events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		complaints:  deps.ComplaintRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateAssignment assigns an agent to a complaint.
//
// Precondition order matters: the duplicate check runs before the capacity
// check, and the duplicate pre-read is advisory only. A concurrent insert
// that slips past it is caught by the unique constraint on complaint_id and
// reported as the same duplicate condition. The capacity count is a
// snapshot read; concurrent callers can transiently push an agent past the
// cap, which the domain tolerates.
func (s *AssignmentService) CreateAssignment(ctx context.Context, complaintID, agentID, agentName string) (*domain.Assignment, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	if _, err := s.assignments.GetByComplaint(ctx, complaintID); err == nil {
		return nil, apperrors.NewDuplicateAssignment(complaintID)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	active, err := s.assignments.CountActiveByAgent(ctx, agentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if active >= domain.AgentAssignmentCap {
		return nil, apperrors.NewCapacityExceeded(agentID, domain.AgentAssignmentCap)
	}

	assignment := &domain.Assignment{
		AgentID:     agentID,
		ComplaintID: complaint.ID,
		AgentName:   agentName,
		Status:      "Assigned",
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicateAssignment(complaintID)
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.complaints.SetStatus(ctx, complaint.ID, domain.ComplaintStatusAssigned); err != nil {
		return nil, apperrors.MapError(err)
	}
	updated, err := s.complaints.GetByID(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventComplaintUpdated,
		Payload: events.ComplaintPayload{Complaint: updated},
	})
	return assignment, nil
}

// ListAssignments returns every assignment with its complaint and the
// complaint's submitter attached.
func (s *AssignmentService) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}

// ListAssignmentsForAgent returns the agent's assignments with complaints
// attached. Ordering follows natural store order.
func (s *AssignmentService) ListAssignmentsForAgent(ctx context.Context, agentID string) ([]domain.Assignment, error) {
	assignments, err := s.assignments.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}
