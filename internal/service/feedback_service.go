package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// FeedbackService stores customer feedback on complaints.
type FeedbackService struct {
	feedback    repository.FeedbackRepository
	assignments repository.AssignmentRepository
}

// NewFeedbackService constructs the service.
func NewFeedbackService(feedback repository.FeedbackRepository, assignments repository.AssignmentRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, assignments: assignments}
}

// FeedbackCreateInput describes a new feedback record.
type FeedbackCreateInput struct {
	ComplaintID string
	Rating      int
	Comment     string
}

// CreateFeedback stores a rating. The complaint's current assignment, if
// any, is looked up to denormalize the agent reference at creation time.
// Neither resolution state nor one-feedback-per-complaint is enforced.
func (s *FeedbackService) CreateFeedback(ctx context.Context, userID string, input FeedbackCreateInput) (*domain.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{
			"rating": input.Rating,
		})
	}

	var agentID *string
	if assignment, err := s.assignments.GetByComplaint(ctx, input.ComplaintID); err == nil {
		agentID = &assignment.AgentID
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	feedback := &domain.Feedback{
		UserID:      userID,
		ComplaintID: input.ComplaintID,
		AgentID:     agentID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, apperrors.MapError(err)
	}
	return feedback, nil
}

// GetFeedbackForComplaint returns the first feedback record on a complaint,
// or nil when none exists.
func (s *FeedbackService) GetFeedbackForComplaint(ctx context.Context, complaintID string) (*domain.Feedback, error) {
	feedback, err := s.feedback.GetByComplaint(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	return feedback, nil
}

// ListFeedbackForAgent returns an agent's feedback with submitter names
// attached for display.
func (s *FeedbackService) ListFeedbackForAgent(ctx context.Context, agentID string) ([]domain.Feedback, error) {
	records, err := s.feedback.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}
