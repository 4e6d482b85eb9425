package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// FeedbackHandler exposes feedback submission and lookup.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedbackService}
}

// CreateFeedback POST /feedback.
func (h *FeedbackHandler) CreateFeedback(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}
	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := checkRequest(&req); err != nil {
		return err
	}

	feedback, err := h.feedback.CreateFeedback(c.Context(), principal.User.ID, service.FeedbackCreateInput{
		ComplaintID: req.ComplaintID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": feedbackResponse(feedback)})
}

// GetComplaintFeedback GET /complaints/:id/feedback. Responds with a null
// body when the complaint has no feedback.
func (h *FeedbackHandler) GetComplaintFeedback(c *fiber.Ctx) error {
	feedback, err := h.feedback.GetFeedbackForComplaint(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if feedback == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": feedbackResponse(feedback)})
}

// ListAgentFeedback GET /agents/:agentId/feedback.
func (h *FeedbackHandler) ListAgentFeedback(c *fiber.Ctx) error {
	records, err := h.feedback.ListFeedbackForAgent(c.Context(), c.Params("agentId"))
	if err != nil {
		return err
	}
	items := make([]dto.FeedbackResponse, 0, len(records))
	for i := range records {
		items = append(items, feedbackResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func feedbackResponse(feedback *domain.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:            feedback.ID,
		UserID:        feedback.UserID,
		ComplaintID:   feedback.ComplaintID,
		AgentID:       feedback.AgentID,
		Rating:        feedback.Rating,
		Comment:       feedback.Comment,
		SubmitterName: feedback.SubmitterName,
		CreatedAt:     feedback.CreatedAt,
	}
}
