package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AssignmentsHandler exposes agent assignment endpoints.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignmentService}
}

// CreateAssignment POST /assignments.
func (h *AssignmentsHandler) CreateAssignment(c *fiber.Ctx) error {
	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := checkRequest(&req); err != nil {
		return err
	}

	assignment, err := h.assignments.CreateAssignment(c.Context(), req.ComplaintID, req.AgentID, req.AgentName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// ListAssignments GET /assignments.
func (h *AssignmentsHandler) ListAssignments(c *fiber.Ctx) error {
	assignments, err := h.assignments.ListAssignments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assignmentResponses(assignments)})
}

// ListAgentAssignments GET /agents/:agentId/assignments.
func (h *AssignmentsHandler) ListAgentAssignments(c *fiber.Ctx) error {
	assignments, err := h.assignments.ListAssignmentsForAgent(c.Context(), c.Params("agentId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assignmentResponses(assignments)})
}

func assignmentResponses(assignments []domain.Assignment) []dto.AssignmentResponse {
	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		items = append(items, assignmentResponse(&assignments[i]))
	}
	return items
}

func assignmentResponse(assignment *domain.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:          assignment.ID,
		AgentID:     assignment.AgentID,
		ComplaintID: assignment.ComplaintID,
		AgentName:   assignment.AgentName,
		Status:      assignment.Status,
		AssignedAt:  assignment.AssignedAt,
	}
	if assignment.Complaint != nil {
		complaint := complaintResponse(assignment.Complaint)
		resp.Complaint = &complaint
	}
	return resp
}
