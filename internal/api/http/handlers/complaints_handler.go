package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/storage"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const complaintUploadsFolder = "complaints"

// ComplaintsHandler manages complaint CRUD endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
	blobs      storage.BlobStore
	uploads    config.UploadsConfig
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService, blobs storage.BlobStore, uploads config.UploadsConfig) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaintService, blobs: blobs, uploads: uploads}
}

// CreateComplaint POST /complaints. Accepts JSON or multipart; attachments
// are the multipart files under "attachments".
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}

	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := checkRequest(&req); err != nil {
		return err
	}

	attachments, err := h.storeUploads(c)
	if err != nil {
		return err
	}

	complaint, err := h.complaints.CreateComplaint(c.Context(), principal.User.ID, service.ComplaintCreateInput{
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Contact:     req.Contact,
		Comment:     req.Comment,
		Attachments: attachments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// ListComplaints GET /complaints. Agents and admins see everything;
// customers see their own.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}

	var (
		complaints []domain.Complaint
		err        error
	)
	if principal.Role == domain.RoleCustomer {
		complaints, err = h.complaints.ListComplaintsForUser(c.Context(), principal.User.ID)
	} else {
		complaints, err = h.complaints.ListComplaints(c.Context())
	}
	if err != nil {
		return err
	}

	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetComplaint GET /complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	complaint, err := h.complaints.GetComplaint(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// UpdateComplaint PUT /complaints/:id. Whether this route requires a token
// is a router-level configuration choice, not assumed here.
func (h *ComplaintsHandler) UpdateComplaint(c *fiber.Ctx) error {
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	complaint, err := h.complaints.UpdateComplaint(c.Context(), c.Params("id"), service.ComplaintUpdateInput{
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Contact: req.Contact,
		Comment: req.Comment,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// DeleteComplaint DELETE /complaints/:id.
func (h *ComplaintsHandler) DeleteComplaint(c *fiber.Ctx) error {
	if err := h.complaints.DeleteComplaint(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func (h *ComplaintsHandler) storeUploads(c *fiber.Ctx) ([]service.AttachmentInput, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File["attachments"]
	if len(files) == 0 {
		return nil, nil
	}

	result := make([]service.AttachmentInput, 0, len(files))
	for _, header := range files {
		if header.Size > h.uploads.ComplaintMaxBytes {
			return nil, apperrors.NewValidationError("attachment exceeds size cap", map[string]any{
				"file":      header.Filename,
				"max_bytes": h.uploads.ComplaintMaxBytes,
			})
		}
		contentType := header.Header.Get("Content-Type")
		if !typeAllowed(contentType, h.uploads.ComplaintAllowedTypes) {
			return nil, apperrors.NewValidationError("attachment type not allowed", map[string]any{
				"file": header.Filename,
				"type": contentType,
			})
		}
		path, err := h.saveOne(c, header, contentType)
		if err != nil {
			return nil, err
		}
		result = append(result, service.AttachmentInput{
			StoragePath:  path,
			DisplayName:  strings.TrimSuffix(header.Filename, pathExt(header.Filename)),
			OriginalName: header.Filename,
		})
	}
	return result, nil
}

func (h *ComplaintsHandler) saveOne(c *fiber.Ctx, header *multipart.FileHeader, contentType string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", apperrors.MapError(err)
	}
	defer file.Close()

	path, err := h.blobs.Save(c.Context(), complaintUploadsFolder, storage.Upload{
		Reader:       file,
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
	})
	if err != nil {
		return "", apperrors.MapError(err)
	}
	return path, nil
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, contentType) {
			return true
		}
	}
	return false
}

func pathExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx:]
	}
	return ""
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	attachments := make([]dto.AttachmentResponse, 0, len(complaint.Attachments))
	for _, att := range complaint.Attachments {
		attachments = append(attachments, dto.AttachmentResponse{
			ID:           att.ID,
			StoragePath:  att.StoragePath,
			DisplayName:  att.DisplayName,
			OriginalName: att.OriginalName,
		})
	}
	resp := dto.ComplaintResponse{
		ID:          complaint.ID,
		UserID:      complaint.UserID,
		Address:     complaint.Address,
		City:        complaint.City,
		State:       complaint.State,
		Contact:     complaint.Contact,
		Comment:     complaint.Comment,
		Status:      complaint.Status,
		Attachments: attachments,
		CreatedAt:   complaint.CreatedAt,
	}
	if complaint.Submitter != nil {
		submitter := userResponse(complaint.Submitter)
		resp.Submitter = &submitter
	}
	return resp
}
