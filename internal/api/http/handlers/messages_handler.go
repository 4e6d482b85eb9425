package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/storage"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// MessagesHandler exposes the per-complaint message thread.
type MessagesHandler struct {
	messages *service.MessageService
	blobs    storage.BlobStore
	uploads  config.UploadsConfig
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService, blobs storage.BlobStore, uploads config.UploadsConfig) *MessagesHandler {
	return &MessagesHandler{messages: messageService, blobs: blobs, uploads: uploads}
}

// CreateMessage POST /messages. Like complaint updates, token enforcement
// on this route is decided by router configuration.
func (h *MessagesHandler) CreateMessage(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := checkRequest(&req); err != nil {
		return err
	}

	msg, err := h.messages.CreateMessage(c.Context(), service.MessageCreateInput{
		ComplaintID: req.ComplaintID,
		SenderName:  req.SenderName,
		Body:        req.Body,
		Attachments: req.Attachments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// ListMessages GET /complaints/:id/messages.
func (h *MessagesHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.messages.ListMessages(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, messageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkRead POST /messages/read.
func (h *MessagesHandler) MarkRead(c *fiber.Ctx) error {
	var req dto.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := checkRequest(&req); err != nil {
		return err
	}
	updated, err := h.messages.MarkRead(c.Context(), req.ComplaintID, req.CallerName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": updated}})
}

// UnreadCounts GET /messages/unread?caller=<name>.
func (h *MessagesHandler) UnreadCounts(c *fiber.Ctx) error {
	caller := c.Query("caller")
	if caller == "" {
		return apperrors.NewValidationError("caller is required", nil)
	}
	counts, err := h.messages.UnreadCounts(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// UploadAttachments POST /messages/attachments. Stores the files and
// returns their locators for inclusion in a subsequent message. Unlike
// complaint attachments, neither size nor type is restricted.
func (h *MessagesHandler) UploadAttachments(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	files := form.File["attachments"]
	if len(files) == 0 {
		return apperrors.NewValidationError("no attachments provided", nil)
	}

	paths := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return apperrors.MapError(err)
		}
		path, err := h.blobs.Save(c.Context(), h.uploads.MessageAttachmentsPrefix, storage.Upload{
			Reader:       file,
			OriginalName: header.Filename,
			ContentType:  header.Header.Get("Content-Type"),
			Size:         header.Size,
		})
		file.Close()
		if err != nil {
			return apperrors.MapError(err)
		}
		paths = append(paths, path)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"attachments": paths}})
}

func messageResponse(msg *domain.Message) dto.MessageResponse {
	attachments := msg.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return dto.MessageResponse{
		ID:          msg.ID,
		ComplaintID: msg.ComplaintID,
		SenderName:  msg.SenderName,
		Body:        msg.Body,
		Attachments: attachments,
		Read:        msg.Read,
		SentAt:      msg.SentAt,
	}
}
