package service

import (
	"context"
	"strings"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// MessageService manages the append-only message log per complaint.
type MessageService struct {
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, dispatcher: dispatcher}
}

// MessageCreateInput describes a new thread entry.
type MessageCreateInput struct {
	ComplaintID string
	SenderName  string
	Body        string
	Attachments []string
}

// CreateMessage appends a message. The complaint id is taken as given; no
// existence check is performed, matching the append-only contract.
func (s *MessageService) CreateMessage(ctx context.Context, input MessageCreateInput) (*domain.Message, error) {
	msg := &domain.Message{
		ComplaintID: input.ComplaintID,
		SenderName:  strings.TrimSpace(input.SenderName),
		Body:        input.Body,
		Attachments: input.Attachments,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventNewMessage,
		Payload: events.MessagePayload{Message: msg},
	})
	return msg, nil
}

// ListMessages returns the complaint's thread ordered by send time
// ascending. A missing complaint id yields an empty thread, not an error.
func (s *MessageService) ListMessages(ctx context.Context, complaintID string) ([]domain.Message, error) {
	msgs, err := s.messages.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}

// MarkRead flips the read flag for every message on the complaint not sent
// by callerName. Read state only ever moves false to true, so the call is
// idempotent.
func (s *MessageService) MarkRead(ctx context.Context, complaintID, callerName string) (int64, error) {
	updated, err := s.messages.MarkRead(ctx, complaintID, callerName)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return updated, nil
}

// UnreadCounts aggregates unread messages per complaint for the caller,
// across every complaint in the store.
func (s *MessageService) UnreadCounts(ctx context.Context, callerName string) (map[string]int, error) {
	counts, err := s.messages.UnreadCounts(ctx, callerName)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}
