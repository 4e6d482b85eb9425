package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/realtime"
)

// FanoutService forwards domain events to the realtime broadcaster. The
// event type doubles as the wire-level event name, and the payload is
// pushed as-is: the full record for create/update, the bare id for delete.
type FanoutService struct {
	dispatcher  events.Dispatcher
	broadcaster realtime.Broadcaster
	logger      *zap.Logger
}

// NewFanoutService creates the service.
func NewFanoutService(dispatcher events.Dispatcher, broadcaster realtime.Broadcaster, logger *zap.Logger) *FanoutService {
	return &FanoutService{
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// RegisterHandlers subscribes to every broadcastable event.
func (f *FanoutService) RegisterHandlers() {
	if f.dispatcher == nil {
		return
	}
	f.dispatcher.Subscribe(events.EventComplaintCreated, f.relay)
	f.dispatcher.Subscribe(events.EventComplaintUpdated, f.relay)
	f.dispatcher.Subscribe(events.EventComplaintDeleted, f.relay)
	f.dispatcher.Subscribe(events.EventNewMessage, f.relay)
}

func (f *FanoutService) relay(_ context.Context, event events.Event) error {
	f.logger.Debug("relaying event to realtime clients",
		zap.String("event", string(event.Type)),
		zap.String("event_id", event.ID))
	f.broadcaster.Broadcast(string(event.Type), event.Payload)
	return nil
}
