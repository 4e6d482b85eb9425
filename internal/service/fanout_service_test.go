package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/realtime"
)

func TestFanoutRelaysEveryEventType(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	broadcaster := &realtime.RecordingBroadcaster{}
	fanout := NewFanoutService(dispatcher, broadcaster, zap.NewNop())
	fanout.RegisterHandlers()

	ctx := context.Background()
	for _, eventType := range []events.EventType{
		events.EventComplaintCreated,
		events.EventComplaintUpdated,
		events.EventComplaintDeleted,
		events.EventNewMessage,
	} {
		require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: eventType, Payload: "payload"}))
	}

	records := broadcaster.Records()
	require.Len(t, records, 4)
	assert.Equal(t, "complaintCreated", records[0].Event)
	assert.Equal(t, "complaintUpdated", records[1].Event)
	assert.Equal(t, "complaintDeleted", records[2].Event)
	assert.Equal(t, "newMessage", records[3].Event)
}

func TestFanoutWiredThroughComplaintWrites(t *testing.T) {
	complaints := newFakeComplaintRepo()
	dispatcher := newRecordingDispatcher()
	broadcaster := &realtime.RecordingBroadcaster{}
	NewFanoutService(dispatcher, broadcaster, zap.NewNop()).RegisterHandlers()

	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo:  complaints,
		AttachmentRepo: &fakeAttachmentRepo{},
		Dispatcher:     dispatcher,
	})

	complaint, err := svc.CreateComplaint(context.Background(), "user-1", ComplaintCreateInput{Comment: "test"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteComplaint(context.Background(), complaint.ID))

	records := broadcaster.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "complaintCreated", records[0].Event)

	// Deletion pushes the id alone, not a full record.
	assert.Equal(t, "complaintDeleted", records[1].Event)
	payload, ok := records[1].Payload.(events.ComplaintDeletedPayload)
	require.True(t, ok)
	assert.Equal(t, complaint.ID, payload.ComplaintID)
}
