package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func newComplaintFixture() (*ComplaintService, *fakeComplaintRepo, *recordingDispatcher) {
	complaints := newFakeComplaintRepo()
	dispatcher := newRecordingDispatcher()
	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo:  complaints,
		AttachmentRepo: &fakeAttachmentRepo{},
		Dispatcher:     dispatcher,
	})
	return svc, complaints, dispatcher
}

func TestCreateComplaintStartsPending(t *testing.T) {
	svc, _, dispatcher := newComplaintFixture()

	complaint, err := svc.CreateComplaint(context.Background(), "user-1", ComplaintCreateInput{
		Address: "12 Canal St",
		City:    "Pune",
		Comment: "  streetlight out  ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusPending, complaint.Status)
	assert.Equal(t, "streetlight out", complaint.Comment)
	assert.NotEmpty(t, complaint.ID)

	published := dispatcher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventComplaintCreated, published[0].Type)
	assert.NotEmpty(t, published[0].ID)
	assert.False(t, published[0].Timestamp.IsZero())
}

func TestCreateComplaintStoresAttachments(t *testing.T) {
	svc, _, _ := newComplaintFixture()

	complaint, err := svc.CreateComplaint(context.Background(), "user-1", ComplaintCreateInput{
		Comment: "overflowing bin",
		Attachments: []AttachmentInput{
			{StoragePath: "complaints/a.jpg", DisplayName: "a", OriginalName: "a.jpg"},
			{StoragePath: "complaints/b.pdf", DisplayName: "b", OriginalName: "b.pdf"},
		},
	})
	require.NoError(t, err)
	require.Len(t, complaint.Attachments, 2)
	assert.Equal(t, complaint.ID, complaint.Attachments[0].ComplaintID)
	assert.Equal(t, "complaints/b.pdf", complaint.Attachments[1].StoragePath)
}

func TestUpdateComplaintAppliesFieldsVerbatim(t *testing.T) {
	svc, _, dispatcher := newComplaintFixture()

	complaint, err := svc.CreateComplaint(context.Background(), "user-1", ComplaintCreateInput{Comment: "noise"})
	require.NoError(t, err)

	city := "Nashik"
	status := "EscalatedToMayor"
	updated, err := svc.UpdateComplaint(context.Background(), complaint.ID, ComplaintUpdateInput{
		City:   &city,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nashik", updated.City)
	// Status is free text; whatever the caller writes sticks.
	assert.Equal(t, domain.ComplaintStatus("EscalatedToMayor"), updated.Status)
	assert.Equal(t, "noise", updated.Comment)

	published := dispatcher.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventComplaintUpdated, published[1].Type)
}

func TestUpdateComplaintUnknownID(t *testing.T) {
	svc, _, _ := newComplaintFixture()
	city := "Nagpur"
	_, err := svc.UpdateComplaint(context.Background(), "missing", ComplaintUpdateInput{City: &city})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDeleteComplaintEmitsIDOnly(t *testing.T) {
	svc, complaints, dispatcher := newComplaintFixture()

	complaint, err := svc.CreateComplaint(context.Background(), "user-1", ComplaintCreateInput{Comment: "potholes"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComplaint(context.Background(), complaint.ID))

	_, err = complaints.GetByID(context.Background(), complaint.ID)
	require.Error(t, err)

	published := dispatcher.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventComplaintDeleted, published[1].Type)
	payload, ok := published[1].Payload.(events.ComplaintDeletedPayload)
	require.True(t, ok)
	assert.Equal(t, complaint.ID, payload.ComplaintID)
}

func TestDeleteComplaintUnknownID(t *testing.T) {
	svc, _, dispatcher := newComplaintFixture()
	err := svc.DeleteComplaint(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	assert.Empty(t, dispatcher.Published())
}

func TestListComplaintsForUserFilters(t *testing.T) {
	svc, _, _ := newComplaintFixture()

	_, err := svc.CreateComplaint(context.Background(), "user-1", ComplaintCreateInput{Comment: "one"})
	require.NoError(t, err)
	_, err = svc.CreateComplaint(context.Background(), "user-2", ComplaintCreateInput{Comment: "two"})
	require.NoError(t, err)
	_, err = svc.CreateComplaint(context.Background(), "user-1", ComplaintCreateInput{Comment: "three"})
	require.NoError(t, err)

	mine, err := svc.ListComplaintsForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListComplaints(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
