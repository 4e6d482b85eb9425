package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func newFeedbackFixture() (*FeedbackService, *fakeComplaintRepo, *fakeAssignmentRepo) {
	complaints := newFakeComplaintRepo()
	assignments := newFakeAssignmentRepo(complaints)
	svc := NewFeedbackService(&fakeFeedbackRepo{}, assignments)
	return svc, complaints, assignments
}

func TestCreateFeedbackRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _ := newFeedbackFixture()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateFeedback(context.Background(), "user-1", FeedbackCreateInput{
			ComplaintID: "complaint-1",
			Rating:      rating,
		})
		require.Error(t, err, "rating %d must be rejected", rating)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
}

func TestCreateFeedbackDenormalizesAgent(t *testing.T) {
	svc, complaints, assignments := newFeedbackFixture()
	ctx := context.Background()

	complaint := &domain.Complaint{UserID: "user-1", Comment: "resolved issue"}
	require.NoError(t, complaints.Create(ctx, complaint))
	require.NoError(t, assignments.Create(ctx, &domain.Assignment{
		AgentID: "agent-1", ComplaintID: complaint.ID, AgentName: "Asha", Status: "Assigned",
	}))

	feedback, err := svc.CreateFeedback(ctx, "user-1", FeedbackCreateInput{
		ComplaintID: complaint.ID,
		Rating:      4,
		Comment:     "quick turnaround",
	})
	require.NoError(t, err)
	require.NotNil(t, feedback.AgentID)
	assert.Equal(t, "agent-1", *feedback.AgentID)
}

func TestCreateFeedbackWithoutAssignment(t *testing.T) {
	svc, _, _ := newFeedbackFixture()

	feedback, err := svc.CreateFeedback(context.Background(), "user-1", FeedbackCreateInput{
		ComplaintID: "unassigned-complaint",
		Rating:      2,
	})
	require.NoError(t, err)
	assert.Nil(t, feedback.AgentID)
}

func TestFeedbackIsNotUniquePerComplaint(t *testing.T) {
	svc, _, _ := newFeedbackFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.CreateFeedback(ctx, "user-1", FeedbackCreateInput{
			ComplaintID: "complaint-1",
			Rating:      5,
		})
		require.NoError(t, err)
	}

	// The single-record read surfaces one of them.
	first, err := svc.GetFeedbackForComplaint(ctx, "complaint-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 5, first.Rating)
}

func TestGetFeedbackForComplaintNilWhenAbsent(t *testing.T) {
	svc, _, _ := newFeedbackFixture()
	feedback, err := svc.GetFeedbackForComplaint(context.Background(), "complaint-1")
	require.NoError(t, err)
	assert.Nil(t, feedback)
}

func TestListFeedbackForAgent(t *testing.T) {
	svc, complaints, assignments := newFeedbackFixture()
	ctx := context.Background()

	complaint := &domain.Complaint{UserID: "user-1", Comment: "late pickup"}
	require.NoError(t, complaints.Create(ctx, complaint))
	require.NoError(t, assignments.Create(ctx, &domain.Assignment{
		AgentID: "agent-1", ComplaintID: complaint.ID, AgentName: "Asha", Status: "Assigned",
	}))

	_, err := svc.CreateFeedback(ctx, "user-1", FeedbackCreateInput{ComplaintID: complaint.ID, Rating: 3})
	require.NoError(t, err)
	_, err = svc.CreateFeedback(ctx, "user-2", FeedbackCreateInput{ComplaintID: "other", Rating: 1})
	require.NoError(t, err)

	records, err := svc.ListFeedbackForAgent(ctx, "agent-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, complaint.ID, records[0].ComplaintID)
}
