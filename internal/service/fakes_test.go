package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
)

type fakeComplaintRepo struct {
	mu     sync.Mutex
	seq    int
	items  map[string]*domain.Complaint
	order  []string
	getErr error
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{items: make(map[string]*domain.Complaint)}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	complaint.ID = fmt.Sprintf("complaint-%d", r.seq)
	complaint.CreatedAt = time.Now()
	stored := *complaint
	r.items[complaint.ID] = &stored
	r.order = append(r.order, complaint.ID)
	return nil
}

func (r *fakeComplaintRepo) Update(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[complaint.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *complaint
	r.items[complaint.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) SetStatus(_ context.Context, id string, status domain.ComplaintStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	complaint.Status = status
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	complaint, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *complaint
	return &clone, nil
}

func (r *fakeComplaintRepo) List(_ context.Context) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Complaint, 0, len(r.order))
	for _, id := range r.order {
		if complaint, ok := r.items[id]; ok {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (r *fakeComplaintRepo) ListByUser(_ context.Context, userID string) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Complaint
	for _, id := range r.order {
		if complaint, ok := r.items[id]; ok && complaint.UserID == userID {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (r *fakeComplaintRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeAttachmentRepo struct {
	mu    sync.Mutex
	seq   int
	items []domain.ComplaintAttachment
}

func (r *fakeAttachmentRepo) Create(_ context.Context, att *domain.ComplaintAttachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	att.ID = fmt.Sprintf("attachment-%d", r.seq)
	r.items = append(r.items, *att)
	return nil
}

func (r *fakeAttachmentRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.ComplaintAttachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ComplaintAttachment
	for _, att := range r.items {
		if att.ComplaintID == complaintID {
			out = append(out, att)
		}
	}
	return out, nil
}

// fakeAssignmentRepo mirrors the storage guarantees: a unique index on the
// complaint id, and an active count derived from the complaint's status.
type fakeAssignmentRepo struct {
	mu          sync.Mutex
	seq         int
	byComplaint map[string]*domain.Assignment
	complaints  *fakeComplaintRepo
	// hideFromGet makes the advisory pre-read miss, simulating a
	// concurrent insert that lands between the read and the write.
	hideFromGet bool
}

func newFakeAssignmentRepo(complaints *fakeComplaintRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{byComplaint: make(map[string]*domain.Assignment), complaints: complaints}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byComplaint[assignment.ComplaintID]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "assignments_complaint_id_key"}
	}
	r.seq++
	assignment.ID = fmt.Sprintf("assignment-%d", r.seq)
	assignment.AssignedAt = time.Now()
	stored := *assignment
	r.byComplaint[assignment.ComplaintID] = &stored
	return nil
}

func (r *fakeAssignmentRepo) GetByComplaint(_ context.Context, complaintID string) (*domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.byComplaint[complaintID]
	if !ok || r.hideFromGet {
		return nil, pgx.ErrNoRows
	}
	clone := *assignment
	return &clone, nil
}

func (r *fakeAssignmentRepo) ListByAgent(_ context.Context, agentID string) ([]domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Assignment
	for _, assignment := range r.byComplaint {
		if assignment.AgentID == agentID {
			out = append(out, *assignment)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) List(_ context.Context) ([]domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Assignment, 0, len(r.byComplaint))
	for _, assignment := range r.byComplaint {
		out = append(out, *assignment)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) CountActiveByAgent(ctx context.Context, agentID string) (int, error) {
	r.mu.Lock()
	assignments := make([]*domain.Assignment, 0, len(r.byComplaint))
	for _, assignment := range r.byComplaint {
		assignments = append(assignments, assignment)
	}
	r.mu.Unlock()

	count := 0
	for _, assignment := range assignments {
		if assignment.AgentID != agentID {
			continue
		}
		complaint, err := r.complaints.GetByID(ctx, assignment.ComplaintID)
		if err != nil {
			continue
		}
		if complaint.Status != domain.ComplaintStatusResolved {
			count++
		}
	}
	return count, nil
}

type fakeMessageRepo struct {
	mu    sync.Mutex
	seq   int
	items []*domain.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	msg.ID = fmt.Sprintf("message-%d", r.seq)
	msg.SentAt = time.Now()
	msg.Read = false
	stored := *msg
	r.items = append(r.items, &stored)
	return nil
}

func (r *fakeMessageRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, msg := range r.items {
		if msg.ComplaintID == complaintID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, complaintID, excludeSender string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, msg := range r.items {
		if msg.ComplaintID == complaintID && msg.SenderName != excludeSender && !msg.Read {
			msg.Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeMessageRepo) UnreadCounts(_ context.Context, excludeSender string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, msg := range r.items {
		if msg.SenderName != excludeSender && !msg.Read {
			counts[msg.ComplaintID]++
		}
	}
	return counts, nil
}

type fakeFeedbackRepo struct {
	mu    sync.Mutex
	seq   int
	items []*domain.Feedback
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	feedback.ID = fmt.Sprintf("feedback-%d", r.seq)
	feedback.CreatedAt = time.Now()
	stored := *feedback
	r.items = append(r.items, &stored)
	return nil
}

func (r *fakeFeedbackRepo) GetByComplaint(_ context.Context, complaintID string) (*domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, feedback := range r.items {
		if feedback.ComplaintID == complaintID {
			clone := *feedback
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeFeedbackRepo) ListByAgent(_ context.Context, agentID string) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Feedback
	for _, feedback := range r.items {
		if feedback.AgentID != nil && *feedback.AgentID == agentID {
			out = append(out, *feedback)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	stored := *user
	r.items[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	r.items[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.items {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// recordingDispatcher captures published events and still delivers them to
// subscribers, so fan-out wiring can be asserted end to end.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
	listeners map[events.EventType][]events.EventHandler
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{listeners: make(map[events.EventType][]events.EventHandler)}
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, event)
	handlers := append([]events.EventHandler{}, d.listeners[event.Type]...)
	d.mu.Unlock()
	for _, handler := range handlers {
		_ = handler(ctx, event)
	}
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

func (d *recordingDispatcher) Published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.Event, len(d.published))
	copy(out, d.published)
	return out
}
