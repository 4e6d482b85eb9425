package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// FeedbackRepository manages feedback persistence. No uniqueness per
// complaint is enforced; a complaint may accumulate several records.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByComplaint(ctx context.Context, complaintID string) (*domain.Feedback, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (user_id, complaint_id, agent_id, rating, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		feedback.UserID,
		feedback.ComplaintID,
		feedback.AgentID,
		feedback.Rating,
		feedback.Comment,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

// GetByComplaint returns the first feedback record for the complaint in
// natural store order.
func (r *feedbackRepository) GetByComplaint(ctx context.Context, complaintID string) (*domain.Feedback, error) {
	const query = `
        SELECT id, user_id, complaint_id, agent_id, rating, comment, created_at
        FROM feedback WHERE complaint_id=$1 LIMIT 1`
	var feedback domain.Feedback
	if err := r.pool.QueryRow(ctx, query, complaintID).Scan(
		&feedback.ID,
		&feedback.UserID,
		&feedback.ComplaintID,
		&feedback.AgentID,
		&feedback.Rating,
		&feedback.Comment,
		&feedback.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) ListByAgent(ctx context.Context, agentID string) ([]domain.Feedback, error) {
	const query = `
        SELECT f.id, f.user_id, f.complaint_id, f.agent_id, f.rating, f.comment, f.created_at,
               COALESCE(u.name, '')
        FROM feedback f
        LEFT JOIN users u ON u.id = f.user_id
        WHERE f.agent_id=$1`
	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var feedback domain.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.UserID,
			&feedback.ComplaintID,
			&feedback.AgentID,
			&feedback.Rating,
			&feedback.Comment,
			&feedback.CreatedAt,
			&feedback.SubmitterName,
		); err != nil {
			return nil, err
		}
		result = append(result, feedback)
	}
	return result, rows.Err()
}
