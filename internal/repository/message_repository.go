package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// MessageRepository manages complaint thread messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, complaintID, excludeSender string) (int64, error)
	UnreadCounts(ctx context.Context, excludeSender string) (map[string]int, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (complaint_id, sender_name, body, attachments)
        VALUES ($1,$2,$3,$4)
        RETURNING id, read, sent_at`
	attachments := msg.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		msg.ComplaintID,
		msg.SenderName,
		msg.Body,
		attachments,
	).Scan(&msg.ID, &msg.Read, &msg.SentAt)
}

func (r *messageRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.Message, error) {
	const query = `
        SELECT id, complaint_id, sender_name, body, attachments, read, sent_at
        FROM messages WHERE complaint_id=$1 ORDER BY sent_at ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ComplaintID,
			&msg.SenderName,
			&msg.Body,
			&msg.Attachments,
			&msg.Read,
			&msg.SentAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// MarkRead flips read to true for every unread message on the complaint
// whose sender differs from excludeSender. Read state never goes back to
// false, so repeated calls are no-ops.
func (r *messageRepository) MarkRead(ctx context.Context, complaintID, excludeSender string) (int64, error) {
	const query = `
        UPDATE messages SET read=TRUE
        WHERE complaint_id=$1 AND sender_name<>$2 AND read=FALSE`
	cmd, err := r.pool.Exec(ctx, query, complaintID, excludeSender)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// UnreadCounts aggregates unread messages per complaint across the whole
// store, excluding the caller's own messages by sender name.
func (r *messageRepository) UnreadCounts(ctx context.Context, excludeSender string) (map[string]int, error) {
	const query = `
        SELECT complaint_id, COUNT(*)
        FROM messages
        WHERE read=FALSE AND sender_name<>$1
        GROUP BY complaint_id`
	rows, err := r.pool.Query(ctx, query, excludeSender)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var complaintID string
		var count int
		if err := rows.Scan(&complaintID, &count); err != nil {
			return nil, err
		}
		counts[complaintID] = count
	}
	return counts, rows.Err()
}
