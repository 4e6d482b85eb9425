package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AttachmentRepository manages complaint attachment references.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.ComplaintAttachment) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.ComplaintAttachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository builds repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) Create(ctx context.Context, att *domain.ComplaintAttachment) error {
	const query = `
        INSERT INTO complaint_attachments (complaint_id, storage_path, display_name, original_name)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		att.ComplaintID,
		att.StoragePath,
		att.DisplayName,
		att.OriginalName,
	).Scan(&att.ID, &att.CreatedAt)
}

func (r *attachmentRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.ComplaintAttachment, error) {
	const query = `
        SELECT id, complaint_id, storage_path, display_name, original_name, created_at
        FROM complaint_attachments WHERE complaint_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintAttachment
	for rows.Next() {
		var att domain.ComplaintAttachment
		if err := rows.Scan(
			&att.ID,
			&att.ComplaintID,
			&att.StoragePath,
			&att.DisplayName,
			&att.OriginalName,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
