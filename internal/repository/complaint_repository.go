package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	SetStatus(ctx context.Context, id string, status domain.ComplaintStatus) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error)
	Delete(ctx context.Context, id string) error
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, address, city, state, contact, comment, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		complaint.UserID,
		complaint.Address,
		complaint.City,
		complaint.State,
		complaint.Contact,
		complaint.Comment,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt)
}

// Update writes every mutable field verbatim, status included. Transition
// checks do not belong here; the generic update operation is unguarded.
func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET address=$1, city=$2, state=$3, contact=$4, comment=$5, status=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		complaint.Address,
		complaint.City,
		complaint.State,
		complaint.Contact,
		complaint.Comment,
		complaint.Status,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) SetStatus(ctx context.Context, id string, status domain.ComplaintStatus) error {
	const query = `UPDATE complaints SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `
        SELECT id, user_id, address, city, state, contact, comment, status, created_at
        FROM complaints WHERE id=$1`
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.Address,
		&complaint.City,
		&complaint.State,
		&complaint.Contact,
		&complaint.Comment,
		&complaint.Status,
		&complaint.CreatedAt,
	); err != nil {
		return nil, err
	}
	attachments, err := r.listAttachments(ctx, complaint.ID)
	if err != nil {
		return nil, err
	}
	complaint.Attachments = attachments
	return &complaint, nil
}

func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	const query = `
        SELECT id, user_id, address, city, state, contact, comment, status, created_at
        FROM complaints`
	return r.queryMany(ctx, query)
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	const query = `
        SELECT id, user_id, address, city, state, contact, comment, status, created_at
        FROM complaints WHERE user_id=$1`
	return r.queryMany(ctx, query, userID)
}

// Delete removes the complaint record only. Assignments, messages, and
// feedback that reference it are left in place and stay queryable by id.
func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.UserID,
			&complaint.Address,
			&complaint.City,
			&complaint.State,
			&complaint.Contact,
			&complaint.Comment,
			&complaint.Status,
			&complaint.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}

func (r *complaintRepository) listAttachments(ctx context.Context, complaintID string) ([]domain.ComplaintAttachment, error) {
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
