package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AssignmentRepository encapsulates assignment persistence. Assignments are
// insert-only in this system; there is no update or delete path.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByComplaint(ctx context.Context, complaintID string) (*domain.Assignment, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Assignment, error)
	List(ctx context.Context) ([]domain.Assignment, error)
	CountActiveByAgent(ctx context.Context, agentID string) (int, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. The complaint_id unique index is the authoritative guard
// against concurrent duplicate assignments.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (agent_id, complaint_id, agent_name, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, assigned_at`
	return r.pool.QueryRow(ctx, query,
		assignment.AgentID,
		assignment.ComplaintID,
		assignment.AgentName,
		assignment.Status,
	).Scan(&assignment.ID, &assignment.AssignedAt)
}

func (r *assignmentRepository) GetByComplaint(ctx context.Context, complaintID string) (*domain.Assignment, error) {
	const query = `
        SELECT id, agent_id, complaint_id, agent_name, status, assigned_at
        FROM assignments WHERE complaint_id=$1`
	var assignment domain.Assignment
	if err := r.pool.QueryRow(ctx, query, complaintID).Scan(
		&assignment.ID,
		&assignment.AgentID,
		&assignment.ComplaintID,
		&assignment.AgentName,
		&assignment.Status,
		&assignment.AssignedAt,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) ListByAgent(ctx context.Context, agentID string) ([]domain.Assignment, error) {
	return r.listJoined(ctx, `WHERE a.agent_id=$1`, agentID)
}

func (r *assignmentRepository) List(ctx context.Context) ([]domain.Assignment, error) {
	return r.listJoined(ctx, ``)
}

// CountActiveByAgent counts the agent's assignments whose complaint is not
// Resolved, by the live status of each referenced complaint. Snapshot read;
// not transactionally consistent with concurrent writers.
func (r *assignmentRepository) CountActiveByAgent(ctx context.Context, agentID string) (int, error) {
	const query = `
        SELECT COUNT(*)
        FROM assignments a
        JOIN complaints c ON c.id = a.complaint_id
        WHERE a.agent_id=$1 AND c.status <> $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, agentID, domain.ComplaintStatusResolved).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// listJoined attaches the referenced complaint and, transitively, its
// submitting user to each assignment. The SQL join stands in for the
// document store's reference-following reads.
func (r *assignmentRepository) listJoined(ctx context.Context, where string, args ...any) ([]domain.Assignment, error) {
	query := `
        SELECT a.id, a.agent_id, a.complaint_id, a.agent_name, a.status, a.assigned_at,
               c.id, c.user_id, c.address, c.city, c.state, c.contact, c.comment, c.status, c.created_at,
               u.id, u.name, u.email, u.phone, u.role, u.created_at
        FROM assignments a
        LEFT JOIN complaints c ON c.id = a.complaint_id
        LEFT JOIN users u ON u.id = c.user_id
        ` + where
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJoinedAssignments(rows)
}

func scanJoinedAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	var result []domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		var (
			cID, cUserID, cAddress, cCity, cState, cContact, cComment, cStatus *string
			cCreatedAt                                                         *time.Time
			uID, uName, uEmail, uPhone, uRole                                  *string
			uCreatedAt                                                         *time.Time
		)
		if err := rows.Scan(
			&assignment.ID,
			&assignment.AgentID,
			&assignment.ComplaintID,
			&assignment.AgentName,
			&assignment.Status,
			&assignment.AssignedAt,
			&cID, &cUserID, &cAddress, &cCity, &cState, &cContact, &cComment, &cStatus, &cCreatedAt,
			&uID, &uName, &uEmail, &uPhone, &uRole, &uCreatedAt,
		); err != nil {
			return nil, err
		}
		if cID != nil {
			attached := &domain.Complaint{
				ID:      *cID,
				UserID:  deref(cUserID),
				Address: deref(cAddress),
				City:    deref(cCity),
				State:   deref(cState),
				Contact: deref(cContact),
				Comment: deref(cComment),
				Status:  domain.ComplaintStatus(deref(cStatus)),
			}
			if cCreatedAt != nil {
				attached.CreatedAt = *cCreatedAt
			}
			if uID != nil {
				attached.Submitter = &domain.User{
					ID:    *uID,
					Name:  deref(uName),
					Email: deref(uEmail),
					Phone: deref(uPhone),
					Role:  domain.UserRole(deref(uRole)),
				}
				if uCreatedAt != nil {
					attached.Submitter.CreatedAt = *uCreatedAt
				}
			}
			assignment.Complaint = attached
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
