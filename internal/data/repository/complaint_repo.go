package repository

import (
	"context"
	"fmt"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	ListAll(ctx context.Context) ([]*entity.Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ComplaintStatus, updatedAt time.Time) error
}

type complaintRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewComplaintRepository(db database.PgxIface, log *zap.Logger) ComplaintRepository {
	return &complaintRepository{
		db:  db,
		log: log.With(zap.String("repository", "complaint")),
	}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	query := `
		INSERT INTO complaints (id, customer_id, title, description, service_type,
		                        date_of_service, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		complaint.ID,
		complaint.CustomerID,
		complaint.Title,
		complaint.Description,
		complaint.ServiceType,
		complaint.DateOfService,
		complaint.Status,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create complaint",
			zap.Error(err),
			zap.String("customer_id", complaint.CustomerID.String()),
		)
		return fmt.Errorf("create complaint: %w", err)
	}

	return nil
}

func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	query := `
		SELECT id, customer_id, title, description, service_type, date_of_service,
		       status, created_at, updated_at
		FROM complaints
		WHERE id = $1
	`

	var c entity.Complaint
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.CustomerID,
		&c.Title,
		&c.Description,
		&c.ServiceType,
		&c.DateOfService,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find complaint by ID",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
		)
		return nil, fmt.Errorf("find complaint by ID %s: %w", id.String(), err)
	}

	return &c, nil
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	query := `
		SELECT cp.id, cp.customer_id, cp.title, cp.description, cp.service_type,
		       cp.date_of_service, cp.status, cp.created_at, cp.updated_at,
		       c.name, c.email
		FROM complaints cp
		JOIN customers c ON c.id = cp.customer_id
		ORDER BY cp.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list complaints", zap.Error(err))
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	complaints := []*entity.Complaint{}
	for rows.Next() {
		var (
			c        entity.Complaint
			customer entity.AccountSummary
		)
		if err := rows.Scan(
			&c.ID,
			&c.CustomerID,
			&c.Title,
			&c.Description,
			&c.ServiceType,
			&c.DateOfService,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
			&customer.Name,
			&customer.Email,
		); err != nil {
			r.log.Error("Failed to scan complaint row", zap.Error(err))
			return nil, fmt.Errorf("scan complaint row: %w", err)
		}
		customer.ID = c.CustomerID
		c.Customer = &customer
		complaints = append(complaints, &c)
	}

	return complaints, rows.Err()
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ComplaintStatus, updatedAt time.Time) error {
	query := `UPDATE complaints SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		r.log.Error("Failed to update complaint status",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update complaint %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("complaint %s not found", id.String())
	}

	return nil
}
