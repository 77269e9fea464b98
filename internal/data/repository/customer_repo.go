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

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error

	// Staging records
	CreateUnverified(ctx context.Context, customer *entity.UnverifiedCustomer) error
	FindUnverifiedByEmail(ctx context.Context, email string) (*entity.UnverifiedCustomer, error)
	Promote(ctx context.Context, unverifiedID uuid.UUID, customer *entity.Customer) error
	DeleteUnverifiedBefore(ctx context.Context, before time.Time) (int64, error)
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const insertCustomerSQL = `
	INSERT INTO customers (id, name, email, password_hash, is_verified, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Create inserts a verified customer record
func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	_, err := r.db.Exec(ctx, insertCustomerSQL,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.PasswordHash,
		customer.IsVerified,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT id, name, email, password_hash, is_verified, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return customer, nil
}

// FindByEmail matches case-insensitively
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `
		SELECT id, name, email, password_hash, is_verified, created_at, updated_at
		FROM customers
		WHERE LOWER(email) = LOWER($1)
	`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find customer by email %s: %w", email, err)
	}

	return customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", customer.ID.String())
	}

	return nil
}

func (r *customerRepository) CreateUnverified(ctx context.Context, customer *entity.UnverifiedCustomer) error {
	query := `
		INSERT INTO unverified_customers (id, name, email, password_hash, verification_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.PasswordHash,
		customer.VerificationCode,
		customer.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create unverified customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create unverified customer %s: %w", customer.Email, err)
	}

	return nil
}

func (r *customerRepository) FindUnverifiedByEmail(ctx context.Context, email string) (*entity.UnverifiedCustomer, error) {
	query := `
		SELECT id, name, email, password_hash, verification_code, created_at
		FROM unverified_customers
		WHERE LOWER(email) = LOWER($1)
	`

	var customer entity.UnverifiedCustomer
	err := r.db.QueryRow(ctx, query, email).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.PasswordHash,
		&customer.VerificationCode,
		&customer.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find unverified customer",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find unverified customer %s: %w", email, err)
	}

	return &customer, nil
}

// Promote inserts the verified customer and drops the staging record atomically
func (r *customerRepository) Promote(ctx context.Context, unverifiedID uuid.UUID, customer *entity.Customer) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertCustomerSQL,
			customer.ID,
			customer.Name,
			customer.Email,
			customer.PasswordHash,
			customer.IsVerified,
			customer.CreatedAt,
			customer.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM unverified_customers WHERE id = $1`, unverifiedID)
		if err != nil {
			return fmt.Errorf("delete unverified customer: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("unverified customer %s not found", unverifiedID.String())
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to promote customer",
			zap.Error(err),
			zap.String("unverified_id", unverifiedID.String()),
		)
		return fmt.Errorf("promote customer %s: %w", customer.Email, err)
	}

	return nil
}

func (r *customerRepository) DeleteUnverifiedBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM unverified_customers WHERE created_at < $1`, before)
	if err != nil {
		r.log.Error("Failed to purge unverified customers", zap.Error(err))
		return 0, fmt.Errorf("purge unverified customers: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var customer entity.Customer
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.PasswordHash,
		&customer.IsVerified,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
