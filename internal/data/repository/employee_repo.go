package repository

import (
	"context"
	"fmt"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	FindByNormalizedName(ctx context.Context, normalizedName string) ([]*entity.Employee, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Employee, error)
	UpdateProfile(ctx context.Context, employee *entity.Employee) error

	// Applications
	CreateApplication(ctx context.Context, app *entity.EmployeeApplication) error
	FindApplicationByID(ctx context.Context, id uuid.UUID) (*entity.EmployeeApplication, error)
	ListApplicationsByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.EmployeeApplication, error)
	ApproveApplication(ctx context.Context, applicationID uuid.UUID, employee *entity.Employee) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
}

type employeeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEmployeeRepository(db database.PgxIface, log *zap.Logger) EmployeeRepository {
	return &employeeRepository{
		db:  db,
		log: log.With(zap.String("repository", "employee")),
	}
}

const selectEmployeeSQL = `
	SELECT id, name, normalized_name, cnic, provider_id, referral_code, created_at
	FROM employees
`

func (r *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := scanEmployee(r.db.QueryRow(ctx, selectEmployeeSQL+` WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find employee by ID",
			zap.Error(err),
			zap.String("employee_id", id.String()),
		)
		return nil, fmt.Errorf("find employee by ID %s: %w", id.String(), err)
	}

	return employee, nil
}

// FindByNormalizedName may return several employees, names are not unique
func (r *employeeRepository) FindByNormalizedName(ctx context.Context, normalizedName string) ([]*entity.Employee, error) {
	rows, err := r.db.Query(ctx, selectEmployeeSQL+` WHERE normalized_name = $1`, normalizedName)
	if err != nil {
		r.log.Error("Failed to find employees by name", zap.Error(err))
		return nil, fmt.Errorf("find employees by name: %w", err)
	}
	defer rows.Close()

	return r.collectEmployees(rows)
}

func (r *employeeRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Employee, error) {
	rows, err := r.db.Query(ctx, selectEmployeeSQL+` WHERE provider_id = $1 ORDER BY name`, providerID)
	if err != nil {
		r.log.Error("Failed to list employees by provider",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("list employees by provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	return r.collectEmployees(rows)
}

func (r *employeeRepository) UpdateProfile(ctx context.Context, employee *entity.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, normalized_name = $3, cnic = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		employee.ID,
		employee.Name,
		employee.NormalizedName,
		employee.CNIC,
	)
	if err != nil {
		r.log.Error("Failed to update employee",
			zap.Error(err),
			zap.String("employee_id", employee.ID.String()),
		)
		return fmt.Errorf("update employee %s: %w", employee.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found", employee.ID.String())
	}

	return nil
}

func (r *employeeRepository) CreateApplication(ctx context.Context, app *entity.EmployeeApplication) error {
	query := `
		INSERT INTO employee_applications (id, name, cnic, referral_code, provider_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		app.ID,
		app.Name,
		app.CNIC,
		app.ReferralCode,
		app.ProviderID,
		app.Status,
		app.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create employee application",
			zap.Error(err),
			zap.String("provider_id", app.ProviderID.String()),
		)
		return fmt.Errorf("create employee application: %w", err)
	}

	return nil
}

const selectApplicationSQL = `
	SELECT id, name, cnic, referral_code, provider_id, status, created_at
	FROM employee_applications
`

func (r *employeeRepository) FindApplicationByID(ctx context.Context, id uuid.UUID) (*entity.EmployeeApplication, error) {
	var app entity.EmployeeApplication
	err := r.db.QueryRow(ctx, selectApplicationSQL+` WHERE id = $1`, id).Scan(
		&app.ID,
		&app.Name,
		&app.CNIC,
		&app.ReferralCode,
		&app.ProviderID,
		&app.Status,
		&app.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find employee application",
			zap.Error(err),
			zap.String("application_id", id.String()),
		)
		return nil, fmt.Errorf("find employee application %s: %w", id.String(), err)
	}

	return &app, nil
}

func (r *employeeRepository) ListApplicationsByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.EmployeeApplication, error) {
	rows, err := r.db.Query(ctx,
		selectApplicationSQL+` WHERE provider_id = $1 AND status = $2 ORDER BY created_at DESC`,
		providerID, entity.ApplicationStatusPending,
	)
	if err != nil {
		r.log.Error("Failed to list employee applications",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("list employee applications: %w", err)
	}
	defer rows.Close()

	apps := []*entity.EmployeeApplication{}
	for rows.Next() {
		var app entity.EmployeeApplication
		if err := rows.Scan(
			&app.ID,
			&app.Name,
			&app.CNIC,
			&app.ReferralCode,
			&app.ProviderID,
			&app.Status,
			&app.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan employee application row", zap.Error(err))
			return nil, fmt.Errorf("scan employee application row: %w", err)
		}
		apps = append(apps, &app)
	}

	return apps, rows.Err()
}

// ApproveApplication creates the employee and removes the application in one transaction
func (r *employeeRepository) ApproveApplication(ctx context.Context, applicationID uuid.UUID, employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, name, normalized_name, cnic, provider_id, referral_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query,
			employee.ID,
			employee.Name,
			employee.NormalizedName,
			employee.CNIC,
			employee.ProviderID,
			employee.ReferralCode,
			employee.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert employee: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM employee_applications WHERE id = $1`, applicationID)
		if err != nil {
			return fmt.Errorf("delete application: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("application %s not found", applicationID.String())
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to approve employee application",
			zap.Error(err),
			zap.String("application_id", applicationID.String()),
		)
		return fmt.Errorf("approve application %s: %w", applicationID.String(), err)
	}

	return nil
}

func (r *employeeRepository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM employee_applications WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete employee application",
			zap.Error(err),
			zap.String("application_id", id.String()),
		)
		return fmt.Errorf("delete employee application %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("employee application %s not found", id.String())
	}

	return nil
}

func (r *employeeRepository) collectEmployees(rows pgx.Rows) ([]*entity.Employee, error) {
	employees := []*entity.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			r.log.Error("Failed to scan employee row", zap.Error(err))
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var employee entity.Employee
	err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.NormalizedName,
		&employee.CNIC,
		&employee.ProviderID,
		&employee.ReferralCode,
		&employee.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
