package repository

import (
	"context"
	"fmt"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, filter entity.BookingFilter) ([]*entity.BookingDetail, error)

	// UpdateIfVersion writes status, provider and assignment only when the stored
	// version still equals expectedVersion. It reports false on a lost race.
	UpdateIfVersion(ctx context.Context, booking *entity.Booking, expectedVersion int) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

var bookingColumns = []string{
	"b.id",
	"b.customer_id",
	"b.provider_id",
	"b.assigned_employee_id",
	"b.service",
	"b.price",
	"b.address",
	"b.vehicle",
	"b.vehicle_model",
	"b.preferences",
	"b.status",
	"b.version",
	"b.created_at",
	"b.updated_at",
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns(
			"id",
			"customer_id",
			"service",
			"price",
			"address",
			"vehicle",
			"vehicle_model",
			"preferences",
			"status",
			"version",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.CustomerID,
			booking.Service,
			booking.Price,
			booking.Address,
			booking.Vehicle,
			booking.VehicleModel,
			booking.Preferences,
			booking.Status,
			booking.Version,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking for customer %s: %w", booking.CustomerID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find booking query: %w", err)
	}

	var booking entity.Booking
	err = r.db.QueryRow(ctx, query, args...).Scan(bookingScanTargets(&booking)...)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

// List populates customer, provider and employee summaries, never credentials
func (r *bookingRepository) List(ctx context.Context, filter entity.BookingFilter) ([]*entity.BookingDetail, error) {
	columns := append([]string{}, bookingColumns...)
	columns = append(columns,
		"c.name", "c.email",
		"p.name", "p.email",
		"e.name",
	)

	builder := psql.Select(columns...).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		LeftJoin("providers p ON p.id = b.provider_id").
		LeftJoin("employees e ON e.id = b.assigned_employee_id")

	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.CustomerID != nil {
		builder = builder.Where(squirrel.Eq{"b.customer_id": *filter.CustomerID})
	}
	if filter.ProviderID != nil {
		builder = builder.Where(squirrel.Eq{"b.provider_id": *filter.ProviderID})
	}
	if filter.EmployeeID != nil {
		builder = builder.Where(squirrel.Eq{"b.assigned_employee_id": *filter.EmployeeID})
	}

	switch filter.Order {
	case entity.OrderUpdatedDesc:
		builder = builder.OrderBy("b.updated_at DESC")
	default:
		builder = builder.OrderBy("b.created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("status", string(filter.Status)),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	details := []*entity.BookingDetail{}
	for rows.Next() {
		var (
			detail                      entity.BookingDetail
			customerName, customerEmail string
			providerName, providerEmail *string
			employeeName                *string
		)
		targets := bookingScanTargets(&detail.Booking)
		targets = append(targets, &customerName, &customerEmail, &providerName, &providerEmail, &employeeName)

		if err := rows.Scan(targets...); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}

		detail.Customer = &entity.AccountSummary{
			ID:    detail.CustomerID,
			Name:  customerName,
			Email: customerEmail,
		}
		if detail.ProviderID != nil && providerName != nil {
			detail.Provider = &entity.AccountSummary{ID: *detail.ProviderID, Name: *providerName}
			if providerEmail != nil {
				detail.Provider.Email = *providerEmail
			}
		}
		if detail.AssignedEmployeeID != nil && employeeName != nil {
			detail.Employee = &entity.AccountSummary{ID: *detail.AssignedEmployeeID, Name: *employeeName}
		}

		details = append(details, &detail)
	}

	return details, rows.Err()
}

func (r *bookingRepository) UpdateIfVersion(ctx context.Context, booking *entity.Booking, expectedVersion int) (bool, error) {
	query, args, err := psql.Update("bookings").
		Set("status", booking.Status).
		Set("provider_id", booking.ProviderID).
		Set("assigned_employee_id", booking.AssignedEmployeeID).
		Set("updated_at", booking.UpdatedAt).
		Set("version", expectedVersion+1).
		Where(squirrel.Eq{"id": booking.ID, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return false, fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Booking version conflict",
			zap.String("booking_id", booking.ID.String()),
			zap.Int("expected_version", expectedVersion),
		)
		return false, nil
	}

	booking.Version = expectedVersion + 1
	return true, nil
}

func bookingScanTargets(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.CustomerID,
		&b.ProviderID,
		&b.AssignedEmployeeID,
		&b.Service,
		&b.Price,
		&b.Address,
		&b.Vehicle,
		&b.VehicleModel,
		&b.Preferences,
		&b.Status,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}
