package repository

import (
	"errors"

	"carwash-marketplace/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Repository struct {
	Customer     CustomerRepository
	Provider     ProviderRepository
	Employee     EmployeeRepository
	Booking      BookingRepository
	Notification NotificationRepository
	Complaint    ComplaintRepository
	Feedback     FeedbackRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Customer:     NewCustomerRepository(db, log),
		Provider:     NewProviderRepository(db, log),
		Employee:     NewEmployeeRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Complaint:    NewComplaintRepository(db, log),
		Feedback:     NewFeedbackRepository(db, log),
	}
}

// IsUniqueViolation reports whether err wraps a Postgres unique_violation
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
