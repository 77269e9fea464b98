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

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, type, booking_id, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		notification.ID,
		notification.RecipientID,
		notification.Type,
		notification.BookingID,
		notification.Message,
		notification.Read,
		notification.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("recipient_id", notification.RecipientID.String()),
			zap.String("booking_id", notification.BookingID.String()),
		)
		return fmt.Errorf("create notification for %s: %w", notification.RecipientID.String(), err)
	}

	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, type, booking_id, message, is_read, created_at
		FROM notifications
		WHERE id = $1
	`

	var n entity.Notification
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.RecipientID,
		&n.Type,
		&n.BookingID,
		&n.Message,
		&n.Read,
		&n.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find notification by ID",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return nil, fmt.Errorf("find notification by ID %s: %w", id.String(), err)
	}

	return &n, nil
}

// ListByRecipient returns newest first with the booking's service name
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entity.Notification, error) {
	query := `
		SELECT n.id, n.recipient_id, n.type, n.booking_id, n.message, n.is_read, n.created_at,
		       COALESCE(b.service, '')
		FROM notifications n
		LEFT JOIN bookings b ON b.id = n.booking_id
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, recipientID)
	if err != nil {
		r.log.Error("Failed to list notifications",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return nil, fmt.Errorf("list notifications for %s: %w", recipientID.String(), err)
	}
	defer rows.Close()

	notifications := []*entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.Type,
			&n.BookingID,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
			&n.BookingService,
		); err != nil {
			r.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s not found", id.String())
	}

	return nil
}
