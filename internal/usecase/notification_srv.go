package usecase

import (
	"context"
	"fmt"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	// Notify appends a notification, callers treat a failure as non-fatal
	Notify(ctx context.Context, recipientID uuid.UUID, kind entity.NotificationType, bookingID uuid.UUID, message string) error
	List(ctx context.Context, recipientID uuid.UUID) ([]response.NotificationResponse, error)
	MarkRead(ctx context.Context, notificationID, actorID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Notify(ctx context.Context, recipientID uuid.UUID, kind entity.NotificationType, bookingID uuid.UUID, message string) error {
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		RecipientID: recipientID,
		Type:        kind,
		BookingID:   bookingID,
		Message:     message,
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		return fmt.Errorf("notify %s: %w", recipientID.String(), err)
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, recipientID uuid.UUID) ([]response.NotificationResponse, error) {
	items, err := s.repo.Notification.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result := make([]response.NotificationResponse, 0, len(items))
	for _, n := range items {
		result = append(result, response.NotificationToResponse(n))
	}
	return result, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, actorID uuid.UUID) error {
	n, err := s.repo.Notification.FindByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if n == nil {
		return newError(ErrNotFound, "Notification not found")
	}
	if n.RecipientID != actorID {
		return newError(ErrForbidden, "Not your notification")
	}
	if n.Read {
		return nil
	}

	if err := s.repo.Notification.MarkRead(ctx, n.ID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
