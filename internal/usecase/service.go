package usecase

import (
	"fmt"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/dto/response"
	"carwash-marketplace/pkg/cache"
	"carwash-marketplace/pkg/event"
	"carwash-marketplace/pkg/mailer"
	"carwash-marketplace/pkg/metrics"
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TokenIssuer interface {
	Issue(subjectID uuid.UUID, role entity.Role) (string, error)
}

type Service struct {
	Identity     IdentityService
	Employee     EmployeeService
	Booking      BookingService
	Lifecycle    LifecycleService
	Notification NotificationService
	Complaint    ComplaintService
	Feedback     FeedbackService
}

// Deps are the infrastructure collaborators shared by the services
type Deps struct {
	Tokens    TokenIssuer
	Mailer    mailer.Mailer
	Cache     cache.LocationCache
	Publisher event.Publisher
	Metrics   *metrics.Metrics
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	notification := NewNotificationService(repo, log)
	lifecycle := NewLifecycleService(repo, notification, deps.Publisher, deps.Metrics, log)

	return &Service{
		Identity:     NewIdentityService(repo, deps.Tokens, deps.Mailer, deps.Cache, config, log),
		Employee:     NewEmployeeService(repo, deps.Tokens, config, log),
		Booking:      NewBookingService(repo, lifecycle, log),
		Lifecycle:    lifecycle,
		Notification: notification,
		Complaint:    NewComplaintService(repo, log),
		Feedback:     NewFeedbackService(repo, log),
	}
}

func validateRequest(req any, op string, log *zap.Logger) error {
	if n, ok := req.(request.Normalizer); ok {
		n.Normalize()
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		log.Warn("Validation failed", zap.String("op", op), zap.Any("errors", errs))
		return newError(ErrValidation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}
	return nil
}

func issueToken(tokens TokenIssuer, ttl time.Duration, account entity.Account, log *zap.Logger) (*response.AuthResponse, error) {
	signed, err := tokens.Issue(account.AccountID(), account.AccountRole())
	if err != nil {
		log.Error("Failed to issue token",
			zap.Error(err),
			zap.String("account_id", account.AccountID().String()),
		)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Info("Account logged in",
		zap.String("account_id", account.AccountID().String()),
		zap.String("role", string(account.AccountRole())),
	)

	return &response.AuthResponse{
		Token:     signed,
		ExpiresAt: time.Now().Add(ttl),
		Role:      account.AccountRole(),
		Account: response.AccountSummaryResponse{
			ID:   account.AccountID().String(),
			Name: account.DisplayName(),
		},
	}, nil
}
