package usecase

import (
	"context"
	"fmt"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/pkg/event"
	"carwash-marketplace/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type transition string

const (
	transitionAccept   transition = "accept"
	transitionReject   transition = "reject"
	transitionAssign   transition = "assign"
	transitionComplete transition = "complete"
)

var transitionEvents = map[transition]entity.BookingEventType{
	transitionAccept:   entity.BookingEventAccepted,
	transitionReject:   entity.BookingEventRejected,
	transitionAssign:   entity.BookingEventAssigned,
	transitionComplete: entity.BookingEventCompleted,
}

// LifecycleService sequences every booking state change.
// A rejected transition leaves the stored booking untouched.
type LifecycleService interface {
	Accept(ctx context.Context, bookingID uuid.UUID, actor entity.Principal) (*entity.Booking, error)
	Reject(ctx context.Context, bookingID uuid.UUID, actor entity.Principal) (*entity.Booking, error)
	Assign(ctx context.Context, bookingID, employeeID uuid.UUID, actor entity.Principal) (*entity.Booking, error)
	Complete(ctx context.Context, bookingID uuid.UUID, actor entity.Principal) (*entity.Booking, error)
}

type lifecycleService struct {
	repo      *repository.Repository
	notifier  NotificationService
	publisher event.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

func NewLifecycleService(
	repo *repository.Repository,
	notifier NotificationService,
	publisher event.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) LifecycleService {
	return &lifecycleService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		metrics:   m,
		log:       log.With(zap.String("service", "lifecycle")),
		now:       time.Now,
	}
}

func (s *lifecycleService) Accept(ctx context.Context, bookingID uuid.UUID, actor entity.Principal) (*entity.Booking, error) {
	return s.run(ctx, bookingID, transitionAccept, actor, nil)
}

func (s *lifecycleService) Reject(ctx context.Context, bookingID uuid.UUID, actor entity.Principal) (*entity.Booking, error) {
	return s.run(ctx, bookingID, transitionReject, actor, nil)
}

func (s *lifecycleService) Assign(ctx context.Context, bookingID, employeeID uuid.UUID, actor entity.Principal) (*entity.Booking, error) {
	employee, err := s.repo.Employee.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("assign booking: %w", err)
	}
	if employee == nil {
		return nil, newError(ErrNotFound, "Employee not found")
	}

	return s.run(ctx, bookingID, transitionAssign, actor, employee)
}

func (s *lifecycleService) Complete(ctx context.Context, bookingID uuid.UUID, actor entity.Principal) (*entity.Booking, error) {
	booking, err := s.run(ctx, bookingID, transitionComplete, actor, nil)
	if err != nil {
		return nil, err
	}

	s.notifyCompletion(ctx, booking)
	return booking, nil
}

func (s *lifecycleService) run(
	ctx context.Context,
	bookingID uuid.UUID,
	t transition,
	actor entity.Principal,
	employee *entity.Employee,
) (*entity.Booking, error) {
	current, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s booking: %w", t, err)
	}
	if current == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}

	next, err := applyTransition(*current, t, actor, employee)
	if err != nil {
		s.log.Warn("Booking transition refused",
			zap.Error(err),
			zap.String("transition", string(t)),
			zap.String("booking_id", current.ID.String()),
			zap.String("status", string(current.Status)),
			zap.String("actor_id", actor.ID.String()),
		)
		return nil, err
	}
	next.UpdatedAt = s.now()

	ok, err := s.repo.Booking.UpdateIfVersion(ctx, &next, current.Version)
	if err != nil {
		return nil, fmt.Errorf("%s booking: %w", t, err)
	}
	if !ok {
		return nil, newError(ErrStaleBooking, "Booking was changed by another request, reload and retry")
	}

	s.log.Info("Booking transition stored",
		zap.String("transition", string(t)),
		zap.String("booking_id", next.ID.String()),
		zap.String("status", string(next.Status)),
	)

	s.metrics.BookingTransition(string(t), string(next.Status))
	s.publish(ctx, t, &next)

	return &next, nil
}

// applyTransition is the booking state machine. It returns the updated copy or
// an error without touching b.
//
//	Pending  --accept-->   Accepted  (provider stamped)
//	Pending  --reject-->   Rejected
//	Accepted --assign-->   Accepted  (accepting provider, own employee)
//	Accepted --complete--> Completed (assigned employee)
func applyTransition(b entity.Booking, t transition, actor entity.Principal, employee *entity.Employee) (entity.Booking, error) {
	switch t {
	case transitionAccept, transitionReject:
		if !actor.ActsAsProvider() {
			return b, newError(ErrForbidden, "Only providers can accept or reject bookings")
		}
		if b.Status != entity.BookingStatusPending {
			return b, newError(ErrInvalidTransition, "Cannot %s a booking that is %s", t, b.Status)
		}
		if t == transitionAccept {
			providerID := actor.ID
			b.Status = entity.BookingStatusAccepted
			b.ProviderID = &providerID
		} else {
			b.Status = entity.BookingStatusRejected
		}
		return b, nil

	case transitionAssign:
		if !actor.ActsAsProvider() {
			return b, newError(ErrForbidden, "Only providers can assign bookings")
		}
		if employee == nil {
			return b, newError(ErrNotFound, "Employee not found")
		}
		if b.Status != entity.BookingStatusAccepted {
			return b, newError(ErrInvalidTransition, "Cannot assign a booking that is %s", b.Status)
		}
		if !b.AcceptedBy(actor.ID) {
			return b, newError(ErrForbidden, "Booking does not belong to this provider")
		}
		if employee.ProviderID != actor.ID {
			return b, newError(ErrForbidden, "Employee does not belong to this provider")
		}
		employeeID := employee.ID
		b.AssignedEmployeeID = &employeeID
		return b, nil

	case transitionComplete:
		if !actor.ActsAsEmployee() {
			return b, newError(ErrForbidden, "Only employees can complete bookings")
		}
		if b.Status != entity.BookingStatusAccepted {
			return b, newError(ErrInvalidTransition, "Cannot complete a booking that is %s", b.Status)
		}
		if !b.AssignedTo(actor.ID) {
			return b, newError(ErrForbidden, "Employee not assigned to this booking")
		}
		b.Status = entity.BookingStatusCompleted
		return b, nil
	}

	return b, newError(ErrInvalidTransition, "Unknown transition %q", t)
}

// notifyCompletion writes the provider notification then the customer one.
// Failures are logged and counted, the completion already stands.
func (s *lifecycleService) notifyCompletion(ctx context.Context, b *entity.Booking) {
	var notes []pendingNotification
	if b.ProviderID != nil {
		notes = append(notes, pendingNotification{
			recipient: *b.ProviderID,
			kind:      entity.NotificationTaskCompleted,
			message:   fmt.Sprintf("Task for %s has been completed", b.Service),
		})
	}
	notes = append(notes, pendingNotification{
		recipient: b.CustomerID,
		kind:      entity.NotificationServiceCompleted,
		message:   fmt.Sprintf("Your %s service has been completed", b.Service),
	})

	for _, n := range notes {
		if err := s.notifier.Notify(ctx, n.recipient, n.kind, b.ID, n.message); err != nil {
			s.metrics.NotificationFailed()
			s.log.Error("Failed to write completion notification",
				zap.Error(err),
				zap.String("booking_id", b.ID.String()),
				zap.String("recipient_id", n.recipient.String()),
				zap.String("type", string(n.kind)),
			)
		}
	}
}

type pendingNotification struct {
	recipient uuid.UUID
	kind      entity.NotificationType
	message   string
}

func (s *lifecycleService) publish(ctx context.Context, t transition, b *entity.Booking) {
	evt := entity.BookingEvent{
		Type:       transitionEvents[t],
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		ProviderID: b.ProviderID,
		EmployeeID: b.AssignedEmployeeID,
		Status:     b.Status,
		OccurredAt: b.UpdatedAt,
	}

	if err := s.publisher.PublishBooking(ctx, evt); err != nil {
		s.metrics.EventFailed()
		s.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(evt.Type)),
			zap.String("booking_id", b.ID.String()),
		)
	}
}
