package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingView names the listings exposed over HTTP
type BookingView string

const (
	ViewBookingRequests   BookingView = "booking-requests"
	ViewPending           BookingView = "pending"
	ViewCustomerAccepted  BookingView = "customer-accepted"
	ViewCustomerRejected  BookingView = "customer-rejected"
	ViewCustomerHistory   BookingView = "customer-history"
	ViewProviderAccepted  BookingView = "provider-accepted"
	ViewEmployeeAssigned  BookingView = "employee-assigned"
	ViewEmployeeCompleted BookingView = "employee-completed"
)

type BookingService interface {
	Create(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	List(ctx context.Context, view BookingView, actor entity.Principal) ([]response.BookingResponse, error)

	// SetStatus accepts or rejects a pending booking on behalf of a provider
	SetStatus(ctx context.Context, actor entity.Principal, req *request.BookingStatusRequest) (*response.BookingResponse, error)
	Assign(ctx context.Context, actor entity.Principal, req *request.AssignTaskRequest) (*response.BookingResponse, error)
	Complete(ctx context.Context, actor entity.Principal, req *request.CompleteTaskRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	lifecycle LifecycleService
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, lifecycle LifecycleService, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		lifecycle: lifecycle,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req, "create booking", s.log); err != nil {
		return nil, err
	}

	for field, value := range map[string]string{
		"service":      req.Service,
		"price":        req.Price,
		"address":      req.Address,
		"vehicle":      req.Vehicle,
		"vehicleModel": req.VehicleModel,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, newError(ErrValidation, "Field %s is required", field)
		}
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:   customerID,
		Service:      strings.TrimSpace(req.Service),
		Price:        strings.TrimSpace(req.Price),
		Address:      strings.TrimSpace(req.Address),
		Vehicle:      strings.TrimSpace(req.Vehicle),
		VehicleModel: strings.TrimSpace(req.VehicleModel),
		Preferences:  req.Preferences,
		Status:       entity.BookingStatusPending,
		Version:      1,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("customer_id", customerID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) List(ctx context.Context, view BookingView, actor entity.Principal) ([]response.BookingResponse, error) {
	filter, err := viewFilter(view, actor)
	if err != nil {
		return nil, err
	}

	details, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s bookings: %w", view, err)
	}

	result := make([]response.BookingResponse, 0, len(details))
	for _, d := range details {
		result = append(result, response.BookingDetailToResponse(d))
	}
	return result, nil
}

// viewFilter scopes each listing to the acting account where it has an owner
func viewFilter(view BookingView, actor entity.Principal) (entity.BookingFilter, error) {
	id := actor.ID

	switch view {
	case ViewBookingRequests:
		return entity.BookingFilter{}, nil
	case ViewPending:
		return entity.BookingFilter{Status: entity.BookingStatusPending}, nil
	case ViewCustomerAccepted:
		return entity.BookingFilter{Status: entity.BookingStatusAccepted, CustomerID: &id}, nil
	case ViewCustomerRejected:
		return entity.BookingFilter{Status: entity.BookingStatusRejected, CustomerID: &id}, nil
	case ViewCustomerHistory:
		return entity.BookingFilter{CustomerID: &id}, nil
	case ViewProviderAccepted:
		return entity.BookingFilter{Status: entity.BookingStatusAccepted, ProviderID: &id}, nil
	case ViewEmployeeAssigned:
		return entity.BookingFilter{Status: entity.BookingStatusAccepted, EmployeeID: &id}, nil
	case ViewEmployeeCompleted:
		return entity.BookingFilter{Status: entity.BookingStatusCompleted, EmployeeID: &id, Order: entity.OrderUpdatedDesc}, nil
	}

	return entity.BookingFilter{}, newError(ErrValidation, "Unknown booking view %q", view)
}

func (s *bookingService) SetStatus(ctx context.Context, actor entity.Principal, req *request.BookingStatusRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req, "set booking status", s.log); err != nil {
		return nil, err
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid booking ID")
	}

	status := entity.BookingStatus(req.Status)
	if !status.Valid() || status == entity.BookingStatusPending {
		return nil, newError(ErrInvalidStatus, "Invalid status %q", req.Status)
	}

	var booking *entity.Booking
	switch status {
	case entity.BookingStatusAccepted:
		booking, err = s.lifecycle.Accept(ctx, bookingID, actor)
	case entity.BookingStatusRejected:
		booking, err = s.lifecycle.Reject(ctx, bookingID, actor)
	default:
		// completion belongs to the assigned employee
		existing, findErr := s.repo.Booking.FindByID(ctx, bookingID)
		if findErr != nil {
			return nil, fmt.Errorf("set booking status: %w", findErr)
		}
		if existing == nil {
			return nil, newError(ErrNotFound, "Booking not found")
		}
		return nil, newError(ErrInvalidTransition, "Cannot complete a booking from booking-status, the assigned employee completes it")
	}
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Assign(ctx context.Context, actor entity.Principal, req *request.AssignTaskRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req, "assign task", s.log); err != nil {
		return nil, err
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid booking ID")
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid employee ID")
	}

	booking, err := s.lifecycle.Assign(ctx, bookingID, employeeID, actor)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Complete(ctx context.Context, actor entity.Principal, req *request.CompleteTaskRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req, "complete task", s.log); err != nil {
		return nil, err
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid booking ID")
	}

	booking, err := s.lifecycle.Complete(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
