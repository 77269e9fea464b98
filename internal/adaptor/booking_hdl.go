package adaptor

import (
	"net/http"

	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service       usecase.BookingService
	notifications usecase.NotificationService
	log           *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, notifications usecase.NotificationService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:       service,
		notifications: notifications,
		log:           log.With(zap.String("handler", "booking")),
	}
}

// Create handles POST /bookings/create (customer)
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.Create(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// List returns a handler serving one booking listing for the caller
func (h *BookingHandler) List(view usecase.BookingView) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(w, r)
		if !ok {
			return
		}

		bookings, err := h.service.List(r.Context(), view, actor)
		if err != nil {
			handleServiceError(h.log, w, err, "list "+string(view)+" bookings")
			return
		}

		utils.ResponseSuccess(w, "success", bookings)
	}
}

// SetStatus handles POST /bookings/booking-status (provider)
func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.BookingStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.SetStatus(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "set booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking "+string(booking.Status), booking)
}

// Assign handles POST /bookings/assign-task (provider)
func (h *BookingHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.AssignTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.Assign(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "assign task")
		return
	}

	utils.ResponseSuccess(w, "Task assigned", booking)
}

// Complete handles POST /bookings/complete-task (employee)
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CompleteTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.Complete(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "complete task")
		return
	}

	utils.ResponseSuccess(w, "Task completed", booking)
}

// Notifications handles GET /bookings/notifications
func (h *BookingHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	items, err := h.notifications.List(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// MarkRead handles POST /bookings/notifications/mark-read
func (h *BookingHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.MarkReadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := uuid.Parse(req.NotificationID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid notification ID", nil)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), id, actor.ID); err != nil {
		handleServiceError(h.log, w, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked as read", nil)
}
