package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Customer  *CustomerHandler
	Provider  *ProviderHandler
	Employee  *EmployeeHandler
	Booking   *BookingHandler
	Complaint *ComplaintHandler
	Feedback  *FeedbackHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Customer:  NewCustomerHandler(service.Identity, log),
		Provider:  NewProviderHandler(service.Identity, log),
		Employee:  NewEmployeeHandler(service.Employee, log),
		Booking:   NewBookingHandler(service.Booking, service.Notification, log),
		Complaint: NewComplaintHandler(service.Complaint, log),
		Feedback:  NewFeedbackHandler(service.Feedback, log),
	}
}

// decodeAndValidate writes a 400 and returns false when the body is unusable
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if n, ok := dst.(request.Normalizer); ok {
		n.Normalize()
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// handleServiceError maps usecase error kinds to HTTP statuses.
// Unexpected errors are logged and never shown to the client.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	msg := usecase.Message(err)

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case errors.Is(err, usecase.ErrInvalidCredential):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, msg)

	case errors.Is(err, usecase.ErrStaleBooking):
		log.Warn(operation+" failed - stale booking", zap.Error(err))
		utils.ResponseConflict(w, msg)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrInvalidCode),
		errors.Is(err, usecase.ErrDuplicateEmail):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// principal writes a 401 and returns false when the request is unauthenticated
func principal(w http.ResponseWriter, r *http.Request) (actor entity.Principal, ok bool) {
	actor, ok = utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return actor, ok
}
