package adaptor

import (
	"net/http"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type ProviderHandler struct {
	service usecase.IdentityService
	log     *zap.Logger
}

func NewProviderHandler(service usecase.IdentityService, log *zap.Logger) *ProviderHandler {
	return &ProviderHandler{
		service: service,
		log:     log.With(zap.String("handler", "provider")),
	}
}

// Register handles POST /providers/register
func (h *ProviderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterProviderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.RegisterProvider(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "register provider")
		return
	}

	utils.ResponseCreated(w, "Registration successful. Check your email for the verification code.", nil)
}

// VerifyEmail handles POST /providers/verifyemail
func (h *ProviderHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.VerifyProvider(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "verify provider")
		return
	}

	utils.ResponseSuccess(w, "Email verified", nil)
}

// Login handles POST /providers/login, the role is fixed to provider
func (h *ProviderHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.Role = string(entity.RoleProvider)

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "provider login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}

// CheckEmail handles POST /providers/check-email
func (h *ProviderHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req request.CheckEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.CheckProviderEmail(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "check provider email")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Me handles GET /providers/me
func (h *ProviderHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	provider, err := h.service.GetProvider(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "get provider")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// Update handles PUT /providers/update
func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.UpdateProviderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	provider, err := h.service.UpdateProvider(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update provider")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", provider)
}

// Locations handles GET /providers/locations
func (h *ProviderHandler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListProviderLocations(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list provider locations")
		return
	}

	utils.ResponseSuccess(w, "success", locations)
}
