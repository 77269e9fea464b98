package adaptor

import (
	"net/http"

	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type CustomerHandler struct {
	service usecase.IdentityService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.IdentityService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// Register handles POST /register
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.RegisterCustomer(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "register customer")
		return
	}

	utils.ResponseCreated(w, "Registration successful. Check your email for the verification code.", nil)
}

// VerifyEmail handles POST /verify-email
func (h *CustomerHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.VerifyCustomer(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "verify customer")
		return
	}

	utils.ResponseSuccess(w, "Email verified", nil)
}

// CreateUser handles POST /create-user
func (h *CustomerHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "success", customer)
}

// Login handles POST /login
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}

// Me handles GET /me
func (h *CustomerHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "get customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// Update handles PUT /update
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", customer)
}
