package adaptor

import (
	"net/http"

	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type EmployeeHandler struct {
	service usecase.EmployeeService
	log     *zap.Logger
}

func NewEmployeeHandler(service usecase.EmployeeService, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		log:     log.With(zap.String("handler", "employee")),
	}
}

// Apply handles POST /employees/register
func (h *EmployeeHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req request.EmployeeApplyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := h.service.Apply(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "employee apply")
		return
	}

	utils.ResponseCreated(w, "Application submitted", app)
}

// Login handles POST /employees/login
func (h *EmployeeHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.EmployeeLoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "employee login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}

// Applications handles GET /employees/unverified
func (h *EmployeeHandler) Applications(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	apps, err := h.service.ListApplications(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "list applications")
		return
	}

	utils.ResponseSuccess(w, "success", apps)
}

// Decide handles POST /employees/verify
func (h *EmployeeHandler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.DecideApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Decide(r.Context(), actor.ID, &req); err != nil {
		handleServiceError(h.log, w, err, "decide application")
		return
	}

	utils.ResponseSuccess(w, "Application processed", nil)
}

// ProviderEmployees handles GET /employees/provider-employees
func (h *EmployeeHandler) ProviderEmployees(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	employees, err := h.service.ListByProvider(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "list employees")
		return
	}

	utils.ResponseSuccess(w, "success", employees)
}

// Profile handles GET /employees/profile
func (h *EmployeeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	employee, err := h.service.GetProfile(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "get employee profile")
		return
	}

	utils.ResponseSuccess(w, "success", employee)
}

// UpdateProfile handles PUT /employees/profile
func (h *EmployeeHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.UpdateEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	employee, err := h.service.UpdateProfile(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update employee profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", employee)
}
