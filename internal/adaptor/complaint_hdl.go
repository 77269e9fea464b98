package adaptor

import (
	"net/http"

	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	service usecase.ComplaintService
	log     *zap.Logger
}

func NewComplaintHandler(service usecase.ComplaintService, log *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		service: service,
		log:     log.With(zap.String("handler", "complaint")),
	}
}

// Create handles POST /complaints/create (customer)
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CreateComplaintRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	complaint, err := h.service.Create(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create complaint")
		return
	}

	utils.ResponseCreated(w, "Complaint submitted", complaint)
}

// List handles GET /complaints/provider
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list complaints")
		return
	}

	utils.ResponseSuccess(w, "success", complaints)
}

// UpdateStatus handles PUT /complaints/{id}/status
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid complaint ID", nil)
		return
	}

	var req request.ComplaintStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	complaint, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update complaint status")
		return
	}

	utils.ResponseSuccess(w, "Complaint updated", complaint)
}
