package adaptor

import (
	"net/http"

	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type FeedbackHandler struct {
	service usecase.FeedbackService
	log     *zap.Logger
}

func NewFeedbackHandler(service usecase.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log.With(zap.String("handler", "feedback")),
	}
}

// Create handles POST /feedback
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	feedback, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create feedback")
		return
	}

	utils.ResponseCreated(w, "Thanks for your feedback", feedback)
}

// List handles GET /feedback?page=&per_page=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	feedback, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list feedback")
		return
	}

	utils.ResponseSuccess(w, "success", feedback)
}
