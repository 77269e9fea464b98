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

type FeedbackService interface {
	Create(ctx context.Context, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error)
}

type feedbackService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFeedbackService(repo *repository.Repository, log *zap.Logger) FeedbackService {
	return &feedbackService{
		repo: repo,
		log:  log.With(zap.String("service", "feedback")),
	}
}

func (s *feedbackService) Create(ctx context.Context, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error) {
	if err := validateRequest(req, "create feedback", s.log); err != nil {
		return nil, err
	}

	feedback := &entity.Feedback{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:    strings.TrimSpace(req.Name),
		Comment: strings.TrimSpace(req.Comment),
		Stars:   req.Stars,
	}

	if err := s.repo.Feedback.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	resp := response.FeedbackToResponse(feedback)
	return &resp, nil
}

func (s *feedbackService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error) {
	limit, offset := req.Limit(), req.Offset()

	items, err := s.repo.Feedback.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	total, err := s.repo.Feedback.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}

	data := make([]response.FeedbackResponse, 0, len(items))
	for _, f := range items {
		data = append(data, response.FeedbackToResponse(f))
	}

	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}
