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

type ComplaintService interface {
	Create(ctx context.Context, customerID uuid.UUID, req *request.CreateComplaintRequest) (*response.ComplaintResponse, error)
	List(ctx context.Context) ([]response.ComplaintResponse, error)
	UpdateStatus(ctx context.Context, complaintID uuid.UUID, req *request.ComplaintStatusRequest) (*response.ComplaintResponse, error)
}

type complaintService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewComplaintService(repo *repository.Repository, log *zap.Logger) ComplaintService {
	return &complaintService{
		repo: repo,
		log:  log.With(zap.String("service", "complaint")),
	}
}

func (s *complaintService) Create(ctx context.Context, customerID uuid.UUID, req *request.CreateComplaintRequest) (*response.ComplaintResponse, error) {
	if err := validateRequest(req, "create complaint", s.log); err != nil {
		return nil, err
	}

	now := time.Now()
	complaint := &entity.Complaint{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:    customerID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		ServiceType:   strings.TrimSpace(req.ServiceType),
		DateOfService: req.DateOfService,
		Status:        entity.ComplaintStatusPending,
	}

	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	resp := response.ComplaintToResponse(complaint)
	return &resp, nil
}

func (s *complaintService) List(ctx context.Context) ([]response.ComplaintResponse, error) {
	complaints, err := s.repo.Complaint.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	result := make([]response.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		result = append(result, response.ComplaintToResponse(c))
	}
	return result, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, complaintID uuid.UUID, req *request.ComplaintStatusRequest) (*response.ComplaintResponse, error) {
	if err := validateRequest(req, "update complaint status", s.log); err != nil {
		return nil, err
	}

	status := entity.ComplaintStatus(req.Status)
	switch status {
	case entity.ComplaintStatusPending, entity.ComplaintStatusInProgress, entity.ComplaintStatusResolved:
	default:
		return nil, newError(ErrInvalidStatus, "Invalid complaint status %q", req.Status)
	}

	complaint, err := s.repo.Complaint.FindByID(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("update complaint status: %w", err)
	}
	if complaint == nil {
		return nil, newError(ErrNotFound, "Complaint not found")
	}

	complaint.Status = status
	complaint.UpdatedAt = time.Now()

	if err := s.repo.Complaint.UpdateStatus(ctx, complaint.ID, complaint.Status, complaint.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update complaint status: %w", err)
	}

	resp := response.ComplaintToResponse(complaint)
	return &resp, nil
}
