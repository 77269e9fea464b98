package usecase

import (
	"context"
	"testing"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComplaintService_Create(t *testing.T) {
	ctx := context.Background()
	complaints := new(mockComplaintRepo)
	svc := NewComplaintService(&repository.Repository{Complaint: complaints}, testLogger())
	customerID := uuid.New()

	complaints.On("Create", ctx, mock.MatchedBy(func(c *entity.Complaint) bool {
		return c.CustomerID == customerID && c.Status == entity.ComplaintStatusPending
	})).Return(nil)

	resp, err := svc.Create(ctx, customerID, &request.CreateComplaintRequest{Title: "Scratch", Description: "Door scratched"})

	require.NoError(t, err)
	assert.Equal(t, "Scratch", resp.Title)
	complaints.AssertExpectations(t)

	_, err = svc.Create(ctx, customerID, &request.CreateComplaintRequest{Title: "No description"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	complaints := new(mockComplaintRepo)
	svc := NewComplaintService(&repository.Repository{Complaint: complaints}, testLogger())

	existing := &entity.Complaint{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Title: "Scratch", Status: entity.ComplaintStatusPending}
	missing := uuid.New()

	complaints.On("FindByID", ctx, existing.ID).Return(existing, nil)
	complaints.On("FindByID", ctx, missing).Return(nil, nil)
	complaints.On("UpdateStatus", ctx, existing.ID, entity.ComplaintStatusInProgress, mock.Anything).Return(nil)

	_, err := svc.UpdateStatus(ctx, existing.ID, &request.ComplaintStatusRequest{Status: "Closed"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, missing, &request.ComplaintStatusRequest{Status: "Resolved"})
	assert.ErrorIs(t, err, ErrNotFound)

	resp, err := svc.UpdateStatus(ctx, existing.ID, &request.ComplaintStatusRequest{Status: "In Progress"})
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintStatusInProgress, resp.Status)
}
