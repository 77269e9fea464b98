package response

import (
	"time"

	"carwash-marketplace/internal/data/entity"
)

type ComplaintResponse struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	ServiceType   string                  `json:"serviceType,omitempty"`
	DateOfService *time.Time              `json:"dateOfService,omitempty"`
	Status        entity.ComplaintStatus  `json:"status"`
	Customer      *AccountSummaryResponse `json:"customer,omitempty"`
	CustomerID    string                  `json:"customerId"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

type FeedbackResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"created_at"`
}

func ComplaintToResponse(c *entity.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:            c.ID.String(),
		Title:         c.Title,
		Description:   c.Description,
		ServiceType:   c.ServiceType,
		DateOfService: c.DateOfService,
		Status:        c.Status,
		Customer:      summaryToResponse(c.Customer),
		CustomerID:    c.CustomerID.String(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FeedbackToResponse(f *entity.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID.String(),
		Name:      f.Name,
		Comment:   f.Comment,
		Stars:     f.Stars,
		CreatedAt: f.CreatedAt,
	}
}
