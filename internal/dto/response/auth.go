package response

import (
	"time"

	"carwash-marketplace/internal/data/entity"
)

type AuthResponse struct {
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expires_at"`
	Role      entity.Role            `json:"role"`
	Account   AccountSummaryResponse `json:"account"`
}

type CustomerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

// Helper converters
func CustomerToResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Email:      c.Email,
		IsVerified: c.IsVerified,
		CreatedAt:  c.CreatedAt,
	}
}
