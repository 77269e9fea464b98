package response

import (
	"time"

	"carwash-marketplace/internal/data/entity"
)

type EmployeeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CNIC         string    `json:"cnic"`
	ProviderID   string    `json:"providerId"`
	ReferralCode string    `json:"referralCode"`
	CreatedAt    time.Time `json:"created_at"`
}

type ApplicationResponse struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	CNIC         string                   `json:"cnic"`
	ReferralCode string                   `json:"referralCode"`
	ProviderID   string                   `json:"providerId"`
	Status       entity.ApplicationStatus `json:"status"`
	CreatedAt    time.Time                `json:"created_at"`
}

func EmployeeToResponse(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		CNIC:         e.CNIC,
		ProviderID:   e.ProviderID.String(),
		ReferralCode: e.ReferralCode,
		CreatedAt:    e.CreatedAt,
	}
}

func ApplicationToResponse(a *entity.EmployeeApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		CNIC:         a.CNIC,
		ReferralCode: a.ReferralCode,
		ProviderID:   a.ProviderID.String(),
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
	}
}
