package response

import (
	"time"

	"carwash-marketplace/internal/data/entity"
)

type ProviderResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	ContactNumber string          `json:"contactNumber"`
	City          string          `json:"city"`
	Address       string          `json:"address"`
	Location      entity.GeoPoint `json:"location"`
	ReferralCode  string          `json:"referralCode"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ProviderToResponse(p *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Email:         p.Email,
		ContactNumber: p.ContactNumber,
		City:          p.City,
		Address:       p.Address,
		Location:      p.Location,
		ReferralCode:  p.ReferralCode,
		CreatedAt:     p.CreatedAt,
	}
}
