package entity

import "github.com/google/uuid"

// GeoPoint is stored as longitude, latitude (GeoJSON order).
type GeoPoint struct {
	Longitude float64 `db:"longitude" json:"longitude"`
	Latitude  float64 `db:"latitude" json:"latitude"`
}

type Provider struct {
	BaseNoDelete
	Name          string   `db:"name"`
	Email         string   `db:"email"`
	PasswordHash  string   `db:"password_hash"`
	ContactNumber string   `db:"contact_number"`
	City          string   `db:"city"`
	Address       string   `db:"address"`
	Location      GeoPoint `db:"location"`
	ReferralCode  string   `db:"referral_code"`
	IsVerified    bool     `db:"is_verified"`
}

func (p *Provider) AccountID() uuid.UUID { return p.ID }
func (p *Provider) DisplayName() string  { return p.Name }
func (p *Provider) AccountRole() Role    { return RoleProvider }

// ProviderLocation is the public map entry of a verified provider
type ProviderLocation struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	ContactNumber string    `json:"contact_number"`
	Location      GeoPoint  `json:"location"`
}
