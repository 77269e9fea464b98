package entity

import "github.com/google/uuid"

type Employee struct {
	BaseSimple
	Name           string    `db:"name"`
	NormalizedName string    `db:"normalized_name"`
	CNIC           string    `db:"cnic"`
	ProviderID     uuid.UUID `db:"provider_id"`
	ReferralCode   string    `db:"referral_code"`
}

func (e *Employee) AccountID() uuid.UUID { return e.ID }
func (e *Employee) DisplayName() string  { return e.Name }
func (e *Employee) AccountRole() Role    { return RoleEmployee }

type ApplicationStatus string

const (
	ApplicationStatusPending ApplicationStatus = "pending"
)

// EmployeeApplication waits for the owning provider to accept or reject it.
type EmployeeApplication struct {
	BaseSimple
	Name         string            `db:"name"`
	CNIC         string            `db:"cnic"`
	ReferralCode string            `db:"referral_code"`
	ProviderID   uuid.UUID         `db:"provider_id"`
	Status       ApplicationStatus `db:"status"`
}
