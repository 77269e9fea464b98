package request

type LocationRequest struct {
	Longitude float64 `json:"longitude" validate:"longitude"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
}

type RegisterProviderRequest struct {
	Name          string          `json:"name" validate:"required,min=2,max=100"`
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=6"`
	ContactNumber string          `json:"contactNumber" validate:"required,min=7,max=20"`
	City          string          `json:"city" validate:"required"`
	Address       string          `json:"address" validate:"required"`
	Location      LocationRequest `json:"location"`
	ReferralCode  string          `json:"referralCode,omitempty" validate:"omitempty,min=4,max=32"`
}

type UpdateProviderRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ContactNumber *string `json:"contactNumber,omitempty" validate:"omitempty,min=7,max=20"`
	City          *string `json:"city,omitempty"`
	Address       *string `json:"address,omitempty"`
	ReferralCode  *string `json:"referralCode,omitempty" validate:"omitempty,min=4,max=32"`
}
