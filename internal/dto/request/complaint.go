package request

import "time"

type CreateComplaintRequest struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Description   string     `json:"description" validate:"required"`
	ServiceType   string     `json:"serviceType,omitempty" validate:"omitempty,max=100"`
	DateOfService *time.Time `json:"dateOfService,omitempty"`
}

type ComplaintStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateFeedbackRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Comment string `json:"comment" validate:"required"`
	Stars   int    `json:"stars" validate:"required,min=1,max=5"`
}
