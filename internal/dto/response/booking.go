package response

import (
	"time"

	"carwash-marketplace/internal/data/entity"
)

type AccountSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type BookingResponse struct {
	ID               string                  `json:"id"`
	CustomerID       string                  `json:"customerId"`
	ProviderID       *string                 `json:"providerId,omitempty"`
	AssignedEmployee *string                 `json:"assignedEmployee,omitempty"`
	Service          string                  `json:"service"`
	Price            string                  `json:"price"`
	Address          string                  `json:"address"`
	Vehicle          string                  `json:"vehicle"`
	VehicleModel     string                  `json:"vehicleModel"`
	Preferences      *string                 `json:"preferences,omitempty"`
	Status           entity.BookingStatus    `json:"status"`
	Customer         *AccountSummaryResponse `json:"customer,omitempty"`
	Provider         *AccountSummaryResponse `json:"provider,omitempty"`
	Employee         *AccountSummaryResponse `json:"employee,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

type NotificationResponse struct {
	ID             string                  `json:"id"`
	Type           entity.NotificationType `json:"type"`
	BookingID      string                  `json:"bookingId"`
	BookingService string                  `json:"bookingService,omitempty"`
	Message        string                  `json:"message"`
	Read           bool                    `json:"read"`
	CreatedAt      time.Time               `json:"created_at"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID.String(),
		CustomerID:   b.CustomerID.String(),
		Service:      b.Service,
		Price:        b.Price,
		Address:      b.Address,
		Vehicle:      b.Vehicle,
		VehicleModel: b.VehicleModel,
		Preferences:  b.Preferences,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.ProviderID != nil {
		id := b.ProviderID.String()
		resp.ProviderID = &id
	}
	if b.AssignedEmployeeID != nil {
		id := b.AssignedEmployeeID.String()
		resp.AssignedEmployee = &id
	}

	return resp
}

func BookingDetailToResponse(d *entity.BookingDetail) BookingResponse {
	resp := BookingToResponse(&d.Booking)
	resp.Customer = summaryToResponse(d.Customer)
	resp.Provider = summaryToResponse(d.Provider)
	resp.Employee = summaryToResponse(d.Employee)
	return resp
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID.String(),
		Type:           n.Type,
		BookingID:      n.BookingID.String(),
		BookingService: n.BookingService,
		Message:        n.Message,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

func summaryToResponse(s *entity.AccountSummary) *AccountSummaryResponse {
	if s == nil {
		return nil
	}
	return &AccountSummaryResponse{
		ID:    s.ID.String(),
		Name:  s.Name,
		Email: s.Email,
	}
}
