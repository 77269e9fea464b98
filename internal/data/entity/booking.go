package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusAccepted  BookingStatus = "Accepted"
	BookingStatusRejected  BookingStatus = "Rejected"
	BookingStatusCompleted BookingStatus = "Completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	BaseNoDelete
	CustomerID         uuid.UUID     `db:"customer_id"`
	ProviderID         *uuid.UUID    `db:"provider_id"`
	AssignedEmployeeID *uuid.UUID    `db:"assigned_employee_id"`
	Service            string        `db:"service"`
	Price              string        `db:"price"`
	Address            string        `db:"address"`
	Vehicle            string        `db:"vehicle"`
	VehicleModel       string        `db:"vehicle_model"`
	Preferences        *string       `db:"preferences"`
	Status             BookingStatus `db:"status"`
	Version            int           `db:"version"`
}

// AcceptedBy reports whether providerID is the provider stamped at accept time
func (b *Booking) AcceptedBy(providerID uuid.UUID) bool {
	return b.ProviderID != nil && *b.ProviderID == providerID
}

// AssignedTo reports whether employeeID is the currently assigned employee
func (b *Booking) AssignedTo(employeeID uuid.UUID) bool {
	return b.AssignedEmployeeID != nil && *b.AssignedEmployeeID == employeeID
}

// BookingDetail is a booking with populated account summaries.
type BookingDetail struct {
	Booking
	Customer *AccountSummary
	Provider *AccountSummary
	Employee *AccountSummary
}

type BookingOrder string

const (
	OrderCreatedDesc BookingOrder = "created_desc"
	OrderUpdatedDesc BookingOrder = "updated_desc"
)

// BookingFilter selects bookings for listings, zero fields are not filtered
type BookingFilter struct {
	Status     BookingStatus
	CustomerID *uuid.UUID
	ProviderID *uuid.UUID
	EmployeeID *uuid.UUID
	Order      BookingOrder
}

type BookingEventType string

const (
	BookingEventAccepted  BookingEventType = "booking.accepted"
	BookingEventRejected  BookingEventType = "booking.rejected"
	BookingEventAssigned  BookingEventType = "booking.assigned"
	BookingEventCompleted BookingEventType = "booking.completed"
)

// BookingEvent is published after a lifecycle transition is stored
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  uuid.UUID        `json:"booking_id"`
	CustomerID uuid.UUID        `json:"customer_id"`
	ProviderID *uuid.UUID       `json:"provider_id,omitempty"`
	EmployeeID *uuid.UUID       `json:"employee_id,omitempty"`
	Status     BookingStatus    `json:"status"`
	OccurredAt time.Time        `json:"occurred_at"`
}
