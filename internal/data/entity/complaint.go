package entity

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
)

type Complaint struct {
	BaseNoDelete
	CustomerID    uuid.UUID       `db:"customer_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	ServiceType   string          `db:"service_type"`
	DateOfService *time.Time      `db:"date_of_service"`
	Status        ComplaintStatus `db:"status"`

	// populated on list
	Customer *AccountSummary `db:"-"`
}
