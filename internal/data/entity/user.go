package entity

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleEmployee:
		return true
	}
	return false
}

// Account is the identity shared by customers, providers and employees.
type Account interface {
	AccountID() uuid.UUID
	DisplayName() string
	AccountRole() Role
}

// Principal is the authenticated caller decoded from a session token.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

func (p Principal) ActsAsCustomer() bool { return p.Role == RoleCustomer }
func (p Principal) ActsAsProvider() bool { return p.Role == RoleProvider }
func (p Principal) ActsAsEmployee() bool { return p.Role == RoleEmployee }

// AccountSummary is the public projection used when populating bookings, never credentials.
type AccountSummary struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type Customer struct {
	BaseNoDelete
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	IsVerified   bool   `db:"is_verified"`
}

func (c *Customer) AccountID() uuid.UUID { return c.ID }
func (c *Customer) DisplayName() string  { return c.Name }
func (c *Customer) AccountRole() Role    { return RoleCustomer }
