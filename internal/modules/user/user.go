package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// Role determines which surfaces of the application a user can reach.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCashier  Role = "cashier"
	RoleCustomer Role = "customer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleCustomer:
		return true
	}
	return false
}

// User represents an account in the system. OrderCount and TotalSpent are
// denormalized from the orders collection and updated when an order is placed.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Role         Role        `json:"role"`
	OrderCount   int         `json:"order_count"`
	TotalSpent   money.Paise `json:"total_spent"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
