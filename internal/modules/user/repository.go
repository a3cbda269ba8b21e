package user

import (
	"context"

	"github.com/samytrends/retail-api/internal/money"
)

// Repository defines the interface for user data storage.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, id string, role Role) error
	// RecordOrder bumps the denormalized order count and lifetime spend.
	RecordOrder(ctx context.Context, id string, amount money.Paise) error
}
