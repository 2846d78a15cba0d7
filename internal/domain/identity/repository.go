package identity

import (
	"context"

	"github.com/google/uuid"
)

// BusinessRepository defines persistence operations for businesses
type BusinessRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)
	Save(ctx context.Context, business *Business) error
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, user *User) error
}
