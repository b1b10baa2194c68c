package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*User, error)
	Save(ctx context.Context, user *User) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
