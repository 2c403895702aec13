// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/akuzmin/notehub/internal/model"
)

// UserRepository provides credential storage keyed by normalized email.
type UserRepository interface {
	// Create inserts a new user. The store-level unique constraint on email
	// is authoritative: a duplicate insert fails with errs.ErrEmailTaken.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
