package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for users. It doubles as the
// user directory every other service resolves caller identities through.
type Repository interface {
	// FindByID retrieves a user by id, or a not-found error.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDs retrieves the users for the given ids, keyed by id.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)

	// FindAll retrieves every registered user.
	FindAll(ctx context.Context) ([]*User, error)

	// Save persists a new user. A duplicate email yields a conflict error.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// Delete removes a user by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
