package request

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for item requests.
type Repository interface {
	// FindByID retrieves a request by id, or a not-found error.
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// FindByRequester retrieves a user's own requests, newest first.
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// FindByOthers retrieves requests published by everyone except the
	// given user, newest first.
	FindByOthers(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// Save persists a new request.
	Save(ctx context.Context, r *ItemRequest) error
}
