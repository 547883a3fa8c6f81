package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for items. Booking validation
// resolves items through it, so it is also the item catalog of the core.
type Repository interface {
	// FindByID retrieves an item by id, or a not-found error.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByIDs retrieves the items for the given ids, keyed by id.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Item, error)

	// FindByOwner retrieves all items listed by a user, oldest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// FindByRequest retrieves items answering a given item request.
	FindByRequest(ctx context.Context, requestID uuid.UUID) ([]*Item, error)

	// Search retrieves available items whose name or description contains
	// the text, case-insensitively.
	Search(ctx context.Context, text string) ([]*Item, error)

	// Save persists a new item.
	Save(ctx context.Context, i *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error
}
