package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for bookings.
//
// History queries return bookings ordered by start descending, with id
// descending as the tie-breaker so pagination stays deterministic when two
// bookings share a start time.
type Repository interface {
	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by id, or a not-found error.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByBooker retrieves all bookings requested by a user.
	FindByBooker(ctx context.Context, bookerID uuid.UUID) ([]*Booking, error)

	// FindByBookerAndStatus retrieves a user's bookings in a given status.
	FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status Status) ([]*Booking, error)

	// FindByOwner retrieves all bookings of items listed by a user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Booking, error)

	// FindByOwnerAndStatus retrieves bookings of a user's items in a given status.
	FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status Status) ([]*Booking, error)

	// FindNextForItem retrieves the earliest APPROVED booking of the item
	// starting strictly after the given instant, or nil if there is none.
	FindNextForItem(ctx context.Context, itemID uuid.UUID, after time.Time) (*Booking, error)

	// FindLastForItem retrieves the most recent APPROVED booking of the item
	// starting strictly before the given instant, or nil if there is none.
	FindLastForItem(ctx context.Context, itemID uuid.UUID, before time.Time) (*Booking, error)

	// HasCompletedBooking reports whether the user has an APPROVED booking
	// of the item that ended strictly before the given instant.
	HasCompletedBooking(ctx context.Context, itemID, bookerID uuid.UUID, before time.Time) (bool, error)

	// UpdateStatusIfWaiting atomically moves the booking from WAITING to the
	// target status. It returns false, with no change, when the booking is
	// no longer WAITING: the compare-and-set that makes decisions race-safe.
	UpdateStatusIfWaiting(ctx context.Context, id uuid.UUID, target Status, at time.Time) (bool, error)
}
