// Package booking holds the Booking aggregate, its status state machine,
// the state filter tokens for history queries, and the persistence contract.
package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain/errs"
)

// Booking is the aggregate root of the booking lifecycle. It references the
// booker and the item by id only; the record is the sole owner of its status.
type Booking struct {
	id        uuid.UUID
	bookerID  uuid.UUID
	itemID    uuid.UUID
	status    Status
	start     time.Time
	end       time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking in WAITING status. The window must be
// well-formed: both bounds set and the end strictly after the start.
func NewBooking(bookerID, itemID uuid.UUID, start, end time.Time) (*Booking, error) {
	if bookerID == uuid.Nil {
		return nil, errs.Validation("booker id is required")
	}
	if itemID == uuid.Nil {
		return nil, errs.Validation("item id is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, errs.Validation("booking start and end are required")
	}
	if !end.After(start) {
		return nil, errs.InvalidWindow()
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		bookerID:  bookerID,
		itemID:    itemID,
		status:    StatusWaiting,
		start:     start,
		end:       end,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	bookerID uuid.UUID,
	itemID uuid.UUID,
	status Status,
	start, end time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		bookerID:  bookerID,
		itemID:    itemID,
		status:    status,
		start:     start,
		end:       end,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookerID returns the id of the user who requested the booking.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// ItemID returns the id of the booked item.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Start returns the beginning of the booking window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the booking window.
func (b *Booking) End() time.Time { return b.end }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Decide moves a WAITING booking to APPROVED or REJECTED. A booking that has
// already been decided stays untouched and the call fails. The persisted
// transition additionally goes through the repository's compare-and-set so
// that two racing decisions cannot both win.
func (b *Booking) Decide(approve bool) error {
	target := DecisionStatus(approve)
	if !b.status.CanTransitionTo(target) {
		return errs.AlreadyDecided(b.id)
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// IsBookedBy reports whether the given user requested this booking.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}
