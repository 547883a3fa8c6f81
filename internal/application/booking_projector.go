package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
)

// ItemBookingAnnotation carries the next and last approved booking of an
// item. Both are only populated when the viewer owns the item.
type ItemBookingAnnotation struct {
	NextBooking *BookingRefDTO
	LastBooking *BookingRefDTO
}

// BookingProjector derives per-item booking projections: the next and last
// approved booking shown to the owner, and the completed-booking gate for
// comments. The two range queries are independent reads; they are not
// transactionally consistent with concurrent writes, which is acceptable for
// display purposes.
type BookingProjector struct {
	bookings bookingDomain.Repository
	items    itemDomain.Repository
}

// NewBookingProjector creates a new BookingProjector.
func NewBookingProjector(bookings bookingDomain.Repository, items itemDomain.Repository) *BookingProjector {
	return &BookingProjector{bookings: bookings, items: items}
}

// Annotate computes the next/last approved booking summaries of an item for
// a viewer. When the viewer is not the item's owner both fields stay empty.
func (p *BookingProjector) Annotate(ctx context.Context, itemID, viewerID uuid.UUID) (ItemBookingAnnotation, error) {
	itm, err := p.items.FindByID(ctx, itemID)
	if err != nil {
		return ItemBookingAnnotation{}, err
	}
	return p.AnnotateItem(ctx, itm, viewerID)
}

// AnnotateItem is Annotate for an already resolved item, sparing the lookup
// when the caller iterates over a user's items.
func (p *BookingProjector) AnnotateItem(ctx context.Context, itm *itemDomain.Item, viewerID uuid.UUID) (ItemBookingAnnotation, error) {
	if itm.OwnerID() != viewerID {
		return ItemBookingAnnotation{}, nil
	}

	now := time.Now().UTC()
	next, err := p.bookings.FindNextForItem(ctx, itm.ID(), now)
	if err != nil {
		return ItemBookingAnnotation{}, err
	}
	last, err := p.bookings.FindLastForItem(ctx, itm.ID(), now)
	if err != nil {
		return ItemBookingAnnotation{}, err
	}

	return ItemBookingAnnotation{
		NextBooking: toBookingRefDTO(next),
		LastBooking: toBookingRefDTO(last),
	}, nil
}

// IsCommentEligible reports whether the user has an approved booking of the
// item that has already ended, which is what earns the right to comment.
func (p *BookingProjector) IsCommentEligible(ctx context.Context, itemID, authorID uuid.UUID) (bool, error) {
	return p.bookings.HasCompletedBooking(ctx, itemID, authorID, time.Now().UTC())
}
