package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/domain/errs"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/events"
)

// EventPublisher publishes CloudEvents; implemented by events.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to request a booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingService is the application service running the booking lifecycle:
// creation with validation, the owner's approve/reject decision, and
// authorized single-booking retrieval.
type BookingService struct {
	bookings bookingDomain.Repository
	users    userDomain.Repository
	items    itemDomain.Repository
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	users userDomain.Repository,
	items itemDomain.Repository,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		items:    items,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking requests a booking of an item for a time window. Validation
// order: booker exists, item exists, window is well-formed, item is
// available, booker is not the item's owner. The first failure aborts the
// call; nothing is persisted on failure.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	itm, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(bookerID, itm.ID(), req.Start, req.End)
	if err != nil {
		return nil, err
	}

	if !itm.Available() {
		return nil, errs.Unavailable(itm.ID())
	}
	if itm.OwnerID() == booker.ID() {
		return nil, errs.SelfBooking(booker.ID(), itm.ID())
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishRequested(ctx, bk)

	result := toBookingDTO(bk, booker.Name(), itm.Name())
	return &result, nil
}

// DecideBooking lets an item's owner approve or reject a WAITING booking.
// The status transition is a compare-and-set at the store, so of two racing
// decisions exactly one wins and the other fails as already decided.
func (s *BookingService) DecideBooking(ctx context.Context, ownerID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	itm, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if itm.OwnerID() != owner.ID() {
		return nil, errs.NotOwner(owner.ID(), itm.ID())
	}

	// Fast path: refuse a booking that already left WAITING without a write.
	if err := bk.Decide(approve); err != nil {
		return nil, err
	}

	ok, err := s.bookings.UpdateStatusIfWaiting(ctx, bk.ID(), bk.Status(), bk.UpdatedAt())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another decision won the race between our read and the CAS.
		return nil, errs.AlreadyDecided(bk.ID())
	}

	s.publishDecided(ctx, bk, owner.ID())

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, booker.Name(), itm.Name())
	return &result, nil
}

// GetBooking retrieves one booking for a caller who is either the booker or
// the owner of the booked item.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error) {
	caller, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	itm, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(caller.ID()) && itm.OwnerID() != caller.ID() {
		return nil, errs.NotAuthorized(caller.ID(), bk.ID())
	}

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, booker.Name(), itm.Name())
	return &result, nil
}

func (s *BookingService) publishRequested(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.BookingRequested, bk.ID().String(), evt)
}

func (s *BookingService) publishDecided(ctx context.Context, bk *bookingDomain.Booking, ownerID uuid.UUID) {
	eventType := events.BookingApproved
	if bk.Status() == bookingDomain.StatusRejected {
		eventType = events.BookingRejected
	}
	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		OwnerID:    ownerID,
		Status:     bk.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, eventType, bk.ID().String(), evt)
}

// publishEvent is fire-and-forget: a broker outage must not fail a booking
// operation that has already been persisted.
func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-sharing", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
