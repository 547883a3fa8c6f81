package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
)

// BookingQueryService produces state-filtered, paginated booking history for
// a booker or an item owner. Queries run as an explicit pipeline: fetch the
// candidate set, filter by time category, then slice by offset/limit. The
// store already orders candidates by start descending with id as tie-breaker.
type BookingQueryService struct {
	bookings bookingDomain.Repository
	users    userDomain.Repository
	items    itemDomain.Repository
}

// NewBookingQueryService creates a new BookingQueryService.
func NewBookingQueryService(
	bookings bookingDomain.Repository,
	users userDomain.Repository,
	items itemDomain.Repository,
) *BookingQueryService {
	return &BookingQueryService{
		bookings: bookings,
		users:    users,
		items:    items,
	}
}

// ListForBooker lists a user's own booking requests. The state token is
// case-sensitive; offset skips records after filtering, and limit <= 0 means
// no limit.
func (s *BookingQueryService) ListForBooker(ctx context.Context, userID uuid.UUID, state string, offset, limit int) ([]BookingDTO, error) {
	return s.list(ctx, userID, state, offset, limit, false)
}

// ListForOwner lists the bookings of all items a user has listed.
func (s *BookingQueryService) ListForOwner(ctx context.Context, userID uuid.UUID, state string, offset, limit int) ([]BookingDTO, error) {
	return s.list(ctx, userID, state, offset, limit, true)
}

func (s *BookingQueryService) list(ctx context.Context, userID uuid.UUID, state string, offset, limit int, asOwner bool) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	candidates, err := s.fetchCandidates(ctx, userID, filter, asOwner)
	if err != nil {
		return nil, err
	}

	filtered := filterByTime(candidates, filter, time.Now().UTC())
	page := paginate(filtered, offset, limit)

	return s.buildViews(ctx, page)
}

// fetchCandidates retrieves the base set for a state filter. WAITING and
// REJECTED come from the store pre-filtered by status; the time categories
// share the unfiltered per-actor set.
func (s *BookingQueryService) fetchCandidates(ctx context.Context, userID uuid.UUID, filter bookingDomain.StateFilter, asOwner bool) ([]*bookingDomain.Booking, error) {
	switch filter {
	case bookingDomain.FilterWaiting:
		return s.fetchByStatus(ctx, userID, bookingDomain.StatusWaiting, asOwner)
	case bookingDomain.FilterRejected:
		return s.fetchByStatus(ctx, userID, bookingDomain.StatusRejected, asOwner)
	default:
		if asOwner {
			return s.bookings.FindByOwner(ctx, userID)
		}
		return s.bookings.FindByBooker(ctx, userID)
	}
}

func (s *BookingQueryService) fetchByStatus(ctx context.Context, userID uuid.UUID, status bookingDomain.Status, asOwner bool) ([]*bookingDomain.Booking, error) {
	if asOwner {
		return s.bookings.FindByOwnerAndStatus(ctx, userID, status)
	}
	return s.bookings.FindByBookerAndStatus(ctx, userID, status)
}

// filterByTime keeps the bookings matching a time category relative to now.
// Bounds are strict: a booking starting or ending exactly at now falls into
// none of CURRENT, PAST and FUTURE. Status filters pass everything through
// since their candidate set is already correct.
func filterByTime(bookings []*bookingDomain.Booking, filter bookingDomain.StateFilter, now time.Time) []*bookingDomain.Booking {
	var keep func(*bookingDomain.Booking) bool
	switch filter {
	case bookingDomain.FilterCurrent:
		keep = func(b *bookingDomain.Booking) bool { return b.Start().Before(now) && b.End().After(now) }
	case bookingDomain.FilterPast:
		keep = func(b *bookingDomain.Booking) bool { return b.End().Before(now) }
	case bookingDomain.FilterFuture:
		keep = func(b *bookingDomain.Booking) bool { return b.Start().After(now) }
	default:
		return bookings
	}

	filtered := make([]*bookingDomain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if keep(b) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// paginate slices the already filtered and sorted set: skip offset records,
// keep at most limit. A limit <= 0 keeps everything after the offset.
func paginate(bookings []*bookingDomain.Booking, offset, limit int) []*bookingDomain.Booking {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(bookings) {
		return nil
	}
	end := len(bookings)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return bookings[offset:end]
}

// buildViews assembles booking views, batch-resolving item and booker names.
func (s *BookingQueryService) buildViews(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	itemIDs := make([]uuid.UUID, 0, len(bookings))
	userIDs := make([]uuid.UUID, 0, len(bookings))
	seenItems := make(map[uuid.UUID]bool)
	seenUsers := make(map[uuid.UUID]bool)
	for _, b := range bookings {
		if !seenItems[b.ItemID()] {
			seenItems[b.ItemID()] = true
			itemIDs = append(itemIDs, b.ItemID())
		}
		if !seenUsers[b.BookerID()] {
			seenUsers[b.BookerID()] = true
			userIDs = append(userIDs, b.BookerID())
		}
	}

	items, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookers, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		var itemName, bookerName string
		if itm, ok := items[b.ItemID()]; ok {
			itemName = itm.Name()
		}
		if u, ok := bookers[b.BookerID()]; ok {
			bookerName = u.Name()
		}
		views[i] = toBookingDTO(b, bookerName, itemName)
	}
	return views, nil
}
