package application

import (
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
)

// UserRefDTO is the short user reference embedded in booking views.
type UserRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemRefDTO is the short item reference embedded in booking views.
type ItemRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the externally visible projection of a booking. It is
// assembled on demand and never persisted.
type BookingDTO struct {
	ID     uuid.UUID  `json:"id"`
	Status string     `json:"status"`
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Booker UserRefDTO `json:"booker"`
	Item   ItemRefDTO `json:"item"`
}

// BookingRefDTO is the booking summary attached to an item view for its owner.
type BookingRefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDTO is the response representation of an item. The booking summaries
// are only populated when the viewer owns the item.
type ItemDTO struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"ownerId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	RequestID   *uuid.UUID     `json:"requestId,omitempty"`
	LastBooking *BookingRefDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingRefDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO   `json:"comments,omitempty"`
}

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// RequestDTO is the response representation of an item request, together
// with the items listed in answer to it.
type RequestDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []ItemDTO `json:"items"`
}

func toBookingDTO(b *bookingDomain.Booking, bookerName, itemName string) BookingDTO {
	return BookingDTO{
		ID:     b.ID(),
		Status: b.Status().String(),
		Start:  b.Start(),
		End:    b.End(),
		Booker: UserRefDTO{ID: b.BookerID(), Name: bookerName},
		Item:   ItemRefDTO{ID: b.ItemID(), Name: itemName},
	}
}

func toBookingRefDTO(b *bookingDomain.Booking) *BookingRefDTO {
	if b == nil {
		return nil
	}
	return &BookingRefDTO{
		ID:       b.ID(),
		BookerID: b.BookerID(),
		Start:    b.Start(),
		End:      b.End(),
	}
}

func toItemDTO(i *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          i.ID(),
		OwnerID:     i.OwnerID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		RequestID:   i.RequestID(),
	}
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:    u.ID(),
		Name:  u.Name(),
		Email: u.Email(),
	}
}
