// Package errs defines the typed application errors shared by all services.
// Every validation failure is a distinct kind so the HTTP layer can map each
// one to a status code without inspecting message text.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies the category of an application error.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindValidation         Kind = "validation"
	KindInvalidWindow      Kind = "invalid_window"
	KindUnavailable        Kind = "unavailable"
	KindSelfBooking        Kind = "self_booking"
	KindNotOwner           Kind = "not_owner"
	KindNotAuthorized      Kind = "not_authorized"
	KindAlreadyDecided     Kind = "already_decided"
	KindUnknownState       Kind = "unknown_state"
	KindNoCompletedBooking Kind = "no_completed_booking"
	KindForbidden          Kind = "forbidden"
	KindConflict           Kind = "conflict"
)

// Error is an application error with a machine-readable kind.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes two application errors equal when their kinds match, so callers
// can branch with errors.Is against a bare kind sentinel.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf extracts the kind of an application error, or "" for any other error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// NotFound reports a missing entity ("user", "item", "booking", "request").
func NotFound(entity string, id fmt.Stringer) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s with id = %s not found", entity, id),
	}
}

// Validation reports malformed input.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// InvalidWindow reports a booking window whose end is not after its start.
func InvalidWindow() *Error {
	return &Error{
		Kind:    KindInvalidWindow,
		Entity:  "booking",
		Message: "booking end must be after its start",
	}
}

// Unavailable reports an item whose owner has switched off availability.
func Unavailable(itemID fmt.Stringer) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Entity:  "item",
		Message: fmt.Sprintf("item with id = %s is not available", itemID),
	}
}

// SelfBooking reports an owner trying to book their own item.
func SelfBooking(userID, itemID fmt.Stringer) *Error {
	return &Error{
		Kind:    KindSelfBooking,
		Entity:  "booking",
		Message: fmt.Sprintf("user with id = %s owns item with id = %s", userID, itemID),
	}
}

// NotOwner reports a decision attempt by someone other than the item's owner.
func NotOwner(userID, itemID fmt.Stringer) *Error {
	return &Error{
		Kind:    KindNotOwner,
		Entity:  "booking",
		Message: fmt.Sprintf("user with id = %s is not the owner of item with id = %s", userID, itemID),
	}
}

// NotAuthorized reports a booking read by neither the booker nor the owner.
func NotAuthorized(userID, bookingID fmt.Stringer) *Error {
	return &Error{
		Kind:    KindNotAuthorized,
		Entity:  "booking",
		Message: fmt.Sprintf("user with id = %s has no access to booking with id = %s", userID, bookingID),
	}
}

// AlreadyDecided reports a second decision on a booking that left WAITING.
func AlreadyDecided(bookingID fmt.Stringer) *Error {
	return &Error{
		Kind:    KindAlreadyDecided,
		Entity:  "booking",
		Message: fmt.Sprintf("booking with id = %s has already been decided", bookingID),
	}
}

// UnknownState reports an unrecognized state filter token.
func UnknownState(token string) *Error {
	return &Error{
		Kind:    KindUnknownState,
		Message: "Unknown state: " + token,
	}
}

// NoCompletedBooking reports a comment attempt without a finished booking.
func NoCompletedBooking(userID, itemID fmt.Stringer) *Error {
	return &Error{
		Kind:    KindNoCompletedBooking,
		Entity:  "comment",
		Message: fmt.Sprintf("user with id = %s has no completed booking of item with id = %s", userID, itemID),
	}
}

// Forbidden reports a mutation attempt by a user without rights to the entity.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Conflict reports a uniqueness violation, e.g. a duplicate user email.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}
