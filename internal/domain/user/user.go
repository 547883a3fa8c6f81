// Package user holds the User aggregate and its persistence contract.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain/errs"
)

// User is a registered participant of the marketplace, either listing items
// or booking them.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new User with a fresh identifier.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, errs.Validation("user name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, errs.Validation("user email is invalid")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's unique email address.
func (u *User) Email() string { return u.email }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Rename changes the display name; empty input keeps the current name.
func (u *User) Rename(name string) {
	if name == "" {
		return
	}
	u.name = name
	u.updatedAt = time.Now().UTC()
}

// ChangeEmail changes the email address; empty input keeps the current one.
func (u *User) ChangeEmail(email string) error {
	if email == "" {
		return nil
	}
	if !strings.Contains(email, "@") {
		return errs.Validation("user email is invalid")
	}
	u.email = email
	u.updatedAt = time.Now().UTC()
	return nil
}
