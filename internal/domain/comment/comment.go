// Package comment holds the Comment aggregate and its persistence contract.
package comment

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain/errs"
)

// Comment is feedback left on an item by a user who completed a booking of it.
// The eligibility gate itself lives with the booking projections; a Comment
// only ever exists once that gate has passed.
type Comment struct {
	id       uuid.UUID
	itemID   uuid.UUID
	authorID uuid.UUID
	text     string
	created  time.Time
}

// NewComment creates a new Comment.
func NewComment(itemID, authorID uuid.UUID, text string) (*Comment, error) {
	if text == "" {
		return nil, errs.Validation("comment text is required")
	}
	return &Comment{
		id:       uuid.New(),
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Comment from persistence data (no validation).
func Reconstruct(id, itemID, authorID uuid.UUID, text string, created time.Time) *Comment {
	return &Comment{
		id:       id,
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  created,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// ItemID returns the id of the commented item.
func (c *Comment) ItemID() uuid.UUID { return c.itemID }

// AuthorID returns the id of the comment's author.
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// Created returns the creation timestamp.
func (c *Comment) Created() time.Time { return c.created }
