// Package request holds the ItemRequest aggregate and its persistence contract.
package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain/errs"
)

// ItemRequest is a user's published wish for an item nobody has listed yet.
// Items created in answer to it reference it by id.
type ItemRequest struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	created     time.Time
}

// NewItemRequest creates a new ItemRequest.
func NewItemRequest(requesterID uuid.UUID, description string) (*ItemRequest, error) {
	if requesterID == uuid.Nil {
		return nil, errs.Validation("requester id is required")
	}
	if description == "" {
		return nil, errs.Validation("request description is required")
	}
	return &ItemRequest{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		created:     time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data (no validation).
func Reconstruct(id, requesterID uuid.UUID, description string, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requesterID: requesterID,
		description: description,
		created:     created,
	}
}

// ID returns the request's unique identifier.
func (r *ItemRequest) ID() uuid.UUID { return r.id }

// RequesterID returns the id of the user who published the request.
func (r *ItemRequest) RequesterID() uuid.UUID { return r.requesterID }

// Description returns what the requester is looking for.
func (r *ItemRequest) Description() string { return r.description }

// Created returns the creation timestamp.
func (r *ItemRequest) Created() time.Time { return r.created }
