package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	requestDomain "github.com/shareloop/service-sharing/internal/domain/request"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
)

// CreateItemRequestRequest holds the body of a new item request.
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestService manages item requests: wishes for items nobody has listed
// yet, shown to other users together with any items answering them.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// CreateRequest publishes a new item request.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, req CreateItemRequestRequest) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(requesterID, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	return &RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.Created(),
		Items:       []ItemDTO{},
	}, nil
}

// ListOwnRequests lists the caller's requests, newest first, with answers.
func (s *RequestService) ListOwnRequests(ctx context.Context, userID uuid.UUID) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, requests)
}

// ListOtherRequests pages through requests published by other users.
func (s *RequestService) ListOtherRequests(ctx context.Context, userID uuid.UUID, offset, limit int) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByOthers(ctx, userID)
	if err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(requests) {
		return []RequestDTO{}, nil
	}
	end := len(requests)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return s.buildViews(ctx, requests[offset:end])
}

// GetRequest retrieves a single request with its answering items.
func (s *RequestService) GetRequest(ctx context.Context, userID, requestID uuid.UUID) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RequestService) buildViews(ctx context.Context, requests []*requestDomain.ItemRequest) ([]RequestDTO, error) {
	views := make([]RequestDTO, len(requests))
	for i, r := range requests {
		answers, err := s.items.FindByRequest(ctx, r.ID())
		if err != nil {
			return nil, err
		}
		itemViews := make([]ItemDTO, len(answers))
		for j, itm := range answers {
			itemViews[j] = toItemDTO(itm)
		}
		views[i] = RequestDTO{
			ID:          r.ID(),
			Description: r.Description(),
			Created:     r.Created(),
			Items:       itemViews,
		}
	}
	return views, nil
}
