package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	commentDomain "github.com/shareloop/service-sharing/internal/domain/comment"
	"github.com/shareloop/service-sharing/internal/domain/errs"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId"`
}

// UpdateItemRequest holds a partial item update; absent fields keep their
// current values.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest holds the body of a new comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemService manages the item catalog: listing, partial updates, search and
// item views annotated with booking projections and comments.
type ItemService struct {
	items     itemDomain.Repository
	users     userDomain.Repository
	comments  commentDomain.Repository
	projector *BookingProjector
	logger    *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	comments commentDomain.Repository,
	projector *BookingProjector,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:     items,
		users:     users,
		comments:  comments,
		projector: projector,
		logger:    logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	available := false
	if req.Available != nil {
		available = *req.Available
	}
	itm, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, itm); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	result := toItemDTO(itm)
	return &result, nil
}

// UpdateItem applies a partial update; only the item's owner may change it.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if itm.OwnerID() != userID {
		return nil, errs.Forbidden(fmt.Sprintf("user with id = %s is not the owner of item with id = %s", userID, itemID))
	}

	itm.ApplyPatch(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, itm); err != nil {
		return nil, err
	}

	result := toItemDTO(itm)
	return &result, nil
}

// GetItem returns an item view. When the viewer owns the item the view
// carries the next/last approved booking summaries; comments are visible to
// everybody.
func (s *ItemService) GetItem(ctx context.Context, viewerID, itemID uuid.UUID) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, viewerID); err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(itm)
	annotation, err := s.projector.AnnotateItem(ctx, itm, viewerID)
	if err != nil {
		return nil, err
	}
	dto.NextBooking = annotation.NextBooking
	dto.LastBooking = annotation.LastBooking

	comments, err := s.commentsForItem(ctx, itm.ID())
	if err != nil {
		return nil, err
	}
	dto.Comments = comments

	return &dto, nil
}

// ListOwnItems returns all items listed by a user, each annotated with its
// booking projections.
func (s *ItemService) ListOwnItems(ctx context.Context, ownerID uuid.UUID) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]ItemDTO, len(items))
	for i, itm := range items {
		dto := toItemDTO(itm)
		annotation, err := s.projector.AnnotateItem(ctx, itm, ownerID)
		if err != nil {
			return nil, err
		}
		dto.NextBooking = annotation.NextBooking
		dto.LastBooking = annotation.LastBooking

		comments, err := s.commentsForItem(ctx, itm.ID())
		if err != nil {
			return nil, err
		}
		dto.Comments = comments
		views[i] = dto
	}
	return views, nil
}

// SearchItems finds available items by text; a blank query yields nothing.
func (s *ItemService) SearchItems(ctx context.Context, userID uuid.UUID, text string) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if text == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	views := make([]ItemDTO, len(items))
	for i, itm := range items {
		views[i] = toItemDTO(itm)
	}
	return views, nil
}

// AddComment stores a comment on an item. Only a user with a completed
// approved booking of the item may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.projector.IsCommentEligible(ctx, itm.ID(), author.ID())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, errs.NoCompletedBooking(author.ID(), itm.ID())
	}

	c, err := commentDomain.NewComment(itm.ID(), author.ID(), req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	return &CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: author.Name(),
		Created:    c.Created(),
	}, nil
}

// commentsForItem loads an item's comments with author names resolved.
func (s *ItemService) commentsForItem(ctx context.Context, itemID uuid.UUID) ([]CommentDTO, error) {
	comments, err := s.comments.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, nil
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	seen := make(map[uuid.UUID]bool)
	for _, c := range comments {
		if !seen[c.AuthorID()] {
			seen[c.AuthorID()] = true
			authorIDs = append(authorIDs, c.AuthorID())
		}
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		var name string
		if a, ok := authors[c.AuthorID()]; ok {
			name = a.Name()
		}
		dtos[i] = CommentDTO{
			ID:         c.ID(),
			Text:       c.Text(),
			AuthorName: name,
			Created:    c.Created(),
		}
	}
	return dtos, nil
}
