package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/domain/errs"
)

func TestItemService_CreateItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")

	available := true
	dto, err := env.Items.CreateItem(ctx, owner.ID, CreateItemRequest{
		Name:        "drill",
		Description: "cordless drill",
		Available:   &available,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, dto.OwnerID)
	assert.True(t, dto.Available)

	_, err = env.Items.CreateItem(ctx, uuid.New(), CreateItemRequest{
		Name:        "drill",
		Description: "cordless drill",
		Available:   &available,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestItemService_UpdateItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	item := env.createItem(t, owner.ID, "drill", true)

	t.Run("partial patch keeps absent fields", func(t *testing.T) {
		newName := "hammer drill"
		updated, err := env.Items.UpdateItem(ctx, owner.ID, item.ID, UpdateItemRequest{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "hammer drill", updated.Name)
		assert.Equal(t, item.Description, updated.Description)
		assert.True(t, updated.Available)
	})

	t.Run("availability toggle", func(t *testing.T) {
		off := false
		updated, err := env.Items.UpdateItem(ctx, owner.ID, item.ID, UpdateItemRequest{Available: &off})
		require.NoError(t, err)
		assert.False(t, updated.Available)
	})

	t.Run("only the owner may update", func(t *testing.T) {
		name := "stolen"
		_, err := env.Items.UpdateItem(ctx, other.ID, item.ID, UpdateItemRequest{Name: &name})
		require.Error(t, err)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("unknown item", func(t *testing.T) {
		name := "ghost"
		_, err := env.Items.UpdateItem(ctx, owner.ID, uuid.New(), UpdateItemRequest{Name: &name})
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}

func TestItemService_GetItem_Annotations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	booker := env.createUser(t, "booker")
	item := env.createItem(t, owner.ID, "drill", true)

	now := time.Now().UTC()
	day := 24 * time.Hour
	lastID := env.seedBooking(t, booker.ID, item.ID, bookingDomain.StatusApproved, now.Add(-2*day), now.Add(-day))
	nextID := env.seedBooking(t, booker.ID, item.ID, bookingDomain.StatusApproved, now.Add(day), now.Add(2*day))

	ownerView, err := env.Items.GetItem(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, ownerView.NextBooking)
	require.NotNil(t, ownerView.LastBooking)
	assert.Equal(t, nextID, ownerView.NextBooking.ID)
	assert.Equal(t, lastID, ownerView.LastBooking.ID)

	bookerView, err := env.Items.GetItem(ctx, booker.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, bookerView.NextBooking)
	assert.Nil(t, bookerView.LastBooking)
}

func TestItemService_ListOwnItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	env.createItem(t, owner.ID, "drill", true)
	env.createItem(t, owner.ID, "ladder", false)
	env.createItem(t, other.ID, "saw", true)

	items, err := env.Items.ListOwnItems(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, itm := range items {
		assert.Equal(t, owner.ID, itm.OwnerID)
	}
}

func TestItemService_SearchItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	searcher := env.createUser(t, "searcher")
	env.createItem(t, owner.ID, "Cordless Drill", true)
	env.createItem(t, owner.ID, "Drill press", false)

	ladder := true
	_, err := env.Items.CreateItem(ctx, owner.ID, CreateItemRequest{
		Name:        "Ladder",
		Description: "aluminium, extends to 5m, drilled steps",
		Available:   &ladder,
	})
	require.NoError(t, err)

	t.Run("case-insensitive match on name and description", func(t *testing.T) {
		found, err := env.Items.SearchItems(ctx, searcher.ID, "dRiLl")
		require.NoError(t, err)
		assert.Len(t, found, 2, "matches name and description, skips unavailable")
	})

	t.Run("blank query yields nothing", func(t *testing.T) {
		found, err := env.Items.SearchItems(ctx, searcher.ID, "")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("no match", func(t *testing.T) {
		found, err := env.Items.SearchItems(ctx, searcher.ID, "excavator")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestItemService_AddComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	booker := env.createUser(t, "booker")
	stranger := env.createUser(t, "stranger")
	item := env.createItem(t, owner.ID, "drill", true)

	now := time.Now().UTC()
	env.seedBooking(t, booker.ID, item.ID, bookingDomain.StatusApproved, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	t.Run("past booker may comment", func(t *testing.T) {
		c, err := env.Items.AddComment(ctx, booker.ID, item.ID, CreateCommentRequest{Text: "works great"})
		require.NoError(t, err)
		assert.Equal(t, "works great", c.Text)
		assert.Equal(t, "booker", c.AuthorName)

		view, err := env.Items.GetItem(ctx, stranger.ID, item.ID)
		require.NoError(t, err)
		require.Len(t, view.Comments, 1)
		assert.Equal(t, "works great", view.Comments[0].Text)
		assert.Equal(t, "booker", view.Comments[0].AuthorName)
	})

	t.Run("without a completed booking", func(t *testing.T) {
		_, err := env.Items.AddComment(ctx, stranger.ID, item.ID, CreateCommentRequest{Text: "nice"})
		require.Error(t, err)
		assert.Equal(t, errs.KindNoCompletedBooking, errs.KindOf(err))
	})

	t.Run("unknown author or item", func(t *testing.T) {
		_, err := env.Items.AddComment(ctx, uuid.New(), item.ID, CreateCommentRequest{Text: "hi"})
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

		_, err = env.Items.AddComment(ctx, booker.ID, uuid.New(), CreateCommentRequest{Text: "hi"})
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}
