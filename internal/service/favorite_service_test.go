package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newFavoriteServiceForTest(books ...*model.Book) (*FavoriteService, *fakeStore) {
	store := newFakeStore(books...)
	return NewFavoriteService(store, store), store
}

func activeBook(bookID uint) *model.Book {
	return &model.Book{
		BookID:   bookID,
		Name:     "test book",
		Price:    decimal.NewFromInt(10),
		InStock:  5,
		IsActive: true,
	}
}

func TestAddToFavoritesIdempotent(t *testing.T) {
	svc, _ := newFavoriteServiceForTest(activeBook(1))
	req := Requester{UserID: 1, Age: 30}
	ctx := context.Background()

	first, created, err := svc.AddToFavorites(ctx, req, 1)
	require.NoError(t, err)
	assert.True(t, created)

	// 重複加同一本不報錯，拿回同一筆
	second, created, err := svc.AddToFavorites(ctx, req, 1)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.FavoriteID, second.FavoriteID)

	count, err := svc.CountFavorites(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddToFavoritesBookNotFound(t *testing.T) {
	inactive := activeBook(1)
	inactive.IsActive = false
	svc, _ := newFavoriteServiceForTest(inactive)
	req := Requester{UserID: 1, Age: 30}
	ctx := context.Background()

	_, _, err := svc.AddToFavorites(ctx, req, 99)
	assert.ErrorIs(t, err, ErrBookNotFound)

	// 下架的書也不能收藏
	_, _, err = svc.AddToFavorites(ctx, req, 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRemoveFromFavorites(t *testing.T) {
	svc, _ := newFavoriteServiceForTest(activeBook(1))
	req := Requester{UserID: 1, Age: 30}
	ctx := context.Background()

	_, _, err := svc.AddToFavorites(ctx, req, 1)
	require.NoError(t, err)

	removed, err := svc.RemoveFromFavorites(ctx, req, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveFromFavorites(ctx, req, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := newFavoriteServiceForTest(activeBook(1))
	req := Requester{UserID: 1, Age: 30}
	ctx := context.Background()

	favorited, action, err := svc.Toggle(ctx, req, 1)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, ToggleActionAdded, action)

	// toggle兩次回到原狀態
	favorited, action, err = svc.Toggle(ctx, req, 1)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, ToggleActionRemoved, action)

	exists, err := svc.IsInFavorites(ctx, req, 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClearFavorites(t *testing.T) {
	svc, _ := newFavoriteServiceForTest(activeBook(1), activeBook(2), activeBook(3))
	req := Requester{UserID: 1, Age: 30}
	ctx := context.Background()

	for _, bookID := range []uint{1, 2, 3} {
		_, _, err := svc.AddToFavorites(ctx, req, bookID)
		require.NoError(t, err)
	}

	deleted, err := svc.ClearFavorites(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	favorites, err := svc.ListFavorites(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

// 並發加同一本，最多一筆收藏，誰都不該收到錯誤
func TestConcurrentAddToFavorites(t *testing.T) {
	svc, _ := newFavoriteServiceForTest(activeBook(1))
	req := Requester{UserID: 1, Age: 30}
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, _, err := svc.AddToFavorites(ctx, req, 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	count, err := svc.CountFavorites(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
