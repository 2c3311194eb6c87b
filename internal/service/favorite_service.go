package service

import (
	"context"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
)

const (
	ToggleActionAdded   = "added"
	ToggleActionRemoved = "removed"
)

type IFavoriteService interface {
	// AddToFavorites 冪等新增，重複加同一本不報錯
	AddToFavorites(ctx context.Context, req Requester, bookID uint) (*model.Favorite, bool, error)
	RemoveFromFavorites(ctx context.Context, req Requester, bookID uint) (bool, error)
	// Toggle 有就移除沒有就加入，回傳(是否收藏中, action)
	Toggle(ctx context.Context, req Requester, bookID uint) (bool, string, error)
	IsInFavorites(ctx context.Context, req Requester, bookID uint) (bool, error)
	ClearFavorites(ctx context.Context, req Requester) (int64, error)
	ListFavorites(ctx context.Context, req Requester) ([]model.Favorite, error)
	CountFavorites(ctx context.Context, req Requester) (int64, error)
}

type FavoriteService struct {
	favoriteRepo db.IFavoriteRepository
	bookRepo     db.IBookRepository
}

func NewFavoriteService(favoriteRepo db.IFavoriteRepository, bookRepo db.IBookRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, bookRepo: bookRepo}
}

func (s *FavoriteService) AddToFavorites(ctx context.Context, req Requester, bookID uint) (*model.Favorite, bool, error) {
	if _, err := s.bookRepo.GetActiveBook(ctx, bookID); err != nil {
		if err == db.ErrBookNotFound {
			return nil, false, ErrBookNotFound
		}
		return nil, false, err
	}
	return s.favoriteRepo.AddToFavorites(ctx, req.UserID, bookID)
}

func (s *FavoriteService) RemoveFromFavorites(ctx context.Context, req Requester, bookID uint) (bool, error) {
	return s.favoriteRepo.RemoveFromFavorites(ctx, req.UserID, bookID)
}

// Toggle 先讀後寫，兩步不是同一個交易
// 並發下兩邊的add/remove各自冪等，最終狀態仍是其中一方的結果，可接受
func (s *FavoriteService) Toggle(ctx context.Context, req Requester, bookID uint) (bool, string, error) {
	exists, err := s.favoriteRepo.IsInFavorites(ctx, req.UserID, bookID)
	if err != nil {
		return false, "", err
	}

	if exists {
		if _, err := s.favoriteRepo.RemoveFromFavorites(ctx, req.UserID, bookID); err != nil {
			return false, "", err
		}
		return false, ToggleActionRemoved, nil
	}

	if _, _, err := s.AddToFavorites(ctx, req, bookID); err != nil {
		return false, "", err
	}
	return true, ToggleActionAdded, nil
}

func (s *FavoriteService) IsInFavorites(ctx context.Context, req Requester, bookID uint) (bool, error) {
	return s.favoriteRepo.IsInFavorites(ctx, req.UserID, bookID)
}

func (s *FavoriteService) ClearFavorites(ctx context.Context, req Requester) (int64, error) {
	return s.favoriteRepo.ClearFavorites(ctx, req.UserID)
}

func (s *FavoriteService) ListFavorites(ctx context.Context, req Requester) ([]model.Favorite, error) {
	return s.favoriteRepo.GetUserFavorites(ctx, req.UserID)
}

func (s *FavoriteService) CountFavorites(ctx context.Context, req Requester) (int64, error) {
	return s.favoriteRepo.CountFavorites(ctx, req.UserID)
}

var _ IFavoriteService = (*FavoriteService)(nil)
