package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IFavoriteRepository 收藏儲存port
type IFavoriteRepository interface {
	// AddToFavorites 冪等新增，回傳是否為新建
	AddToFavorites(ctx context.Context, userID, bookID uint) (*model.Favorite, bool, error)
	RemoveFromFavorites(ctx context.Context, userID, bookID uint) (bool, error)
	IsInFavorites(ctx context.Context, userID, bookID uint) (bool, error)
	ClearFavorites(ctx context.Context, userID uint) (int64, error)
	GetUserFavorites(ctx context.Context, userID uint) ([]model.Favorite, error)
	CountFavorites(ctx context.Context, userID uint) (int64, error)
}

type FavoriteRepo struct {
	db *DbDao
}

func NewFavoriteRepo(db *DbDao) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Create - 冪等新增收藏
// 並發時輸掉unique constraint的那方改撈既有row回傳，不往外丟conflict
func (r *FavoriteRepo) AddToFavorites(ctx context.Context, userID, bookID uint) (*model.Favorite, bool, error) {
	favorite := model.Favorite{
		UserID: userID,
		BookID: bookID,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoNothing: true,
		}).
		Create(&favorite)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		return &favorite, true, nil
	}

	// 已存在 (或輸掉race)，撈回winner的row
	var existing model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&existing).Error
	if err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// Delete - 移除收藏，回傳是否真的有刪到
func (r *FavoriteRepo) RemoveFromFavorites(ctx context.Context, userID, bookID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Read - 是否已收藏
func (r *FavoriteRepo) IsInFavorites(ctx context.Context, userID, bookID uint) (bool, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete - 清空收藏，回傳刪除筆數
func (r *FavoriteRepo) ClearFavorites(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Read - 收藏清單 (新到舊)
func (r *FavoriteRepo) GetUserFavorites(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// Read - 收藏數量
func (r *FavoriteRepo) CountFavorites(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

var _ IFavoriteRepository = (*FavoriteRepo)(nil)
