package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrBookNotFound 書籍不存在或已下架
	ErrBookNotFound = errors.New("book not found")
)

// IBookRepository 目錄讀取 + 庫存異動入口
// 庫存由外部庫存系統透過Add/Set維護，購物車與結帳只讀取
type IBookRepository interface {
	GetActiveBook(ctx context.Context, bookID uint) (*model.Book, error)
	GetActiveBooks(ctx context.Context) ([]model.Book, error)
	GetBooksByIDs(ctx context.Context, bookIDs []uint) ([]model.Book, error)
	CreateBook(ctx context.Context, book *model.Book) error
	AddBookStock(ctx context.Context, bookID uint, quantity int) (int, error)
	SetBookStock(ctx context.Context, bookID uint, stock int) error
}

type BookRepo struct {
	db *DbDao
}

func NewBookRepo(db *DbDao) *BookRepo {
	return &BookRepo{db: db}
}

// Read - 查詢上架中的書籍
func (r *BookRepo) GetActiveBook(ctx context.Context, bookID uint) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND is_active = ?", bookID, true).
		First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Read - 查詢所有上架書籍
func (r *BookRepo) GetActiveBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

// Read - 依ID批次查詢 (結帳快照用)
func (r *BookRepo) GetBooksByIDs(ctx context.Context, bookIDs []uint) ([]model.Book, error) {
	var books []model.Book
	if len(bookIDs) == 0 {
		return books, nil
	}
	err := r.db.WithContext(ctx).
		Where("book_id IN ?", bookIDs).
		Find(&books).Error
	return books, err
}

// Create - 建立書籍
func (r *BookRepo) CreateBook(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update - 增加庫存 (外部庫存系統進貨)
func (r *BookRepo) AddBookStock(ctx context.Context, bookID uint, quantity int) (int, error) {
	var currentStock int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 先鎖定記錄
		var book model.Book
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_id = ?", bookID).
			First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		if err := tx.WithContext(ctx).Model(&model.Book{}).
			Where("book_id = ?", bookID).
			Update("in_stock", gorm.Expr("in_stock + ?", quantity)).Error; err != nil {
			return err
		}

		currentStock = book.InStock + quantity
		return nil
	})

	if err != nil {
		return 0, err
	}
	return currentStock, nil
}

// Update - 覆寫庫存 (外部庫存系統盤點)
func (r *BookRepo) SetBookStock(ctx context.Context, bookID uint, stock int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 先鎖定記錄
		var book model.Book
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_id = ?", bookID).
			First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		return tx.WithContext(ctx).Model(&model.Book{}).
			Where("book_id = ?", bookID).
			Update("in_stock", stock).Error
	})
}

var _ IBookRepository = (*BookRepo)(nil)
