package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
)

// OrderTx 結帳交易範圍內可用的操作
// CreateOrder/CreateOrderItems/DeactivateCart要嘛全部commit要嘛全部rollback
type OrderTx interface {
	GetBooksByIDs(bookIDs []uint) ([]model.Book, error)
	CreateOrder(order *model.Order) error
	CreateOrderItems(items []model.OrderItem) error
	DeactivateCart(cartID uint) error
}

// IOrderStore 訂單儲存port
type IOrderStore interface {
	WithinTx(ctx context.Context, fn func(tx OrderTx) error) error
	GetOrderByID(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetOrdersPaginated(ctx context.Context, userID uint, page, pageSize int) ([]model.Order, int64, error)
}

type OrderStore struct {
	db *DbDao
}

func NewOrderStore(db *DbDao) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) WithinTx(ctx context.Context, fn func(tx OrderTx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&orderTx{ctx: ctx, tx: tx})
	})
}

// Read - 根據ID查詢訂單
func (s *OrderStore) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單 (新到舊)
func (s *OrderStore) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// 分頁查詢訂單
func (s *OrderStore) GetOrdersPaginated(ctx context.Context, userID uint, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize

	// 計算總數
	if err := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分頁查詢
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error

	return orders, total, err
}

var _ IOrderStore = (*OrderStore)(nil)

type orderTx struct {
	ctx context.Context
	tx  *gorm.DB
}

func (t *orderTx) GetBooksByIDs(bookIDs []uint) ([]model.Book, error) {
	var books []model.Book
	if len(bookIDs) == 0 {
		return books, nil
	}
	err := t.tx.WithContext(t.ctx).
		Where("book_id IN ?", bookIDs).
		Find(&books).Error
	return books, err
}

func (t *orderTx) CreateOrder(order *model.Order) error {
	return t.tx.WithContext(t.ctx).Create(order).Error
}

// 批次建立訂單項目
func (t *orderTx) CreateOrderItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return t.tx.WithContext(t.ctx).Create(&items).Error
}

// 標記購物車為非使用中 (同一筆row，不刪除，歷史items留著)
func (t *orderTx) DeactivateCart(cartID uint) error {
	return t.tx.WithContext(t.ctx).Model(&model.Cart{}).
		Where("cart_id = ?", cartID).
		Update("is_active", false).Error
}

var _ OrderTx = (*orderTx)(nil)
