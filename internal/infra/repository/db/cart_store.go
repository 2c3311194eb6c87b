package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartTx 在book row lock的交易範圍內可用的操作
// 所有寫入跟著同一個交易，任何錯誤整包rollback
type CartTx interface {
	// Book 被鎖定的book，book不存在時為nil
	Book() *model.Book
	GetOrCreateCart(userID uint) (*model.Cart, error)
	GetItem(cartID, bookID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItemQuantity(item *model.CartItem, quantity int) error
	DeleteItem(item *model.CartItem) error
}

// ICartStore 購物車儲存port
// 交易引擎只依賴這個介面，測試可用in-memory實作
type ICartStore interface {
	// WithBookLock 以 SELECT ... FOR UPDATE 鎖定book row後執行fn
	// 同一本書的並發異動在這裡序列化，不同書互不阻塞
	WithBookLock(ctx context.Context, bookID uint, fn func(tx CartTx) error) error
	GetActiveCart(ctx context.Context, userID uint) (*model.Cart, error)
	GetCartWithItems(ctx context.Context, userID uint) (*model.Cart, error)
	GetCartSummary(ctx context.Context, userID uint) (*model.CartSummary, error)
	RemoveItem(ctx context.Context, userID, bookID uint) (bool, error)
	ClearCart(ctx context.Context, userID uint) (int64, error)
}

type CartStore struct {
	db *DbDao
}

func NewCartStore(db *DbDao) *CartStore {
	return &CartStore{db: db}
}

func (s *CartStore) WithBookLock(ctx context.Context, bookID uint, fn func(tx CartTx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var book model.Book
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_id = ?", bookID).
			First(&book).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fn(&cartTx{ctx: ctx, tx: tx, book: nil})
		}
		if err != nil {
			return err
		}
		return fn(&cartTx{ctx: ctx, tx: tx, book: &book})
	})
}

// Read - 查詢使用中的購物車 (不含items)
func (s *CartStore) GetActiveCart(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Read - 查詢購物車與items (新到舊)
func (s *CartStore) GetCartWithItems(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at DESC")
		}).
		Preload("Items.Book").
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Read - 購物車摘要
func (s *CartStore) GetCartSummary(ctx context.Context, userID uint) (*model.CartSummary, error) {
	var summary model.CartSummary
	err := s.db.WithContext(ctx).Model(&model.CartItem{}).
		Joins("JOIN carts ON carts.cart_id = cart_items.cart_id").
		Where("carts.user_id = ? AND carts.is_active = ?", userID, true).
		Select("COALESCE(SUM(cart_items.quantity), 0) AS total_items, COUNT(*) AS unique_books").
		Row().
		Scan(&summary.TotalItems, &summary.UniqueBooks)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Delete - 移除單一item，回傳是否真的有刪到 (冪等)
func (s *CartStore) RemoveItem(ctx context.Context, userID, bookID uint) (bool, error) {
	cart, err := s.GetActiveCart(ctx, userID)
	if err != nil {
		return false, err
	}
	if cart == nil {
		return false, nil
	}

	result := s.db.WithContext(ctx).
		Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete - 清空購物車，回傳刪除筆數
func (s *CartStore) ClearCart(ctx context.Context, userID uint) (int64, error) {
	cart, err := s.GetActiveCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	if cart == nil {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Where("cart_id = ?", cart.CartID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ ICartStore = (*CartStore)(nil)

type cartTx struct {
	ctx  context.Context
	tx   *gorm.DB
	book *model.Book
}

func (t *cartTx) Book() *model.Book {
	return t.book
}

func (t *cartTx) GetOrCreateCart(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := t.tx.WithContext(t.ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = model.Cart{UserID: userID, IsActive: true}
		if err := t.tx.WithContext(t.ctx).Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}

	if !cart.IsActive {
		// 結帳後第一次異動：重新啟用同一筆row，舊items屬於上一張訂單，先清掉
		if err := t.tx.WithContext(t.ctx).Model(&model.Cart{}).
			Where("cart_id = ?", cart.CartID).
			Update("is_active", true).Error; err != nil {
			return nil, err
		}
		if err := t.tx.WithContext(t.ctx).
			Where("cart_id = ?", cart.CartID).
			Delete(&model.CartItem{}).Error; err != nil {
			return nil, err
		}
		cart.IsActive = true
	}
	return &cart, nil
}

func (t *cartTx) GetItem(cartID, bookID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := t.tx.WithContext(t.ctx).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *cartTx) CreateItem(item *model.CartItem) error {
	return t.tx.WithContext(t.ctx).Create(item).Error
}

func (t *cartTx) UpdateItemQuantity(item *model.CartItem, quantity int) error {
	err := t.tx.WithContext(t.ctx).Model(item).Update("quantity", quantity).Error
	if err != nil {
		return err
	}
	item.Quantity = quantity
	return nil
}

func (t *cartTx) DeleteItem(item *model.CartItem) error {
	return t.tx.WithContext(t.ctx).Delete(item).Error
}

var _ CartTx = (*cartTx)(nil)
