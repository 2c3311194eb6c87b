package service

import (
	"context"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/entity"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
)

// MaxQuantityPerItem 單一item數量上限
const MaxQuantityPerItem = 999

type ICartService interface {
	// AddItem 加入購物車，已在購物車內則累加數量
	// 回傳(item, 是否為新建)
	AddItem(ctx context.Context, req Requester, bookID uint, quantity int) (*model.CartItem, bool, error)
	// UpdateQuantity 覆寫數量 (非累加)，0代表移除該item
	// 移除時回傳nil item，對不存在的item移除是no-op
	UpdateQuantity(ctx context.Context, req Requester, bookID uint, quantity int) (*model.CartItem, error)
	RemoveItem(ctx context.Context, req Requester, bookID uint) (bool, error)
	ClearCart(ctx context.Context, req Requester) (int64, error)
	GetCart(ctx context.Context, req Requester) (*model.Cart, error)
	GetCartSummary(ctx context.Context, req Requester) (*model.CartSummary, error)
}

// CartService 購物車交易引擎
// 所有寫入都在book row lock的交易內執行，驗證失敗整包rollback
type CartService struct {
	store db.ICartStore
	cache redis_repo.ICartCache
}

func NewCartService(store db.ICartStore, cache redis_repo.ICartCache) *CartService {
	return &CartService{store: store, cache: cache}
}

// 鎖內的共用驗證：存在、上架、有庫存、年齡分級
// 年齡分級與目錄列表共用entity.AllowedForAge，不能各寫一份
func validateBookForCart(book *model.Book, age int) error {
	if book == nil {
		return ErrBookNotFound
	}
	if !book.IsActive || book.InStock < 1 {
		return ErrBookUnavailable
	}
	if !entity.FromBook(book).AllowedForAge(age) {
		return ErrAgeRestricted
	}
	return nil
}

func (s *CartService) AddItem(ctx context.Context, req Requester, bookID uint, quantity int) (*model.CartItem, bool, error) {
	if quantity < 1 || quantity > MaxQuantityPerItem {
		return nil, false, ErrInvalidQuantity
	}

	var item *model.CartItem
	var created bool

	err := s.store.WithBookLock(ctx, bookID, func(tx db.CartTx) error {
		book := tx.Book()
		if err := validateBookForCart(book, req.Age); err != nil {
			return err
		}

		cart, err := tx.GetOrCreateCart(req.UserID)
		if err != nil {
			return err
		}

		existing, err := tx.GetItem(cart.CartID, bookID)
		if err != nil {
			return err
		}

		if existing != nil {
			newQuantity := existing.Quantity + quantity
			if newQuantity > book.InStock {
				return &StockExceededError{
					Requested: quantity,
					InCart:    existing.Quantity,
					Available: book.InStock,
				}
			}
			if err := tx.UpdateItemQuantity(existing, newQuantity); err != nil {
				return err
			}
			item = existing
			created = false
			return nil
		}

		if quantity > book.InStock {
			return &StockExceededError{
				Requested: quantity,
				Available: book.InStock,
			}
		}
		item = &model.CartItem{
			CartID:   cart.CartID,
			BookID:   bookID,
			Quantity: quantity,
		}
		created = true
		return tx.CreateItem(item)
	})
	if err != nil {
		return nil, false, err
	}

	s.invalidateSummary(ctx, req.UserID)
	return item, created, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, req Requester, bookID uint, quantity int) (*model.CartItem, error) {
	if quantity < 0 || quantity > MaxQuantityPerItem {
		return nil, ErrInvalidQuantity
	}

	// 0 = 移除，item不存在也不算錯 (冪等)
	if quantity == 0 {
		if _, err := s.store.RemoveItem(ctx, req.UserID, bookID); err != nil {
			return nil, err
		}
		s.invalidateSummary(ctx, req.UserID)
		return nil, nil
	}

	var item *model.CartItem

	err := s.store.WithBookLock(ctx, bookID, func(tx db.CartTx) error {
		book := tx.Book()
		if err := validateBookForCart(book, req.Age); err != nil {
			return err
		}

		cart, err := tx.GetOrCreateCart(req.UserID)
		if err != nil {
			return err
		}

		if quantity > book.InStock {
			return &StockExceededError{
				Requested: quantity,
				Available: book.InStock,
			}
		}

		existing, err := tx.GetItem(cart.CartID, bookID)
		if err != nil {
			return err
		}

		if existing != nil {
			// 覆寫為絕對值，與AddItem的累加語義不同
			if err := tx.UpdateItemQuantity(existing, quantity); err != nil {
				return err
			}
			item = existing
			return nil
		}

		item = &model.CartItem{
			CartID:   cart.CartID,
			BookID:   bookID,
			Quantity: quantity,
		}
		return tx.CreateItem(item)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx, req.UserID)
	return item, nil
}

// RemoveItem 冪等移除，回傳是否真的有刪到
func (s *CartService) RemoveItem(ctx context.Context, req Requester, bookID uint) (bool, error) {
	removed, err := s.store.RemoveItem(ctx, req.UserID, bookID)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidateSummary(ctx, req.UserID)
	}
	return removed, nil
}

// ClearCart 清空購物車，回傳刪除筆數
func (s *CartService) ClearCart(ctx context.Context, req Requester) (int64, error) {
	deleted, err := s.store.ClearCart(ctx, req.UserID)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.invalidateSummary(ctx, req.UserID)
	}
	return deleted, nil
}

// GetCart 購物車與items，沒有使用中的購物車時回傳nil
func (s *CartService) GetCart(ctx context.Context, req Requester) (*model.Cart, error) {
	return s.store.GetCartWithItems(ctx, req.UserID)
}

// GetCartSummary 摘要走read-through cache
func (s *CartService) GetCartSummary(ctx context.Context, req Requester) (*model.CartSummary, error) {
	if s.cache != nil {
		summary, err := s.cache.GetSummary(ctx, req.UserID)
		if err == nil {
			return summary, nil
		}
		if err != redis_repo.ErrCacheMiss {
			log.Warn().Err(err).Uint("user_id", req.UserID).Msg("cart summary cache read failed")
		}
	}

	summary, err := s.store.GetCartSummary(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, req.UserID, summary); err != nil {
			log.Warn().Err(err).Uint("user_id", req.UserID).Msg("cart summary cache write failed")
		}
	}
	return summary, nil
}

func (s *CartService) invalidateSummary(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate cart summary cache")
	}
}

var _ ICartService = (*CartService)(nil)
