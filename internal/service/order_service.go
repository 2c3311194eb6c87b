package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/producer"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/redis_repo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type IOrderService interface {
	// CreateOrderFromCart 結帳：購物車轉訂單
	// 建單、快照單價、總價、deactivate購物車，全部在同一個交易內
	CreateOrderFromCart(ctx context.Context, req Requester) (*model.Order, error)
	GetOrder(ctx context.Context, req Requester, orderID string) (*model.Order, error)
	ListOrders(ctx context.Context, req Requester, page, pageSize int) ([]model.Order, int64, error)
}

type OrderService struct {
	orderStore db.IOrderStore
	cartStore  db.ICartStore
	cache      redis_repo.ICartCache
	producer   producer.IOrderEventProducer
}

func NewOrderService(orderStore db.IOrderStore, cartStore db.ICartStore,
	cache redis_repo.ICartCache, producer producer.IOrderEventProducer) *OrderService {
	return &OrderService{
		orderStore: orderStore,
		cartStore:  cartStore,
		cache:      cache,
		producer:   producer,
	}
}

func (s *OrderService) CreateOrderFromCart(ctx context.Context, req Requester) (*model.Order, error) {
	cart, err := s.cartStore.GetCartWithItems(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	bookIDs := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		bookIDs = append(bookIDs, item.BookID)
	}

	order := &model.Order{
		OrderID:   uuid.NewString(),
		UserID:    req.UserID,
		Status:    model.OrderStatusPending,
		OrderDate: time.Now().UTC(),
	}

	err = s.orderStore.WithinTx(ctx, func(tx db.OrderTx) error {
		// 價格快照要讀交易當下的值，不用cart preload進來的舊資料
		books, err := tx.GetBooksByIDs(bookIDs)
		if err != nil {
			return err
		}
		priceByBook := make(map[uint]decimal.Decimal, len(books))
		for _, book := range books {
			priceByBook[book.BookID] = book.Price
		}

		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			price, ok := priceByBook[item.BookID]
			if !ok {
				return ErrBookNotFound
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, model.OrderItem{
				OrderID:  order.OrderID,
				BookID:   item.BookID,
				Quantity: item.Quantity,
				Price:    price,
			})
		}
		order.TotalPrice = total

		if err := tx.CreateOrder(order); err != nil {
			return err
		}
		if err := tx.CreateOrderItems(orderItems); err != nil {
			return err
		}
		order.OrderItems = orderItems

		// items留著當歷史，只把購物車標為非使用中
		return tx.DeactivateCart(cart.CartID)
	})
	if err != nil {
		return nil, err
	}

	s.afterCheckout(ctx, req.UserID, order)
	return order, nil
}

// commit成功後的收尾：清cache、發事件
// 這裡失敗不影響已成立的訂單，只記log
func (s *OrderService) afterCheckout(ctx context.Context, userID uint, order *model.Order) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate cart summary cache")
		}
	}

	if s.producer != nil {
		go func(order *model.Order) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.producer.OrderCreated(sendCtx, order); err != nil {
				log.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to publish order created event")
			}
		}(order)
	}
}

// GetOrder 只能查自己的訂單，查別人的一律回not found
func (s *OrderService) GetOrder(ctx context.Context, req Requester, orderID string) (*model.Order, error) {
	order, err := s.orderStore.GetOrderByID(ctx, orderID)
	if err != nil {
		if err == db.ErrOrderNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != req.UserID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, req Requester, page, pageSize int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.orderStore.GetOrdersPaginated(ctx, req.UserID, page, pageSize)
}

var _ IOrderService = (*OrderService)(nil)
