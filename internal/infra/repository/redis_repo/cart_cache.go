package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss cache內沒有該筆資料
var ErrCacheMiss = errors.New("cache miss")

const cartSummaryTTL = 5 * time.Minute

// ICartCache 購物車摘要的read-through cache
// 任何購物車異動後都要Invalidate，cache只是讀取路徑的加速
type ICartCache interface {
	GetSummary(ctx context.Context, userID uint) (*model.CartSummary, error)
	SetSummary(ctx context.Context, userID uint, summary *model.CartSummary) error
	Invalidate(ctx context.Context, userID uint) error
}

type CartCache struct {
	cache *redis.Client
}

func NewCartCache(cache *redis.Client) *CartCache {
	return &CartCache{cache: cache}
}

func generateCartSummaryKey(userID uint) string {
	return fmt.Sprintf("cart:%d:summary", userID)
}

func (r *CartCache) GetSummary(ctx context.Context, userID uint) (*model.CartSummary, error) {
	data, err := r.cache.Get(ctx, generateCartSummaryKey(userID)).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart summary: %w", err)
	}

	var summary model.CartSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, fmt.Errorf("invalid cart summary payload: %w", err)
	}
	return &summary, nil
}

func (r *CartCache) SetSummary(ctx context.Context, userID uint, summary *model.CartSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal cart summary: %w", err)
	}
	return r.cache.Set(ctx, generateCartSummaryKey(userID), data, cartSummaryTTL).Err()
}

func (r *CartCache) Invalidate(ctx context.Context, userID uint) error {
	return r.cache.Del(ctx, generateCartSummaryKey(userID)).Err()
}

var _ ICartCache = (*CartCache)(nil)
