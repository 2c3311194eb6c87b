package service

import (
	"errors"
	"fmt"
)

var (
	// ErrBookNotFound 書籍不存在
	ErrBookNotFound = errors.New("book not found")
	// ErrBookUnavailable 書籍已下架或無庫存
	ErrBookUnavailable = errors.New("book is unavailable")
	// ErrAgeRestricted 成人書籍，年齡不符
	ErrAgeRestricted = errors.New("you must be 18+ to add this book")
	// ErrEmptyCart 購物車為空，無法結帳
	ErrEmptyCart = errors.New("cart is empty or does not exist")
	// ErrInvalidQuantity 數量超出允許範圍
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
)

// StockExceededError 庫存不足
// 帶上可售量與購物車既有量，caller才有辦法組出可讀的錯誤訊息
type StockExceededError struct {
	Requested int // 本次請求數量
	InCart    int // 購物車既有數量
	Available int // 目前庫存
}

func (e *StockExceededError) Error() string {
	if e.InCart > 0 {
		return fmt.Sprintf("cannot add %d more copies. in stock: %d, already in cart: %d",
			e.Requested, e.Available, e.InCart)
	}
	return fmt.Sprintf("only %d copies available, but you requested %d", e.Available, e.Requested)
}
