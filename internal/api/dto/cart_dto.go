package dto

import (
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/shopspring/decimal"
)

type AddItemDTO struct {
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
}

type UpdateQuantityDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	BookID   uint            `json:"book_id"`
	BookName string          `json:"book_name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	CartID     uint            `json:"cart_id"`
	Items      []CartItemDTO   `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type AddItemResponse struct {
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
	Created  bool `json:"created"`
}

// ConvertCartToResponse 將購物車model轉為回應DTO
// TotalPrice用目前目錄價計算，僅供顯示，結帳才做正式快照
func ConvertCartToResponse(cart *model.Cart) CartResponse {
	response := CartResponse{
		Items:      []CartItemDTO{},
		TotalPrice: decimal.Zero,
	}
	if cart == nil {
		return response
	}

	response.CartID = cart.CartID
	for _, item := range cart.Items {
		subtotal := item.Book.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		response.Items = append(response.Items, CartItemDTO{
			BookID:   item.BookID,
			BookName: item.Book.Name,
			Price:    item.Book.Price,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		response.TotalPrice = response.TotalPrice.Add(subtotal)
	}
	return response
}
