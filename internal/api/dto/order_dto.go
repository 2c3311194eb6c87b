package dto

import (
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/shopspring/decimal"
)

type OrderItemDTO struct {
	BookID   uint            `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	OrderID    string          `json:"order_id"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderDate  time.Time       `json:"order_date"`
	Items      []OrderItemDTO  `json:"items"`
}

type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func ConvertOrderToResponse(order *model.Order) OrderResponse {
	response := OrderResponse{
		OrderID:    order.OrderID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		OrderDate:  order.OrderDate,
		Items:      []OrderItemDTO{},
	}
	for _, item := range order.OrderItems {
		response.Items = append(response.Items, OrderItemDTO{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return response
}
