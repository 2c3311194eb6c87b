package producer

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// OrderEvent order.created事件payload
// commit後才發送，消費端(通知/郵件)在核心之外
type OrderEvent struct {
	OrderID    string           `json:"order_id"`
	UserID     uint             `json:"user_id"`
	Status     string           `json:"status"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	OrderDate  time.Time        `json:"order_date"`
	Items      []OrderEventItem `json:"items"`
}

type OrderEventItem struct {
	BookID   uint            `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// IOrderEventProducer 結帳完成後的事件出口
type IOrderEventProducer interface {
	OrderCreated(ctx context.Context, order *model.Order) error
	Close() error
}

type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,

		// 重連機制設置
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		// 壓縮設置
		Compression: kafka.Snappy,
	}

	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) OrderCreated(ctx context.Context, order *model.Order) error {
	event := OrderEvent{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		OrderDate:  order.OrderDate,
	}
	for _, item := range order.OrderItems {
		event.Items = append(event.Items, OrderEventItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte("order.created"),
			},
		},
	})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
