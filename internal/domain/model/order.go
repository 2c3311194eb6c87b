package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"   // 待付款
	OrderStatusPaid      = "paid"      // 已付款
	OrderStatusCancelled = "cancelled" // 已取消
)

// Order 不可變的購買紀錄
// TotalPrice是結帳當下的快照，之後不會重算
type Order struct {
	OrderID    string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Status     string          `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	TotalPrice decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total_price"`
	OrderItems []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"` // 一對多，級聯刪除
	OrderDate  time.Time       `gorm:"not null" json:"order_date"`
	BaseModel
}

// OrderItem (order, book) 唯一
// Price是結帳當下的目錄價快照，book之後改價不影響
type OrderItem struct {
	OrderID  string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	BookID   uint            `gorm:"primaryKey" json:"book_id"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	BaseModel
}
