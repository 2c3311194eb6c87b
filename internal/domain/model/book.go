package model

import (
	"github.com/shopspring/decimal"
)

// Book 目錄商品
// 庫存(InStock)由外部庫存系統維護，本服務只讀取與驗證
type Book struct {
	BookID      uint            `gorm:"primaryKey" json:"book_id"`
	Name        string          `gorm:"not null;type:varchar(255);index" json:"name"`
	Slug        string          `gorm:"not null;type:varchar(255);unique" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	InStock     int             `gorm:"not null;default:0" json:"in_stock"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	IsAdult     bool            `gorm:"not null;default:false" json:"is_adult"`
	BaseModel
}
