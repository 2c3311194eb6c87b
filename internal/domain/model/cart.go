package model

import "time"

// Cart 每個用戶只有一筆cart row (unique user_id)
// 結帳後 is_active=false，下次購物車異動時重新啟用
type Cart struct {
	CartID   uint       `gorm:"primaryKey" json:"cart_id"`
	UserID   uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	IsActive bool       `gorm:"not null;default:true" json:"is_active"`
	Items    []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // 級聯刪除
	BaseModel
}

// CartItem (cart, book) 唯一
// 硬刪除，不走軟刪除 (避免unique index被soft delete row卡住)
type CartItem struct {
	CartItemID uint      `gorm:"primaryKey" json:"cart_item_id"`
	CartID     uint      `gorm:"not null;uniqueIndex:udx_cart_items_cart_book" json:"cart_id"`
	BookID     uint      `gorm:"not null;uniqueIndex:udx_cart_items_cart_book" json:"book_id"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	Book       Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"null" json:"updated_at"`
}

// CartSummary 購物車摘要
type CartSummary struct {
	TotalItems  int `json:"total_items"`
	UniqueBooks int `json:"unique_books"`
}
