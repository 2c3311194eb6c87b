package model

import "time"

// Favorite (user, book) 唯一，add才能做到冪等
type Favorite struct {
	FavoriteID uint      `gorm:"primaryKey" json:"favorite_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:udx_favorites_user_book" json:"user_id"`
	BookID     uint      `gorm:"not null;uniqueIndex:udx_favorites_user_book" json:"book_id"`
	Book       Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}
