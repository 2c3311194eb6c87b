package model

type User struct {
	UserID    uint    `gorm:"primaryKey" json:"user_id"`
	Nickname  string  `gorm:"not null;type:varchar(50)" json:"nickname"`
	UserEmail string  `gorm:"unique;not null;type:varchar(100)" json:"user_email"`
	Age       int     `gorm:"not null;default:0" json:"age"`
	Orders    []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"` // 一對多
	BaseModel
}
