package entity

import (
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	Qty       int   `gorm:"not null" json:"qty"`
	UnitPrice int64 `gorm:"not null" json:"unitPrice"`
	Total     int64 `json:"total"`

	CartID uint `gorm:"index" json:"cartId"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
}
