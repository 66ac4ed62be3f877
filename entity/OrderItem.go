package entity

import (
	"gorm.io/gorm"
)

// OrderItem snapshots the menu price at order time; later menu price
// changes never touch existing orders.
type OrderItem struct {
	gorm.Model
	Qty       int   `gorm:"not null" json:"qty"`
	UnitPrice int64 `gorm:"not null" json:"unitPrice"`
	Total     int64 `json:"total"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
}
