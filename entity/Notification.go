package entity

import (
	"gorm.io/gorm"
)

// Notification is informational only; core logic writes them as a side
// effect of status transitions and never reads them back.
type Notification struct {
	gorm.Model
	Message string `gorm:"not null" json:"message"`
	Read    bool   `gorm:"default:false" json:"read"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	// OrderID may reference a deleted order (delete notifications do).
	OrderID *uint `json:"orderId,omitempty"`
}
