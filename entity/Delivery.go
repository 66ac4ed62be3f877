package entity

import (
	"time"

	"gorm.io/gorm"
)

// Delivery keeps the last-known driver position for an order. Each
// report overwrites the previous one; no history is retained. The row
// may exist before a driver is assigned, but it is only meaningful
// once DriverID is non-nil.
type Delivery struct {
	gorm.Model
	OrderID uint `gorm:"uniqueIndex;not null" json:"orderId"`

	DriverID *uint `json:"driverId,omitempty"`
	Driver   *User `gorm:"foreignKey:DriverID" json:"-"`

	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reportedAt"`
}
