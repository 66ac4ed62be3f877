package entity

import (
	"gorm.io/gorm"
)

// Order money fields are in the smallest currency unit (cents).
// TotalPrice = Subtotal + DeliveryFee; Subtotal is the sum of item
// UnitPrice × Qty snapshots taken at order time.
type Order struct {
	gorm.Model
	Status      OrderStatus `gorm:"type:varchar(16);not null;default:PENDING;index" json:"status"`
	Subtotal    int64       `json:"subtotal"`
	DeliveryFee int64       `json:"deliveryFee"`
	TotalPrice  int64       `json:"totalPrice"`
	Address     string      `json:"address"`

	CustomerID uint `json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	// nil until a driver picks up / is assigned
	DriverID *uint `json:"driverId,omitempty"`
	Driver   *User `gorm:"foreignKey:DriverID" json:"-"`

	// Order exclusively owns its items (cascade on delete). Payments,
	// Delivery and Notifications only reference the order id.
	OrderItems []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments   []Payment   `json:"-"`
	Delivery   *Delivery   `gorm:"foreignKey:OrderID" json:"-"`
}
