package entity

import (
	"gorm.io/gorm"
)

// MenuItem price is in the smallest currency unit (cents). Orders and
// carts snapshot it; updating it here never changes existing orders.
type MenuItem struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	ImageURL    string `json:"imageUrl"`
	Available   bool   `gorm:"default:true" json:"available"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
