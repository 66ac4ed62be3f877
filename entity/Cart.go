package entity

import (
	"gorm.io/gorm"
)

// One cart per user. A cart holds items from a single restaurant;
// adding from another restaurant replaces the cart contents.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint `json:"restaurantId"`

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}
