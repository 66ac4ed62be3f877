package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	ImageURL    string `json:"imageUrl"`

	OwnerID uint `json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	CategoryID *uint     `json:"categoryId,omitempty"`
	Category   *Category `json:"-"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `gorm:"foreignKey:RestaurantID" json:"-"`
}
