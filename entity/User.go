package entity

import (
	"gorm.io/gorm"
)

// Roles known to the platform. Stored as plain strings on User.Role.
const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	// Relations, preloaded only when needed
	RestaurantsOwned []Restaurant   `gorm:"foreignKey:OwnerID" json:"-"`
	Orders           []Order        `gorm:"foreignKey:CustomerID" json:"-"`
	Notifications    []Notification `json:"-"`
}
