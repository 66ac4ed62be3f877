package entity

import (
	"gorm.io/gorm"
)

// Category is the restaurant category lookup, seeded at startup.
type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Restaurants []Restaurant `json:"-"`
}
