package configs

import (
	"errors"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the bootstrap admin account once.
func SeedAdmin(db *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "admin@fooddelivery.local")

	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword(
		[]byte(getEnv("ADMIN_PASSWORD", "admin1234")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Platform",
		LastName:  "Admin",
		Role:      entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedLookups inserts default restaurant categories, skipping any that
// already exist so repeated startups are safe.
func SeedLookups(db *gorm.DB) error {
	names := []string{"Fast Food", "Pizza", "Sushi", "Dessert", "Healthy"}
	for _, n := range names {
		var cnt int64
		if err := db.Model(&entity.Category{}).Where("name = ?", n).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			continue
		}
		if err := db.Create(&entity.Category{Name: n}).Error; err != nil {
			return err
		}
	}
	return nil
}
