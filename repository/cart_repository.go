package repository

import (
	"errors"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

// GetOrCreate returns the user's cart, creating an empty one on first use.
func (r *CartRepository) GetOrCreate(userID uint) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = entity.Cart{UserID: userID}
		if err := r.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var cart entity.Cart
	if err := r.DB.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) AddItem(tx *gorm.DB, item *entity.CartItem) error {
	return tx.Create(item).Error
}

func (r *CartRepository) UpdateItemQty(itemID uint, qty int, total int64) error {
	return r.DB.Model(&entity.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]any{"qty": qty, "total": total}).Error
}

func (r *CartRepository) RemoveItem(cartID, itemID uint) error {
	return r.DB.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}, itemID).Error
}

func (r *CartRepository) SetRestaurant(tx *gorm.DB, cartID, restID uint) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("restaurant_id", restID).Error
}

// ClearCart empties the cart after checkout.
func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	var cart entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Where("cart_id = ?", cart.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", cart.ID).
		Update("restaurant_id", 0).Error
}
