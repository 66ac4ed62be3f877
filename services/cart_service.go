package services

import (
	"errors"
	"fmt"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	Repo     *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, repo *repository.CartRepository, menuRepo *repository.MenuRepository) *CartService {
	return &CartService{DB: db, Repo: repo, MenuRepo: menuRepo}
}

func (s *CartService) Get(userID uint) (*entity.Cart, error) {
	if _, err := s.Repo.GetOrCreate(userID); err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

// AddItem snapshots the menu price into the cart. Items from a
// different restaurant replace the current cart contents.
func (s *CartService) AddItem(userID, menuItemID uint, qty int) (*entity.Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be positive", apperr.ErrInvalidInput)
	}

	m, err := s.MenuRepo.GetByID(menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", apperr.ErrNotFound, menuItemID)
		}
		return nil, err
	}

	cart, err := s.Repo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if cart.RestaurantID != 0 && cart.RestaurantID != m.RestaurantID {
			if err := s.Repo.ClearCart(tx, userID); err != nil {
				return err
			}
		}
		if err := s.Repo.SetRestaurant(tx, cart.ID, m.RestaurantID); err != nil {
			return err
		}
		item := entity.CartItem{
			CartID:     cart.ID,
			MenuItemID: m.ID,
			Qty:        qty,
			UnitPrice:  m.Price,
			Total:      m.Price * int64(qty),
		}
		return s.Repo.AddItem(tx, &item)
	})
	if err != nil {
		return nil, err
	}

	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) UpdateItemQty(userID, itemID uint, qty int) (*entity.Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be positive", apperr.ErrInvalidInput)
	}

	cart, err := s.Repo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}

	for _, it := range cart.Items {
		if it.ID == itemID {
			if err := s.Repo.UpdateItemQty(itemID, qty, it.UnitPrice*int64(qty)); err != nil {
				return nil, err
			}
			return s.Repo.GetCartWithItems(userID)
		}
	}
	return nil, fmt.Errorf("%w: cart item %d", apperr.ErrNotFound, itemID)
}

func (s *CartService) RemoveItem(userID, itemID uint) (*entity.Cart, error) {
	cart, err := s.Repo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RemoveItem(cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) Clear(userID uint) error {
	return s.Repo.ClearCart(s.DB, userID)
}
