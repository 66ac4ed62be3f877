package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"github.com/sofraProject/foodDelivery-sub000/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	Repo     *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
}

func NewMenuController(repo *repository.MenuRepository, restRepo *repository.RestaurantRepository) *MenuController {
	return &MenuController{Repo: repo, RestRepo: restRepo}
}

// GET /api/restaurants/:id/menu
func (mc *MenuController) ListForRestaurant(c *gin.Context) {
	restID, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := mc.Repo.ListForRestaurant(restID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

func (mc *MenuController) requireOwnership(c *gin.Context, restID uint) bool {
	if utils.CurrentRole(c) == entity.RoleAdmin {
		return true
	}
	ok, err := mc.RestRepo.IsOwnedBy(restID, utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return false
	}
	if !ok {
		resp.Forbidden(c, "not your restaurant")
		return false
	}
	return true
}

// POST /api/restaurants/:id/menu (owner)
func (mc *MenuController) Create(c *gin.Context) {
	restID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !mc.requireOwnership(c, restID) {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Price       int64  `json:"price" binding:"required,min=1"`
		ImageURL    string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item := entity.MenuItem{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Available:    true,
		RestaurantID: restID,
	}
	if err := mc.Repo.Create(&item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /api/menu-items/:id (owner)
func (mc *MenuController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := mc.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if !mc.requireOwnership(c, item.RestaurantID) {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Price       *int64  `json:"price"`
		ImageURL    *string `json:"imageUrl"`
		Available   *bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			resp.BadRequest(c, "price must be positive")
			return
		}
		// existing order items keep their snapshot price
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.Repo.Update(item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /api/menu-items/:id (owner)
func (mc *MenuController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := mc.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if !mc.requireOwnership(c, item.RestaurantID) {
		return
	}
	if err := mc.Repo.Delete(id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
