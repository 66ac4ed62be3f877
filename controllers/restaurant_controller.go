package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"github.com/sofraProject/foodDelivery-sub000/utils"
	"gorm.io/gorm"
)

type RestaurantController struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantController(repo *repository.RestaurantRepository) *RestaurantController {
	return &RestaurantController{Repo: repo}
}

// GET /api/restaurants?categoryId=
func (rc *RestaurantController) List(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			resp.BadRequest(c, "invalid categoryId")
			return
		}
		u := uint(id)
		categoryID = &u
	}

	items, err := rc.Repo.List(categoryID, 50)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /api/restaurants/:id
func (rc *RestaurantController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rest, err := rc.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rest)
}

// POST /api/restaurants (owner)
func (rc *RestaurantController) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Address     string `json:"address"`
		PhoneNumber string `json:"phoneNumber"`
		ImageURL    string `json:"imageUrl"`
		CategoryID  *uint  `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rest := entity.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		OwnerID:     utils.CurrentUserID(c),
	}
	if err := rc.Repo.Create(&rest); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, rest)
}

// PATCH /api/restaurants/:id (owner of this restaurant, or admin)
func (rc *RestaurantController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rest, err := rc.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	if utils.CurrentRole(c) != entity.RoleAdmin && rest.OwnerID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "not your restaurant")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Address     *string `json:"address"`
		PhoneNumber *string `json:"phoneNumber"`
		ImageURL    *string `json:"imageUrl"`
		CategoryID  *uint   `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if req.Name != nil {
		rest.Name = *req.Name
	}
	if req.Description != nil {
		rest.Description = *req.Description
	}
	if req.Address != nil {
		rest.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		rest.PhoneNumber = *req.PhoneNumber
	}
	if req.ImageURL != nil {
		rest.ImageURL = *req.ImageURL
	}
	if req.CategoryID != nil {
		rest.CategoryID = req.CategoryID
	}

	if err := rc.Repo.Update(rest); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rest)
}

// DELETE /api/restaurants/:id (admin)
func (rc *RestaurantController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, err := rc.Repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if err := rc.Repo.Delete(id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
