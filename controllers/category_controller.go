package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GET /api/categories
func (cc *CategoryController) List(c *gin.Context) {
	var items []entity.Category
	if err := cc.DB.Order("name ASC").Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /api/categories (admin)
func (cc *CategoryController) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cat := entity.Category{Name: req.Name}
	if err := cc.DB.Create(&cat).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, cat)
}
