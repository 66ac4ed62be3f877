package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
	"github.com/sofraProject/foodDelivery-sub000/services"
	"github.com/sofraProject/foodDelivery-sub000/utils"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// GET /api/cart
func (cc *CartController) Get(c *gin.Context) {
	cart, err := cc.Carts.Get(utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /api/cart/items
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
		Qty        int  `json:"qty" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := cc.Carts.AddItem(utils.CurrentUserID(c), req.MenuItemID, req.Qty)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, cart)
}

// PATCH /api/cart/items/:id
func (cc *CartController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Qty int `json:"qty" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := cc.Carts.UpdateItemQty(utils.CurrentUserID(c), id, req.Qty)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /api/cart/items/:id
func (cc *CartController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cart, err := cc.Carts.RemoveItem(utils.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /api/cart
func (cc *CartController) Clear(c *gin.Context) {
	if err := cc.Carts.Clear(utils.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
