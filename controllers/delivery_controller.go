package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
	"github.com/sofraProject/foodDelivery-sub000/services"
	"github.com/sofraProject/foodDelivery-sub000/utils"
)

// DeliveryController is the REST face of the location relay; drivers
// that cannot hold a socket open fall back to it.
type DeliveryController struct {
	Deliveries *services.DeliveryService
}

func NewDeliveryController(deliveries *services.DeliveryService) *DeliveryController {
	return &DeliveryController{Deliveries: deliveries}
}

// PUT /api/orders/:id/location (driver)
func (dc *DeliveryController) ReportLocation(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Latitude   *float64   `json:"latitude" binding:"required"`
		Longitude  *float64   `json:"longitude" binding:"required"`
		ReportedAt *time.Time `json:"reportedAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	driverID := utils.CurrentUserID(c)
	p := entity.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}

	published, err := dc.Deliveries.ReportLocation(orderID, &driverID, p, req.ReportedAt)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": orderID, "published": published})
}

// GET /api/orders/:id/delivery returns the last-known position.
func (dc *DeliveryController) LastKnown(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := dc.Deliveries.LastKnown(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, d)
}
