package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
	"github.com/sofraProject/foodDelivery-sub000/services"
	"github.com/sofraProject/foodDelivery-sub000/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(n *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: n}
}

// GET /api/notifications
func (nc *NotificationController) ListForMe(c *gin.Context) {
	items, err := nc.Notifications.ListForUser(utils.CurrentUserID(c), 50)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// PATCH /api/notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := nc.Notifications.MarkRead(utils.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"read": id})
}
