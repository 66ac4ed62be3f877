package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/pkg/resp"
	"github.com/sofraProject/foodDelivery-sub000/services"
	"github.com/sofraProject/foodDelivery-sub000/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// ===== Create =====

// POST /api/orders
func (oc *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.Orders.Create(uid, &req)
	if err != nil {
		// A provider failure still created the order; the client needs
		// both the error and the PENDING order id to retry.
		if errors.Is(err, apperr.ErrUpstreamPayment) && out != nil {
			resp.ErrorWithData(c, http.StatusBadGateway, resp.KindUpstreamPayment, err.Error(), out)
			return
		}
		respondError(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /api/orders/checkout turns the stored cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		PaymentMethod string `json:"paymentMethod" binding:"required"`
		Address       string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.Orders.CheckoutFromCart(uid, req.PaymentMethod, req.Address)
	if err != nil {
		if errors.Is(err, apperr.ErrUpstreamPayment) && out != nil {
			resp.ErrorWithData(c, http.StatusBadGateway, resp.KindUpstreamPayment, err.Error(), out)
			return
		}
		respondError(c, err)
		return
	}
	resp.Created(c, out)
}

// ===== Read =====

// GET /api/orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Orders.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /api/orders lists the caller's own orders.
func (oc *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	items, err := oc.Orders.ListForCustomer(uid, 50)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /api/orders/status/confirmed is the driver pickup queue.
func (oc *OrderController) ListConfirmed(c *gin.Context) {
	items, err := oc.Orders.ListConfirmed(50)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /api/restaurants/:id/orders backs the owner dashboard.
func (oc *OrderController) ListForRestaurant(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var status *entity.OrderStatus
	if raw := c.Query("status"); raw != "" {
		st, valid := entity.ParseOrderStatus(raw)
		if !valid {
			resp.BadRequest(c, "unknown status")
			return
		}
		status = &st
	}

	items, err := oc.Orders.ListForRestaurant(uid, restID, status, 50)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// ===== Transitions =====

// PUT /api/orders/:id/success
func (oc *OrderController) MarkPaid(c *gin.Context) {
	oc.runTransition(c, oc.Orders.MarkPaid)
}

// PUT /api/orders/:id/failure
func (oc *OrderController) MarkFailed(c *gin.Context) {
	oc.runTransition(c, oc.Orders.MarkFailed)
}

// PUT /api/orders/:id/confirm
func (oc *OrderController) Confirm(c *gin.Context) {
	oc.runTransition(c, oc.Orders.Confirm)
}

// PUT /api/orders/:id/ready
func (oc *OrderController) MarkReady(c *gin.Context) {
	oc.runTransition(c, oc.Orders.MarkReady)
}

// PUT /api/orders/:id/cancel
func (oc *OrderController) Cancel(c *gin.Context) {
	oc.runTransition(c, oc.Orders.Cancel)
}

func (oc *OrderController) runTransition(c *gin.Context, op func(uint) (*entity.Order, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := op(id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, o)
}

// PUT /api/orders/:id applies a generic status update.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	o, err := oc.Orders.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, o)
}

// PUT /api/orders/:id/assign-driver
func (oc *OrderController) AssignDriver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		DriverID uint `json:"driverId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	o, err := oc.Orders.AssignDriver(id, req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, o)
}

// PUT /api/orders/:id/claim lets a driver assign themselves.
func (oc *OrderController) ClaimOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Orders.AssignDriver(id, utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, o)
}

// ===== Delete =====

// DELETE /api/orders/:id is the admin removal path.
func (oc *OrderController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := oc.Orders.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
