package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Status transitions. Every operation serializes on the per-order lock,
// checks the transition graph, then applies a guarded compare-and-swap
// so a lost race surfaces as InvalidTransition instead of last-write-
// wins. Broadcasts and notifications run after commit and never roll
// the mutation back.

// transition moves the order to the target state and returns the
// updated row.
func (s *OrderService) transition(orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
		}
		return nil, err
	}

	if !entity.CanTransition(o.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, o.Status, to)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, o.Status, to)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = to
	return o, nil
}

// MarkPaid is driven by the payment provider callback.
func (s *OrderService) MarkPaid(orderID uint) (*entity.Order, error) {
	o, err := s.transition(orderID, entity.StatusPaid)
	if err != nil {
		return nil, err
	}

	s.settleLatestPayment(o.ID, entity.PaymentPaid)

	oid := o.ID
	s.Notifier.Notify(o.CustomerID, &oid,
		fmt.Sprintf("Payment for order #%d received.", o.ID))
	return o, nil
}

func (s *OrderService) MarkFailed(orderID uint) (*entity.Order, error) {
	o, err := s.transition(orderID, entity.StatusFailed)
	if err != nil {
		return nil, err
	}

	s.settleLatestPayment(o.ID, entity.PaymentFailed)

	oid := o.ID
	s.Notifier.Notify(o.CustomerID, &oid,
		fmt.Sprintf("Payment for order #%d failed.", o.ID))
	return o, nil
}

// Confirm is the restaurant accepting the order. Subscribers on the
// global topic and on the order's confirmation topic both hear it;
// there is no replay for late subscribers.
func (s *OrderService) Confirm(orderID uint) (*entity.Order, error) {
	o, err := s.transition(orderID, entity.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	s.Hub.Publish(ws.TopicOrders, "orderPaymentConfirmed",
		map[string]any{"orderId": o.ID})
	s.Hub.Publish(ws.TopicOrderConfirmation(o.ID), "orderConfirmation",
		map[string]any{"orderId": o.ID, "status": o.Status})
	return o, nil
}

func (s *OrderService) MarkReady(orderID uint) (*entity.Order, error) {
	o, err := s.transition(orderID, entity.StatusReady)
	if err != nil {
		return nil, err
	}

	s.Hub.Publish(ws.TopicOrders, "orderStatusUpdated",
		map[string]any{"orderId": o.ID, "status": o.Status})
	return o, nil
}

func (s *OrderService) Cancel(orderID uint) (*entity.Order, error) {
	o, err := s.transition(orderID, entity.StatusCanceled)
	if err != nil {
		return nil, err
	}

	oid := o.ID
	s.Notifier.Notify(o.CustomerID, &oid,
		fmt.Sprintf("Order #%d has been canceled.", o.ID))
	return o, nil
}

// UpdateStatus is the generic transition endpoint. The target must be a
// known status and reachable from the current one; arbitrary jumps the
// old system tolerated are rejected here.
func (s *OrderService) UpdateStatus(orderID uint, raw string) (*entity.Order, error) {
	to, ok := entity.ParseOrderStatus(raw)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalidInput, raw)
	}

	o, err := s.transition(orderID, to)
	if err != nil {
		return nil, err
	}

	oid := o.ID
	s.Notifier.Notify(o.CustomerID, &oid,
		fmt.Sprintf("Order #%d is now %s.", o.ID, o.Status))
	s.Hub.Publish(ws.TopicOrders, "orderStatusUpdated",
		map[string]any{"orderId": o.ID, "status": o.Status})
	return o, nil
}

// Statuses from which a driver may be attached to the order.
var driverAssignableStatuses = []entity.OrderStatus{
	entity.StatusConfirmed, entity.StatusPreparing, entity.StatusReady,
}

// AssignDriver attaches a driver without changing the order status.
func (s *OrderService) AssignDriver(orderID, driverID uint) (*entity.Order, error) {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
		}
		return nil, err
	}

	isDriver, err := s.UserRepo.HasRole(driverID, entity.RoleDriver)
	if err != nil {
		return nil, err
	}
	if !isDriver {
		return nil, fmt.Errorf("%w: driver %d", apperr.ErrNotFound, driverID)
	}

	assignable := false
	for _, st := range driverAssignableStatuses {
		if o.Status == st {
			assignable = true
			break
		}
	}
	if !assignable {
		return nil, fmt.Errorf("%w: cannot assign driver while %s", apperr.ErrInvalidTransition, o.Status)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.SetDriver(tx, o.ID, driverID); err != nil {
			return err
		}
		return s.DeliveryRepo.SetDriver(tx, o.ID, driverID)
	})
	if err != nil {
		return nil, err
	}

	o.DriverID = &driverID
	s.Hub.Publish(ws.TopicOrders, "driverAssigned",
		map[string]any{"orderId": o.ID, "driverId": driverID})
	return o, nil
}

// settleLatestPayment mirrors the order state onto the newest payment
// attempt. Best-effort: a missing or stale payment row is logged only.
func (s *OrderService) settleLatestPayment(orderID uint, status entity.PaymentStatus) {
	p, err := s.Repo.LatestPayment(orderID)
	if err != nil {
		s.Log.Warn("no payment row to settle",
			zap.Uint("orderId", orderID), zap.Error(err))
		return
	}
	var paidAt *time.Time
	if status == entity.PaymentPaid {
		now := time.Now()
		paidAt = &now
	}
	if err := s.Repo.UpdatePaymentStatus(s.DB, p.ID, status, paidAt); err != nil {
		s.Log.Warn("payment settle failed",
			zap.Uint("orderId", orderID), zap.Error(err))
	}
}
