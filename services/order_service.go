package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	DB           *gorm.DB
	Repo         *repository.OrderRepository
	CartRepo     *repository.CartRepository
	RestRepo     *repository.RestaurantRepository
	UserRepo     *repository.UserRepository
	DeliveryRepo *repository.DeliveryRepository

	Hub      ws.Broadcaster
	Notifier *NotificationService
	Provider PaymentProvider
	Log      *zap.Logger

	DeliveryFee    int64
	PaymentTimeout time.Duration

	locks *orderLocks
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	restRepo *repository.RestaurantRepository,
	userRepo *repository.UserRepository,
	deliveryRepo *repository.DeliveryRepository,
	hub ws.Broadcaster,
	notifier *NotificationService,
	provider PaymentProvider,
	log *zap.Logger,
	deliveryFee int64,
	paymentTimeout time.Duration,
) *OrderService {
	return &OrderService{
		DB:           db,
		Repo:         repo,
		CartRepo:     cartRepo,
		RestRepo:     restRepo,
		UserRepo:     userRepo,
		DeliveryRepo: deliveryRepo,

		Hub:      hub,
		Notifier: notifier,
		Provider: provider,
		Log:      log,

		DeliveryFee:    deliveryFee,
		PaymentTimeout: paymentTimeout,

		locks: newOrderLocks(),
	}
}

// ----- DTOs -----

type OrderItemIn struct {
	MenuItemID uint `json:"menuItemId"`
	Qty        int  `json:"qty"`
}

type CreateOrderReq struct {
	RestaurantID  uint          `json:"restaurantId"`
	Items         []OrderItemIn `json:"items"`
	PaymentMethod string        `json:"paymentMethod"`
	Address       string        `json:"address"`
}

type CreateOrderRes struct {
	Order   *entity.Order   `json:"order"`
	Payment *entity.Payment `json:"payment"`
}

// ----- Create -----

// Create validates the request, snapshots prices, and persists the
// order, its items and the initial payment attempt in one transaction.
// Online methods then go through the payment provider; a provider
// failure leaves the order in PENDING for retry or reconciliation.
func (s *OrderService) Create(customerID uint, req *CreateOrderReq) (*CreateOrderRes, error) {
	if req.RestaurantID == 0 {
		return nil, fmt.Errorf("%w: restaurantId is required", apperr.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items is required", apperr.ErrInvalidInput)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: paymentMethod is required", apperr.ErrInvalidInput)
	}
	for _, it := range req.Items {
		if it.Qty <= 0 {
			return nil, fmt.Errorf("%w: qty must be positive", apperr.ErrInvalidInput)
		}
	}

	ok, err := s.Repo.RestaurantExists(req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: restaurant %d", apperr.ErrNotFound, req.RestaurantID)
	}

	menuItemIDs := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		menuItemIDs = append(menuItemIDs, it.MenuItemID)
	}
	ok, err = s.Repo.MenuItemsBelongToRestaurant(menuItemIDs, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: menu item not in this restaurant", apperr.ErrNotFound)
	}

	var subtotal int64
	type line struct {
		menuItemID uint
		qty        int
		unitPrice  int64
	}
	lines := make([]line, 0, len(req.Items))
	for _, it := range req.Items {
		m, err := s.Repo.GetMenuItemBasics(it.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", apperr.ErrNotFound, it.MenuItemID)
			}
			return nil, err
		}
		subtotal += m.Price * int64(it.Qty)
		lines = append(lines, line{menuItemID: m.ID, qty: it.Qty, unitPrice: m.Price})
	}

	var out CreateOrderRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Status:       entity.StatusPending,
			Subtotal:     subtotal,
			DeliveryFee:  s.DeliveryFee,
			TotalPrice:   subtotal + s.DeliveryFee,
			Address:      req.Address,
			CustomerID:   customerID,
			RestaurantID: req.RestaurantID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, l := range lines {
			oi := entity.OrderItem{
				Qty:        l.qty,
				UnitPrice:  l.unitPrice,
				Total:      l.unitPrice * int64(l.qty),
				OrderID:    order.ID,
				MenuItemID: l.menuItemID,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		payment := entity.Payment{
			Method:  req.PaymentMethod,
			Amount:  order.TotalPrice,
			Status:  entity.PaymentPending,
			OrderID: order.ID,
		}
		if err := s.Repo.CreatePayment(tx, &payment); err != nil {
			return err
		}

		out = CreateOrderRes{Order: &order, Payment: &payment}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Cash settles on delivery; everything else goes to the provider now.
	if req.PaymentMethod != entity.PaymentMethodCash {
		if err := s.chargeProvider(&out); err != nil {
			// Order stays PENDING; the caller gets 502 and may retry.
			return &out, err
		}
	}

	return &out, nil
}

func (s *OrderService) chargeProvider(res *CreateOrderRes) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.PaymentTimeout)
	defer cancel()

	order := res.Order
	if err := s.Provider.Charge(ctx, order.ID, res.Payment.Method, order.TotalPrice); err != nil {
		s.Log.Error("payment provider charge failed",
			zap.Uint("orderId", order.ID), zap.Error(err))
		if errors.Is(err, apperr.ErrUpstreamPayment) {
			return err
		}
		return fmt.Errorf("%w: %v", apperr.ErrUpstreamPayment, err)
	}

	now := time.Now()
	if err := s.Repo.UpdatePaymentStatus(s.DB, res.Payment.ID, entity.PaymentPaid, &now); err != nil {
		// The charge went through; losing the local flag is recoverable
		// via the provider callback hitting /success.
		s.Log.Warn("payment row update failed after charge",
			zap.Uint("orderId", order.ID), zap.Error(err))
		return nil
	}
	res.Payment.Status = entity.PaymentPaid
	res.Payment.PaidAt = &now
	return nil
}

// CheckoutFromCart turns the persisted cart into an order and clears it.
func (s *OrderService) CheckoutFromCart(customerID uint, paymentMethod, address string) (*CreateOrderRes, error) {
	cart, err := s.CartRepo.GetCartWithItems(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart is empty", apperr.ErrInvalidInput)
		}
		return nil, err
	}
	if cart.RestaurantID == 0 || len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperr.ErrInvalidInput)
	}

	req := CreateOrderReq{
		RestaurantID:  cart.RestaurantID,
		PaymentMethod: paymentMethod,
		Address:       address,
	}
	for _, it := range cart.Items {
		req.Items = append(req.Items, OrderItemIn{MenuItemID: it.MenuItemID, Qty: it.Qty})
	}

	out, err := s.Create(customerID, &req)
	if err != nil {
		return out, err
	}

	if err := s.CartRepo.ClearCart(s.DB, customerID); err != nil {
		s.Log.Warn("clear cart after checkout failed",
			zap.Uint("userId", customerID), zap.Error(err))
	}
	return out, nil
}

// ----- Read -----

func (s *OrderService) Get(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) ListForCustomer(customerID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForCustomer(customerID, limit)
}

// ListConfirmed is the driver-facing queue of orders awaiting pickup.
func (s *OrderService) ListConfirmed(limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersByStatus(entity.StatusConfirmed, limit)
}

func (s *OrderService) ListForRestaurant(userID, restID uint, status *entity.OrderStatus, limit int) ([]repository.OrderSummary, error) {
	ok, err := s.RestRepo.IsOwnedBy(restID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: not your restaurant", apperr.ErrForbidden)
	}
	return s.Repo.ListOrdersForRestaurant(restID, status, limit)
}

// ----- Delete -----

// Delete removes the order (admin path) and tells the customer.
func (s *OrderService) Delete(orderID uint) error {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
		}
		return err
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteOrder(tx, o.ID)
	}); err != nil {
		return err
	}

	oid := o.ID
	s.Notifier.Notify(o.CustomerID, &oid,
		fmt.Sprintf("Your order #%d has been removed.", o.ID))
	return nil
}
