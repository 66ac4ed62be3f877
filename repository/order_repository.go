package repository

import (
	"time"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderWithItems(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("OrderItems").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteOrder removes the order and, via cascade, its items. Payments,
// deliveries and notifications keep referencing the dead id.
func (r *OrderRepository) DeleteOrder(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.Order{}, orderID).Error
}

type OrderSummary struct {
	ID           uint               `json:"id"`
	RestaurantID uint               `json:"restaurantId"`
	TotalPrice   int64              `json:"totalPrice"`
	Status       entity.OrderStatus `json:"status"`
	DriverID     *uint              `json:"driverId,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForCustomer(customerID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total_price, status, driver_id, created_at").
		Where("customer_id = ?", customerID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// ListOrdersByStatus backs the driver-facing queue (CONFIRMED orders).
func (r *OrderRepository) ListOrdersByStatus(status entity.OrderStatus, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total_price, status, driver_id, created_at").
		Where("status = ?", status).
		Order("id ASC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListOrdersForRestaurant(restID uint, status *entity.OrderStatus, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	db := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total_price, status, driver_id, created_at").
		Where("restaurant_id = ?", restID)
	if status != nil {
		db = db.Where("status = ?", *status)
	}
	var out []OrderSummary
	err := db.Order("id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

// UpdateStatusGuard flips the status only when the row still holds the
// expected current value. RowsAffected == 0 means a concurrent writer
// won or the precondition no longer holds.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetDriver(tx *gorm.DB, orderID, driverID uint) error {
	return tx.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("driver_id", driverID).Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, qty, unit_price, total, menu_item_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) CountOrderItems(orderID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.OrderItem{}).Where("order_id = ?", orderID).Count(&cnt).Error
	return cnt, err
}

// ---------------- Payments ----------------

func (r *OrderRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

// LatestPayment returns the most recent payment attempt for the order.
func (r *OrderRepository) LatestPayment(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.Where("order_id = ?", orderID).Order("id DESC").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *OrderRepository) UpdatePaymentStatus(tx *gorm.DB, paymentID uint, status entity.PaymentStatus, paidAt *time.Time) error {
	updates := map[string]any{"status": status}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
	}
	return tx.Model(&entity.Payment{}).Where("id = ?", paymentID).Updates(updates).Error
}

// ---------------- Validations / helpers ----------------

func (r *OrderRepository) RestaurantExists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GetMenuItemBasics fetches just what order pricing needs.
func (r *OrderRepository) GetMenuItemBasics(id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, price, restaurant_id").First(&m, id).Error
	return m, err
}

func (r *OrderRepository) MenuItemsBelongToRestaurant(menuItemIDs []uint, restID uint) (bool, error) {
	if len(menuItemIDs) == 0 {
		return true, nil
	}
	var cnt int64
	if err := r.DB.Model(&entity.MenuItem{}).
		Where("id IN ? AND restaurant_id = ?", menuItemIDs, restID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == int64(len(menuItemIDs)), nil
}
