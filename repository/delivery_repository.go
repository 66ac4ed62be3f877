package repository

import (
	"errors"
	"time"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeliveryRepository struct {
	DB *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{DB: db}
}

func (r *DeliveryRepository) GetByOrderID(orderID uint) (*entity.Delivery, error) {
	var d entity.Delivery
	if err := r.DB.Where("order_id = ?", orderID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// UpsertLocation overwrites the last-known position for the order.
// Only the most recent point is kept; there is no history table.
func (r *DeliveryRepository) UpsertLocation(orderID uint, driverID *uint, p entity.GeoPoint, reportedAt time.Time) error {
	d := entity.Delivery{
		OrderID:    orderID,
		DriverID:   driverID,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		ReportedAt: reportedAt,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"driver_id", "latitude", "longitude", "reported_at", "updated_at",
		}),
	}).Create(&d).Error
}

// SetDriver records the assignment on the delivery row, creating it if
// the driver was assigned before any location report arrived.
func (r *DeliveryRepository) SetDriver(tx *gorm.DB, orderID, driverID uint) error {
	var d entity.Delivery
	err := tx.Where("order_id = ?", orderID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d = entity.Delivery{OrderID: orderID, DriverID: &driverID}
		return tx.Create(&d).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&d).Update("driver_id", driverID).Error
}
