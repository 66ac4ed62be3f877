package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/pkg/metrics"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeliveryService is the location relay: it validates driver position
// reports, keeps the last-known point, and fans the update out to the
// order's topic. The live stream itself is never persisted.
type DeliveryService struct {
	Repo      *repository.DeliveryRepository
	OrderRepo *repository.OrderRepository
	Hub       ws.Broadcaster
	Log       *zap.Logger
}

func NewDeliveryService(
	repo *repository.DeliveryRepository,
	orderRepo *repository.OrderRepository,
	hub ws.Broadcaster,
	log *zap.Logger,
) *DeliveryService {
	return &DeliveryService{Repo: repo, OrderRepo: orderRepo, Hub: hub, Log: log}
}

// ReportLocation validates and relays one position report. The return
// value says whether the report was broadcast; a report carrying a
// reportedAt older than the stored one is acknowledged but dropped, so
// the stored position only ever moves forward in time.
func (s *DeliveryService) ReportLocation(orderID uint, driverID *uint, p entity.GeoPoint, reportedAt *time.Time) (bool, error) {
	if !p.Valid() {
		return false, fmt.Errorf("%w: coordinates out of range", apperr.ErrInvalidInput)
	}

	if _, err := s.OrderRepo.GetOrder(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
		}
		return false, err
	}

	now := time.Now()
	at := now
	if reportedAt != nil {
		at = *reportedAt

		prev, err := s.Repo.GetByOrderID(orderID)
		if err == nil && at.Before(prev.ReportedAt) {
			metrics.StaleLocationReports.Inc()
			s.Log.Debug("dropping stale location report",
				zap.Uint("orderId", orderID), zap.Time("reportedAt", at))
			return false, nil
		}
	}

	if err := s.Repo.UpsertLocation(orderID, driverID, p, at); err != nil {
		return false, err
	}

	s.Hub.Publish(ws.TopicDelivery(orderID), "deliveryUpdate", p)
	return true, nil
}

// LastKnown returns the most recent stored position for an order.
func (s *DeliveryService) LastKnown(orderID uint) (*entity.Delivery, error) {
	d, err := s.Repo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no delivery for order %d", apperr.ErrNotFound, orderID)
		}
		return nil, err
	}
	return d, nil
}
