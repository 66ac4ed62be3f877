package services

import (
	"fmt"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/pkg/metrics"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"go.uber.org/zap"
)

type NotificationService struct {
	Repo *repository.NotificationRepository
	Log  *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, log *zap.Logger) *NotificationService {
	return &NotificationService{Repo: repo, Log: log}
}

// Notify persists a notification best-effort. The calling mutation is
// the source of truth; a failed insert is logged and counted, never
// propagated.
func (s *NotificationService) Notify(userID uint, orderID *uint, message string) {
	n := entity.Notification{
		UserID:  userID,
		OrderID: orderID,
		Message: message,
	}
	if err := s.Repo.Create(&n); err != nil {
		metrics.NotificationFailures.Inc()
		s.Log.Warn("notification create failed",
			zap.Uint("userId", userID), zap.String("message", message), zap.Error(err))
	}
}

func (s *NotificationService) ListForUser(userID uint, limit int) ([]entity.Notification, error) {
	return s.Repo.ListForUser(userID, limit)
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	affected, err := s.Repo.MarkRead(userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: notification %d", apperr.ErrNotFound, id)
	}
	return nil
}
