package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires a full service stack against an in-memory database.
type testEnv struct {
	db       *gorm.DB
	hub      *ws.Hub
	orders   *OrderService
	delivery *DeliveryService
	notifier *NotificationService
	carts    *CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Restaurant{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Payment{},
		&entity.Delivery{},
		&entity.Notification{},
	))

	log := zap.NewNop()
	hub := ws.NewHub(log)

	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifier := NewNotificationService(notifRepo, log)
	provider := NewHTTPPaymentProvider("", "", log) // auto-approving
	orders := NewOrderService(
		db, orderRepo, cartRepo, restRepo, userRepo, deliveryRepo,
		hub, notifier, provider, log, 0, 5*time.Second,
	)
	delivery := NewDeliveryService(deliveryRepo, orderRepo, hub, log)
	carts := NewCartService(db, cartRepo, menuRepo)

	return &testEnv{
		db:       db,
		hub:      hub,
		orders:   orders,
		delivery: delivery,
		notifier: notifier,
		carts:    carts,
	}
}

// ----- seed helpers -----

func (e *testEnv) seedUser(t *testing.T, email, role string) *entity.User {
	t.Helper()
	u := entity.User{Email: email, Password: "x", Role: role}
	require.NoError(t, e.db.Create(&u).Error)
	return &u
}

func (e *testEnv) seedRestaurant(t *testing.T, ownerID uint) *entity.Restaurant {
	t.Helper()
	r := entity.Restaurant{Name: "Test Kitchen", OwnerID: ownerID}
	require.NoError(t, e.db.Create(&r).Error)
	return &r
}

func (e *testEnv) seedMenuItem(t *testing.T, restID uint, name string, price int64) *entity.MenuItem {
	t.Helper()
	m := entity.MenuItem{Name: name, Price: price, Available: true, RestaurantID: restID}
	require.NoError(t, e.db.Create(&m).Error)
	return &m
}

// seedOrder creates an order directly in the given status.
func (e *testEnv) seedOrder(t *testing.T, customerID, restID uint, status entity.OrderStatus) *entity.Order {
	t.Helper()
	o := entity.Order{
		Status:       status,
		CustomerID:   customerID,
		RestaurantID: restID,
		Subtotal:     1000,
		TotalPrice:   1000,
	}
	require.NoError(t, e.db.Create(&o).Error)
	return &o
}

// ----- fake subscriber -----

type capturingSub struct {
	mu     sync.Mutex
	events []ws.Envelope
}

func (s *capturingSub) Deliver(ev ws.Envelope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return true
}

func (s *capturingSub) all() []ws.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ws.Envelope, len(s.events))
	copy(out, s.events)
	return out
}

func (s *capturingSub) byEvent(name string) []ws.Envelope {
	var out []ws.Envelope
	for _, e := range s.all() {
		if e.Event == name {
			out = append(out, e)
		}
	}
	return out
}
