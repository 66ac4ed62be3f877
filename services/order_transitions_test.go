package services

import (
	"testing"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPaidFlow(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	item := env.seedMenuItem(t, rest.ID, "Burger", 1000)

	out, err := env.orders.Create(customer.ID, &CreateOrderReq{
		RestaurantID:  rest.ID,
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []OrderItemIn{{MenuItemID: item.ID, Qty: 1}},
	})
	require.NoError(t, err)

	o, err := env.orders.MarkPaid(out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, o.Status)

	// payment row settled
	p, err := env.orders.Repo.LatestPayment(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, p.Status)

	// customer notified
	var notifs []entity.Notification
	require.NoError(t, env.db.Where("user_id = ?", customer.ID).Find(&notifs).Error)
	assert.NotEmpty(t, notifs)
}

func TestTransitionNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orders.MarkPaid(404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIllegalJumpsRejected(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusPending)

	// PENDING cannot be confirmed without payment
	_, err := env.orders.Confirm(order.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	// nor jumped to DELIVERED via the generic endpoint
	_, err = env.orders.UpdateStatus(order.ID, "DELIVERED")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	// unknown status is input, not transition, trouble
	_, err = env.orders.UpdateStatus(order.ID, "SHIPPED")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	// the row never moved
	o, err := env.orders.Repo.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, o.Status)
}

func TestConfirmBroadcasts(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusPaid)

	global := &capturingSub{}
	perOrder := &capturingSub{}
	env.hub.Subscribe(ws.TopicOrders, global)
	env.hub.Subscribe(ws.TopicOrderConfirmation(order.ID), perOrder)

	o, err := env.orders.Confirm(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConfirmed, o.Status)

	confirmed := global.byEvent("orderPaymentConfirmed")
	require.Len(t, confirmed, 1)
	data := confirmed[0].Data.(map[string]any)
	assert.Equal(t, order.ID, data["orderId"])

	require.Len(t, perOrder.byEvent("orderConfirmation"), 1)

	// a second confirm is an illegal transition and must not re-broadcast
	_, err = env.orders.Confirm(order.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.Len(t, global.byEvent("orderPaymentConfirmed"), 1)
}

func TestLateSubscriberGetsNothing(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusPaid)

	_, err := env.orders.Confirm(order.ID)
	require.NoError(t, err)

	late := &capturingSub{}
	env.hub.Subscribe(ws.TopicOrders, late)
	assert.Empty(t, late.all())
}

func TestMarkReadyBroadcastsStatus(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusConfirmed)

	sub := &capturingSub{}
	env.hub.Subscribe(ws.TopicOrders, sub)

	o, err := env.orders.MarkReady(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, o.Status)

	events := sub.byEvent("orderStatusUpdated")
	require.Len(t, events, 1)
	data := events[0].Data.(map[string]any)
	assert.Equal(t, entity.StatusReady, data["status"])
}

func TestAssignDriver(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	driver := env.seedUser(t, "d@example.com", entity.RoleDriver)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusConfirmed)

	sub := &capturingSub{}
	env.hub.Subscribe(ws.TopicOrders, sub)

	o, err := env.orders.AssignDriver(order.ID, driver.ID)
	require.NoError(t, err)

	// driver set, status untouched
	require.NotNil(t, o.DriverID)
	assert.Equal(t, driver.ID, *o.DriverID)
	assert.Equal(t, entity.StatusConfirmed, o.Status)

	events := sub.byEvent("driverAssigned")
	require.Len(t, events, 1)
	data := events[0].Data.(map[string]any)
	assert.Equal(t, driver.ID, data["driverId"])

	// delivery row carries the assignment too
	d, err := env.delivery.LastKnown(order.ID)
	require.NoError(t, err)
	require.NotNil(t, d.DriverID)
	assert.Equal(t, driver.ID, *d.DriverID)
}

func TestAssignDriverRejectsNonDriver(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusConfirmed)

	// customer id is a real user but not a driver
	_, err := env.orders.AssignDriver(order.ID, customer.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = env.orders.AssignDriver(order.ID, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAssignDriverRequiresAssignableStatus(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	driver := env.seedUser(t, "d@example.com", entity.RoleDriver)
	rest := env.seedRestaurant(t, owner.ID)

	canceled := env.seedOrder(t, customer.ID, rest.ID, entity.StatusCanceled)
	_, err := env.orders.AssignDriver(canceled.ID, driver.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	pending := env.seedOrder(t, customer.ID, rest.ID, entity.StatusPending)
	_, err = env.orders.AssignDriver(pending.ID, driver.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestCancelNotifies(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusPending)

	o, err := env.orders.Cancel(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, o.Status)

	var count int64
	require.NoError(t, env.db.Model(&entity.Notification{}).
		Where("user_id = ? AND order_id = ?", customer.ID, order.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFullLifecycle(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	driver := env.seedUser(t, "d@example.com", entity.RoleDriver)
	rest := env.seedRestaurant(t, owner.ID)
	burger := env.seedMenuItem(t, rest.ID, "Burger", 1250)
	fries := env.seedMenuItem(t, rest.ID, "Fries", 600)

	sub := &capturingSub{}
	env.hub.Subscribe(ws.TopicOrders, sub)

	out, err := env.orders.Create(customer.ID, &CreateOrderReq{
		RestaurantID:  rest.ID,
		PaymentMethod: entity.PaymentMethodCash,
		Items: []OrderItemIn{
			{MenuItemID: burger.ID, Qty: 2},
			{MenuItemID: fries.ID, Qty: 1},
		},
	})
	require.NoError(t, err)
	orderID := out.Order.ID
	assert.Equal(t, int64(3100), out.Order.TotalPrice)
	assert.Equal(t, entity.StatusPending, out.Order.Status)

	o, err := env.orders.MarkPaid(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, o.Status)

	o, err = env.orders.Confirm(orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConfirmed, o.Status)
	require.Len(t, sub.byEvent("orderPaymentConfirmed"), 1)

	o, err = env.orders.AssignDriver(orderID, driver.ID)
	require.NoError(t, err)
	require.NotNil(t, o.DriverID)
	assert.Equal(t, entity.StatusConfirmed, o.Status)
	require.Len(t, sub.byEvent("driverAssigned"), 1)

	// driver en route
	locSub := &capturingSub{}
	env.hub.Subscribe(ws.TopicDelivery(orderID), locSub)

	published, err := env.delivery.ReportLocation(orderID, &driver.ID,
		entity.GeoPoint{Latitude: 36.80, Longitude: 10.18}, nil)
	require.NoError(t, err)
	assert.True(t, published)

	updates := locSub.byEvent("deliveryUpdate")
	require.Len(t, updates, 1)
	p := updates[0].Data.(entity.GeoPoint)
	assert.Equal(t, 36.80, p.Latitude)
	assert.Equal(t, 10.18, p.Longitude)

	// and on to the door
	_, err = env.orders.MarkReady(orderID)
	require.NoError(t, err)
	_, err = env.orders.UpdateStatus(orderID, "IN_TRANSIT")
	require.NoError(t, err)
	o, err = env.orders.UpdateStatus(orderID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivered, o.Status)
}
