package services

import (
	"testing"
	"time"

	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportLocationRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusInTransit)

	sub := &capturingSub{}
	env.hub.Subscribe(ws.TopicDelivery(order.ID), sub)

	cases := []entity.GeoPoint{
		{Latitude: 91, Longitude: 10},
		{Latitude: -91, Longitude: 10},
		{Latitude: 36, Longitude: 181},
		{Latitude: 36, Longitude: -181},
	}
	for _, p := range cases {
		published, err := env.delivery.ReportLocation(order.ID, nil, p, nil)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		assert.False(t, published)
	}

	// nothing reached the topic and nothing was stored
	assert.Empty(t, sub.all())
	_, err := env.delivery.LastKnown(order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReportLocationUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	published, err := env.delivery.ReportLocation(999, nil,
		entity.GeoPoint{Latitude: 36.80, Longitude: 10.18}, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.False(t, published)
}

func TestReportLocationSequence(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	driver := env.seedUser(t, "d@example.com", entity.RoleDriver)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusInTransit)

	sub := &capturingSub{}
	env.hub.Subscribe(ws.TopicDelivery(order.ID), sub)

	first := entity.GeoPoint{Latitude: 36.80, Longitude: 10.18}
	second := entity.GeoPoint{Latitude: 36.81, Longitude: 10.19}

	published, err := env.delivery.ReportLocation(order.ID, &driver.ID, first, nil)
	require.NoError(t, err)
	assert.True(t, published)
	published, err = env.delivery.ReportLocation(order.ID, &driver.ID, second, nil)
	require.NoError(t, err)
	assert.True(t, published)

	// both delivered, in report order, as plain coordinate payloads
	updates := sub.byEvent("deliveryUpdate")
	require.Len(t, updates, 2)
	assert.Equal(t, first, updates[0].Data.(entity.GeoPoint))
	assert.Equal(t, second, updates[1].Data.(entity.GeoPoint))

	// last-known holds only the newest point
	d, err := env.delivery.LastKnown(order.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Latitude, d.Latitude)
	assert.Equal(t, second.Longitude, d.Longitude)
	require.NotNil(t, d.DriverID)
	assert.Equal(t, driver.ID, *d.DriverID)
}

func TestReportLocationDropsStale(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusInTransit)

	sub := &capturingSub{}
	env.hub.Subscribe(ws.TopicDelivery(order.ID), sub)

	base := time.Now().Add(-time.Minute)
	later := base.Add(30 * time.Second)
	current := entity.GeoPoint{Latitude: 36.81, Longitude: 10.19}
	stale := entity.GeoPoint{Latitude: 36.70, Longitude: 10.00}

	published, err := env.delivery.ReportLocation(order.ID, nil, current, &later)
	require.NoError(t, err)
	assert.True(t, published)

	// an older report arrives out of order: acknowledged, never relayed
	published, err = env.delivery.ReportLocation(order.ID, nil, stale, &base)
	require.NoError(t, err)
	assert.False(t, published)

	require.Len(t, sub.byEvent("deliveryUpdate"), 1)

	d, err := env.delivery.LastKnown(order.ID)
	require.NoError(t, err)
	assert.Equal(t, current.Latitude, d.Latitude)
	assert.Equal(t, current.Longitude, d.Longitude)
}

func TestLastKnownNoReports(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedUser(t, "c@example.com", entity.RoleCustomer)
	owner := env.seedUser(t, "o@example.com", entity.RoleOwner)
	rest := env.seedRestaurant(t, owner.ID)
	order := env.seedOrder(t, customer.ID, rest.ID, entity.StatusConfirmed)

	_, err := env.delivery.LastKnown(order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
