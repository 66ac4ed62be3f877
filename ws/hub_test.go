package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordSub collects everything delivered to it.
type recordSub struct {
	mu     sync.Mutex
	events []Envelope
	dead   bool
}

func (r *recordSub) Deliver(e Envelope) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dead {
		return false
	}
	r.events = append(r.events, e)
	return true
}

func (r *recordSub) received() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Envelope, len(r.events))
	copy(out, r.events)
	return out
}

func newTestHub() *Hub {
	return NewHub(zap.NewNop())
}

func TestPublishReachesSubscribers(t *testing.T) {
	hub := newTestHub()
	a := &recordSub{}
	b := &recordSub{}

	hub.Subscribe(TopicOrders, a)
	hub.Subscribe(TopicOrders, b)

	hub.Publish(TopicOrders, "orderPaymentConfirmed", map[string]any{"orderId": uint(7)})

	require.Len(t, a.received(), 1)
	require.Len(t, b.received(), 1)
	assert.Equal(t, "orderPaymentConfirmed", a.received()[0].Event)
	assert.Equal(t, TopicOrders, a.received()[0].Topic)
}

func TestNoRetroactiveDelivery(t *testing.T) {
	hub := newTestHub()
	early := &recordSub{}
	hub.Subscribe(TopicOrders, early)

	hub.Publish(TopicOrders, "orderPaymentConfirmed", map[string]any{"orderId": uint(1)})

	// late subscriber sees nothing from before its subscription
	late := &recordSub{}
	hub.Subscribe(TopicOrders, late)

	assert.Len(t, early.received(), 1)
	assert.Empty(t, late.received())
}

func TestPublishToEmptyTopicIsNoOp(t *testing.T) {
	hub := newTestHub()
	// must not panic or error
	hub.Publish(TopicDelivery(42), "deliveryUpdate", map[string]any{})
	assert.Equal(t, 0, hub.SubscriberCount(TopicDelivery(42)))
}

func TestFIFOPerSubscriber(t *testing.T) {
	hub := newTestHub()
	sub := &recordSub{}
	topic := TopicDelivery(3)
	hub.Subscribe(topic, sub)

	for i := 0; i < 10; i++ {
		hub.Publish(topic, "deliveryUpdate", i)
	}

	got := sub.received()
	require.Len(t, got, 10)
	for i, e := range got {
		assert.Equal(t, i, e.Data)
	}
}

func TestTopicsAreIsolated(t *testing.T) {
	hub := newTestHub()
	a := &recordSub{}
	b := &recordSub{}
	hub.Subscribe(TopicDelivery(1), a)
	hub.Subscribe(TopicDelivery(2), b)

	hub.Publish(TopicDelivery(1), "deliveryUpdate", "x")

	assert.Len(t, a.received(), 1)
	assert.Empty(t, b.received())
}

func TestDeadSubscriberIsPruned(t *testing.T) {
	hub := newTestHub()
	sub := &recordSub{dead: true}
	hub.Subscribe(TopicOrders, sub)
	require.Equal(t, 1, hub.SubscriberCount(TopicOrders))

	hub.Publish(TopicOrders, "orderStatusUpdated", nil)

	assert.Equal(t, 0, hub.SubscriberCount(TopicOrders))
	assert.Empty(t, sub.received())
}

func TestUnsubscribe(t *testing.T) {
	hub := newTestHub()
	sub := &recordSub{}
	hub.Subscribe(TopicOrders, sub)
	hub.Unsubscribe(TopicOrders, sub)

	hub.Publish(TopicOrders, "orderStatusUpdated", nil)
	assert.Empty(t, sub.received())
}

func TestUnsubscribeAll(t *testing.T) {
	hub := newTestHub()
	sub := &recordSub{}
	hub.Subscribe(TopicOrders, sub)
	hub.Subscribe(TopicDelivery(1), sub)
	hub.Subscribe(TopicOrderConfirmation(1), sub)

	hub.UnsubscribeAll(sub)

	hub.Publish(TopicOrders, "a", nil)
	hub.Publish(TopicDelivery(1), "b", nil)
	hub.Publish(TopicOrderConfirmation(1), "c", nil)
	assert.Empty(t, sub.received())
}

func TestConcurrentPublishSubscribe(t *testing.T) {
	hub := newTestHub()
	sub := &recordSub{}
	hub.Subscribe(TopicOrders, sub)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.Publish(TopicOrders, "orderStatusUpdated", n)
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s := &recordSub{}
			hub.Subscribe(TopicDelivery(uint(n)), s)
			hub.UnsubscribeAll(s)
		}(i)
	}
	wg.Wait()

	assert.Len(t, sub.received(), 8*50)
}
