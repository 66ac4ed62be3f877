package ws

import (
	"fmt"
	"sync"

	"github.com/sofraProject/foodDelivery-sub000/pkg/metrics"
	"go.uber.org/zap"
)

// Topic names. The global topic carries broad order events; per-order
// topics carry the location stream and the confirmation ping.
const TopicOrders = "orders"

func TopicDelivery(orderID uint) string {
	return fmt.Sprintf("deliveryUpdate-%d", orderID)
}

func TopicOrderConfirmation(orderID uint) string {
	return fmt.Sprintf("orderConfirmation-%d", orderID)
}

// Envelope is the wire shape for every server-to-client event.
type Envelope struct {
	Event string `json:"event"`
	Topic string `json:"topic,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Subscriber receives events for topics it subscribed to. Deliver must
// not block; it returns false once the subscriber is dead, after which
// the hub prunes it.
type Subscriber interface {
	Deliver(e Envelope) bool
}

// Broadcaster decouples event producers from connected clients. The
// in-process Hub backs it here; a multi-instance deployment would need
// an external broker behind the same interface.
type Broadcaster interface {
	Publish(topic, event string, data any)
	Subscribe(topic string, s Subscriber)
	Unsubscribe(topic string, s Subscriber)
	UnsubscribeAll(s Subscriber)
}

// Hub is the process-wide pub/sub registry. Constructed once in main
// and injected into the services that publish; never a package global.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[Subscriber]struct{}
	log    *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[Subscriber]struct{}),
		log:    log,
	}
}

func (h *Hub) Subscribe(topic string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[Subscriber]struct{})
	}
	h.topics[topic][s] = struct{}{}
}

func (h *Hub) Unsubscribe(topic string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.topics[topic], s)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
}

// UnsubscribeAll removes the subscriber from every topic. Called on
// websocket disconnect.
func (h *Hub) UnsubscribeAll(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, subs := range h.topics {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Publish delivers the event to every current subscriber of the topic.
// At-most-once, best-effort: no queuing, no replay, and publishing to
// an empty topic is a silent no-op. Holding the lock across the fan-out
// keeps delivery FIFO per subscriber within a topic; Deliver itself
// never blocks, so a stalled client cannot starve the rest.
func (h *Hub) Publish(topic, event string, data any) {
	e := Envelope{Event: event, Topic: topic, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.topics[topic]
	metrics.EventsPublished.WithLabelValues(event).Inc()
	for s := range subs {
		if !s.Deliver(e) {
			delete(subs, s)
		}
	}
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// SubscriberCount reports the current number of subscribers on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
