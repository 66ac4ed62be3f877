package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sofraProject/foodDelivery-sub000/pkg/metrics"
	"go.uber.org/zap"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// Client wraps one websocket connection. Events are queued on a bounded
// channel and written by a dedicated pump; when the buffer is full the
// event is dropped rather than blocking the publisher.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	log    *zap.Logger
	userID uint
	role   string

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, log *zap.Logger, userID uint, role string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		log:    log,
		userID: userID,
		role:   role,
		closed: make(chan struct{}),
	}
}

// Deliver implements Subscriber. Non-blocking: a full buffer drops the
// event and a dead client reports false so the hub prunes it.
func (c *Client) Deliver(e Envelope) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	raw, err := json.Marshal(e)
	if err != nil {
		c.log.Warn("marshal event failed", zap.String("event", e.Event), zap.Error(err))
		return true
	}

	select {
	case c.send <- raw:
	default:
		metrics.EventsDropped.Inc()
		c.log.Warn("subscriber buffer full, dropping event",
			zap.String("event", e.Event), zap.Uint("userId", c.userID))
	}
	return true
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.conn.Close()
		c.hub.UnsubscribeAll(c)
		metrics.ConnectedClients.Dec()
	})
}

// WritePump drains the send buffer onto the wire and keeps the
// connection alive with pings. One goroutine per client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.closed:
			return
		case raw := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
