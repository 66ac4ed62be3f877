package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"github.com/sofraProject/foodDelivery-sub000/pkg/metrics"
	"github.com/sofraProject/foodDelivery-sub000/utils"
	"go.uber.org/zap"
)

// LocationReporter is implemented by services.DeliveryService. Declared
// here so the ws package does not depend on services.
type LocationReporter interface {
	ReportLocation(orderID uint, driverID *uint, p entity.GeoPoint, reportedAt *time.Time) (bool, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS policy for sockets is permissive; REST carries the strict one.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DeliveryWS terminates realtime connections: clients subscribe to
// order topics and drivers push location updates over the same socket.
type DeliveryWS struct {
	hub      *Hub
	reporter LocationReporter
	log      *zap.Logger
}

func NewDeliveryWS(hub *Hub, reporter LocationReporter, log *zap.Logger) *DeliveryWS {
	return &DeliveryWS{hub: hub, reporter: reporter, log: log}
}

// Inbound message shapes. driverLocationUpdate is the legacy flat
// {latitude,longitude} form; both normalize to entity.GeoPoint before
// anything downstream sees them.
type inboundMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type subscribePayload struct {
	Topic string `json:"topic"`
}

type updateDeliveryLocationPayload struct {
	OrderID    uint            `json:"orderId"`
	Location   entity.GeoPoint `json:"location"`
	ReportedAt *time.Time      `json:"reportedAt,omitempty"`
}

type driverLocationUpdatePayload struct {
	OrderID   uint    `json:"orderId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HandleWebSocket upgrades GET /ws/delivery. Auth happens in the ws
// middleware before we get here.
func (d *DeliveryWS) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		d.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(d.hub, conn, d.log, userID, role)
	metrics.ConnectedClients.Inc()

	go client.WritePump()
	go d.readPump(client)
}

func (d *DeliveryWS) readPump(client *Client) {
	defer client.close()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				d.log.Warn("ws read error", zap.Error(err))
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			d.sendError(client, "invalid message")
			continue
		}
		d.handleMessage(client, msg)
	}
}

func (d *DeliveryWS) handleMessage(client *Client, msg inboundMessage) {
	switch msg.Event {
	case "subscribe":
		var p subscribePayload
		if err := json.Unmarshal(msg.Data, &p); err != nil || p.Topic == "" {
			d.sendError(client, "topic is required")
			return
		}
		d.hub.Subscribe(p.Topic, client)
		client.Deliver(Envelope{Event: "subscribed", Topic: p.Topic})

	case "unsubscribe":
		var p subscribePayload
		if err := json.Unmarshal(msg.Data, &p); err != nil || p.Topic == "" {
			d.sendError(client, "topic is required")
			return
		}
		d.hub.Unsubscribe(p.Topic, client)

	case "updateDeliveryLocation":
		var p updateDeliveryLocationPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil || p.OrderID == 0 {
			d.sendError(client, "orderId and location are required")
			return
		}
		d.report(client, p.OrderID, p.Location, p.ReportedAt)

	case "driverLocationUpdate":
		// legacy flat shape
		var p driverLocationUpdatePayload
		if err := json.Unmarshal(msg.Data, &p); err != nil || p.OrderID == 0 {
			d.sendError(client, "orderId, latitude and longitude are required")
			return
		}
		d.report(client, p.OrderID, entity.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude}, nil)

	default:
		d.sendError(client, "unknown event")
	}
}

func (d *DeliveryWS) report(client *Client, orderID uint, p entity.GeoPoint, reportedAt *time.Time) {
	driverID := client.userID
	published, err := d.reporter.ReportLocation(orderID, &driverID, p, reportedAt)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidInput):
			d.sendError(client, "coordinates out of range")
		case errors.Is(err, apperr.ErrNotFound):
			d.sendError(client, "order not found")
		default:
			d.log.Error("report location failed", zap.Uint("orderId", orderID), zap.Error(err))
			d.sendError(client, "internal error")
		}
		return
	}
	client.Deliver(Envelope{Event: "ack", Data: gin.H{"orderId": orderID, "published": published}})
}

func (d *DeliveryWS) sendError(client *Client, msg string) {
	client.Deliver(Envelope{Event: "error", Data: gin.H{"error": msg}})
}
