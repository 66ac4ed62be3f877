package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Realtime and side-effect observability. Broadcast and notification
// failures never propagate to callers, so these counters are the only
// place that loss is visible.
var (
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_published_total",
		Help: "Events handed to the broadcast hub, by event name.",
	}, []string{"event"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "realtime_events_dropped_total",
		Help: "Events dropped because a subscriber send buffer was full.",
	})

	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connected_clients",
		Help: "Currently connected websocket clients.",
	})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_create_failures_total",
		Help: "Notification rows that failed to persist (best-effort path).",
	})

	StaleLocationReports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_stale_location_reports_total",
		Help: "Driver location reports dropped by the monotonic timestamp filter.",
	})
)
