package metrics

import "github.com/prometheus/client_golang/prometheus"

// RealtimeMetrics tracks websocket hub activity.
type RealtimeMetrics struct {
	connections prometheus.Gauge
	published   *prometheus.CounterVec
	delivered   *prometheus.CounterVec
	dropped     *prometheus.CounterVec
}

// NewRealtimeMetrics registers hub metrics on the provided registerer.
func NewRealtimeMetrics(reg prometheus.Registerer) *RealtimeMetrics {
	if reg == nil {
		return &RealtimeMetrics{}
	}
	connections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connections",
		Help: "Currently connected websocket clients.",
	})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_published",
		Help: "Events handed to the hub for fan-out.",
	}, []string{"event"})
	delivered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_delivered",
		Help: "Event copies written to subscriber connections.",
	}, []string{"event"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_dropped",
		Help: "Event copies dropped because a subscriber could not keep up.",
	}, []string{"event"})
	reg.MustRegister(connections, published, delivered, dropped)
	return &RealtimeMetrics{
		connections: connections,
		published:   published,
		delivered:   delivered,
		dropped:     dropped,
	}
}

func eventLabel(event string) string {
	if event == "" {
		return "unknown"
	}
	return event
}

// ConnOpened increments the connection gauge.
func (m *RealtimeMetrics) ConnOpened() {
	if m == nil || m.connections == nil {
		return
	}
	m.connections.Inc()
}

// ConnClosed decrements the connection gauge.
func (m *RealtimeMetrics) ConnClosed() {
	if m == nil || m.connections == nil {
		return
	}
	m.connections.Dec()
}

// IncPublished counts an event accepted for fan-out.
func (m *RealtimeMetrics) IncPublished(event string) {
	if m == nil || m.published == nil {
		return
	}
	m.published.WithLabelValues(eventLabel(event)).Inc()
}

// IncDelivered counts one subscriber delivery.
func (m *RealtimeMetrics) IncDelivered(event string) {
	if m == nil || m.delivered == nil {
		return
	}
	m.delivered.WithLabelValues(eventLabel(event)).Inc()
}

// IncDropped counts one dropped subscriber delivery.
func (m *RealtimeMetrics) IncDropped(event string) {
	if m == nil || m.dropped == nil {
		return
	}
	m.dropped.WithLabelValues(eventLabel(event)).Inc()
}
