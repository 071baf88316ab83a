package event

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	dropQueueFull    = "queue_full"
	dropStopped      = "stopped"
	dropSlowReceiver = "slow_subscriber"
)

type hubMetrics struct {
	published   *prometheus.CounterVec
	delivered   *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	subscribers prometheus.Gauge
}

func newHubMetrics(reg prometheus.Registerer) *hubMetrics {
	f := promauto.With(reg)
	return &hubMetrics{
		published: f.NewCounterVec(prometheus.CounterOpts{
			Name: "council_events_published_total",
			Help: "events accepted onto the hub queue",
		}, []string{"type"}),
		delivered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "council_events_delivered_total",
			Help: "events handed to a subscriber channel",
		}, []string{"type"}),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "council_events_dropped_total",
			Help: "events discarded before reaching a subscriber",
		}, []string{"reason"}),
		subscribers: f.NewGauge(prometheus.GaugeOpts{
			Name: "council_event_subscribers",
			Help: "current number of live feed subscriptions",
		}),
	}
}

// The methods below tolerate a nil receiver so a Hub built without a
// registry skips instrumentation.

func (m *hubMetrics) incPublished(t Type) {
	if m != nil {
		m.published.WithLabelValues(string(t)).Inc()
	}
}

func (m *hubMetrics) incDelivered(t Type) {
	if m != nil {
		m.delivered.WithLabelValues(string(t)).Inc()
	}
}

func (m *hubMetrics) incDropped(reason string) {
	if m != nil {
		m.dropped.WithLabelValues(reason).Inc()
	}
}

func (m *hubMetrics) addSubscribers(n int) {
	if m != nil {
		m.subscribers.Add(float64(n))
	}
}
