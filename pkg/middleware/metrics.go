package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/flashbar-dev/flashbar/pkg/message"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "flashbar").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "flashbar",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus instruments.
type metrics struct {
	eventsTotal       *prometheus.CounterVec
	eventDuration     *prometheus.HistogramVec
	eventErrors       *prometheus.CounterVec
	patchesSent       prometheus.Counter
	activeSessions    prometheus.Gauge
	wsErrors          *prometheus.CounterVec
	messagesShown     *prometheus.CounterVec
	messagesHidden    *prometheus.CounterVec
	messagesDismissed *prometheus.CounterVec
}

// The instruments are a process-wide singleton; Prometheus registries
// reject duplicate registration.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of browser events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of document patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		messagesShown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_shown_total",
			Help:        "Total messages shown by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		messagesHidden: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_hidden_total",
			Help:        "Total messages hidden by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		messagesDismissed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "messages_dismissed_total",
			Help:        "Total messages dismissed by the user, by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// every processed event.
//
// Metrics collected:
//   - flashbar_events_total: events by kind and status
//   - flashbar_event_duration_seconds: event processing duration
//   - flashbar_event_errors_total: event errors by kind
//   - flashbar_patches_sent_total: patches sent to clients
//   - flashbar_active_sessions: active sessions
//   - flashbar_websocket_errors_total: WebSocket errors by type
//   - flashbar_messages_{shown,hidden,dismissed}_total: message
//     lifecycle counters fed by MessageObserver
//
// Expose the registry with promhttp.Handler on a /metrics route.
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next Handler) Handler {
		return func(ctx *EventContext) error {
			kind := ctx.Event.Kind.String()
			start := time.Now()

			err := next(ctx)

			m.eventDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
			status := "success"
			if err != nil {
				status = "error"
				m.eventErrors.WithLabelValues(kind).Inc()
			}
			m.eventsTotal.WithLabelValues(kind, status).Inc()
			return err
		}
	}
}

// MessageObserver returns a message.Observer feeding the message
// lifecycle counters. Before Prometheus middleware initializes the
// instruments, the observer is a no-op.
func MessageObserver() message.Observer {
	return messageObserver{}
}

type messageObserver struct{}

func (messageObserver) MessageShown(t message.Type) {
	if globalMetrics != nil {
		globalMetrics.messagesShown.WithLabelValues(t.String()).Inc()
	}
}

func (messageObserver) MessageHidden(t message.Type) {
	if globalMetrics != nil {
		globalMetrics.messagesHidden.WithLabelValues(t.String()).Inc()
	}
}

func (messageObserver) MessageDismissed(t message.Type) {
	if globalMetrics != nil {
		globalMetrics.messagesDismissed.WithLabelValues(t.String()).Inc()
	}
}

// RecordPatches records patches sent to a client.
func RecordPatches(count int) {
	if globalMetrics != nil {
		globalMetrics.patchesSent.Add(float64(count))
	}
}

// RecordSessionOpen records a new session.
func RecordSessionOpen() {
	if globalMetrics != nil {
		globalMetrics.activeSessions.Inc()
	}
}

// RecordSessionClose records a session ending.
func RecordSessionClose() {
	if globalMetrics != nil {
		globalMetrics.activeSessions.Dec()
	}
}

// RecordWebSocketError records a WebSocket error by type.
func RecordWebSocketError(errorType string) {
	if globalMetrics != nil {
		globalMetrics.wsErrors.WithLabelValues(errorType).Inc()
	}
}
