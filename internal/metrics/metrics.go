package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rookgm/orderfeed/internal/models"
	"github.com/rookgm/orderfeed/internal/push"
	"net/http"
)

// Metrics holds order feed collectors
type Metrics struct {
	registry *prometheus.Registry

	SnapshotFetches *prometheus.CounterVec
	IngestOutcomes  *prometheus.CounterVec
	PushEvents      *prometheus.CounterVec
	PushParseErrors prometheus.Counter
	PushReconnects  prometheus.Counter
	WorkingSetSize  prometheus.Gauge
	PendingOrders   prometheus.Gauge
	PushState       prometheus.Gauge
}

// New creates collectors and registers them in a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SnapshotFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderfeed_snapshot_fetches_total",
				Help: "Snapshot fetches by result",
			},
			[]string{"result"},
		),
		IngestOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderfeed_push_ingest_total",
				Help: "Pushed orders by ingest outcome",
			},
			[]string{"outcome"},
		),
		PushEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderfeed_push_events_total",
				Help: "Server push events by event name",
			},
			[]string{"event"},
		),
		PushParseErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orderfeed_push_parse_errors_total",
				Help: "Push messages dropped because they could not be parsed",
			},
		),
		PushReconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orderfeed_push_reconnects_total",
				Help: "Push connection drops followed by a reconnect",
			},
		),
		WorkingSetSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orderfeed_working_set_orders",
				Help: "Orders currently in the working set",
			},
		),
		PendingOrders: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orderfeed_pending_orders",
				Help: "Pending orders currently in the working set",
			},
		),
		PushState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orderfeed_push_state",
				Help: "Push subscription state: 0 disconnected, 1 connecting, 2 connected, 3 closed",
			},
		),
	}

	m.registry.MustRegister(
		m.SnapshotFetches,
		m.IngestOutcomes,
		m.PushEvents,
		m.PushParseErrors,
		m.PushReconnects,
		m.WorkingSetSize,
		m.PendingOrders,
		m.PushState,
	)

	return m
}

// Handler returns prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// FetchResult counts snapshot fetch by error kind, nil error is "ok"
func (m *Metrics) FetchResult(err error) {
	if err == nil {
		m.SnapshotFetches.WithLabelValues("ok").Inc()
		return
	}
	m.SnapshotFetches.WithLabelValues(models.KindOf(err).String()).Inc()
}

// Ingested counts push ingest outcome
func (m *Metrics) Ingested(outcome models.InsertOutcome) {
	m.IngestOutcomes.WithLabelValues(outcome.String()).Inc()
}

// ViewChanged updates working set gauges
func (m *Metrics) ViewChanged(view []models.Order) {
	pending := 0
	for _, o := range view {
		if o.Status == models.StatusPending {
			pending++
		}
	}
	m.WorkingSetSize.Set(float64(len(view)))
	m.PendingOrders.Set(float64(pending))
}

// StateChanged records push subscription state
func (m *Metrics) StateChanged(s push.State) {
	m.PushState.Set(float64(s))
}

func (m *Metrics) EventReceived(name string) {
	m.PushEvents.WithLabelValues(name).Inc()
}

func (m *Metrics) ParseFailed() {
	m.PushParseErrors.Inc()
}

func (m *Metrics) Reconnecting() {
	m.PushReconnects.Inc()
}
