package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ReadingsRecorded *prometheus.CounterVec
	AlertsReported   prometheus.Counter
	RecordFailures   *prometheus.CounterVec
	RecordDuration   prometheus.Histogram
	AdminMutations   *prometheus.CounterVec
	EventsPublished  *prometheus.CounterVec
	EventsDropped    *prometheus.CounterVec
	EventsFailed     prometheus.Counter
	HTTPLatency      *prometheus.HistogramVec
}

// New creates and registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReadingsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sulfurwatch_readings_recorded_total",
			Help: "Emission readings committed to the ledger, by compliance outcome",
		}, []string{"compliant"}),
		AlertsReported: f.NewCounter(prometheus.CounterOpts{
			Name: "sulfurwatch_alerts_reported_total",
			Help: "Compliance alerts appended to the notification log",
		}),
		RecordFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sulfurwatch_record_failures_total",
			Help: "RecordEmission calls that failed, by error code",
		}, []string{"code"}),
		RecordDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sulfurwatch_record_duration_seconds",
			Help:    "Duration of RecordEmission including the conditional alert",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		AdminMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sulfurwatch_admin_mutations_total",
			Help: "Administrative registry mutations, by operation",
		}, []string{"operation"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sulfurwatch_events_published_total",
			Help: "Events accepted by the event sink, by type",
		}, []string{"type"}),
		EventsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sulfurwatch_events_dropped_total",
			Help: "Events dropped because the delivery buffer was full or closed",
		}, []string{"type"}),
		EventsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "sulfurwatch_events_failed_total",
			Help: "Events the sink failed to deliver",
		}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sulfurwatch_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// IncReadingRecorded counts a committed reading.
func (m *Metrics) IncReadingRecorded(compliant bool) {
	m.ReadingsRecorded.WithLabelValues(strconv.FormatBool(compliant)).Inc()
}

func (m *Metrics) IncAlertReported() {
	m.AlertsReported.Inc()
}

func (m *Metrics) IncRecordFailure(code string) {
	m.RecordFailures.WithLabelValues(code).Inc()
}

// ObserveRecordDuration records the latency of one RecordEmission call.
func (m *Metrics) ObserveRecordDuration(d time.Duration) {
	m.RecordDuration.Observe(d.Seconds())
}

func (m *Metrics) IncAdminMutation(operation string) {
	m.AdminMutations.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncEventsPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncEventsDropped(eventType string) {
	m.EventsDropped.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncEventsFailed() {
	m.EventsFailed.Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.HTTPLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
