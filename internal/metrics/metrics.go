package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for resolved operations.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the directory's Prometheus collectors.
type Metrics struct {
	registry         *prometheus.Registry
	Operations       *prometheus.CounterVec
	PersonsAdded     prometheus.Counter
	SourceFetchTime  *prometheus.HistogramVec
	SourceFetchFails *prometheus.CounterVec
}

// New creates and registers the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phonebook_operations_total",
			Help: "Resolved GraphQL operations by name and outcome",
		}, []string{"operation", "outcome"}),
		PersonsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_persons_added_total",
			Help: "Total number of persons added to the directory",
		}),
		SourceFetchTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonebook_source_fetch_duration_seconds",
			Help:    "Latency of person snapshot fetches",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		SourceFetchFails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phonebook_source_fetch_failures_total",
			Help: "Failed person snapshot fetches",
		}, []string{"source"}),
	}
}

// ObserveOperation counts one resolved operation. Safe on a nil receiver.
func (m *Metrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// IncrementPersonsAdded counts a successful addPerson.
func (m *Metrics) IncrementPersonsAdded() {
	if m == nil {
		return
	}
	m.PersonsAdded.Inc()
}

// ObserveFetch records a snapshot fetch.
func (m *Metrics) ObserveFetch(source string, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.SourceFetchTime.WithLabelValues(source).Observe(took.Seconds())
	if err != nil {
		m.SourceFetchFails.WithLabelValues(source).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
