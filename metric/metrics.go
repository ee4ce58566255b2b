// Package metric provides prometheus instrumentation for the dataset load and
// query phases. Metrics are advisory only: they report progress and usage and
// are never part of a correctness contract.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all dataset-level metrics
type Metrics struct {
	// Load-phase metrics
	StreamsLoaded  prometheus.Gauge
	EntriesSkipped prometheus.Counter
	LoadDuration   prometheus.Gauge

	// Graph metrics
	GraphTriples *prometheus.GaugeVec

	// Query metrics
	QueriesTotal  *prometheus.CounterVec
	QueryErrors   *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all dataset metrics
func NewMetrics() *Metrics {
	return &Metrics{
		StreamsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "buildingdata",
				Subsystem: "load",
				Name:      "streams",
				Help:      "Number of streams held by the dataset",
			},
		),

		EntriesSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "buildingdata",
				Subsystem: "load",
				Name:      "entries_skipped_total",
				Help:      "Archive entries skipped for lack of a mapping row",
			},
		),

		LoadDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "buildingdata",
				Subsystem: "load",
				Name:      "duration_seconds",
				Help:      "Wall-clock duration of the archive load",
			},
		),

		GraphTriples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "buildingdata",
				Subsystem: "graph",
				Name:      "triples",
				Help:      "Number of triples held per graph",
			},
			[]string{"graph"},
		),

		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "buildingdata",
				Subsystem: "query",
				Name:      "total",
				Help:      "Total number of graph queries executed",
			},
			[]string{"graph"},
		),

		QueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "buildingdata",
				Subsystem: "query",
				Name:      "errors_total",
				Help:      "Total number of graph queries that returned an error",
			},
			[]string{"graph"},
		),

		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "buildingdata",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Graph query execution time in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"graph"},
		),
	}
}

// Register registers all metrics with the given registerer
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.StreamsLoaded,
		m.EntriesSkipped,
		m.LoadDuration,
		m.GraphTriples,
		m.QueriesTotal,
		m.QueryErrors,
		m.QueryDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordStreamsLoaded updates the held-stream gauge
func (m *Metrics) RecordStreamsLoaded(count int) {
	m.StreamsLoaded.Set(float64(count))
}

// RecordEntrySkipped increments the skipped-entry counter
func (m *Metrics) RecordEntrySkipped() {
	m.EntriesSkipped.Inc()
}

// RecordLoadDuration records the archive load duration
func (m *Metrics) RecordLoadDuration(d time.Duration) {
	m.LoadDuration.Set(d.Seconds())
}

// RecordGraphTriples records the triple count of a graph
func (m *Metrics) RecordGraphTriples(graph string, count int) {
	m.GraphTriples.WithLabelValues(graph).Set(float64(count))
}

// RecordQuery increments the query counter and observes its duration
func (m *Metrics) RecordQuery(graph string, d time.Duration) {
	m.QueriesTotal.WithLabelValues(graph).Inc()
	m.QueryDuration.WithLabelValues(graph).Observe(d.Seconds())
}

// RecordQueryError increments the query error counter
func (m *Metrics) RecordQueryError(graph string) {
	m.QueryErrors.WithLabelValues(graph).Inc()
}
