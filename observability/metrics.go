// Package observability provides the Prometheus instrumentation and slog
// construction shared by the format codecs and the CLI.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for catalog serialization. All
// increment helpers are nil-safe so library callers can leave Metrics unset.
type Metrics struct {
	EventsRead    prometheus.Counter
	EventsWritten prometheus.Counter
	EventsSkipped prometheus.Counter
	PicksRead     prometheus.Counter
	PicksWritten  prometheus.Counter
}

// NewMetrics creates and registers all codec metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EventsRead,
		m.EventsWritten,
		m.EventsSkipped,
		m.PicksRead,
		m.PicksWritten,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catform",
			Name:      "events_read_total",
			Help:      "Total events decoded from catalog files.",
		}),
		EventsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catform",
			Name:      "events_written_total",
			Help:      "Total events encoded to catalog files.",
		}),
		EventsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catform",
			Name:      "events_skipped_total",
			Help:      "Total events skipped on write for lack of an origin.",
		}),
		PicksRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catform",
			Name:      "picks_read_total",
			Help:      "Total picks decoded from pick tables.",
		}),
		PicksWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catform",
			Name:      "picks_written_total",
			Help:      "Total picks encoded to pick tables.",
		}),
	}
}

// AddEventsRead increments the events-read counter by n.
func (m *Metrics) AddEventsRead(n int) {
	if m != nil {
		m.EventsRead.Add(float64(n))
	}
}

// AddEventsWritten increments the events-written counter by n.
func (m *Metrics) AddEventsWritten(n int) {
	if m != nil {
		m.EventsWritten.Add(float64(n))
	}
}

// IncEventsSkipped increments the skipped-events counter.
func (m *Metrics) IncEventsSkipped() {
	if m != nil {
		m.EventsSkipped.Inc()
	}
}

// AddPicksRead increments the picks-read counter by n.
func (m *Metrics) AddPicksRead(n int) {
	if m != nil {
		m.PicksRead.Add(float64(n))
	}
}

// AddPicksWritten increments the picks-written counter by n.
func (m *Metrics) AddPicksWritten(n int) {
	if m != nil {
		m.PicksWritten.Add(float64(n))
	}
}
