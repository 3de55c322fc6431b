// Package metric records Prometheus metrics for export runs.
package metric

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	namespace = "gqlrdf"
	subsystem = "export"
)

// Metrics holds the counters of export runs. A nil *Metrics records nothing.
type Metrics struct {
	types        *prometheus.CounterVec   // By status (exported/empty/no_result/fetch_failed/failed)
	entities     *prometheus.CounterVec   // By type
	quadsWritten *prometheus.CounterVec   // By type
	quadsDropped *prometheus.CounterVec   // By type
	typeDuration *prometheus.HistogramVec // By type

	lastRun prometheus.Gauge
}

// NewMetrics creates export metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		types: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "types_total",
			Help:      "Total number of processed types by outcome",
		}, []string{"status"}),

		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entities_total",
			Help:      "Total number of fetched entities",
		}, []string{"type"}),

		quadsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "quads_written_total",
			Help:      "Total number of quads written to Turtle files",
		}, []string{"type"}),

		quadsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "quads_dropped_total",
			Help:      "Total number of quads that could not be serialized",
		}, []string{"type"}),

		typeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "type_duration_seconds",
			Help:      "Time spent fetching and converting one type",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}, []string{"type"}),

		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished run",
		}),
	}

	for _, c := range []prometheus.Collector{m.types, m.entities, m.quadsWritten, m.quadsDropped, m.typeDuration, m.lastRun} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// RecordType records the outcome of one type.
func (m *Metrics) RecordType(typeName, status string, entities, written, dropped int, duration time.Duration) {
	if m == nil {
		return
	}
	m.types.WithLabelValues(status).Inc()
	m.entities.WithLabelValues(typeName).Add(float64(entities))
	m.quadsWritten.WithLabelValues(typeName).Add(float64(written))
	m.quadsDropped.WithLabelValues(typeName).Add(float64(dropped))
	m.typeDuration.WithLabelValues(typeName).Observe(duration.Seconds())
}

// RecordRun marks the end of a run.
func (m *Metrics) RecordRun(finished time.Time) {
	if m == nil {
		return
	}
	m.lastRun.Set(float64(finished.Unix()))
}

// Push sends everything gathered by g to a Pushgateway.
func Push(ctx context.Context, url, job string, g prometheus.Gatherer) error {
	if err := push.New(url, job).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
