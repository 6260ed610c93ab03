// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stats

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the Prometheus collectors a Tracker can feed.
// Create one per process, attach it to trackers with SetMetrics, and
// register it on whatever registry the host application uses.
type Metrics struct {
	latchesTotal   prometheus.Counter
	skipsTotal     *prometheus.CounterVec
	presentLatency prometheus.Histogram
}

// NewMetrics creates collectors under the given namespace (for
// example "compositor").
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		latchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_latches_total",
			Help:      "Total number of successfully latched frames",
		}),
		skipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "latch_skips_total",
			Help:      "Latch attempts skipped, by reason",
		}, []string{"reason"}),
		presentLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "present_latency_seconds",
			Help:      "Actual present time minus desired present time",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
}

// Register registers all collectors on reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers all collectors on reg, panicking on error.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.collectors()...)
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.latchesTotal, m.skipsTotal, m.presentLatency}
}
