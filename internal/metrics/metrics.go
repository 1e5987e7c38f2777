// Package metrics holds the Prometheus collectors observed while computing
// upgrade paths. They are registered on the controller-runtime registry so
// a long running server exposes them alongside its other metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	ChannelKindDefault = "default"
	ChannelKindOther   = "other"
)

var (
	frontierComputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upgradepath_frontier_computations_total",
			Help: "Number of channel frontier computations by channel kind.",
		},
		[]string{"channel_kind"},
	)

	malformedEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "upgradepath_malformed_entries_total",
			Help: "Total number of channel entries skipped because their name carries no parseable version.",
		},
	)

	frontierSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upgradepath_frontier_size",
			Help:    "Number of bundles on a computed frontier.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	computationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upgradepath_computation_duration_seconds",
			Help:    "Time taken to compute a channel frontier.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	metrics.Registry.MustRegister(
		frontierComputationsTotal,
		malformedEntriesTotal,
		frontierSize,
		computationDuration,
	)
}

// ObserveComputation records one channel frontier computation.
func ObserveComputation(defaultChannel bool, size, malformed int, took time.Duration) {
	kind := ChannelKindOther
	if defaultChannel {
		kind = ChannelKindDefault
	}
	frontierComputationsTotal.WithLabelValues(kind).Inc()
	malformedEntriesTotal.Add(float64(malformed))
	frontierSize.Observe(float64(size))
	computationDuration.Observe(took.Seconds())
}

// WriteTextfile writes every metric of the controller-runtime registry to
// path in the Prometheus text format, for pickup by a node exporter.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, metrics.Registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
