// Package metrics exports plansearch statistics to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/plansearch"
)

// StatisticsSource is anything exposing a statistics snapshot, such as an
// *plansearch.Engine.
type StatisticsSource interface {
	Statistics() (plansearch.Statistics, bool)
}

// Collector holds the Prometheus instruments for search progress.
type Collector struct {
	expanded  prometheus.Gauge
	generated prometheus.Gauge
	evaluated prometheus.Gauge
	maxDepth  prometheus.Gauge
	maxG      prometheus.Gauge
	maxF      prometheus.Gauge
	layers    prometheus.Counter
	searches  *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewCollector creates the instruments under namespace and registers them.
func NewCollector(registerer prometheus.Registerer, namespace string) (*Collector, error) {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: "search", Name: name, Help: help})
	}
	collector := &Collector{
		expanded:  gauge("expanded", "Expanded frames at the last f-layer boundary."),
		generated: gauge("generated", "Frames inserted into the open list at the last f-layer boundary."),
		evaluated: gauge("evaluated", "Heuristic evaluations at the last f-layer boundary."),
		maxDepth:  gauge("layer_depth", "Depth of the frame that opened the last f-layer."),
		maxG:      gauge("layer_g_value", "g-value of the frame that opened the last f-layer."),
		maxF:      gauge("layer_f_value", "f-value of the last f-layer."),
		layers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "layers_total",
			Help: "f-layer boundaries reached.",
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "search", Name: "finished_total",
			Help: "Finished searches by status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "search", Name: "duration_seconds",
			Help:    "Wall time of finished searches.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	for _, instrument := range []prometheus.Collector{
		collector.expanded, collector.generated, collector.evaluated,
		collector.maxDepth, collector.maxG, collector.maxF,
		collector.layers, collector.searches, collector.duration,
	} {
		if err := registerer.Register(instrument); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				return nil, fmt.Errorf("metrics: collector already registered: %w", err)
			}
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return collector, nil
}

// Observe records one statistics snapshot.
func (collector *Collector) Observe(statistics plansearch.Statistics) {
	collector.expanded.Set(float64(statistics.Expanded))
	collector.generated.Set(float64(statistics.Generated))
	collector.evaluated.Set(float64(statistics.Evaluated))
	collector.maxDepth.Set(float64(statistics.MaxDepth))
	collector.maxG.Set(statistics.MaxG)
	collector.maxF.Set(statistics.MaxF)
	collector.layers.Inc()
}

// Handler returns a progress handler that observes the snapshot of source.
func (collector *Collector) Handler(source StatisticsSource) plansearch.ProgressHandler {
	return func() {
		if statistics, ok := source.Statistics(); ok {
			collector.Observe(statistics)
		}
	}
}

// ObserveResult counts a finished search.
func (collector *Collector) ObserveResult(status plansearch.Status, elapsed time.Duration) {
	collector.searches.WithLabelValues(status.String()).Inc()
	collector.duration.Observe(elapsed.Seconds())
}
