// Package metrics holds the Prometheus collectors of the extraction service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ficha"

// Metrics is safe to use as a nil pointer, in which case nothing is recorded.
type Metrics struct {
	documents *prometheus.CounterVec
	pages     prometheus.Counter
	lineItems prometheus.Counter
	duration  prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "Documents processed, partitioned by outcome.",
		}, []string{"status"}),
		pages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_processed_total",
			Help:      "Pages folded into a document result.",
		}),
		lineItems: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_items_extracted_total",
			Help:      "Line item records emitted.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "processing_duration_seconds",
			Help:      "Time spent decoding and extracting one document.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) ObserveSuccess(pages, lineItems int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues("success").Inc()
	m.pages.Add(float64(pages))
	m.lineItems.Add(float64(lineItems))
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFailure(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues("error").Inc()
	m.duration.Observe(elapsed.Seconds())
}
