package kddoc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work done by a Handler
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsRejected    *prometheus.CounterVec
	ExamplesAligned prometheus.Counter
	Batches         prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg, nil reg leaves them unregistered
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RowsRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "kddoc",
			Name:      "rows_read_total",
			Help:      "Rows read from data files",
		}),
		RowsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kddoc",
			Name:      "rows_rejected_total",
			Help:      "Rows that failed preprocessing by reason",
		}, []string{"reason"}),
		ExamplesAligned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "kddoc",
			Name:      "examples_aligned_total",
			Help:      "Examples whose teacher scores were realigned to the canonical label order",
		}),
		Batches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "kddoc",
			Name:      "batches_total",
			Help:      "Batches produced",
		}),
	}
}
