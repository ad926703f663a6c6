package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stockdesk",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency of trading API calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockdesk",
			Subsystem: "upstream",
			Name:      "errors_total",
			Help:      "Failed trading API calls by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockdesk",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Market data cache lookups by kind and result",
		},
		[]string{"kind", "result"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(UpstreamLatency, UpstreamErrors, CacheLookups)
	})
}
