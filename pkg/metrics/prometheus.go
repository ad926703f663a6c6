package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	tradesTotal *prometheus.CounterVec
	pageLoads   *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastPrice   *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		tradesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdesk_trades_total",
				Help: "Orders submitted by side and result",
			},
			[]string{"side", "result"},
		),
		pageLoads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdesk_page_loads_total",
				Help: "Page loads by page and result",
			},
			[]string{"page", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdesk_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockdesk_last_price",
				Help: "Last observed price for an instrument",
			},
			[]string{"secid"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockdesk_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordTrade records an order outcome.
func (r *Recorder) RecordTrade(side, result string) {
	r.tradesTotal.WithLabelValues(side, result).Inc()
}

// RecordPageLoad records a page load outcome.
func (r *Recorder) RecordPageLoad(page, result string) {
	r.pageLoads.WithLabelValues(page, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for an instrument.
func (r *Recorder) RecordLastPrice(secid string, price float64) {
	r.lastPrice.WithLabelValues(secid).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
