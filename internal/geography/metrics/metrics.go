package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks dataset lookups and cache effectiveness.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	BreakerOpen    prometheus.Gauge
}

// New registers the geography metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_geography_lookups_total",
			Help: "Dataset lookups by list and outcome",
		}, []string{"list", "outcome"}),
		LookupDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veriadmin_geography_lookup_duration_seconds",
			Help:    "Duration of dataset lookups that reached the upstream source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"list"}),
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_geography_cache_hits_total",
			Help: "Option list cache hits by tier",
		}, []string{"tier"}),
		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_geography_cache_misses_total",
			Help: "Option list cache misses by tier",
		}, []string{"tier"}),
		BreakerOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "veriadmin_geography_breaker_open",
			Help: "1 while the geography circuit breaker is open",
		}),
	}
}

func (m *Metrics) ObserveLookup(list, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(list, outcome).Inc()
	m.LookupDuration.WithLabelValues(list).Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordHit(tier string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(tier).Inc()
}

func (m *Metrics) RecordMiss(tier string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(tier).Inc()
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerOpen.Set(1)
		return
	}
	m.BreakerOpen.Set(0)
}
