package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers selection sessions and their dataset lookups.
type Metrics struct {
	LookupsIssued    *prometheus.CounterVec
	LookupsStale     *prometheus.CounterVec
	LookupsFailed    *prometheus.CounterVec
	ManualFallbacks  *prometheus.CounterVec
	ActiveSelections prometheus.Gauge
	Finished         *prometheus.CounterVec
}

// New registers the selection metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LookupsIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_selection_lookups_issued_total",
			Help: "Option list lookups issued by level",
		}, []string{"level"}),
		LookupsStale: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_selection_lookups_stale_total",
			Help: "Lookup results dropped because the selection moved on",
		}, []string{"level"}),
		LookupsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_selection_lookups_failed_total",
			Help: "Lookups that failed and degraded to an empty list",
		}, []string{"level", "category"}),
		ManualFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_selection_manual_fallbacks_total",
			Help: "Levels switched to manual entry after a lookup timeout",
		}, []string{"level"}),
		ActiveSelections: f.NewGauge(prometheus.GaugeOpts{
			Name: "veriadmin_selection_sessions_active",
			Help: "Selection sessions currently held in memory",
		}),
		Finished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_selection_sessions_finished_total",
			Help: "Selection sessions that ended, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncLookup(level string) {
	if m == nil {
		return
	}
	m.LookupsIssued.WithLabelValues(level).Inc()
}

func (m *Metrics) IncStale(level string) {
	if m == nil {
		return
	}
	m.LookupsStale.WithLabelValues(level).Inc()
}

func (m *Metrics) IncFailed(level, category string) {
	if m == nil {
		return
	}
	m.LookupsFailed.WithLabelValues(level, category).Inc()
}

func (m *Metrics) IncManualFallback(level string) {
	if m == nil {
		return
	}
	m.ManualFallbacks.WithLabelValues(level).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSelections.Inc()
}

// SessionClosed records a session leaving memory. outcome is submitted,
// discarded or expired.
func (m *Metrics) SessionClosed(outcome string) {
	if m == nil {
		return
	}
	m.ActiveSelections.Dec()
	m.Finished.WithLabelValues(outcome).Inc()
}
