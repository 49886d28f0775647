package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Emitted *prometheus.CounterVec
	Failed  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Emitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_audit_events_emitted_total",
			Help: "Audit events delivered by sink and action",
		}, []string{"sink", "action"}),
		Failed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_audit_events_failed_total",
			Help: "Audit events a sink failed to deliver",
		}, []string{"sink", "action"}),
	}
}

func (m *Metrics) IncEmitted(sink, action string) {
	if m == nil {
		return
	}
	m.Emitted.WithLabelValues(sink, action).Inc()
}

func (m *Metrics) IncFailed(sink, action string) {
	if m == nil {
		return
	}
	m.Failed.WithLabelValues(sink, action).Inc()
}
