package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers calls to the backend REST API.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_backend_requests_total",
			Help: "Backend API calls by operation and outcome",
		}, []string{"op", "outcome"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veriadmin_backend_request_duration_seconds",
			Help:    "Backend API call latency by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

// Observe records one call. outcome is "ok", an HTTP status class such as
// "4xx", or "transport".
func (m *Metrics) Observe(op, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
