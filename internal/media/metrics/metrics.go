package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers uploads to the asset host.
type Metrics struct {
	Uploads *prometheus.CounterVec
	Bytes   prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Uploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "veriadmin_media_uploads_total",
			Help: "Asset uploads by kind and outcome",
		}, []string{"kind", "outcome"}),
		Bytes: f.NewCounter(prometheus.CounterOpts{
			Name: "veriadmin_media_uploaded_bytes_total",
			Help: "Bytes successfully uploaded",
		}),
	}
}

func (m *Metrics) Uploaded(kind string, size int) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(kind, "ok").Inc()
	m.Bytes.Add(float64(size))
}

func (m *Metrics) Skipped(kind string) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(kind, "skipped").Inc()
}
