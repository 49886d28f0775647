package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"veriadmin/internal/audit/metrics"
)

// LogPublisher writes events to a structured logger. It is the sink used
// when no broker is configured.
type LogPublisher struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewLogPublisher(logger *slog.Logger, m *metrics.Metrics) *LogPublisher {
	return &LogPublisher{logger: logger, metrics: m}
}

func (p *LogPublisher) Emit(ctx context.Context, e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	p.logger.InfoContext(ctx, "audit",
		"audit_id", e.ID,
		"action", string(e.Action),
		"actor_id", e.ActorID,
		"role", e.Role,
		"organization_id", e.OrganizationID,
		"selection_id", e.SelectionID,
		"profile", e.Profile,
		"resource_id", e.ResourceID,
		"reason", e.Reason,
		"request_id", e.RequestID,
		"device", e.Device,
	)
	p.metrics.IncEmitted("log", string(e.Action))
	return nil
}

// Fanout emits every event to all publishers and joins their errors.
type Fanout []Publisher

func (f Fanout) Emit(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
