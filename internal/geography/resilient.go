package geography

import (
	"context"
	"log/slog"
	"time"

	"veriadmin/internal/geography/metrics"
	"veriadmin/pkg/platform/circuit"
	"veriadmin/pkg/platform/sentinel"
)

// Resilient fails fast while the upstream source is unhealthy instead of
// making every form wait for the lookup timeout.
type Resilient struct {
	next    Source
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewResilient(next Source, breaker *circuit.Breaker, logger *slog.Logger, m *metrics.Metrics) *Resilient {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resilient{next: next, breaker: breaker, logger: logger, metrics: m}
}

func (r *Resilient) ListCountries(ctx context.Context) ([]Option, error) {
	return r.call(ctx, "countries", func(ctx context.Context) ([]Option, error) {
		return r.next.ListCountries(ctx)
	})
}

func (r *Resilient) ListStates(ctx context.Context, countryCode string) ([]Option, error) {
	return r.call(ctx, "states", func(ctx context.Context) ([]Option, error) {
		return r.next.ListStates(ctx, countryCode)
	})
}

func (r *Resilient) ListCities(ctx context.Context, countryCode, stateCode string) ([]Option, error) {
	return r.call(ctx, "cities", func(ctx context.Context) ([]Option, error) {
		return r.next.ListCities(ctx, countryCode, stateCode)
	})
}

func (r *Resilient) call(ctx context.Context, list string, fn func(context.Context) ([]Option, error)) ([]Option, error) {
	start := time.Now()
	if !r.breaker.Allow() {
		r.metrics.ObserveLookup(list, "rejected", start)
		return nil, NewSourceError(ErrorOutage, r.breaker.Name(), "circuit open", sentinel.ErrUnavailable)
	}
	opts, err := fn(ctx)
	if err != nil {
		// bad data is the dataset's fault, not the upstream's health
		if Category(err) != ErrorBadData {
			if _, change := r.breaker.RecordFailure(); change.Opened {
				r.logger.WarnContext(ctx, "geography circuit opened", "list", list, "error", err)
				r.metrics.SetBreakerOpen(true)
			}
		}
		r.metrics.ObserveLookup(list, string(Category(err)), start)
		return nil, err
	}
	if _, change := r.breaker.RecordSuccess(); change.Closed {
		r.logger.InfoContext(ctx, "geography circuit closed", "list", list)
		r.metrics.SetBreakerOpen(false)
	}
	r.metrics.ObserveLookup(list, "ok", start)
	return opts, nil
}
