package cascade

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"veriadmin/internal/geography"
	"veriadmin/internal/location/models"
)

// lookupTag identifies the request a result answers: which list, which
// generation of that list, and the parent codes it was asked for.
type lookupTag struct {
	level   models.Level
	gen     uint64
	country string
	state   string
}

// issueLocked starts a lookup for level's list in the background. The result
// is applied under the lock only if the tag is still current.
func (c *Controller) issueLocked(ctx context.Context, level models.Level) {
	st := c.state
	c.gen[level]++
	tag := lookupTag{
		level:   level,
		gen:     c.gen[level],
		country: st.sel.Country.DatasetCode(),
		state:   st.sel.State.DatasetCode(),
	}
	st.loading[level] = true
	c.metrics.IncLookup(string(level))

	// the lookup outlives the HTTP request that triggered it
	base := context.WithoutCancel(ctx)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		lctx, cancel := context.WithTimeout(base, c.lookupTimeout)
		defer cancel()
		opts, err := c.fetch(lctx, tag)
		c.apply(base, tag, opts, err)
	}()
}

func (c *Controller) fetch(ctx context.Context, tag lookupTag) ([]geography.Option, error) {
	ctx, span := c.tracer.Start(ctx, "cascade.lookup", trace.WithAttributes(
		attribute.String("selection.id", c.id.String()),
		attribute.String("level", string(tag.level)),
		attribute.String("country", tag.country),
		attribute.String("state", tag.state),
	))
	defer span.End()

	start := time.Now()
	var (
		opts []geography.Option
		err  error
	)
	switch tag.level {
	case models.LevelCountry:
		opts, err = c.source.ListCountries(ctx)
	case models.LevelState:
		opts, err = c.source.ListStates(ctx, tag.country)
	case models.LevelCity:
		opts, err = c.source.ListCities(ctx, tag.country, tag.state)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(geography.Category(err)))
	}
	span.SetAttributes(
		attribute.Int("options", len(opts)),
		attribute.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return opts, err
}

func (c *Controller) apply(ctx context.Context, tag lookupTag, opts []geography.Option, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state

	if st.status.IsTerminal() || tag.gen != c.gen[tag.level] || !st.matches(tag) {
		c.metrics.IncStale(string(tag.level))
		c.logger.DebugContext(ctx, "dropped stale location lookup",
			"selection_id", c.id.String(),
			"level", tag.level,
			"country", tag.country,
			"state", tag.state,
		)
		return
	}
	st.loading[tag.level] = false

	if err != nil {
		category := geography.Category(err)
		c.metrics.IncFailed(string(tag.level), string(category))
		c.logger.WarnContext(ctx, "location lookup failed, showing empty list",
			"selection_id", c.id.String(),
			"level", tag.level,
			"category", category,
			"error", err,
		)
		opts = nil
		if category == geography.ErrorTimeout && !st.sel.Manual[tag.level] {
			st.sel.Manual[tag.level] = true
			if st.open == tag.level {
				st.open = ""
			}
			c.metrics.IncManualFallback(string(tag.level))
			c.logger.InfoContext(ctx, "location level switched to manual entry",
				"selection_id", c.id.String(),
				"level", tag.level,
			)
		}
	}
	if opts == nil {
		opts = []geography.Option{}
	}
	st.setOptions(tag, opts)
}
