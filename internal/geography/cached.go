package geography

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"veriadmin/internal/geography/metrics"
	"veriadmin/pkg/platform/sentinel"
)

// RemoteCache is a shared cache tier (Redis in production).
type RemoteCache interface {
	Get(ctx context.Context, key string) ([]Option, error)
	Set(ctx context.Context, key string, options []Option, ttl time.Duration) error
}

// Cached wraps a Source with an in-process cache and an optional shared tier.
// Only successful results are cached; empty lists are cached too since "not
// modeled" is a stable answer.
type Cached struct {
	next    Source
	local   *gocache.Cache
	remote  RemoteCache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type CacheOption func(*Cached)

func WithRemoteCache(rc RemoteCache) CacheOption {
	return func(c *Cached) {
		c.remote = rc
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cached) {
		c.logger = logger
	}
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cached) {
		c.metrics = m
	}
}

// NewCached wraps next. ttl applies to both tiers.
func NewCached(next Source, ttl time.Duration, opts ...CacheOption) *Cached {
	c := &Cached{
		next:   next,
		local:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) ListCountries(ctx context.Context) ([]Option, error) {
	return c.through(ctx, cacheKey("countries"), func(ctx context.Context) ([]Option, error) {
		return c.next.ListCountries(ctx)
	})
}

func (c *Cached) ListStates(ctx context.Context, countryCode string) ([]Option, error) {
	return c.through(ctx, cacheKey("states", countryCode), func(ctx context.Context) ([]Option, error) {
		return c.next.ListStates(ctx, countryCode)
	})
}

func (c *Cached) ListCities(ctx context.Context, countryCode, stateCode string) ([]Option, error) {
	return c.through(ctx, cacheKey("cities", countryCode, stateCode), func(ctx context.Context) ([]Option, error) {
		return c.next.ListCities(ctx, countryCode, stateCode)
	})
}

// Flush drops the in-process tier.
func (c *Cached) Flush() {
	c.local.Flush()
}

func (c *Cached) through(ctx context.Context, key string, load func(context.Context) ([]Option, error)) ([]Option, error) {
	if v, ok := c.local.Get(key); ok {
		c.metrics.RecordHit("local")
		return clone(v.([]Option)), nil
	}
	c.metrics.RecordMiss("local")

	if c.remote != nil {
		opts, err := c.remote.Get(ctx, key)
		switch {
		case err == nil:
			c.metrics.RecordHit("remote")
			c.local.Set(key, opts, c.ttl)
			return clone(opts), nil
		case errors.Is(err, sentinel.ErrNotFound):
			c.metrics.RecordMiss("remote")
		default:
			c.logger.WarnContext(ctx, "geography remote cache read failed", "key", key, "error", err)
		}
	}

	opts, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.local.Set(key, opts, c.ttl)
	if c.remote != nil {
		if err := c.remote.Set(ctx, key, opts, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "geography remote cache write failed", "key", key, "error", err)
		}
	}
	return clone(opts), nil
}

func cacheKey(parts ...string) string {
	return "geo:v1:" + strings.Join(parts, ":")
}

func clone(opts []Option) []Option {
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}
