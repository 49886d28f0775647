package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"veriadmin/internal/audit"
	auditmetrics "veriadmin/internal/audit/metrics"
	"veriadmin/internal/backend"
	backendhandler "veriadmin/internal/backend/handler"
	backendmetrics "veriadmin/internal/backend/metrics"
	"veriadmin/internal/geography"
	geometrics "veriadmin/internal/geography/metrics"
	jwttoken "veriadmin/internal/jwt_token"
	"veriadmin/internal/location/cascade"
	locationhandler "veriadmin/internal/location/handler"
	locationmetrics "veriadmin/internal/location/metrics"
	"veriadmin/internal/location/session"
	"veriadmin/internal/media"
	mediametrics "veriadmin/internal/media/metrics"
	"veriadmin/internal/platform/config"
	platformmetrics "veriadmin/internal/platform/metrics"
	"veriadmin/internal/platform/postgres"
	platformredis "veriadmin/internal/platform/redis"
	"veriadmin/internal/submit"
	id "veriadmin/pkg/domain"
	"veriadmin/pkg/platform/circuit"
	"veriadmin/pkg/platform/httputil"
	"veriadmin/pkg/platform/middleware/admin"
	"veriadmin/pkg/platform/middleware/auth"
	"veriadmin/pkg/platform/middleware/metadata"
	"veriadmin/pkg/platform/middleware/request"
	"veriadmin/pkg/platform/middleware/requesttime"
)

const (
	auditTopicPartitions  = 3
	auditTopicReplication = 1
	healthCheckTimeout    = 2 * time.Second
	breakerCooldown       = 10 * time.Second
)

type healthCheck struct {
	name  string
	check func(context.Context) error
}

// app holds the wired dependencies and what must be released on shutdown.
type app struct {
	cfg         config.Config
	log         *slog.Logger
	registry    *prometheus.Registry
	httpMetrics *platformmetrics.Metrics
	jwt         *jwttoken.JWTService
	locations   *locationhandler.Handler
	records     *backendhandler.Handler
	checks      []healthCheck
	closers     []func(context.Context) error
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{
		cfg:      cfg,
		log:      log,
		registry: prometheus.NewRegistry(),
		jwt:      jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience),
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.httpMetrics = platformmetrics.New(a.registry)

	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		a.checks = append(a.checks, healthCheck{"redis", redisClient.Health})
		a.closers = append(a.closers, func(context.Context) error { return redisClient.Close() })
	}

	source, cache, err := a.geography(ctx, redisClient, geometrics.New(a.registry))
	if err != nil {
		return nil, err
	}

	publisher, err := a.auditPublisher(ctx, auditmetrics.New(a.registry))
	if err != nil {
		return nil, err
	}

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout,
		backend.WithLogger(log),
		backend.WithMetrics(backendmetrics.New(a.registry)),
	)
	if cfg.Media.UploadURL == "" {
		log.Warn("MEDIA_UPLOAD_URL is not set; gallery files will be skipped")
	}
	uploader := media.NewUploader(cfg.Media.UploadURL, cfg.Media.Preset, cfg.Media.Timeout,
		media.WithConcurrency(cfg.Media.Concurrency),
		media.WithLogger(log),
		media.WithMetrics(mediametrics.New(a.registry)),
	)
	submitter := submit.New(client, uploader,
		submit.WithLogger(log),
		submit.WithAuditPublisher(publisher),
	)

	locMetrics := locationmetrics.New(a.registry)
	sessions := session.New(cfg.Selection.SessionTTL,
		session.WithLogger(log),
		session.WithMetrics(locMetrics),
	)
	opts := []locationhandler.Option{
		locationhandler.WithControllerOptions(
			cascade.WithLogger(log),
			cascade.WithMetrics(locMetrics),
			cascade.WithLookupTimeout(cfg.Selection.LookupTimeout),
		),
		locationhandler.WithAuditPublisher(publisher),
	}
	if cache != nil {
		opts = append(opts, locationhandler.WithFlusher(cache))
	}
	a.locations = locationhandler.New(sessions, source, submitter, log, opts...)
	a.records = backendhandler.New(client, log, publisher)

	ok = true
	return a, nil
}

// geography builds the dataset source. Remote sources sit behind a circuit
// breaker and a cache; the bundled dataset is already in memory.
func (a *app) geography(ctx context.Context, rc *platformredis.Client, m *geometrics.Metrics) (geography.Source, *geography.Cached, error) {
	var base geography.Source
	switch a.cfg.Geography.Source {
	case config.GeographyHTTP:
		base = geography.NewHTTPSource(a.cfg.Geography.URL, a.cfg.Selection.LookupTimeout)
	case config.GeographyPostgres:
		pg, err := a.postgresGeography(ctx)
		if err != nil {
			return nil, nil, err
		}
		base = pg
	default:
		if a.cfg.IsProduction() {
			a.log.Warn("serving the bundled sample geography dataset; set GEOGRAPHY_SOURCE to http or postgres")
		}
		return geography.NewBundled(), nil, nil
	}

	breaker := circuit.New("geography-"+string(a.cfg.Geography.Source), circuit.WithCooldown(breakerCooldown))
	resilient := geography.NewResilient(base, breaker, a.log, m)
	cacheOpts := []geography.CacheOption{
		geography.WithCacheLogger(a.log),
		geography.WithCacheMetrics(m),
	}
	if rc != nil {
		cacheOpts = append(cacheOpts, geography.WithRemoteCache(geography.NewRedisCache(rc.Client)))
	}
	cached := geography.NewCached(resilient, a.cfg.Geography.CacheTTL, cacheOpts...)
	return cached, cached, nil
}

// postgresGeography opens the dataset database and loads the bundled
// dataset into it when it is empty.
func (a *app) postgresGeography(ctx context.Context) (*geography.PostgresSource, error) {
	db, err := postgres.Open(ctx, a.cfg.Geography.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return db.Close() })
	a.checks = append(a.checks, healthCheck{"postgres", db.PingContext})

	pg := geography.NewPostgresSource(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	existing, err := pg.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return pg, nil
	}
	countries, err := geography.NewBundled().Countries()
	if err != nil {
		return nil, err
	}
	if err := pg.Seed(ctx, countries); err != nil {
		return nil, err
	}
	a.log.Info("seeded geography tables from bundled dataset", "countries", len(countries))
	return pg, nil
}

// auditPublisher always logs events and also sends them to Kafka when
// brokers are configured.
func (a *app) auditPublisher(ctx context.Context, m *auditmetrics.Metrics) (audit.Publisher, error) {
	sinks := audit.Fanout{audit.NewLogPublisher(a.log, m)}
	if len(a.cfg.Audit.KafkaBrokers) == 0 {
		return sinks, nil
	}

	kp, err := audit.NewKafkaPublisher(a.cfg.Audit.KafkaBrokers, a.cfg.Audit.Topic,
		audit.WithKafkaLogger(a.log),
		audit.WithKafkaMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("audit kafka publisher: %w", err)
	}
	a.closers = append(a.closers, kp.Close)
	if err := kp.EnsureTopic(ctx, auditTopicPartitions, auditTopicReplication); err != nil {
		// the topic may be managed elsewhere; producing still works if it exists
		a.log.Warn("could not ensure audit topic", "topic", a.cfg.Audit.Topic, "error", err)
	}
	return append(sinks, kp), nil
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(a.log))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(a.log))
	r.Use(a.httpMetrics.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", request.HeaderRequestID},
		ExposedHeaders:   []string{request.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", a.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(jwttoken.NewJWTServiceAdapter(a.jwt), a.log))
			a.locations.Register(r)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(id.RoleAdmin, a.log))
				a.records.Register(r)
			})
		})
		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminToken(a.cfg.Server.AdminToken, a.log))
			a.locations.RegisterAdmin(r)
		})
	})

	return otelhttp.NewHandler(r, "veriadmin")
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{}
	status, code := "ok", http.StatusOK
	for _, c := range a.checks {
		if err := c.check(ctx); err != nil {
			checks[c.name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			a.log.WarnContext(ctx, "health check failed", "dependency", c.name, "error", err)
			continue
		}
		checks[c.name] = "up"
	}
	httputil.WriteJSON(w, code, map[string]any{"status": status, "checks": checks})
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Warn("shutdown cleanup failed", "error", err)
	}
}
