package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"worldranks/internal/countries/cache"
	"worldranks/internal/countries/client"
	"worldranks/internal/countries/handler"
	countrymetrics "worldranks/internal/countries/metrics"
	"worldranks/internal/countries/service"
	"worldranks/internal/countries/store/session"
	"worldranks/internal/platform/config"
	platformmetrics "worldranks/internal/platform/metrics"
	platformredis "worldranks/internal/platform/redis"
	"worldranks/internal/ratelimit"
	"worldranks/pkg/platform/circuit"
	"worldranks/pkg/platform/httputil"
	"worldranks/pkg/platform/middleware/request"
	"worldranks/pkg/platform/middleware/requesttime"
)

// app holds the wired dependencies shared by the HTTP server and the
// background loops.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	router   http.Handler
	service  *service.Service
	sessions *session.InMemorySessionStore
	memCache *cache.MemoryCache // nil when payloads live in Redis
	limits   *ratelimit.Window  // nil when session creation is unlimited
	redis    *platformredis.Client
	metrics  *countrymetrics.Metrics
}

// newApp builds every dependency from cfg. Metrics are registered with reg
// and served from gatherer.
func newApp(ctx context.Context, cfg config.Config, log *slog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*app, error) {
	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: countrymetrics.NewWithRegisterer(reg),
	}

	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.redis = rc

	var payloads service.PayloadCache
	if rc != nil {
		payloads = cache.NewRedisCache(rc.Client, cfg.Cache.TTL)
		log.Info("country payloads cached in redis")
	} else {
		a.memCache = cache.NewMemoryCache(cfg.Cache.TTL)
		payloads = a.memCache
		log.Info("country payloads cached in memory")
	}

	breaker := circuit.New("restcountries",
		circuit.WithFailureThreshold(cfg.Upstream.FailureThreshold),
		circuit.WithCooldown(cfg.Upstream.Cooldown),
	)
	upstream := client.New(cfg.Upstream.BaseURL,
		client.WithTimeout(cfg.Upstream.Timeout),
		client.WithBreaker(breaker),
		client.WithMetrics(a.metrics),
		client.WithLogger(log),
	)

	a.sessions = session.New(session.WithIdleTTL(cfg.Browse.SessionTTL))
	a.service = service.New(upstream, payloads, a.sessions,
		service.WithLogger(log),
		service.WithMetrics(a.metrics),
		service.WithPageSize(cfg.Browse.PageSize),
	)

	httpMetrics := platformmetrics.NewWithRegistry(reg, gatherer)
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(request.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(httpMetrics.Middleware)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", httpMetrics.Handler())
	var handlerOpts []handler.Option
	if cfg.Browse.CreateLimit > 0 {
		a.limits = ratelimit.NewWindow(cfg.Browse.CreateLimit, time.Minute)
		handlerOpts = append(handlerOpts, handler.WithCreateLimiter(ratelimit.Middleware(a.limits, log)))
	}
	handler.New(a.service, log, handlerOpts...).Register(r)
	a.router = r

	return a, nil
}

type healthResponse struct {
	Status   string                    `json:"status"`
	Cache    string                    `json:"cache"`
	Sessions int                       `json:"sessions"`
	Redis    *platformredis.PoolStatus `json:"redis,omitempty"`
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Cache: "memory", Sessions: a.sessions.Len()}
	if a.redis != nil {
		resp.Cache = "redis"
		pool := a.redis.Pool()
		resp.Redis = &pool
		if err := a.redis.Health(r.Context()); err != nil {
			a.log.WarnContext(r.Context(), "redis health check failed", "error", err)
			resp.Status = "degraded"
			httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// refreshLoop re-fetches the country list for every live session on each
// tick until ctx ends. Failures are logged and retried on the next tick.
func (a *app) refreshLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := a.service.RefreshAll(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				a.log.WarnContext(ctx, "background refresh failed", "error", err)
				continue
			}
			a.log.InfoContext(ctx, "background refresh complete", "sessions", n)
		}
	}
}

// janitorLoop evicts idle sessions and expired in-memory payloads.
func (a *app) janitorLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.sweep(ctx)
		}
	}
}

func (a *app) sweep(ctx context.Context) {
	if n := a.sessions.Sweep(ctx); n > 0 {
		a.log.InfoContext(ctx, "expired browse sessions removed", "count", n)
	}
	a.metrics.SetActiveSessions(a.sessions.Len())
	if a.limits != nil {
		a.limits.Sweep()
	}
	if a.memCache != nil {
		if n := a.memCache.Sweep(); n > 0 {
			a.log.DebugContext(ctx, "expired country payloads removed", "count", n)
		}
	}
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("closing redis", "error", err)
		}
	}
}
