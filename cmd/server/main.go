package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	disambiguationMetrics "searchorder/internal/disambiguation/metrics"
	"searchorder/internal/dispatch"
	dispatchMetrics "searchorder/internal/dispatch/metrics"
	"searchorder/internal/order"
	orderHandler "searchorder/internal/order/handler"
	orderMetrics "searchorder/internal/order/metrics"
	orderStore "searchorder/internal/order/store"
	"searchorder/internal/platform/config"
	"searchorder/internal/platform/httpserver"
	"searchorder/internal/platform/logger"
	"searchorder/internal/platform/metrics"
	"searchorder/internal/platform/middleware"
	platformRedis "searchorder/internal/platform/redis"
	"searchorder/internal/pricing"
	"searchorder/internal/providers"
	"searchorder/internal/providers/cache"
	"searchorder/internal/providers/httpclient"
	sequencerMetrics "searchorder/internal/sequencer/metrics"
	"searchorder/pkg/platform/httputil"
	"searchorder/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	policy, err := pricing.ParsePolicy(cfg.BillingPolicy)
	if err != nil {
		log.Error("invalid billing policy", "policy", cfg.BillingPolicy, "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	redisClient, err := platformRedis.New(context.Background(), cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	client := httpclient.New(cfg.Provider.BaseURL, cfg.Provider.Timeout, httpclient.WithLogger(log))
	registry := buildRegistry(cfg, log, m, client, redisClient)

	engine, err := disambiguation.New(registry,
		disambiguation.WithLogger(log),
		disambiguation.WithMetrics(disambiguationMetrics.New(m.Registry)),
	)
	if err != nil {
		log.Error("failed to create disambiguation engine", "error", err)
		os.Exit(1)
	}
	dispatcher, err := dispatch.New(client,
		dispatch.WithLogger(log),
		dispatch.WithMetrics(dispatchMetrics.New(m.Registry)),
	)
	if err != nil {
		log.Error("failed to create dispatcher", "error", err)
		os.Exit(1)
	}

	svc, err := order.NewService(orderStore.New(), order.Deps{
		Catalog:          catalog.Default(),
		Fetcher:          engine,
		Registry:         registry,
		Submitter:        dispatcher,
		Policy:           policy,
		Logger:           log,
		Metrics:          orderMetrics.New(m.Registry),
		SequencerMetrics: sequencerMetrics.New(m.Registry),
	}, order.WithLogger(log), order.WithMetrics(m))
	if err != nil {
		log.Error("failed to create order service", "error", err)
		os.Exit(1)
	}

	router := newRouter(log, m, orderHandler.New(svc, log), redisClient)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting searchorder",
		"addr", cfg.Addr,
		"provider", cfg.Provider.BaseURL,
		"cache", cfg.Cache.Backend,
		"billing_policy", policy,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := httpserver.Run(ctx, srv, log); err != nil {
		log.Error("server error", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// buildRegistry decorates the provider client with the configured cache.
func buildRegistry(cfg config.Server, log *slog.Logger, m *metrics.Metrics, client *httpclient.Client, redisClient *platformRedis.Client) providers.Registry {
	var store cache.Store
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		if redisClient == nil {
			log.Warn("redis cache requested without REDIS_URL; using memory cache")
			store = cache.NewMemoryStore(cfg.Cache.Size, cfg.Cache.TTL)
		} else {
			store = cache.NewRedisStore(redisClient.Client, cfg.Cache.TTL)
		}
	case config.CacheMemory:
		store = cache.NewMemoryStore(cfg.Cache.Size, cfg.Cache.TTL)
	default:
		return client
	}
	return cache.New(client, store,
		cache.WithLogger(log),
		cache.WithMetrics(cache.NewMetrics(m.Registry)),
	)
}

func newRouter(log *slog.Logger, m *metrics.Metrics, orders *orderHandler.Handler, redisClient *platformRedis.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(m))

	r.Handle("/metrics", m.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		orders.Register(r)
	})
	return r
}
