package server

import (
	"context"
	"log/slog"
	"net/http"

	"fpl-insights-service/internal/bootstrapcache"
	"fpl-insights-service/internal/config"
	"fpl-insights-service/internal/fplclient"
	"fpl-insights-service/internal/fplconfig"
	"fpl-insights-service/internal/identity"
	"fpl-insights-service/internal/logging"
	"fpl-insights-service/internal/metrics"
)

var metricsSetup = metrics.Setup

// Server wires the upstream client, cache tiers, and HTTP surface.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
	client   *fplclient.Client
	cache    *bootstrapcache.Cache
	resolver *fplconfig.Resolver
	store    fplconfig.Store
	identity identity.Provider

	adminToken string

	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// Option customizes server construction.
type Option func(*Server)

// WithIdentityProvider wires the external identity collaborator so
// recommendations can use stored profile preferences.
func WithIdentityProvider(provider identity.Provider) Option {
	return func(s *Server) { s.identity = provider }
}

// New constructs a fully wired server from configuration.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	client := fplclient.NewClient(fplclient.Config{
		BaseURL:   cfg.FPL.BaseURL,
		UserAgent: cfg.FPL.UserAgent,
		Timeout:   cfg.FPL.Timeout,
	}, logger, recorder)

	cache := bootstrapcache.New(client, bootstrapcache.Config{
		TTL: cfg.Cache.BootstrapTTL,
	}, logger, recorder)

	store := buildConfigStore(cfg.ConfigStore, logger)
	resolver := fplconfig.NewResolver(cache, store, fplconfig.Config{
		TTL: cfg.Cache.ConfigTTL,
	}, logger, recorder)

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		metrics:     recorder,
		client:      client,
		cache:       cache,
		resolver:    resolver,
		store:       store,
		adminToken:  cfg.AdminToken,
		metricsStop: metricsShutdown,
	}
	for _, opt := range opts {
		opt(s)
	}

	handler := loggingMiddleware(logger, recorder, s.newRouter(cfg.AllowedOrigins))
	s.httpServer = netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
	s.metricsServer = metricsSrv
	return s
}

// Run starts the HTTP server and waits for context cancellation to shut down
// gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if closer, ok := s.store.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logging.Warn(s.logger, "config store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + recCfg.Port,
			Handler: handler,
		}}
	}
	return rec, metricsSrv, shutdown
}

// buildConfigStore selects the persisted config-cache backend. Redis wiring
// failures fall back to the filesystem store rather than failing startup.
func buildConfigStore(cfg config.StoreConfig, logger *slog.Logger) fplconfig.Store {
	switch cfg.Backend {
	case "redis":
		store, err := fplconfig.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logging.Warn(logger, "redis config store unavailable, falling back to fs",
				slog.String("addr", cfg.RedisAddr), "error", err.Error())
			return fplconfig.NewFSStore(cfg.Path)
		}
		return store
	case "none":
		return nil
	default:
		return fplconfig.NewFSStore(cfg.Path)
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}
