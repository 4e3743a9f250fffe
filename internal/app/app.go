// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/garyellow/whatsapp-course-bot/internal/bot"
	"github.com/garyellow/whatsapp-course-bot/internal/buildinfo"
	"github.com/garyellow/whatsapp-course-bot/internal/config"
	"github.com/garyellow/whatsapp-course-bot/internal/logger"
	"github.com/garyellow/whatsapp-course-bot/internal/metrics"
	"github.com/garyellow/whatsapp-course-bot/internal/sentry"
	"github.com/garyellow/whatsapp-course-bot/internal/webhook"
	"github.com/garyellow/whatsapp-course-bot/internal/whatsapp"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const projectURL = "https://github.com/garyellow/whatsapp-course-bot"

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	webhookHandler *webhook.Handler
	router         *gin.Engine
	server         *http.Server
	ready          atomic.Bool // true while serving, false before start and during shutdown
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(_ context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "whatsapp-course-bot").
		WithField("version", buildinfo.VersionOrDev())
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Package-level slog.*Context() calls go through ContextHandler too.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	if cfg.SentryEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error reporting enabled")
	}

	gin.SetMode(gin.ReleaseMode)
	app := newApplication(cfg, log)

	log.Info("Initialization complete")
	return app, nil
}

// newApplication wires every component from cfg and log.
func newApplication(cfg *config.Config, log *logger.Logger) *Application {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	client := whatsapp.NewClient(cfg.WhatsApp, log, m)
	dispatcher := bot.NewDispatcher(bot.DispatcherConfig{
		Sender:  whatsapp.NewSender(client),
		Logger:  log,
		Metrics: m,
	})
	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		VerifyToken: cfg.WhatsApp.VerifyToken,
		Dispatcher:  dispatcher,
		Logger:      log,
		Metrics:     m,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	app := &Application{
		cfg:            cfg,
		logger:         log,
		metrics:        m,
		registry:       registry,
		webhookHandler: webhookHandler,
		router:         router,
	}

	router.GET("/", app.redirectToProject)
	router.GET("/livez", app.livenessCheck)
	router.HEAD("/livez", app.livenessCheck)
	router.GET("/readyz", app.readinessCheck)
	router.HEAD("/readyz", app.readinessCheck)
	router.GET("/webhook", webhookHandler.Verify)
	router.POST("/webhook", webhookHandler.Handle)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsAuthEnabled, cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.WebhookHTTPRead,
		ReadTimeout:       config.WebhookHTTPRead,
		WriteTimeout:      config.WebhookHTTPWrite,
		IdleTimeout:       config.WebhookHTTPIdle,
	}
	return app
}

// Handler returns the HTTP handler serving every route.
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
// A listen failure is returned immediately.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.server.Addr, err)
	}
	return a.serve(ctx, ln)
}

func (a *Application) serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.WithField("addr", ln.Addr().String()).Info("Starting HTTP server")
		a.ready.Store(true)
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Received shutdown signal")
		return a.shutdown()
	})

	return g.Wait()
}

// shutdown stops accepting requests, waits for in-flight webhooks (each of
// which may still be sending its reply), then flushes error and log sinks.
func (a *Application) shutdown() error {
	a.ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	a.logger.Info("Stopping HTTP server...")
	err := a.server.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	if sentry.IsEnabled() && !sentry.Flush(config.SentryFlushTimeout) {
		a.logger.Warn("Sentry flush timed out")
	}

	a.logger.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Shutdown complete")

	if logErr := a.logger.Shutdown(shutdownCtx); logErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "logger shutdown: %v\n", logErr)
	}
	return err
}

func (a *Application) redirectToProject(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, projectURL)
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"sentry":       sentry.IsEnabled(),
		"betterstack":  a.cfg.BetterStackToken != "",
		"metrics_auth": a.cfg.MetricsAuthEnabled,
	}
}

// readinessCheck reports whether the server accepts webhooks. There are no
// downstream dependencies to probe; the Cloud API is only reached on demand.
func (a *Application) readinessCheck(c *gin.Context) {
	if !a.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "server not serving",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ready",
		"version":       buildinfo.VersionOrDev(),
		"graph_version": a.cfg.WhatsApp.GraphAPIVersion,
		"features":      a.getFeatures(),
	})
}
