// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/analytics"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/classifier"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/config"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/escalation"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/eventlog"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/fallback"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/handler"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/handoff"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/llm"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/middleware"
	natsclient "github.com/SpaceC00kies/pranara-prototype-sub001/internal/nats"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/service"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/logger"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "pranara-api", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS
	natsClient, err := natsclient.Connect(ctx, natsclient.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}, log)
	if err != nil {
		log.Error("failed to connect to NATS", zap.Error(err))
		os.Exit(1)
	}
	defer natsClient.Close()

	// Event log on JetStream
	store, err := eventlog.NewNATSStore(ctx, natsClient)
	if err != nil {
		log.Error("failed to set up event log", zap.Error(err))
		os.Exit(1)
	}

	// Primary generator, if configured
	var generator llm.Client
	if cfg.AnthropicAPIKey != "" {
		generator, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warn("failed to create Anthropic client, serving fallback responses only", zap.Error(err))
		}
	} else if cfg.OpenAIAPIKey != "" {
		generator, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create OpenAI client, serving fallback responses only", zap.Error(err))
		}
	} else {
		log.Warn("no generator API key configured, serving fallback responses only")
	}

	// Initialize services
	chatSvc := service.NewChatService(
		classifier.New(),
		escalation.New(),
		fallback.NewCatalog(),
		generator,
		store,
		handoff.NewLogChannel(log),
		cfg.GeneratorTimeout,
		log,
	)
	analyticsSvc := service.NewAnalyticsService(
		store,
		analytics.NewEngine(cfg.Location()),
		cfg.AnalyticsDefaultDays,
		cfg.AnalyticsMaxDays,
		log,
	)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsClient)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Post("/messages", chatHandler.Send)
			r.Post("/handoff", chatHandler.Handoff)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireScope(middleware.ScopeAdmin))
			r.Get("/analytics", analyticsHandler.Report)
			r.Get("/analytics/export", analyticsHandler.Export)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
