// Package main is the entry point for the analytics API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/capitalize-ai/message-analytics/internal/config"
	"github.com/capitalize-ai/message-analytics/internal/dataset"
	"github.com/capitalize-ai/message-analytics/internal/handler"
	"github.com/capitalize-ai/message-analytics/internal/llm"
	"github.com/capitalize-ai/message-analytics/internal/middleware"
	natsclient "github.com/capitalize-ai/message-analytics/internal/nats"
	"github.com/capitalize-ai/message-analytics/internal/service"
	"github.com/capitalize-ai/message-analytics/pkg/logger"
	"github.com/capitalize-ai/message-analytics/pkg/tracing"
)

const serviceName = "message-analytics"

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	log.Info("starting API server")

	ctx := context.Background()

	// Initialize tracing if enabled
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, serviceName, cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(context.Background(), tp)
		}
	}

	// Load dataset
	store, err := dataset.Open(ctx, cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	dashboardSvc := service.NewDashboardService(store, cfg.DefaultPageSize, log)

	// Connect to NATS when configured
	var publisher service.SnapshotPublisher
	var natsReady handler.ReadinessChecker
	if cfg.NATSEnabled() {
		natsClient, err := natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			return err
		}
		defer natsClient.Close()

		streamManager := natsclient.NewStreamManager(natsClient)
		if err := streamManager.EnsureStream(ctx); err != nil {
			return fmt.Errorf("failed to ensure stream: %w", err)
		}
		publisher = streamManager
		natsReady = streamManager
	} else {
		log.Info("NATS_URL not set, snapshot publishing disabled")
	}

	llmClient := newLLMClient(cfg, log)

	// Initialize services
	insightSvc := service.NewInsightService(dashboardSvc, llmClient, cfg.LLMModel, log)
	snapshotSvc := service.NewSnapshotService(dashboardSvc, publisher, log)

	// Publish the startup snapshot so downstream consumers have a baseline.
	if snapshotSvc.Enabled() {
		if _, err := snapshotSvc.Publish(ctx); err != nil {
			log.Warn("failed to publish startup snapshot", zap.Error(err))
		}
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(dashboardSvc, natsReady)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, log)
	insightHandler := handler.NewInsightHandler(insightSvc, log)
	snapshotHandler := handler.NewSnapshotHandler(snapshotSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Get("/dashboard", dashboardHandler.Dashboard)
		r.Get("/summary", dashboardHandler.Summary)
		r.Get("/sentiment", dashboardHandler.Sentiment)
		r.Get("/lengths", dashboardHandler.Lengths)
		r.Get("/messages", dashboardHandler.Messages)

		r.Get("/insights", insightHandler.Get)
		r.Get("/insights/stream", insightHandler.Stream)

		r.Post("/snapshots", snapshotHandler.Publish)
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
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
	return nil
}

// newLLMClient returns the configured provider, or nil when insights are disabled.
func newLLMClient(cfg *config.Config, log *logger.Logger) llm.Client {
	provider := llm.Provider(cfg.DefaultLLM)
	apiKey := cfg.AnthropicAPIKey
	if provider == llm.ProviderOpenAI {
		apiKey = cfg.OpenAIAPIKey
	}

	// Fall back to whichever provider has a key.
	if apiKey == "" {
		switch {
		case cfg.AnthropicAPIKey != "":
			provider, apiKey = llm.ProviderAnthropic, cfg.AnthropicAPIKey
		case cfg.OpenAIAPIKey != "":
			provider, apiKey = llm.ProviderOpenAI, cfg.OpenAIAPIKey
		default:
			log.Info("no LLM API key configured, insights disabled")
			return nil
		}
	}

	client, err := llm.NewClient(provider, apiKey)
	if err != nil {
		log.Warn("failed to create LLM client, insights disabled", zap.Error(err))
		return nil
	}

	log.Info("insights enabled", zap.String("provider", client.Name()))
	return client
}
