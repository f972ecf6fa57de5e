package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/riverlabs/aquacheck/internal"
	"github.com/riverlabs/aquacheck/internal/handler"
	"github.com/riverlabs/aquacheck/internal/jobs"
	"github.com/riverlabs/aquacheck/internal/metrics"
	"github.com/riverlabs/aquacheck/internal/middleware"
	"github.com/riverlabs/aquacheck/internal/potability"
	"github.com/riverlabs/aquacheck/internal/recognition"
	recognitionmock "github.com/riverlabs/aquacheck/internal/recognition/mock"
	"github.com/riverlabs/aquacheck/internal/recognition/tesseract"
	"github.com/riverlabs/aquacheck/internal/report"
	"github.com/riverlabs/aquacheck/internal/repository"
	"github.com/riverlabs/aquacheck/internal/service"
	"github.com/riverlabs/aquacheck/internal/storage"
	"github.com/riverlabs/aquacheck/internal/worker"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository
	queries := repository.New(db)

	// Initialize storage
	store, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}
	logger.Info("Storage ready", "provider", cfg.StorageProvider)

	// Initialize text recognizer
	recognizer := newRecognizer(cfg, logger)
	logger.Info("Recognizer ready", "provider", cfg.RecognizerProvider)

	// Initialize potability scorer (optional)
	var scorer potability.Scorer
	if cfg.PotabilityURL != "" {
		scorer = potability.NewClient(cfg.PotabilityURL, logger)
		logger.Info("Potability scorer configured", "url", cfg.PotabilityURL)
	}

	// Initialize services
	thumbnails := service.NewImagingProcessor()
	scanService := service.NewScanService(queries, store, thumbnails, logger)
	waterLogService := service.NewWaterLogService(queries, logger)
	healthInfoService := service.NewHealthInfoService(queries, logger)

	// Initialize report generator
	reports, err := report.NewHTMLGenerator(logger)
	if err != nil {
		return fmt.Errorf("report generator initialization failed: %w", err)
	}

	// Start background worker
	var jobWorker *worker.Worker
	if cfg.WorkerEnabled {
		workerCfg := worker.DefaultConfig()
		workerCfg.Concurrency = cfg.WorkerConcurrency
		workerCfg.PollInterval = cfg.WorkerPollInterval
		workerCfg.JobTimeout = cfg.WorkerJobTimeout

		jobWorker, err = worker.New(db, queries, workerCfg, logger)
		if err != nil {
			return fmt.Errorf("worker initialization failed: %w", err)
		}
		jobWorker.Register(jobs.NewAnalyzeScanHandler(queries, recognizer, store, logger))
		jobWorker.Start(ctx)
		logger.Info("Worker started", "concurrency", workerCfg.Concurrency)
	}

	// Initialize handlers
	analysisHandler := handler.NewAnalysisHandler(scanService, scorer, logger)
	scanHandler := handler.NewScanHandler(scanService, reports, logger)
	waterLogHandler := handler.NewWaterLogHandler(waterLogService, logger)
	healthInfoHandler := handler.NewHealthInfoHandler(healthInfoService, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint (optionally basic-auth protected)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	mux.Handle("GET /metrics", metricsAuth.Handler(metrics.Handler()))

	// Locally stored files (label photos and thumbnails) in development
	if cfg.StorageProvider == storage.ProviderLocal {
		filesFS := http.FileServer(http.Dir(cfg.LocalStoragePath))
		mux.Handle("GET /files/", http.StripPrefix("/files/", filesFS))
	}

	// API routes
	analysisHandler.RegisterRoutes(mux)
	scanHandler.RegisterRoutes(mux)
	waterLogHandler.RegisterRoutes(mux)
	healthInfoHandler.RegisterRoutes(mux)

	// Unmatched paths get a JSON 404 instead of the mux's plain-text one.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	})

	// Middleware stack: security headers and logging wrap everything,
	// metrics and rate limiting see each request after logging.
	isSecure := cfg.Env != "development"
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, logger)
	rateLimitMw := middleware.NewRateLimitMiddleware(rateLimiter, logger)

	root := middleware.Stack(
		securityMw.Handler,
		loggingMw.Handler,
		metrics.Middleware,
		rateLimitMw.Limit,
	)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if jobWorker != nil {
		jobWorker.Stop()
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage selects the storage backend from configuration.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case storage.ProviderR2:
		return storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		}, logger)
	default:
		return storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
	}
}

// newRecognizer selects the text recognition provider from configuration.
func newRecognizer(cfg *internal.Config, logger *slog.Logger) recognition.Provider {
	if cfg.RecognizerProvider == "tesseract" {
		var opts []tesseract.Option
		if cfg.TessdataPrefix != "" {
			opts = append(opts, tesseract.WithTessdataPath(cfg.TessdataPrefix))
		}
		return tesseract.New(logger, opts...)
	}
	return recognitionmock.New(logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
