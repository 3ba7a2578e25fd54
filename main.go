package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/informagico/fantavibe/internal/config"
	"github.com/informagico/fantavibe/internal/database"
	"github.com/informagico/fantavibe/internal/dataset"
	server "github.com/informagico/fantavibe/internal/http"
	"github.com/informagico/fantavibe/internal/loader"
	"github.com/informagico/fantavibe/internal/metrics"
	"github.com/informagico/fantavibe/internal/roster"
	"github.com/informagico/fantavibe/internal/spreadsheet"
	"github.com/informagico/fantavibe/internal/storage"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := storage.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	normalizer := catalog.NewNormalizer()
	client := dataset.NewClient(cfg.Dataset.FileURL)
	cache := dataset.NewCache(store)
	syncer := dataset.NewSyncer(client, cache, metricsSvc, cfg.Dataset.BundledPath, cfg.Dataset.CacheTTL)
	decoder := spreadsheet.NewXLSXDecoder()
	ldr := loader.New(syncer, decoder, catalog.NewBuilder(normalizer), metricsSvc)
	tracker := roster.New(context.Background(), store, cfg.DefaultBudget)

	// The server can come up with an empty catalog; the status endpoint
	// reports the failure and a later /refresh can recover.
	if err := ldr.Load(context.Background(), false); err != nil {
		log.Error("Initial catalog load failed", "error", err)
	}

	s := server.NewServer(
		ldr,
		tracker,
		catalog.NewSearcher(normalizer),
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
