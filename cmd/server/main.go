// Package main is the entry point for the event countdown display server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/event-timekeeper/backend/internal/api"
	"github.com/event-timekeeper/backend/internal/catalog"
	"github.com/event-timekeeper/backend/internal/config"
	"github.com/event-timekeeper/backend/internal/countdown"
	"github.com/event-timekeeper/backend/internal/reconcile"
	"github.com/event-timekeeper/backend/internal/storage"
	"github.com/event-timekeeper/backend/internal/storage/models"
	"github.com/event-timekeeper/backend/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

// notifier fans engine state changes out to the WebSocket clients and keeps
// the tick loop in step with the settings.
type notifier struct {
	broadcaster *websocket.EventBroadcaster
	ticker      *countdown.Ticker
}

func (n *notifier) SettingsApplied(settings models.TimeSettings, source string) {
	n.broadcaster.BroadcastSettingsChanged(settings, source)
	n.ticker.Restart()
}

func (n *notifier) SettingsCleared() {
	n.broadcaster.BroadcastSettingsCleared()
	n.ticker.Restart()
}

func (n *notifier) TitleChanged(title string) {
	n.broadcaster.BroadcastTitleChanged(title)
}

func main() {
	// Parse command-line flags
	addr := flag.String("addr", "", "HTTP server address (overrides config)")
	dataDir := flag.String("data", "", "Data directory for SQLite database (overrides config)")
	staticDir := flag.String("static", "", "Directory for static frontend files (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Listen = *addr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *staticDir != "" {
		cfg.StaticDir = *staticDir
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Listen); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting event countdown display server (version: %s)...", version)

	// Initialize database
	db, err := storage.NewDB(cfg.DataDir + "/event-timekeeper.db")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	broadcaster := websocket.NewEventBroadcaster(hub)

	// Initialize repositories
	settingsRepo := storage.NewSettingsRepository(db)

	// Initialize event catalog
	source := catalog.NewSource(cfg.Catalog.Source)
	events := catalog.NewService(source)
	if rows, err := events.Reload(context.Background()); err != nil {
		log.Printf("Warning: Initial catalog load failed: %v", err)
	} else {
		log.Printf("Catalog loaded: %d event(s) from %s", rows, source.Ref())
	}

	// Initialize countdown presenter and tick loop
	thresholds := countdown.Thresholds{
		EndWarning:    time.Duration(cfg.Display.EndWarningMin) * time.Minute,
		EndDanger:     time.Duration(cfg.Display.EndDangerMin) * time.Minute,
		TargetWarning: time.Duration(cfg.Display.WarningSec) * time.Second,
		TargetDanger:  time.Duration(cfg.Display.DangerSec) * time.Second,
	}
	presenter := countdown.NewPresenter(settingsRepo, thresholds)
	ticker := countdown.NewTicker(presenter, broadcaster)
	ticker.Restart()

	// Initialize reconciliation engine
	engine := reconcile.NewEngine(settingsRepo, events, &notifier{
		broadcaster: broadcaster,
		ticker:      ticker,
	}, nil)

	// Startup reconciliation pass. Prompts cannot be answered here, so an
	// answer-required outcome is left for the first display load to resolve.
	result, err := engine.Reconcile(context.Background(), reconcile.Answers(nil))
	if err != nil {
		log.Printf("Warning: Startup reconciliation failed: %v", err)
	} else {
		log.Printf("Startup reconciliation: %s", result.Outcome)
	}

	// Start catalog refresh scheduler
	scheduler := catalog.NewScheduler(events, hub, cfg.Catalog.RefreshCron)
	if err := scheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start catalog scheduler: %v", err)
	}

	// Initialize HTTP router
	router := api.NewRouter(db, hub, cfg.StaticDir, settingsRepo, engine, presenter, events, broadcaster, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", cfg.Listen)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()
	ticker.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
