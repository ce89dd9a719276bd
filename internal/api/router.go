// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/event-timekeeper/backend/internal/api/handlers"
	"github.com/event-timekeeper/backend/internal/api/middleware"
	"github.com/event-timekeeper/backend/internal/catalog"
	"github.com/event-timekeeper/backend/internal/config"
	"github.com/event-timekeeper/backend/internal/countdown"
	"github.com/event-timekeeper/backend/internal/reconcile"
	"github.com/event-timekeeper/backend/internal/storage"
	"github.com/event-timekeeper/backend/internal/websocket"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(
	db *storage.DB,
	hub *websocket.Hub,
	staticDir string,
	settingsRepo *storage.SettingsRepository,
	engine *reconcile.Engine,
	presenter *countdown.Presenter,
	events *catalog.Service,
	broadcaster *websocket.EventBroadcaster,
	cfg *config.Config,
) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health endpoint
	api.HandleFunc("/health", handlers.HealthCheck(db, events)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	// Display endpoints
	api.HandleFunc("/display", handlers.GetDisplay(presenter)).Methods("GET")
	api.HandleFunc("/display/title", handlers.GetTitle(settingsRepo)).Methods("GET")
	api.HandleFunc("/display/title", handlers.UpdateTitle(settingsRepo, broadcaster)).Methods("PUT")

	// Settings endpoints
	api.HandleFunc("/settings", handlers.GetSettings(settingsRepo, cfg)).Methods("GET")
	api.HandleFunc("/settings", handlers.UpdateSettings(engine)).Methods("PUT")
	api.HandleFunc("/settings", handlers.ResetSettings(engine)).Methods("DELETE")

	// Event catalog endpoints
	api.HandleFunc("/events", handlers.ListEvents(events)).Methods("GET")
	api.HandleFunc("/events/reload", handlers.ReloadEvents(events, broadcaster)).Methods("POST")
	api.HandleFunc("/events/apply", handlers.ApplyEvent(engine, events)).Methods("POST")

	// Reconciliation endpoint
	api.HandleFunc("/reconcile", handlers.Reconcile(engine)).Methods("POST")

	// Preset endpoints
	api.HandleFunc("/presets", handlers.ListPresets(cfg)).Methods("GET")

	// Serve static frontend files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}
