// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/event-timekeeper/backend/internal/catalog"
	"github.com/event-timekeeper/backend/internal/storage"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status          string `json:"status"`
	DBConnected     bool   `json:"db_connected"`
	CatalogRows     int    `json:"catalog_rows"`
	CatalogLoadedAt string `json:"catalog_loaded_at,omitempty"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB, events *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		response := HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
			CatalogRows: len(events.Records()),
		}
		if loadedAt := events.LoadedAt(); !loadedAt.IsZero() {
			response.CatalogLoadedAt = loadedAt.Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}
