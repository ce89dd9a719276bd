package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/event-timekeeper/backend/internal/api/middleware"
	"github.com/event-timekeeper/backend/internal/catalog"
	"github.com/event-timekeeper/backend/internal/reconcile"
	"github.com/event-timekeeper/backend/internal/storage/models"
	"github.com/event-timekeeper/backend/internal/websocket"
)

// EventListResponse is the venue picker payload.
type EventListResponse struct {
	Events   []models.EventRecord `json:"events"`
	LoadedAt string               `json:"loaded_at,omitempty"`
}

// ListEvents returns a handler that lists the cached catalog rows.
func ListEvents(events *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if events.LoadedAt().IsZero() {
			if _, err := events.Reload(r.Context()); err != nil {
				log.Printf("Initial catalog load failed: %v", err)
			}
		}

		response := EventListResponse{Events: events.Records()}
		if loadedAt := events.LoadedAt(); !loadedAt.IsZero() {
			response.LoadedAt = loadedAt.Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// ReloadEvents returns a handler that refreshes the catalog cache on demand.
func ReloadEvents(events *catalog.Service, broadcaster *websocket.EventBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := events.Reload(r.Context())
		if err != nil {
			log.Printf("Catalog reload failed: %v", err)
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "イベント情報の取得に失敗しました")
			return
		}

		broadcaster.BroadcastCatalogReloaded(rows)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"rows": rows})
	}
}

// ApplyEventRequest selects a catalog row to commit as the day's settings.
type ApplyEventRequest struct {
	ID      string          `json:"id"`
	Answers map[string]bool `json:"answers"`
}

// ApplyEvent returns a handler that commits a picked catalog row. A row in
// the past needs a confirmed answer; without one the response carries the
// prompt and the client retries with the user's answer attached.
func ApplyEvent(engine *reconcile.Engine, events *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ApplyEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		rec := events.Find(req.ID)
		if rec == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
			return
		}
		if !rec.Complete {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "このイベントは時間情報が不完全です")
			return
		}

		result, err := engine.ApplyRecord(r.Context(), reconcile.Answers(req.Answers), rec)
		if err != nil {
			log.Printf("Applying event %s failed: %v", req.ID, err)
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to apply event")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
