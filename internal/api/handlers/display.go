package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/event-timekeeper/backend/internal/api/middleware"
	"github.com/event-timekeeper/backend/internal/countdown"
	"github.com/event-timekeeper/backend/internal/storage"
	"github.com/event-timekeeper/backend/internal/websocket"
)

// GetDisplay returns a handler that builds the current display snapshot.
// The same snapshot is pushed over the WebSocket every second; this endpoint
// lets a freshly loaded page render before its socket is up.
func GetDisplay(presenter *countdown.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := presenter.Snapshot(r.Context(), time.Now())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

// TitleResponse carries the display header text.
type TitleResponse struct {
	Title string `json:"title"`
}

// GetTitle returns a handler that reads the display header text.
func GetTitle(repo *storage.SettingsRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title, err := repo.Title(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to read title")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TitleResponse{Title: title})
	}
}

// UpdateTitle returns a handler that replaces the display header text.
func UpdateTitle(repo *storage.SettingsRepository, broadcaster *websocket.EventBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TitleResponse
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		if err := repo.SaveTitle(r.Context(), req.Title); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save title")
			return
		}

		broadcaster.BroadcastTitleChanged(req.Title)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TitleResponse{Title: req.Title})
	}
}
