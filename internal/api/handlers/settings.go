package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/event-timekeeper/backend/internal/api/middleware"
	"github.com/event-timekeeper/backend/internal/config"
	"github.com/event-timekeeper/backend/internal/reconcile"
	"github.com/event-timekeeper/backend/internal/storage"
	"github.com/event-timekeeper/backend/internal/storage/models"
	"github.com/event-timekeeper/backend/internal/timeutil"
)

// SuggestedTimes is the pre-filled form default offered when nothing is
// configured yet: a start a quarter hour out, plus the default duration.
type SuggestedTimes struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SettingsResponse is the full settings state for the settings form.
type SettingsResponse struct {
	Settings   *models.TimeSettings      `json:"settings"`
	Provenance *models.SettingProvenance `json:"provenance,omitempty"`
	Suggested  *SuggestedTimes           `json:"suggested,omitempty"`
}

// GetSettings returns a handler that reads the current time settings.
func GetSettings(repo *storage.SettingsRepository, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		settings, err := repo.Settings(ctx)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to read settings")
			return
		}

		response := SettingsResponse{Settings: settings}

		if settings != nil {
			prov, err := repo.Provenance(ctx)
			if err != nil {
				log.Printf("Failed to read provenance: %v", err)
			}
			response.Provenance = prov
		} else {
			// Pre-fill a quarter hour out with a one-hour window.
			start := time.Now().Add(15 * time.Minute)
			end := time.Now().Add(75 * time.Minute)
			response.Suggested = &SuggestedTimes{
				Start: timeutil.Clock{Hour: start.Hour(), Minute: start.Minute()}.String(),
				End:   timeutil.Clock{Hour: end.Hour(), Minute: end.Minute()}.String(),
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// UpdateSettingsRequest carries a manual settings commit.
type UpdateSettingsRequest struct {
	OpenTime  string `json:"open_time"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	// AnchorDate pins the settings to a specific date ("2006-01-02"),
	// e.g. the date of a catalog row the form was pre-filled from.
	// Empty anchors to today.
	AnchorDate string `json:"anchor_date"`
}

// UpdateSettings returns a handler that commits manual time settings.
func UpdateSettings(engine *reconcile.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		if req.StartTime == "" || req.EndTime == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "開演時間と終演時間は必須です")
			return
		}

		commit := reconcile.CommitRequest{}

		if req.OpenTime != "" {
			open, err := timeutil.ParseClock(req.OpenTime)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "開場時間の形式が不正です")
				return
			}
			commit.Open = &open
		}

		start, err := timeutil.ParseClock(req.StartTime)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "開演時間の形式が不正です")
			return
		}
		commit.Start = start

		end, err := timeutil.ParseClock(req.EndTime)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "終演時間の形式が不正です")
			return
		}
		commit.End = end

		if req.AnchorDate != "" {
			anchor, err := timeutil.ParseDate(req.AnchorDate)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "日付の形式が不正です")
				return
			}
			commit.Anchor = &anchor
		}

		result, err := engine.CommitManual(r.Context(), commit)
		if err != nil {
			log.Printf("Manual commit failed: %v", err)
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save settings")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// ResetSettings returns a handler that clears settings and provenance.
func ResetSettings(engine *reconcile.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Reset(r.Context()); err != nil {
			log.Printf("Reset failed: %v", err)
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to reset settings")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
	}
}
