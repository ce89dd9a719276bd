package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/event-timekeeper/backend/internal/api/middleware"
	"github.com/event-timekeeper/backend/internal/reconcile"
)

// ReconcileRequest carries the user's answers to any confirmation prompts
// raised by an earlier pass. A first call sends no answers; when the result
// is answer_required the client asks the user and retries with the prompt
// key answered.
type ReconcileRequest struct {
	Answers map[string]bool `json:"answers"`
}

// Reconcile returns a handler that runs the settings reconciliation pass the
// display triggers on every page load.
func Reconcile(engine *reconcile.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := ReconcileRequest{}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
				return
			}
		}

		result, err := engine.Reconcile(r.Context(), reconcile.Answers(req.Answers))
		if err != nil {
			log.Printf("Reconciliation failed: %v", err)
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Reconciliation failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
