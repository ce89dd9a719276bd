package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/event-timekeeper/backend/internal/config"
	"github.com/event-timekeeper/backend/internal/timeutil"
)

// Preset is one quick-set button with its derived end time.
type Preset struct {
	Label string `json:"label"`
	Open  string `json:"open,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ListPresets returns a handler that lists the configured quick-set presets.
// Presets with an unparseable start time are dropped rather than failing the
// whole list.
func ListPresets(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presets := make([]Preset, 0, len(cfg.Presets))

		for _, p := range cfg.Presets {
			start, err := timeutil.ParseClock(p.Start)
			if err != nil {
				log.Printf("Skipping preset %q: bad start time %q", p.Label, p.Start)
				continue
			}

			preset := Preset{
				Label: p.Label,
				Start: start.String(),
				End:   timeutil.ComputeEndFromStart(start, cfg.Display.DurationMin).String(),
			}
			if p.Open != "" {
				if open, err := timeutil.ParseClock(p.Open); err == nil {
					preset.Open = open.String()
				}
			}

			presets = append(presets, preset)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(presets)
	}
}
