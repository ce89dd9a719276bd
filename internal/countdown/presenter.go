// Package countdown turns the configured timestamps and the wall clock into
// the per-second display snapshot the signage client renders.
package countdown

import (
	"context"
	"log"
	"time"

	"github.com/event-timekeeper/backend/internal/storage/models"
	"github.com/event-timekeeper/backend/internal/timeutil"
)

// Warning levels for a countdown target.
const (
	LevelNormal  = "normal"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Target keys
const (
	TargetOpen  = "open"
	TargetStart = "start"
	TargetEnd   = "end"
)

// Thresholds controls when countdown targets change warning level.
type Thresholds struct {
	// End target: warning, then danger, as the finale approaches.
	EndWarning time.Duration
	EndDanger  time.Duration

	// Open and start targets: short final-countdown warnings.
	TargetWarning time.Duration
	TargetDanger  time.Duration
}

// DefaultThresholds returns the standard display thresholds: 5 and 2
// minutes for the end target, 60 and 10 seconds for open/start.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EndWarning:    5 * time.Minute,
		EndDanger:     2 * time.Minute,
		TargetWarning: 60 * time.Second,
		TargetDanger:  10 * time.Second,
	}
}

// Target is one countdown row in the snapshot.
type Target struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	At        string `json:"at"`        // "HH:MM"
	Remaining string `json:"remaining"` // "HH:MM:SS", clamped to zero once passed
	Elapsed   bool   `json:"elapsed"`
	Level     string `json:"level"`
	Active    bool   `json:"active"`
}

// Snapshot is the full display state for one second.
type Snapshot struct {
	CurrentTime string   `json:"current_time"` // "HH:MM:SS"
	HasSettings bool     `json:"has_settings"`
	Manual      bool     `json:"manual"`
	Title       string   `json:"title,omitempty"`
	Status      string   `json:"status"`
	Targets     []Target `json:"targets"`
}

// SettingsSource supplies the current settings state to the presenter.
type SettingsSource interface {
	Settings(ctx context.Context) (*models.TimeSettings, error)
	Provenance(ctx context.Context) (*models.SettingProvenance, error)
	Title(ctx context.Context) (string, error)
}

// Presenter builds display snapshots. It only ever reads settings; all
// mutation happens in the reconciliation engine and commit paths.
type Presenter struct {
	source     SettingsSource
	thresholds Thresholds
}

// NewPresenter creates a presenter over the given settings source.
func NewPresenter(source SettingsSource, thresholds Thresholds) *Presenter {
	return &Presenter{source: source, thresholds: thresholds}
}

// Snapshot builds the display state for the given instant.
func (p *Presenter) Snapshot(ctx context.Context, now time.Time) Snapshot {
	snapshot := Snapshot{
		CurrentTime: now.Format("15:04:05"),
	}

	if title, err := p.source.Title(ctx); err == nil {
		snapshot.Title = title
	}

	settings, err := p.source.Settings(ctx)
	if err != nil {
		log.Printf("Failed to read settings for snapshot: %v", err)
	}
	if settings == nil {
		snapshot.Status = "時間を設定してください"
		return snapshot
	}

	prov, err := p.source.Provenance(ctx)
	if err != nil {
		log.Printf("Failed to read provenance for snapshot: %v", err)
	}

	snapshot.HasSettings = true
	snapshot.Manual = prov.IsManual()
	snapshot.Targets = p.buildTargets(now, settings)
	snapshot.Status = statusMessage(now, settings, snapshot.Manual)

	return snapshot
}

func (p *Presenter) buildTargets(now time.Time, s *models.TimeSettings) []Target {
	var targets []Target

	active := activeTarget(now, s)

	if s.OpenTime != nil {
		targets = append(targets, p.buildTarget(TargetOpen, "開場", *s.OpenTime, now, active))
	}
	targets = append(targets,
		p.buildTarget(TargetStart, "開演", s.StartTime, now, active),
		p.buildTarget(TargetEnd, "終演", s.EndTime, now, active),
	)

	return targets
}

func (p *Presenter) buildTarget(key, label string, at, now time.Time, active string) Target {
	t := Target{
		Key:    key,
		Label:  label,
		At:     at.Format("15:04"),
		Level:  LevelNormal,
		Active: key == active,
	}

	remaining := at.Sub(now)
	if remaining < 0 {
		t.Elapsed = true
		t.Remaining = "00:00:00"
		if key == TargetEnd {
			// Past the finale the end row stays red.
			t.Level = LevelDanger
		}
		return t
	}

	t.Remaining = timeutil.FormatHMS(remaining)

	warning, danger := p.thresholds.TargetWarning, p.thresholds.TargetDanger
	if key == TargetEnd {
		warning, danger = p.thresholds.EndWarning, p.thresholds.EndDanger
	}
	switch {
	case remaining <= danger:
		t.Level = LevelDanger
	case remaining <= warning:
		t.Level = LevelWarning
	}

	return t
}

// activeTarget picks the row the display highlights: doors until they open,
// curtain until it rises, then the finale from curtain onwards. With no open
// time, nothing is highlighted before the start.
func activeTarget(now time.Time, s *models.TimeSettings) string {
	if !now.Before(s.StartTime) {
		return TargetEnd
	}
	if s.OpenTime != nil {
		if now.Before(*s.OpenTime) {
			return TargetOpen
		}
		return TargetStart
	}
	return ""
}

func statusMessage(now time.Time, s *models.TimeSettings, manual bool) string {
	var msg string
	switch {
	case !now.Before(s.EndTime):
		if now.Before(s.StartTime) {
			msg = "設定した終演時間は開演前に過ぎています"
		} else {
			msg = "設定した終演時間は過ぎています"
		}
	case !now.Before(s.StartTime):
		msg = "イベント進行中"
	case s.OpenTime != nil && !now.Before(*s.OpenTime):
		msg = "開場中"
	case s.OpenTime != nil:
		msg = "開場まであと" + timeutil.FormatHumanDuration(now, *s.OpenTime)
	default:
		msg = "開演まであと" + timeutil.FormatHumanDuration(now, s.StartTime)
	}

	if manual {
		msg += "（手動設定済み）"
	}

	return msg
}
