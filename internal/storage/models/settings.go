// Package models contains the domain models for the application.
package models

import (
	"time"

	"github.com/event-timekeeper/backend/internal/timeutil"
)

// TimeSettings holds the three timestamps the countdown display runs on.
// OpenTime is optional; StartTime and EndTime are required and EndTime is
// always after StartTime.
type TimeSettings struct {
	OpenTime  *time.Time `json:"openTime"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
}

// Valid reports whether both required timestamps are present.
func (s *TimeSettings) Valid() bool {
	return !s.StartTime.IsZero() && !s.EndTime.IsZero()
}

// BuildTimeSettings anchors clock-times to a calendar date. When the end
// clock-time is not after the start clock-time on the same day, the end
// timestamp is advanced by one day before being accepted.
func BuildTimeSettings(anchor time.Time, open *timeutil.Clock, start, end timeutil.Clock) TimeSettings {
	settings := TimeSettings{
		StartTime: start.At(anchor),
		EndTime:   end.At(anchor),
	}
	if open != nil {
		openTime := open.At(anchor)
		settings.OpenTime = &openTime
	}
	if !settings.EndTime.After(settings.StartTime) {
		settings.EndTime = settings.EndTime.AddDate(0, 0, 1)
	}
	return settings
}

// Provenance source constants
const (
	SourceAuto   = "auto"
	SourceManual = "manual"
)

// SettingProvenance records whether the current settings came from a user
// action or catalog auto-selection, plus the date the manual action was
// taken ("YYYY-MM-DD").
type SettingProvenance struct {
	Source  string `json:"source"`
	SetDate string `json:"set_date"`
}

// IsManual reports whether the settings were committed by the user.
func (p *SettingProvenance) IsManual() bool {
	return p != nil && p.Source == SourceManual
}
