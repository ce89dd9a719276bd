package models

import (
	"fmt"
	"time"

	"github.com/event-timekeeper/backend/internal/timeutil"
)

// DefaultScheduleGroup is the group label for catalog rows without one.
const DefaultScheduleGroup = "その他"

// EventRecord is one candidate event from the catalog: a calendar date, a
// venue, and up to three clock-times ("HH:MM"). Records missing any of the
// three clock-times are kept for listing but excluded from auto-selection.
type EventRecord struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Region        string    `json:"region"`
	Venue         string    `json:"venue"`
	OpenTime      string    `json:"open_time,omitempty"`
	StartTime     string    `json:"start_time,omitempty"`
	EndTime       string    `json:"end_time,omitempty"`
	ScheduleGroup string    `json:"schedule_group"`
	Complete      bool      `json:"complete"`
}

// DisplayTitle renders the event as 「会場 (MM/DD 地域)」 for the header.
func (e *EventRecord) DisplayTitle() string {
	return fmt.Sprintf("%s (%s %s)", e.Venue, timeutil.FormatMonthDay(e.Date), e.Region)
}

// Window derives TimeSettings from the record's clock-times anchored to its
// date, applying the start/end day-rollover rule. The record must be
// complete.
func (e *EventRecord) Window() (TimeSettings, error) {
	if !e.Complete {
		return TimeSettings{}, fmt.Errorf("event %s is missing clock times", e.ID)
	}

	open, err := timeutil.ParseClock(e.OpenTime)
	if err != nil {
		return TimeSettings{}, fmt.Errorf("parsing open time: %w", err)
	}
	start, err := timeutil.ParseClock(e.StartTime)
	if err != nil {
		return TimeSettings{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := timeutil.ParseClock(e.EndTime)
	if err != nil {
		return TimeSettings{}, fmt.Errorf("parsing end time: %w", err)
	}

	return BuildTimeSettings(e.Date, &open, start, end), nil
}
