package models

import (
	"testing"
	"time"

	"github.com/event-timekeeper/backend/internal/timeutil"
)

func TestBuildTimeSettings(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	t.Run("normal window", func(t *testing.T) {
		open := timeutil.Clock{Hour: 17, Minute: 30}
		s := BuildTimeSettings(anchor, &open, timeutil.Clock{Hour: 18}, timeutil.Clock{Hour: 20})

		if s.OpenTime == nil || s.OpenTime.Hour() != 17 || s.OpenTime.Minute() != 30 {
			t.Errorf("OpenTime = %v, want 17:30", s.OpenTime)
		}
		if !s.EndTime.After(s.StartTime) {
			t.Errorf("EndTime %v not after StartTime %v", s.EndTime, s.StartTime)
		}
		if !timeutil.SameDate(s.StartTime, anchor) || !timeutil.SameDate(s.EndTime, anchor) {
			t.Error("window should stay on the anchor date")
		}
	})

	t.Run("end before start rolls to next day", func(t *testing.T) {
		s := BuildTimeSettings(anchor, nil, timeutil.Clock{Hour: 23, Minute: 30}, timeutil.Clock{Hour: 0, Minute: 15})

		if !s.EndTime.After(s.StartTime) {
			t.Fatalf("EndTime %v not after StartTime %v", s.EndTime, s.StartTime)
		}
		if timeutil.SameDate(s.EndTime, anchor) {
			t.Errorf("EndTime %v should be on the next day", s.EndTime)
		}
		if s.EndTime.Sub(s.StartTime) != 45*time.Minute {
			t.Errorf("window length = %v, want 45m", s.EndTime.Sub(s.StartTime))
		}
	})

	t.Run("end equal to start rolls to next day", func(t *testing.T) {
		s := BuildTimeSettings(anchor, nil, timeutil.Clock{Hour: 18}, timeutil.Clock{Hour: 18})

		if s.EndTime.Sub(s.StartTime) != 24*time.Hour {
			t.Errorf("window length = %v, want 24h", s.EndTime.Sub(s.StartTime))
		}
	})

	t.Run("no open time", func(t *testing.T) {
		s := BuildTimeSettings(anchor, nil, timeutil.Clock{Hour: 18}, timeutil.Clock{Hour: 20})
		if s.OpenTime != nil {
			t.Errorf("OpenTime = %v, want nil", s.OpenTime)
		}
	})
}

func TestSettingProvenanceIsManual(t *testing.T) {
	var nilProv *SettingProvenance
	if nilProv.IsManual() {
		t.Error("nil provenance should not be manual")
	}
	if (&SettingProvenance{Source: SourceAuto}).IsManual() {
		t.Error("auto provenance should not be manual")
	}
	if !(&SettingProvenance{Source: SourceManual, SetDate: "2026-03-10"}).IsManual() {
		t.Error("manual provenance should be manual")
	}
}

func TestEventRecordDisplayTitle(t *testing.T) {
	rec := EventRecord{
		Date:   time.Date(2026, 3, 7, 0, 0, 0, 0, time.Local),
		Region: "東京",
		Venue:  "Zepp Haneda",
	}
	if got, want := rec.DisplayTitle(), "Zepp Haneda (03/07 東京)"; got != want {
		t.Errorf("DisplayTitle() = %q, want %q", got, want)
	}
}

func TestEventRecordWindow(t *testing.T) {
	rec := EventRecord{
		ID:        "ev1",
		Date:      time.Date(2026, 3, 7, 0, 0, 0, 0, time.Local),
		Region:    "東京",
		Venue:     "Zepp Haneda",
		OpenTime:  "17:30",
		StartTime: "18:30",
		EndTime:   "20:30",
		Complete:  true,
	}

	s, err := rec.Window()
	if err != nil {
		t.Fatalf("Window() error: %v", err)
	}
	if s.OpenTime == nil || s.OpenTime.Hour() != 17 {
		t.Errorf("OpenTime = %v, want 17:30", s.OpenTime)
	}
	if !timeutil.SameDate(s.StartTime, rec.Date) {
		t.Errorf("StartTime %v not anchored to record date", s.StartTime)
	}

	rec.Complete = false
	if _, err := rec.Window(); err == nil {
		t.Error("Window() on incomplete record should fail")
	}
}
