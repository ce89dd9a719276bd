package catalog

import (
	"testing"
	"time"

	"github.com/event-timekeeper/backend/internal/storage/models"
)

func makeEvents(today time.Time) []models.EventRecord {
	return []models.EventRecord{
		{ID: "past", Date: today.AddDate(0, 0, -3), Venue: "past", Complete: true},
		{ID: "future5", Date: today.AddDate(0, 0, 5), Venue: "future5", Complete: true},
		{ID: "future2", Date: today.AddDate(0, 0, 2), Venue: "future2", Complete: true},
		{ID: "tomorrow-incomplete", Date: today.AddDate(0, 0, 1), Venue: "incomplete", Complete: false},
	}
}

func TestSelectEventToday(t *testing.T) {
	today := date(2026, time.March, 10)
	events := makeEvents(today)

	if got := SelectEventToday(events, today); got != nil {
		t.Errorf("no event today, got %s", got.ID)
	}

	events = append(events,
		models.EventRecord{ID: "today-b", Date: today, Complete: true},
		models.EventRecord{ID: "today-c", Date: today, Complete: true},
	)
	got := SelectEventToday(events, today.Add(14*time.Hour))
	if got == nil || got.ID != "today-b" {
		t.Errorf("SelectEventToday = %v, want today-b (first match wins)", got)
	}

	incompleteOnly := []models.EventRecord{{ID: "x", Date: today, Complete: false}}
	if got := SelectEventToday(incompleteOnly, today); got != nil {
		t.Errorf("incomplete record selected: %s", got.ID)
	}
}

func TestSelectNearestFuture(t *testing.T) {
	today := date(2026, time.March, 10)
	events := makeEvents(today)

	got := SelectNearestFuture(events, today)
	if got == nil || got.ID != "future2" {
		t.Errorf("SelectNearestFuture = %v, want future2", got)
	}

	// A record dated today is not "future".
	events = append(events, models.EventRecord{ID: "today", Date: today, Complete: true})
	got = SelectNearestFuture(events, today)
	if got == nil || got.ID != "future2" {
		t.Errorf("SelectNearestFuture with today present = %v, want future2", got)
	}

	pastOnly := []models.EventRecord{{ID: "past", Date: today.AddDate(0, 0, -1), Complete: true}}
	if got := SelectNearestFuture(pastOnly, today); got != nil {
		t.Errorf("past-only catalog yielded %s", got.ID)
	}
}

func TestSelectCandidate(t *testing.T) {
	today := date(2026, time.March, 10)
	events := makeEvents(today)

	got := SelectCandidate(events, today)
	if got == nil || got.ID != "future2" {
		t.Errorf("SelectCandidate = %v, want future2", got)
	}

	events = append(events, models.EventRecord{ID: "today", Date: today, Complete: true})
	got = SelectCandidate(events, today)
	if got == nil || got.ID != "today" {
		t.Errorf("SelectCandidate = %v, want today over nearest future", got)
	}

	if got := SelectCandidate(nil, today); got != nil {
		t.Errorf("empty catalog yielded %s", got.ID)
	}
}
