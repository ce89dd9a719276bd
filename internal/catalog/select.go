package catalog

import (
	"time"

	"github.com/event-timekeeper/backend/internal/storage/models"
	"github.com/event-timekeeper/backend/internal/timeutil"
)

// SelectEventToday returns the first complete record dated today, or nil.
// Catalog order decides ties: the first match short-circuits.
func SelectEventToday(events []models.EventRecord, today time.Time) *models.EventRecord {
	for i := range events {
		if !events[i].Complete {
			continue
		}
		if timeutil.SameDate(events[i].Date, today) {
			return &events[i]
		}
	}
	return nil
}

// SelectNearestFuture returns the complete record with the smallest date
// strictly after today, or nil. Ties go to the record seen first.
func SelectNearestFuture(events []models.EventRecord, today time.Time) *models.EventRecord {
	day := timeutil.DateOf(today)

	var nearest *models.EventRecord
	for i := range events {
		if !events[i].Complete {
			continue
		}
		date := timeutil.DateOf(events[i].Date)
		if !date.After(day) {
			continue
		}
		if nearest == nil || date.Before(timeutil.DateOf(nearest.Date)) {
			nearest = &events[i]
		}
	}
	return nearest
}

// SelectCandidate returns today's event if one exists, else the nearest
// future one, else nil.
func SelectCandidate(events []models.EventRecord, today time.Time) *models.EventRecord {
	if rec := SelectEventToday(events, today); rec != nil {
		return rec
	}
	return SelectNearestFuture(events, today)
}
