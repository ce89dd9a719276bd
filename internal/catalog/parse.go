// Package catalog loads the tabular event catalog and selects the event the
// display should run.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/event-timekeeper/backend/internal/storage"
	"github.com/event-timekeeper/backend/internal/storage/models"
	"github.com/event-timekeeper/backend/internal/timeutil"
)

// Parse reads catalog rows from newline-delimited, comma-separated data:
//
//	date,region,venue,openTime,startTime,endTime[,scheduleGroup]
//
// The first line is a header and is skipped, as are blank lines and lines
// starting with "//". Rows missing date, region, or venue are dropped
// entirely; rows missing any of the three clock-times are kept but flagged
// incomplete so they never win auto-selection.
func Parse(r io.Reader) ([]models.EventRecord, error) {
	scanner := bufio.NewScanner(r)

	var records []models.EventRecord
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		rec, ok := parseRow(line)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return records, nil
}

func parseRow(line string) (models.EventRecord, bool) {
	fields := strings.Split(line, ",")
	for len(fields) < 7 {
		fields = append(fields, "")
	}

	dateStr := strings.TrimSpace(fields[0])
	region := strings.TrimSpace(fields[1])
	venue := strings.TrimSpace(fields[2])
	if dateStr == "" || region == "" || venue == "" {
		return models.EventRecord{}, false
	}

	date, err := timeutil.ParseDate(dateStr)
	if err != nil {
		return models.EventRecord{}, false
	}

	rec := models.EventRecord{
		ID:            storage.GenerateID(),
		Date:          date,
		Region:        region,
		Venue:         venue,
		OpenTime:      normalizeClock(fields[3]),
		StartTime:     normalizeClock(fields[4]),
		EndTime:       normalizeClock(fields[5]),
		ScheduleGroup: strings.TrimSpace(fields[6]),
	}
	if rec.ScheduleGroup == "" {
		rec.ScheduleGroup = models.DefaultScheduleGroup
	}
	rec.Complete = rec.OpenTime != "" && rec.StartTime != "" && rec.EndTime != ""

	return rec, true
}

// normalizeClock truncates "HH:MM:SS" to minute precision and discards
// values that do not parse as a clock time.
func normalizeClock(s string) string {
	clock, err := timeutil.ParseClock(s)
	if err != nil {
		return ""
	}
	return clock.String()
}
