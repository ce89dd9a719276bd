package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/event-timekeeper/backend/internal/storage/models"
)

const sampleCatalog = `date,region,venue,open,start,end,group
2026-03-07,東京,Zepp Haneda,17:30,18:30,20:30,Spring Tour
// comment row stays out of the listing

2026-03-10,大阪,Zepp Namba,17:00,18:00,20:00
2026-03-12,名古屋,未定ホール,,18:00,20:00,Spring Tour
not-a-date,東京,どこか,17:00,18:00,20:00
2026-03-15,,会場だけ,17:00,18:00,20:00
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Parse() returned %d records, want 3", len(records))
	}

	first := records[0]
	if first.Venue != "Zepp Haneda" || first.Region != "東京" {
		t.Errorf("first record = %s/%s, want Zepp Haneda/東京", first.Venue, first.Region)
	}
	if first.ScheduleGroup != "Spring Tour" {
		t.Errorf("ScheduleGroup = %q, want Spring Tour", first.ScheduleGroup)
	}
	if !first.Complete {
		t.Error("record with all three clock-times should be complete")
	}
	if first.ID == "" {
		t.Error("record should get an ID")
	}

	second := records[1]
	if second.ScheduleGroup != models.DefaultScheduleGroup {
		t.Errorf("missing group = %q, want %q", second.ScheduleGroup, models.DefaultScheduleGroup)
	}

	third := records[2]
	if third.Complete {
		t.Error("record missing open time should be incomplete")
	}
	if third.OpenTime != "" {
		t.Errorf("OpenTime = %q, want empty", third.OpenTime)
	}
	if third.StartTime != "18:00" {
		t.Errorf("StartTime = %q, want 18:00", third.StartTime)
	}
}

func TestParseNormalizesClockTimes(t *testing.T) {
	data := "header\n2026-03-07,東京,会場,17:30:45,18:30:00,20:30:15\n"
	records, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].OpenTime != "17:30" || records[0].StartTime != "18:30" || records[0].EndTime != "20:30" {
		t.Errorf("clock-times not truncated to minutes: %+v", records[0])
	}
}

func TestParseHeaderOnly(t *testing.T) {
	records, err := Parse(strings.NewReader("date,region,venue\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
