package timeutil

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"13:05", Clock{13, 5}, false},
		{"09:00", Clock{9, 0}, false},
		{"13:05:45", Clock{13, 5}, false},
		{" 13:05 ", Clock{13, 5}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"13", Clock{}, true},
		{"", Clock{}, true},
		{"ab:cd", Clock{}, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComputeEndFromStart(t *testing.T) {
	tests := []struct {
		start    Clock
		duration int
		want     Clock
	}{
		{Clock{18, 0}, 90, Clock{19, 30}},
		{Clock{18, 45}, 90, Clock{20, 15}},
		{Clock{23, 30}, 90, Clock{1, 0}},
		{Clock{10, 0}, 0, Clock{10, 0}},
		{Clock{23, 59}, 1, Clock{0, 0}},
	}

	for _, tt := range tests {
		got := ComputeEndFromStart(tt.start, tt.duration)
		if got != tt.want {
			t.Errorf("ComputeEndFromStart(%v, %d) = %v, want %v", tt.start, tt.duration, got, tt.want)
		}
	}
}

func TestFormatHMS(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{5 * time.Second, "00:00:05"},
		{61 * time.Second, "00:01:01"},
		{3661 * time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}

	for _, tt := range tests {
		if got := FormatHMS(tt.d); got != tt.want {
			t.Errorf("FormatHMS(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatHumanDuration(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		span time.Duration
		want string
	}{
		{5 * time.Second, "5秒"},
		{61 * time.Second, "1分1秒"},
		{3661 * time.Second, "1時間1分1秒"},
		{time.Hour, "1時間0分0秒"},
		{2 * time.Minute, "2分0秒"},
	}

	for _, tt := range tests {
		if got := FormatHumanDuration(base, base.Add(tt.span)); got != tt.want {
			t.Errorf("FormatHumanDuration(+%v) = %q, want %q", tt.span, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.Local)
	}

	tests := []struct {
		from, to time.Time
		want     int
	}{
		{day(10), day(10), 0},
		{day(10), day(11), 1},
		{day(10), day(13), 3},
		{day(10), day(9), -1},
		// Time-of-day must not shift the day count.
		{day(10).Add(23 * time.Hour), day(11), 1},
	}

	for _, tt := range tests {
		if got := DaysBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	for _, in := range []string{"2026-03-10", "2026/03/10", " 2026-03-10 "} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseDate("03/10/2026"); err == nil {
		t.Error("ParseDate with US-ordered date should fail")
	}
}

func TestClockAt(t *testing.T) {
	date := time.Date(2026, 3, 10, 17, 45, 12, 0, time.Local)
	got := Clock{Hour: 18, Minute: 30}.At(date)
	want := time.Date(2026, 3, 10, 18, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("At() = %v, want %v", got, want)
	}
}
