// Package timeutil provides clock-time parsing and the duration formatting
// used by the countdown display.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds are truncated to minute
// precision, matching what the settings form displays.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return Clock{}, fmt.Errorf("invalid clock time %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock time %q", s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("clock time %q out of range", s)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// String renders the clock as zero-padded "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// At anchors the clock to the calendar date of the given time, in its
// location.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// ComputeEndFromStart adds durationMinutes to a start clock-time, wrapping
// minutes into hours and hours modulo 24. Calendar-day rollover is the
// caller's responsibility.
func ComputeEndFromStart(start Clock, durationMinutes int) Clock {
	hour := start.Hour
	minute := start.Minute + durationMinutes

	if minute >= 60 {
		hour += minute / 60
		minute = minute % 60
	}
	if hour >= 24 {
		hour = hour % 24
	}

	return Clock{Hour: hour, Minute: minute}
}

// FormatHMS renders a duration as zero-padded "HH:MM:SS". The caller handles
// sign; this takes the absolute duration.
func FormatHMS(d time.Duration) string {
	totalSeconds := int(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatHumanDuration renders the span from one instant to another as
// "H時間M分S秒". The hour term is dropped when zero, minutes are always
// included once hours are nonzero, and seconds are always included.
// Callers must guard against negative spans via past/future checks first.
func FormatHumanDuration(from, to time.Time) string {
	totalSeconds := int(to.Sub(from) / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%d時間", hours)
	}
	if minutes > 0 || hours > 0 {
		fmt.Fprintf(&b, "%d分", minutes)
	}
	fmt.Fprintf(&b, "%d秒", seconds)

	return b.String()
}

// DateOf truncates a time to midnight of its calendar day, in its location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two instants fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// DateString renders a calendar date as "YYYY-MM-DD".
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a calendar date in "YYYY-MM-DD" or "YYYY/MM/DD" form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "2006/01/02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// FormatDateJP renders a date as "2006年1月2日" for status messages.
func FormatDateJP(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}

// FormatMonthDay renders a date as zero-padded "MM/DD" for display titles.
func FormatMonthDay(t time.Time) string {
	return fmt.Sprintf("%02d/%02d", int(t.Month()), t.Day())
}

// DaysBetween returns the rounded number of calendar days from one date to
// another. Positive when to is in the future relative to from.
func DaysBetween(from, to time.Time) int {
	diff := DateOf(to).Sub(DateOf(from))
	return int(math.Round(diff.Hours() / 24))
}
