package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a time of day with minute precision. Loadsheet target times
// and profile standard times arrive as bare clock strings, so comparisons
// are done in minutes since midnight rather than full timestamps.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// datetimeLayouts are the timestamp formats the TMS has been observed to emit.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseClock parses a bare clock string (H:MM or H:MM:SS, seconds are
// dropped) or a datetime string into a time of day. Input that matches no
// accepted pattern yields ok=false; parsing never fails with an error.
func ParseClock(s string) (ClockTime, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClockTime{}, false
	}

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return ClockTime{}, false
		}
		return ClockTime{Hour: hour, Minute: minute}, true
	}

	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ClockAt(ts), true
		}
	}

	return ClockTime{}, false
}

// ClockAt extracts the time of day from a timestamp.
func ClockAt(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns the minutes elapsed since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On places the clock time on the given calendar date.
func (c ClockTime) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// String renders the clock as zero-padded HH:MM with seconds stripped.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Display renders the clock for the dispatch board; an unresolved (nil)
// value renders as a dash, never as a fabricated time.
func (c *ClockTime) Display() string {
	if c == nil {
		return "-"
	}
	return c.String()
}
