// Package timefmt renders durations and timestamps for display and parses the
// humanized dates accepted on the command line.
package timefmt

import (
	"fmt"
	"time"
)

// Layouts used for display.
const (
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
	dateLayout     = "Monday 2 January 2006"
)

// Duration renders d as "45s", "3m 07s" or "26h 03m 07s".
// Hours keep accumulating past a day. Negative durations render as "0s" and
// sub-second precision is dropped.
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total / 60) % 60
	seconds := total % 60

	switch {
	case total < 60:
		return fmt.Sprintf("%ds", seconds)
	case hours == 0:
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	}
}

// Time renders t as HH:MM in loc.
func Time(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timeLayout)
}

// DateTime renders t as YYYY-MM-DD HH:MM in loc.
func DateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateTimeLayout)
}

// Date renders the calendar day of t in loc, e.g. "Tuesday 5 March 2024".
func Date(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
