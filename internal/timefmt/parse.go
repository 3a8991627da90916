package timefmt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrInvalidDate is returned when a humanized date cannot be parsed.
var ErrInvalidDate = errors.New("could not parse date")

var (
	reISODate = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[ t](.+))?$`)
	reClock   = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(?::(\d{2}))? ?(am|pm)?$`)
)

// natural handles relative expressions ("2 hours ago", "in 30 minutes",
// "next friday"). It is only consulted after the exact forms below fail.
var natural = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return w
}()

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseHuman parses a humanized date relative to now. Calendar math happens
// in now.Location().
//
// Accepted forms:
//   - "now"
//   - RFC3339 ("2024-03-05T09:00:00Z")
//   - "2024-3-5", "2024-03-05 17:30", "2024-03-05 5pm"
//   - "today", "yesterday", "tomorrow", "friday", "last friday",
//     optionally followed by "[at] <clock>"
//   - "<clock>" alone, meaning today
//   - anything olebedev/when resolves as a whole, such as
//     "2 hours ago", "in 3 days", "next friday" or "this monday"
//
// A clock is "9am", "9:30pm", "9:30 pm", "17:00", "17:00:05", "noon" or "midnight".
// A weekday alone means the most recent such day, today included.
func ParseHuman(value string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t, nil
	}

	input := strings.ToLower(strings.Join(strings.Fields(trimmed), " "))

	t, ok := parseHuman(input, now)
	if !ok {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, value)
	}

	return t, nil
}

func parseHuman(input string, now time.Time) (time.Time, bool) {
	loc := now.Location()

	if input == "now" {
		return now, true
	}

	if m := reISODate.FindStringSubmatch(input); m != nil {
		day, ok := calendarDay(m[1], m[2], m[3], loc)
		if !ok {
			return time.Time{}, false
		}

		return atClock(day, m[4])
	}

	if day, rest, ok := dayWord(input, now); ok {
		return atClock(day, strings.TrimPrefix(rest, "at "))
	}

	if t, ok := atClock(StartOfDay(now, loc), input); ok {
		return t, true
	}

	return parseNatural(input, now)
}

// parseNatural accepts a when match only if it covers the whole input, so
// "2 hours ago or so" is not read as "2 hours ago".
func parseNatural(input string, now time.Time) (time.Time, bool) {
	r, err := natural.Parse(input, now)
	if err != nil || r == nil {
		return time.Time{}, false
	}

	rest := strings.Replace(input, strings.TrimSpace(r.Text), "", 1)
	if strings.TrimSpace(rest) != "" {
		return time.Time{}, false
	}

	return r.Time, true
}

// dayWord consumes a leading relative day expression and returns local
// midnight of that day plus the unparsed remainder.
func dayWord(input string, now time.Time) (time.Time, string, bool) {
	today := StartOfDay(now, now.Location())

	word, rest, _ := strings.Cut(input, " ")

	switch word {
	case "today":
		return today, rest, true
	case "yesterday":
		return today.AddDate(0, 0, -1), rest, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), rest, true
	case "last":
		name, remainder, _ := strings.Cut(rest, " ")

		wd, ok := weekdays[name]
		if !ok {
			return time.Time{}, "", false
		}

		back := daysSince(now.Weekday(), wd)
		if back == 0 {
			back = 7
		}

		return today.AddDate(0, 0, -back), remainder, true
	}

	if wd, ok := weekdays[word]; ok {
		return today.AddDate(0, 0, -daysSince(now.Weekday(), wd)), rest, true
	}

	return time.Time{}, "", false
}

func daysSince(today, target time.Weekday) int {
	return (int(today) - int(target) + 7) % 7
}

func calendarDay(year, month, day string, loc *time.Location) (time.Time, bool) {
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)

	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}

	return t, true
}

// atClock applies a clock expression to a local midnight. An empty clock
// keeps midnight.
func atClock(day time.Time, clock string) (time.Time, bool) {
	if clock == "" {
		return day, true
	}

	hour, minute, second, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location()), true
}

func parseClock(clock string) (int, int, int, bool) {
	switch clock {
	case "noon":
		return 12, 0, 0, true
	case "midnight":
		return 0, 0, 0, true
	}

	m := reClock.FindStringSubmatch(clock)
	if m == nil {
		return 0, 0, 0, false
	}

	// A bare number is not a clock: "9" could be anything.
	if m[2] == "" && m[4] == "" {
		return 0, 0, 0, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, second := 0, 0

	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}

	switch m[4] {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, 0, false
		}

		hour %= 12
		if m[4] == "pm" {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, 0, 0, false
		}
	}

	if minute > 59 || second > 59 {
		return 0, 0, 0, false
	}

	return hour, minute, second, true
}
