package period

import (
	"cmp"
	"slices"
	"time"

	"github.com/calvinalkan/doug/internal/timefmt"
)

// Unit is the step of a trailing report window.
type Unit int

// Window units. A month is 31 days and a year 365 days.
const (
	UnitDay Unit = iota + 1
	UnitWeek
	UnitMonth
	UnitYear
)

// Length returns the fixed length of one unit.
func (u Unit) Length() time.Duration {
	const day = 24 * time.Hour

	switch u {
	case UnitDay:
		return day
	case UnitWeek:
		return 7 * day
	case UnitMonth:
		return 31 * day
	case UnitYear:
		return 365 * day
	}

	return 0
}

func (u Unit) String() string {
	switch u {
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	}

	return "unknown"
}

// WindowKind selects how a report is limited in time.
type WindowKind int

// Window kinds.
const (
	WindowAll WindowKind = iota
	WindowTrailing
	WindowRange
)

// Window limits a report. Only one kind is active at a time.
type Window struct {
	Kind WindowKind

	// Trailing windows: Count units back from now.
	Count int
	Unit  Unit

	// Range windows, in local calendar days. From nil means no lower bound,
	// To nil means today. To is inclusive.
	From *time.Time
	To   *time.Time
}

// NewWindow picks the active window from all report inputs with precedence
// years > months > weeks > days > from/to range > none.
func NewWindow(years, months, weeks, days int, from, to *time.Time) Window {
	switch {
	case years > 0:
		return Window{Kind: WindowTrailing, Count: years, Unit: UnitYear}
	case months > 0:
		return Window{Kind: WindowTrailing, Count: months, Unit: UnitMonth}
	case weeks > 0:
		return Window{Kind: WindowTrailing, Count: weeks, Unit: UnitWeek}
	case days > 0:
		return Window{Kind: WindowTrailing, Count: days, Unit: UnitDay}
	case from != nil || to != nil:
		return Window{Kind: WindowRange, From: from, To: to}
	}

	return Window{Kind: WindowAll}
}

// Span is a half-open time interval [Start, End).
type Span struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the span.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// union returns the smallest span covering both.
func (s Span) union(other Span) Span {
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}

	if other.End.After(s.End) {
		s.End = other.End
	}

	return s
}

// Bounds returns the window limits at now. ok is false for WindowAll.
// A range without From has a zero Start.
func (w Window) Bounds(now time.Time) (Span, bool) {
	loc := now.Location()

	switch w.Kind {
	case WindowTrailing:
		return Span{
			Start: now.Add(-time.Duration(w.Count) * w.Unit.Length()),
			End:   now,
		}, true
	case WindowRange:
		var start time.Time
		if w.From != nil {
			start = timefmt.StartOfDay(*w.From, loc)
		}

		lastDay := now
		if w.To != nil {
			lastDay = *w.To
		}

		return Span{
			Start: start,
			End:   timefmt.StartOfDay(lastDay, loc).AddDate(0, 0, 1),
		}, true
	}

	return Span{}, false
}

// clip returns the part of p inside bounds, an open period running until now.
// Without bounds the whole period counts. ok is false when a bounded period
// does not overlap the window.
func clip(p Period, now time.Time, bounds Span, bounded bool) (time.Duration, Span, bool) {
	span := Span{Start: p.StartTime, End: p.End(now)}

	if !bounded {
		return max(span.Duration(), 0), span, true
	}

	if bounds.Start.After(span.Start) {
		span.Start = bounds.Start
	}

	if bounds.End.Before(span.End) {
		span.End = bounds.End
	}

	if !span.End.After(span.Start) {
		return 0, Span{}, false
	}

	return span.Duration(), span, true
}

// ProjectTotal is the time spent on one project inside a report window.
type ProjectTotal struct {
	Project  string
	Duration time.Duration
}

// Report is the per-project aggregation over a window.
type Report struct {
	// Range covers the clipped periods that were counted. When nothing was
	// counted it falls back to the window limits (or now).
	Range    Span
	Projects []ProjectTotal
}

// reportAcc is folded over the periods by BuildReport.
type reportAcc struct {
	totals   map[string]time.Duration
	observed Span
	seen     bool
}

func (acc reportAcc) add(project string, d time.Duration, span Span) reportAcc {
	acc.totals[project] += d

	if acc.seen {
		acc.observed = acc.observed.union(span)
	} else {
		acc.observed = span
		acc.seen = true
	}

	return acc
}

// BuildReport sums the time per project inside w. Projects with a zero total
// are left out; the rest are sorted by name.
func BuildReport(periods []Period, w Window, now time.Time) Report {
	bounds, bounded := w.Bounds(now)

	acc := reportAcc{totals: make(map[string]time.Duration)}

	for _, p := range periods {
		d, span, ok := clip(p, now, bounds, bounded)
		if !ok {
			continue
		}

		acc = acc.add(p.Project, d, span)
	}

	projects := make([]ProjectTotal, 0, len(acc.totals))

	for project, d := range acc.totals {
		if d == 0 {
			continue
		}

		projects = append(projects, ProjectTotal{Project: project, Duration: d})
	}

	slices.SortFunc(projects, func(a, b ProjectTotal) int {
		return cmp.Compare(a.Project, b.Project)
	})

	observed := acc.observed
	if !acc.seen {
		observed = fallbackRange(bounds, bounded, now)
	}

	return Report{Range: observed, Projects: projects}
}

func fallbackRange(bounds Span, bounded bool, now time.Time) Span {
	if !bounded {
		return Span{Start: now, End: now}
	}

	span := bounds
	if span.Start.IsZero() || span.Start.After(now) {
		span.Start = now
	}

	if span.End.After(now) {
		span.End = now
	}

	if span.End.Before(span.Start) {
		span.End = span.Start
	}

	return span
}

// LogEntry is one period as shown in the log.
type LogEntry struct {
	Project  string
	Start    time.Time
	End      time.Time
	Open     bool
	Duration time.Duration
}

// LogDay groups the periods that started on one local calendar day.
type LogDay struct {
	// Date is local midnight of the day.
	Date    time.Time
	Total   time.Duration
	Entries []LogEntry
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// BuildLog groups periods by the local date of their start time, days in
// ascending order and entries by start time. Open periods run until now.
func BuildLog(periods []Period, now time.Time) []LogDay {
	loc := now.Location()
	byDay := make(map[dayKey]*LogDay)

	for _, p := range periods {
		local := p.StartTime.In(loc)
		key := dayKey{year: local.Year(), month: local.Month(), day: local.Day()}

		day, ok := byDay[key]
		if !ok {
			day = &LogDay{Date: timefmt.StartOfDay(local, loc)}
			byDay[key] = day
		}

		d := max(p.Duration(now), 0)
		day.Total += d
		day.Entries = append(day.Entries, LogEntry{
			Project:  p.Project,
			Start:    p.StartTime,
			End:      p.End(now),
			Open:     p.IsOpen(),
			Duration: d,
		})
	}

	days := make([]LogDay, 0, len(byDay))
	for _, day := range byDay {
		slices.SortStableFunc(day.Entries, func(a, b LogEntry) int {
			return a.Start.Compare(b.Start)
		})

		days = append(days, *day)
	}

	slices.SortFunc(days, func(a, b LogDay) int {
		return a.Date.Compare(b.Date)
	})

	return days
}
