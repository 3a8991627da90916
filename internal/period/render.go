package period

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/calvinalkan/doug/internal/timefmt"
)

// minLogDurationWidth is the narrowest duration column in the log.
const minLogDurationWidth = 11

// Styles decorates rendered fields. Decorators run after padding, so column
// widths are measured on the plain text. Nil decorators leave text unchanged.
type Styles struct {
	Date     func(string) string
	Duration func(string) string
	Project  func(string) string
}

func paint(decorate func(string) string, s string) string {
	if decorate == nil {
		return s
	}

	return decorate(s)
}

// FormatPeriod renders "09:00 to 10:30 1h 30m 00s", with "present" as the end
// of a running period.
func FormatPeriod(p Period, now time.Time) string {
	loc := now.Location()

	end := "present"
	if p.EndTime != nil {
		end = timefmt.Time(*p.EndTime, loc)
	}

	return fmt.Sprintf("%s to %s %s", timefmt.Time(p.StartTime, loc), end, timefmt.Duration(p.Duration(now)))
}

// RenderLog writes one block per day: a "<date> (<total>)" header followed by
// one indented line per period.
func RenderLog(w io.Writer, days []LogDay, loc *time.Location, st Styles) error {
	var b strings.Builder

	for _, day := range days {
		fmt.Fprintf(&b, "%s (%s)\n",
			paint(st.Date, timefmt.Date(day.Date, loc)),
			paint(st.Duration, timefmt.Duration(day.Total)))

		width := minLogDurationWidth
		for _, e := range day.Entries {
			width = max(width, len(timefmt.Duration(e.Duration)))
		}

		for _, e := range day.Entries {
			end := timefmt.Time(e.End, loc)
			if e.Open {
				end = "present"
			}

			fmt.Fprintf(&b, "    %s to %s %s %s\n",
				timefmt.Time(e.Start, loc),
				end,
				paint(st.Duration, fmt.Sprintf("%*s", width, timefmt.Duration(e.Duration))),
				paint(st.Project, e.Project))
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// RenderReport writes a "<from> -> <to>" header followed by one aligned line
// per project.
func RenderReport(w io.Writer, r Report, loc *time.Location, st Styles) error {
	var b strings.Builder

	// The range end is exclusive: a span ending at midnight belongs to the
	// previous day.
	last := r.Range.End
	if last.After(r.Range.Start) {
		last = last.Add(-time.Nanosecond)
	}

	fmt.Fprintf(&b, "%s -> %s\n",
		paint(st.Date, timefmt.Date(r.Range.Start, loc)),
		paint(st.Date, timefmt.Date(last, loc)))

	nameWidth, durationWidth := 0, 0

	for _, p := range r.Projects {
		nameWidth = max(nameWidth, runewidth.StringWidth(p.Project))
		durationWidth = max(durationWidth, len(timefmt.Duration(p.Duration)))
	}

	for _, p := range r.Projects {
		fmt.Fprintf(&b, "%s %s\n",
			paint(st.Project, runewidth.FillRight(p.Project, nameWidth)),
			paint(st.Duration, fmt.Sprintf("%*s", durationWidth, timefmt.Duration(p.Duration))))
	}

	_, err := io.WriteString(w, b.String())

	return err
}
