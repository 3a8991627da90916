package cli

import (
	"context"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/period"
	"github.com/calvinalkan/doug/internal/timefmt"
)

// ReportCmd returns the report command.
func ReportCmd(a *app) *Command {
	flags := flag.NewFlagSet("report", flag.ContinueOnError)
	flags.CountP("year", "y", "Limit report to past year. Use multiple to increase interval")
	flags.CountP("month", "m", "Limit report to past month. Use multiple to increase interval")
	flags.CountP("week", "w", "Limit report to past week. Use multiple to increase interval")
	flags.CountP("day", "d", "Limit report to past day. Use multiple to increase interval")
	flags.StringP("from", "f", "", "Date when report should start (e.g. 2018-1-1)")
	flags.StringP("to", "t", "", "Date when report should end (e.g. 2018-1-20)")

	return &Command{
		Flags: flags,
		Usage: "report [flags]",
		Short: "Display aggregate time from projects",
		Long: "Display the total time per project.\n" +
			"Year, month, week and day windows count back from now; the first one\n" +
			"given wins over the others and over --from/--to.",
		FlagGroups: []FlagGroup{
			{Title: "Trailing window", Names: []string{"year", "month", "week", "day"}},
			{Title: "Date range", Names: []string{"from", "to"}},
		},
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execReport(o, a, flags, args)
		},
	}
}

func execReport(o *IO, a *app, flags *flag.FlagSet, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	now := tracker.Now()

	from, err := dateFlag(flags, "from", now)
	if err != nil {
		return err
	}

	to, err := dateFlag(flags, "to", now)
	if err != nil {
		return err
	}

	years, _ := flags.GetCount("year")
	months, _ := flags.GetCount("month")
	weeks, _ := flags.GetCount("week")
	days, _ := flags.GetCount("day")

	window := period.NewWindow(years, months, weeks, days, from, to)
	a.logger.Debug("report window", "kind", window.Kind, "count", window.Count, "unit", window.Unit.String())

	report := period.BuildReport(tracker.Periods(), window, now)

	return period.RenderReport(o.Out(), report, now.Location(), a.styles())
}

// dateFlag parses a humanized date flag. Unset flags return nil.
func dateFlag(flags *flag.FlagSet, name string, now time.Time) (*time.Time, error) {
	if !flags.Changed(name) {
		return nil, nil
	}

	value, _ := flags.GetString(name)

	parsed, err := timefmt.ParseHuman(value, now)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
