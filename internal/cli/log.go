package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/period"
)

// LogCmd returns the log command.
func LogCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("log", flag.ContinueOnError),
		Usage: "log",
		Short: "Display time intervals across all projects",
		Long:  "Display every period grouped by the local day it started on.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execLog(o, a, args)
		},
	}
}

func execLog(o *IO, a *app, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	now := tracker.Now()
	days := period.BuildLog(tracker.Periods(), now)

	return period.RenderLog(o.Out(), days, now.Location(), a.styles())
}
