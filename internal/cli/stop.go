package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/timefmt"
)

// StopCmd returns the stop command.
func StopCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("stop", flag.ContinueOnError),
		Usage: "stop",
		Short: "Stop any running projects",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execStop(o, a, args)
		},
	}
}

func execStop(o *IO, a *app, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	stopped, err := tracker.Stop()
	if err != nil {
		return err
	}

	o.Printf("Stopped project %s, started %s ago\n",
		highlight(a.styles(), stopped.Project),
		timefmt.Duration(stopped.Duration(tracker.Now())))

	return nil
}

// CancelCmd returns the cancel command.
func CancelCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("cancel", flag.ContinueOnError),
		Usage: "cancel",
		Short: "Stop running project and remove most recent time interval",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execCancel(o, a, args)
		},
	}
}

func execCancel(o *IO, a *app, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	canceled, err := tracker.Cancel()
	if err != nil {
		return err
	}

	o.Printf("Canceled project %s, started %s ago\n",
		highlight(a.styles(), canceled.Project),
		timefmt.Duration(canceled.Duration(tracker.Now())))

	return nil
}
