package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/timefmt"
)

// StartCmd returns the start command.
func StartCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("start", flag.ContinueOnError),
		Usage: "start [project]",
		Short: "Track new or existing project",
		Long: "Start tracking a project at the current time.\n" +
			"Without a project, start behaves like restart.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execStart(o, a, args)
		},
	}
}

func execStart(o *IO, a *app, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: quote project names containing spaces", ErrTooManyArgs)
	}

	if len(args) == 0 {
		return execRestart(o, a, args)
	}

	project := strings.TrimSpace(args[0])

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	started, err := tracker.Start(project)
	if err != nil {
		return err
	}

	o.Printf("Started tracking project %s at %s\n",
		highlight(a.styles(), started.Project),
		timefmt.Time(started.StartTime, tracker.Now().Location()))

	return nil
}

// RestartCmd returns the restart command.
func RestartCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("restart", flag.ContinueOnError),
		Usage: "restart",
		Short: "Track last running project",
		Long:  "Start a new period for the project of the most recent period.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execRestart(o, a, args)
		},
	}
}

func execRestart(o *IO, a *app, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	started, err := tracker.Restart()
	if err != nil {
		return err
	}

	o.Println("Tracking last running project:", highlight(a.styles(), started.Project))

	return nil
}
