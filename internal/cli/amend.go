package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/period"
)

// AmendCmd returns the amend command.
func AmendCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("amend", flag.ContinueOnError),
		Usage: "amend <project>",
		Short: "Change name of currently running project",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execAmend(o, a, args)
		},
	}
}

func execAmend(o *IO, a *app, args []string) error {
	if len(args) == 0 {
		return period.ErrProjectRequired
	}

	if len(args) > 1 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	oldName, amended, err := tracker.Amend(strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}

	st := a.styles()
	o.Printf("Renamed tracking project %s -> %s\n", highlight(st, oldName), highlight(st, amended.Project))

	return nil
}

// DeleteCmd returns the delete command.
func DeleteCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("delete", flag.ContinueOnError),
		Usage: "delete <project>",
		Short: "Delete all intervals for project",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execDelete(o, a, args)
		},
	}
}

func execDelete(o *IO, a *app, args []string) error {
	if len(args) == 0 {
		return period.ErrProjectRequired
	}

	if len(args) > 1 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	removed, err := tracker.Delete(args[0])
	if err != nil {
		return err
	}

	a.logger.Debug("delete finished", "project", args[0], "removed", removed)
	o.Println("Deleted project", highlight(a.styles(), args[0]))

	return nil
}
