package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/period"
)

// EditCmd returns the edit command.
func EditCmd(a *app) *Command {
	flags := flag.NewFlagSet("edit", flag.ContinueOnError)
	flags.StringP("start", "s", "", "Starting date (e.g. \"thursday 9:00am\", \"today 12:15pm\")")
	flags.StringP("end", "e", "", "Ending date")

	return &Command{
		Flags: flags,
		Usage: "edit [flags]",
		Short: "Edit last frame or currently running frame",
		Long: "Set the start and/or end time of the most recent period.\n" +
			"Without flags, open the data file in your editor.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execEdit(ctx, o, a, flags, args)
		},
	}
}

func execEdit(ctx context.Context, o *IO, a *app, flags *flag.FlagSet, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	edited, changed, err := tracker.Edit(stringFlag(flags, "start"), stringFlag(flags, "end"))
	if err != nil {
		return err
	}

	if changed {
		o.Println(period.FormatPeriod(edited, tracker.Now()))

		return nil
	}

	path := a.store().Path()

	editor, err := resolveEditor(a.cfg, a.env)
	if err != nil {
		return err
	}

	o.Println("File:", highlight(a.styles(), path))
	a.logger.Debug("opening editor", "editor", editor, "path", path)

	return runEditor(ctx, editor, path, a.stdin, o.out, o.errOut)
}

// stringFlag returns the flag value, or nil when the flag was not given.
func stringFlag(flags *flag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}

	value, _ := flags.GetString(name)

	return &value
}
