package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// StatusCmd returns the status command.
func StatusCmd(a *app) *Command {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	flags.BoolP("simple", "s", false, "Print running project name or nothing if there isn't a running project")
	flags.BoolP("time", "t", false, "Print time for currently tracked project")

	return &Command{
		Flags: flags,
		Usage: "status [flags]",
		Short: "Display elapsed time, start time, and running project name",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execStatus(o, a, flags, args)
		},
	}
}

func execStatus(o *IO, a *app, flags *flag.FlagSet, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	simpleName, _ := flags.GetBool("simple")
	simpleTime, _ := flags.GetBool("time")

	tracker, err := a.tracker()
	if err != nil {
		return err
	}

	status, err := tracker.Status(simpleName, simpleTime)
	if err != nil {
		return err
	}

	if status != "" {
		o.Println(status)
	}

	return nil
}
