package cli

import (
	"context"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/period"
)

// SettingsCmd returns the settings command.
func SettingsCmd(a *app) *Command {
	flags := flag.NewFlagSet("settings", flag.ContinueOnError)
	flags.String("data-location", "", "Move the data file to this folder and remember it")
	flags.Bool("clear", false, "Clear the settings file (defaults are recreated on next run)")

	return &Command{
		Flags: flags,
		Usage: "settings [flags]",
		Short: "Show or change settings",
		Long: "Print the settings file and its values.\n" +
			"With --data-location, the current periods are saved into the new folder.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execSettings(o, a, flags, args)
		},
	}
}

func execSettings(o *IO, a *app, flags *flag.FlagSet, args []string) error {
	if len(args) > 0 {
		return ErrTooManyArgs
	}

	if clearSettings, _ := flags.GetBool("clear"); clearSettings {
		err := period.ClearSettings(a.cfg.SettingsPath)
		if err != nil {
			return err
		}

		o.Println("Cleared settings file")

		return nil
	}

	if flags.Changed("data-location") {
		location, _ := flags.GetString("data-location")

		err := moveDataLocation(o, a, location)
		if err != nil {
			return err
		}
	}

	o.Printf("%s:\n", a.cfg.SettingsPath)
	o.Println("data_location:", a.cfg.DataLocation)

	if a.cfg.Editor != "" {
		o.Println("editor:", a.cfg.Editor)
	}

	if a.cfg.LogLevel != "" {
		o.Println("log_level:", a.cfg.LogLevel)
	}

	return nil
}

// moveDataLocation saves the current periods into location and points the
// settings file at it.
func moveDataLocation(o *IO, a *app, location string) error {
	if location == "" {
		return period.ErrDataLocationEmpty
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", period.ErrConfigWrite, location, err)
	}

	periods, err := a.store().Load()
	if err != nil {
		return err
	}

	mkdirErr := a.fs.MkdirAll(abs, 0o750)
	if mkdirErr != nil {
		return fmt.Errorf("%w: %s: %w", period.ErrConfigWrite, abs, mkdirErr)
	}

	target := period.NewFileStore(a.fs, abs, a.logger)

	existing, err := target.Load()
	if err != nil {
		return err
	}

	if len(existing) > 0 && abs != a.cfg.DataDirAbs {
		o.Warn("replaced existing periods in "+target.Path(), "previous content kept in "+target.BackupPath())
	}

	saveErr := target.Save(periods)
	if saveErr != nil {
		return saveErr
	}

	a.cfg.DataLocation = abs
	a.cfg.DataDirAbs = abs

	writeErr := period.SaveSettings(a.cfg.SettingsPath, a.cfg)
	if writeErr != nil {
		return writeErr
	}

	a.logger.Info("data location changed", "path", abs, "periods", len(periods))

	return nil
}
