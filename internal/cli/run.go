package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/doug/internal/clock"
	"github.com/calvinalkan/doug/internal/fs"
	"github.com/calvinalkan/doug/internal/logging"
	"github.com/calvinalkan/doug/internal/period"
)

// Run is the main entry point. Returns exit code.
// A value on sigCh cancels the context handed to the command; sigCh may be nil.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	return run(stdin, out, errOut, args, env, sigCh, clock.Real{})
}

func run(
	stdin io.Reader,
	out io.Writer,
	errOut io.Writer,
	args []string,
	env map[string]string,
	sigCh <-chan os.Signal,
	clk clock.Clock,
) int {
	if env == nil {
		env = map[string]string{}
	}

	if len(args) > 0 {
		args = args[1:]
	}

	a := &app{fs: fs.NewReal(), env: env, clock: clk, stdin: stdin, out: out, logger: logging.Discard()}
	commands := allCommands(a)

	globals := newGlobalFlags()

	parseErr := globals.set.Parse(args)
	if parseErr != nil {
		fprintln(errOut, "error:", parseErr)
		fprintln(errOut)
		printUsage(errOut, globals.set, commands)

		return 1
	}

	rest := globals.set.Args()

	if globals.help || len(args) == 0 {
		printUsage(out, globals.set, commands)

		return 0
	}

	if len(rest) == 0 {
		fprintln(errOut, "error:", ErrNoCommand)
		fprintln(errOut)
		printUsage(errOut, globals.set, commands)

		return 1
	}

	cmd, ok := findCommand(commands, rest[0])
	if !ok {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrUnknownCommand, rest[0]))
		fprintln(errOut)
		printUsage(errOut, globals.set, commands)

		return 1
	}

	emptyErr := globals.validate()
	if emptyErr != nil {
		fprintln(errOut, "error:", emptyErr)

		return 1
	}

	cfg, cfgErr := period.LoadConfig(period.LoadConfigInput{
		SettingsDir:     globals.dir,
		ConfigPath:      globals.configPath,
		DataDirOverride: globals.dataDir,
		Env:             env,
	})
	if cfgErr != nil {
		fprintln(errOut, "error:", cfgErr)

		return 1
	}

	a.cfg = cfg

	o := NewIO(out, errOut)

	logger, closeLog, logErr := logging.Open(cfg.DataDirAbs, cfg.LogLevel)
	if logErr != nil {
		o.Warn("logging disabled", logErr.Error())
	} else {
		a.logger = logger
	}

	defer func() { _ = closeLog() }()

	a.logger.Debug("config loaded",
		"settings", cfg.SettingsPath, "data_dir", cfg.DataDirAbs, "created", cfg.Sources.Created)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case sig := <-sigCh:
				a.logger.Info("interrupted", "signal", sig.String())
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if code := cmd.Run(ctx, o, rest[1:]); code != 0 {
		return code
	}

	return o.Finish()
}

// app carries what commands share. Commands hold a pointer and read it at
// Exec time, after configuration has been loaded.
type app struct {
	cfg    period.Config
	fs     fs.FS
	env    map[string]string
	clock  clock.Clock
	logger *slog.Logger
	stdin  io.Reader
	out    io.Writer
}

func (a *app) store() *period.FileStore {
	return period.NewFileStore(a.fs, a.cfg.DataDirAbs, a.logger)
}

func (a *app) tracker() (*period.Tracker, error) {
	return period.OpenTracker(a.store(), a.clock, a.logger)
}

func (a *app) styles() period.Styles {
	return newStyles(a.out, a.env)
}

func allCommands(a *app) []*Command {
	return []*Command{
		StartCmd(a),
		StatusCmd(a),
		StopCmd(a),
		CancelCmd(a),
		RestartCmd(a),
		LogCmd(a),
		ReportCmd(a),
		AmendCmd(a),
		DeleteCmd(a),
		EditCmd(a),
		SettingsCmd(a),
		CompletionCmd(a),
	}
}

func findCommand(commands []*Command, name string) (*Command, bool) {
	for _, c := range commands {
		if c.Name() == name {
			return c, true
		}
	}

	return nil, false
}

type globalFlags struct {
	set        *flag.FlagSet
	dir        string
	configPath string
	dataDir    string
	help       bool
}

func newGlobalFlags() *globalFlags {
	g := &globalFlags{set: flag.NewFlagSet("doug", flag.ContinueOnError)}

	g.set.SetInterspersed(false)
	g.set.SetOutput(&strings.Builder{}) // discard pflag output
	g.set.StringVar(&g.dir, "dir", "", "Settings folder (default $HOME/.doug)")
	g.set.StringVarP(&g.configPath, "config", "c", "", "Use specified settings file")
	g.set.StringVar(&g.dataDir, "data-dir", "", "Override the data location")
	g.set.BoolVarP(&g.help, "help", "h", false, "Show help")

	return g
}

// validate rejects flags given with an empty value, e.g. --data-dir=.
func (g *globalFlags) validate() error {
	for _, name := range []string{"dir", "config", "data-dir"} {
		f := g.set.Lookup(name)
		if g.set.Changed(name) && f.Value.String() == "" {
			return fmt.Errorf("%w: --%s", ErrEmptyFlagValue, name)
		}
	}

	return nil
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, "doug - a time tracking command-line utility")
	fprintln(w)
	fprintln(w, "Usage: doug [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprint(w, globals.FlagUsages())
	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run 'doug <command> --help' for command flags.")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func fprint(w io.Writer, a ...any) {
	_, _ = fmt.Fprint(w, a...)
}
