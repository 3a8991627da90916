package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a CLI command with unified help generation.
type Command struct {
	// Flags defines command-specific flags.
	// The FlagSet name is not used - command identity comes from Usage.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "doug" in help.
	// Includes the command name and arguments/flags.
	// Examples: "start [project]", "report [flags]", "amend <project>"
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Long is the full description shown in command help.
	// If empty, Short is used instead.
	Long string

	// FlagGroups splits the flag listing in help into titled sections.
	// Flags not named in any group are listed under "Flags:".
	FlagGroups []FlagGroup

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// FlagGroup is a titled set of flags in command help.
type FlagGroup struct {
	Title string
	Names []string
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-26s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "doug <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: doug", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	grouped := make(map[string]bool)

	for _, g := range c.FlagGroups {
		set := flag.NewFlagSet(g.Title, flag.ContinueOnError)

		for _, name := range g.Names {
			if f := c.Flags.Lookup(name); f != nil {
				set.AddFlag(f)
				grouped[name] = true
			}
		}

		printFlags(o, g.Title, set)
	}

	rest := flag.NewFlagSet("rest", flag.ContinueOnError)

	c.Flags.VisitAll(func(f *flag.Flag) {
		if !grouped[f.Name] {
			rest.AddFlag(f)
		}
	})

	printFlags(o, "Flags", rest)
}

func printFlags(o *IO, title string, set *flag.FlagSet) {
	if !set.HasFlags() {
		return
	}

	o.Println()
	o.Println(title + ":")

	var buf strings.Builder
	set.SetOutput(&buf)
	set.PrintDefaults()
	o.Printf("%s", buf.String())
}

// Run parses flags and executes the command. Returns exit code.
// Handles error printing internally for consistent output ordering.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)
		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
