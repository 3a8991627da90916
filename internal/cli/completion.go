package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// CompletionCmd returns the completion command.
func CompletionCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("completion", flag.ContinueOnError),
		Usage: "completion [bash|zsh|fish]",
		Short: "Generate shell completions",
		Long: "Print a completion script for the given shell (default: bash).\n" +
			"Example: doug completion bash > /etc/bash_completion.d/doug",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execCompletion(o, allCommands(a), args)
		},
	}
}

func execCompletion(o *IO, commands []*Command, args []string) error {
	if len(args) > 1 {
		return ErrTooManyArgs
	}

	shell := "bash"
	if len(args) == 1 {
		shell = strings.ToLower(args[0])
	}

	switch shell {
	case "bash":
		o.Printf("%s", bashCompletion(commands))
	case "zsh":
		o.Printf("%s", zshCompletion(commands))
	case "fish":
		o.Printf("%s", fishCompletion(commands))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownShell, shell)
	}

	return nil
}

// longFlags lists the long flag names of c, plus --help.
func longFlags(c *Command) []string {
	var names []string

	c.Flags.VisitAll(func(f *flag.Flag) {
		names = append(names, "--"+f.Name)
	})

	return append(names, "--help")
}

func bashCompletion(commands []*Command) string {
	var b strings.Builder

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name())
	}

	b.WriteString("# bash completion for doug\n")
	b.WriteString("_doug() {\n")
	b.WriteString("    local cur cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W %q -- \"$cur\")) ;;\n",
			c.Name(), strings.Join(longFlags(c), " "))
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _doug doug\n")

	return b.String()
}

func zshCompletion(commands []*Command) string {
	var b strings.Builder

	b.WriteString("#compdef doug\n\n")
	b.WriteString("_doug() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name(), strings.ReplaceAll(c.Short, "'", "'\\''"))
	}

	b.WriteString("    )\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    case \"$words[2]\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s) compadd -- %s ;;\n", c.Name(), strings.Join(longFlags(c), " "))
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _doug doug\n")

	return b.String()
}

func fishCompletion(commands []*Command) string {
	var b strings.Builder

	b.WriteString("# fish completion for doug\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c doug -f -n '__fish_use_subcommand' -a %s -d %q\n", c.Name(), c.Short)
	}

	for _, c := range commands {
		c.Flags.VisitAll(func(f *flag.Flag) {
			line := fmt.Sprintf("complete -c doug -n '__fish_seen_subcommand_from %s' -l %s", c.Name(), f.Name)
			if f.Shorthand != "" {
				line += " -s " + f.Shorthand
			}

			fmt.Fprintf(&b, "%s -d %q\n", line, f.Usage)
		})
	}

	return b.String()
}
