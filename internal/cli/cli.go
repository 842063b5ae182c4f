// Package cli contains the command-line interface that drives the emulator: it dispatches a
// sub-command by name and hands it a context, the remaining arguments, an output writer and a
// logger. A VM's run loop can be long enough that a host wants to cancel it (exec's 10-second
// timeout, demo's 5-second one), so Commander carries the context every Command.Run receives
// rather than each command reaching for context.Background() on its own.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/mforth/tiff32/internal/log"
)

// Command represents a sub-command in the CLI: load a ROM image, run it, print the machine's
// final state. Each sub-command has its own flags and action.
type Command interface {
	// FlagSet returns a set of command options the command accepts.
	FlagSet() *flag.FlagSet

	// Description returns a brief description of the command's function.
	Description() string

	// Usage prints detailed command documentation.
	Usage(out io.Writer) error

	// Run executes the command with arguments. Command output should be written to |out|. It
	// returns an exit code.
	Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int
}

// Commander is a CLI command-runner that handles the life cycle of a CLI command execution: name
// resolution, flag parsing, and dispatch to Command.Run.
type Commander struct {
	ctx  context.Context
	name string
	log  *log.Logger

	help     Command
	commands []Command
}

// New creates a new Commander that can start sub-commands. Its program name starts empty, which
// Name reports as DefaultName; WithName sets another.
func New(ctx context.Context) *Commander {
	return &Commander{
		ctx: ctx,
	}
}

// DefaultName is the program name reported in help text when Commander is not given one.
const DefaultName = "tiff32"

// Name returns the program name Commander reports in help text.
func (cli *Commander) Name() string {
	if cli.name == "" {
		return DefaultName
	}

	return cli.name
}

// WithName overrides the program name reported in help text.
func (cli *Commander) WithName(name string) *Commander {
	cli.name = name
	return cli
}

// Execute resolves args[0] to a registered Command (falling back to help on no args or an
// unrecognized name), parses its flags, and runs it.
func (cli *Commander) Execute(args []string) int {
	if len(args) == 0 {
		flag.Parse()
		cli.help.Run(cli.ctx, nil, os.Stdout, cli.log)

		return 1
	}

	found := cli.help // Default, if no match.

	for _, cmd := range cli.commands {
		if args[0] == cmd.FlagSet().Name() {
			found = cmd
		}
	}

	fs := found.FlagSet()
	args = args[1:]

	if err := fs.Parse(args); err != nil {
		cli.log.Error("parse error", "err", err)
		return 1
	}

	cli.log.Debug("dispatching command", "name", fs.Name())

	return found.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)
}

// WithCommands adds a list of commands as sub-commands.
func (cli *Commander) WithCommands(cmds []Command) *Commander {
	cli.commands = append([]Command(nil), cmds...)
	return cli
}

// WithHelp configures the help message a command.
func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

// WithLogger configures the logger for the CLI. Logs are written to out; the tiff32 command passes
// os.Stderr to leave os.Stdout for the machine's register dump and other program output.
func (cli *Commander) WithLogger(out *os.File) *Commander {
	logger := log.NewFormattedLogger(out)
	cli.log = logger

	log.SetDefault(logger)

	return cli
}

// Type aliases from std lib.
type (
	Flag    = flag.Flag
	FlagSet = flag.FlagSet
)
