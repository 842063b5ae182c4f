package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/mforth/tiff32/internal/cli"
	"github.com/mforth/tiff32/internal/log"
)

type help struct {
	cmd  []cli.Command
	name string
}

var _ cli.Command = (*help)(nil)

func (help) Description() string {
	return "display help for commands"
}

func (h help) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("help", flag.ExitOnError)
}

func (h help) Run(_ context.Context, args []string, out io.Writer, log *log.Logger) int {
	if len(args) == 1 {
		for _, cmd := range h.cmd {
			if args[0] == cmd.FlagSet().Name() {
				h.printCommandHelp(cmd)
			}
		}
	} else {
		out := flag.CommandLine.Output()
		if err := h.Usage(out); err != nil {
			return 1
		}
	}

	return 0
}

func (h *help) Usage(out io.Writer) error {
	name := h.progName()

	_, err := fmt.Fprintf(out, `
%[1]s is a virtual machine and programming tool for a 32-bit MachineForth
stack processor. It has no outer compiler or assembler of its own: %[1]s
runs object code assembled elsewhere, encoded the way exec's usage text
describes.

Usage:

        %[1]s <command> [option]... [arg]...

Commands:
`, name)
	if err != nil {
		return err
	}

	for _, cmd := range h.cmd {
		fs := cmd.FlagSet()
		fmt.Fprintf(out, "  %-20s %s\n", fs.Name(), cmd.Description())
	}

	fmt.Fprintf(out, "  %-20s %s\n", h.FlagSet().Name(), h.Description())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Use `%s help <command>` to get help for a command.\n", name)

	return err
}

func (h *help) printCommandHelp(cmd cli.Command) {
	out := flag.CommandLine.Output()
	_ = cmd.FlagSet().Parse(nil)

	fmt.Fprintf(out, "Usage:\n\n        %s ", h.progName())

	if err := cmd.Usage(out); err != nil {
		return
	}

	fmt.Fprintln(out, "\nOptions:")
	cmd.FlagSet().PrintDefaults()
}

// progName reports the program name used in usage text, falling back to cli.DefaultName when
// Help was constructed without one (e.g. by a test that only needs the Command interface).
func (h *help) progName() string {
	if h.name == "" {
		return cli.DefaultName
	}

	return h.name
}

// Help builds the help command listing cmd. name, if non-empty, overrides the program name
// ("tiff32") reported in usage text -- useful for a host embedding the CLI under another name.
func Help(cmd []cli.Command, name ...string) *help {
	h := &help{cmd: cmd}

	if len(name) > 0 {
		h.name = name[0]
	}

	return h
}
