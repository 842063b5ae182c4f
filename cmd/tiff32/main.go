// tiff32 is the command-line interface to a 32-bit MachineForth stack processor emulator.
package main

import (
	"context"
	"os"

	"github.com/mforth/tiff32/internal/cli"
	"github.com/mforth/tiff32/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Demo(),
	cmd.Executor(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
