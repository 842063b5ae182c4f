package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mforth/tiff32/internal/cli"
	"github.com/mforth/tiff32/internal/encoding"
	"github.com/mforth/tiff32/internal/log"
	"github.com/mforth/tiff32/internal/tty"
	"github.com/mforth/tiff32/internal/vm"
)

func Executor() cli.Command {
	exec := &executor{log: log.DefaultLogger()}
	return exec
}

type executor struct {
	logLevel slog.Level
	log      *log.Logger
}

func (executor) Description() string {
	return "run a ROM image"
}

func (executor) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `exec program.hex

Loads a hex-encoded ROM image and runs it in the emulator until the program
counter runs off the end of ROM or the timeout elapses.`)

	return err
}

func (ex *executor) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	fs.Func("loglevel", "set log `level`", func(s string) error {
		return ex.logLevel.UnmarshalText([]byte(s))
	})

	return fs
}

// Run loads a ROM image and steps the machine until it falls off the end of ROM, the context is
// cancelled, or the timeout elapses.
func (ex *executor) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger,
) int {
	log.LogLevel.Set(ex.logLevel)

	code, err := ex.loadCode(args[0])
	if err != nil {
		logger.Error("Error loading code", "err", err)
		return -1
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(context.Canceled)

	ctx, cancelTimeout := context.WithTimeout(ctx, 10*time.Second)
	defer cancelTimeout()

	logger.Debug("Initializing machine")

	machine := vm.New(romCells, ramCells, axiCells, vm.WithLogger(logger))

	loader := vm.NewLoader(machine)
	count := 0

	for i := range code {
		n, err := loader.Load(code[i])
		count += n

		if err != nil {
			logger.Error(err.Error())
			return 1
		}
	}

	logger.Debug("Loaded program", "file", args[0], "loaded", count)

	done := make(chan error, 1)

	go func() {
		logger.Info("Starting machine")
		done <- run(machine)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Program error", "err", err)
			return 2
		}

		logger.Info("Program completed", "cycles", machine.Cycles, "PC", machine.Reg.PC)
		printState(stdout, machine)

		return 0
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Error("Exec timeout!")
			return 2
		}

		logger.Info("Terminated")

		return 0
	}
}

// romCells, ramCells and axiCells size the machine exec builds: a modest ROM and RAM footprint
// with no AXI storage, since exec has no way to preload AXI contents.
const (
	romCells = 1 << 14
	ramCells = 1 << 12
	axiCells = 0
)

// run steps the machine until the program counter runs off the end of ROM, which this command
// treats as the program's natural exit -- the ISA itself has no HALT opcode.
func run(machine *vm.VM) error {
	for machine.Reg.PC < uint32(len(machine.ROM)) {
		ir := uint32(machine.ROM[machine.Reg.PC])
		machine.Step(ir, false)
	}

	return nil
}

// printState prints the machine's final register file, padding the separator rule to the width of
// the output terminal when out is one.
func printState(out io.Writer, machine *vm.VM) {
	width := tty.DefaultWidth

	if f, ok := out.(*os.File); ok {
		width = tty.Width(f)
	}

	fmt.Fprintln(out, strings.Repeat("-", width))
	fmt.Fprintln(out, machine.String())
}

func (ex executor) loadCode(fn string) ([]vm.ObjectCode, error) {
	ex.log.Debug("Loading executable", "file", fn)

	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	code, err := io.ReadAll(file)
	if err != nil {
		ex.log.Error(err.Error())
		return nil, err
	}

	ex.log.Debug("Loaded file", "bytes", len(code))

	hex := encoding.HexEncoding{}

	if err = hex.UnmarshalText(code); err != nil {
		ex.log.Error(err.Error())
		return nil, err
	}

	return hex.Code, nil
}
