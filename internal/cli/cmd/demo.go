package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mforth/tiff32/internal/cli"
	"github.com/mforth/tiff32/internal/log"
	"github.com/mforth/tiff32/internal/vm"
)

// Demo is a demonstration command.
func Demo() cli.Command {
	return new(demo)
}

type demo struct {
	debug bool
	quiet bool
}

func (demo) Description() string {
	return "run demo program"
}

func (d demo) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `
demo [ -debug | -quiet ]

Run a small built-in demonstration program and print the final register
file.`)

	return err
}

func (d *demo) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)

	fs.BoolVar(&d.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&d.quiet, "quiet", false, "enable quiet output, final register file only")

	return fs
}

// demoProgram computes (2 1+) + (3 1+) using four instruction groups: two literals each followed
// by 1+, with the second 1+ sharing its group with the + that adds them. It demonstrates LIT, 1+
// and DUP-free arithmetic in one small image, and ends by running off the end of ROM.
func demoProgram() []vm.Cell {
	lit := func(n uint32) uint32 { return (opLit << 26) | (n & 0x3FFFFFF) }
	slot := func(ops ...uint32) uint32 {
		var ir uint32

		offs := []uint{26, 20, 14, 8, 2}
		for i, op := range ops {
			ir |= op << offs[i]
		}

		return ir
	}

	const (
		opLit = 0o70
		opInc = 0o75
		opAdd = 0o03
	)

	return []vm.Cell{
		vm.Cell(lit(2)),
		vm.Cell(slot(opInc)),
		vm.Cell(lit(3)),
		vm.Cell(slot(opInc, opAdd)),
	}
}

func (d demo) Run(ctx context.Context, args []string, out io.Writer, _ *log.Logger) int {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if d.quiet {
		log.LogLevel.Set(log.Error)
	}

	if d.debug {
		log.LogLevel.Set(log.Debug)
	}

	logger := log.NewFormattedLogger(os.Stdout)
	log.SetDefault(logger)
	log.DefaultLogger = func() *log.Logger {
		return logger
	}

	logger.Info("Initializing machine")

	prog := demoProgram()
	machine := vm.New(len(prog), ramCells, axiCells, vm.WithLogger(logger))

	logger.Info("Loading program")

	loader := vm.NewLoader(machine)
	code := vm.ObjectCode{Orig: 0, Code: prog}

	if _, err := loader.Load(code); err != nil {
		logger.Error("error loading code", "err", err)
		return 2
	}

	done := make(chan error, 1)

	go func() {
		logger.Info("Starting machine")
		done <- run(machine)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error(err.Error())
			return 2
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Warn("Demo timeout")
			return 2
		}
	}

	printState(out, machine)
	logger.Info("Demo completed")

	return 0
}
