package main_test

import (
	"io"
	"log"
	"testing"

	"github.com/mforth/tiff32/internal/vm"
)

func init() {
	log.Default().SetOutput(io.Discard)
}

// pack places up to five non-immediate opcodes into an instruction group's five slots, in order.
func pack(ops ...uint32) uint32 {
	var ir uint32

	slots := []uint{26, 20, 14, 8, 2}
	for i, op := range ops {
		ir |= op << slots[i]
	}

	return ir
}

// TestMain exercises the ROM-loader and step loop end to end, as the exec and demo commands drive
// the machine: LIT a value, double it, and confirm the final register file.
func TestMain(t *testing.T) {
	const (
		opLit   = 0o70
		opTwoStar = 0o25
	)

	machine := vm.New(2, 64, 0)

	lit := (uint32(opLit) << 26) | 21
	two := pack(opTwoStar)

	if err := machine.WriteROMImage([]vm.Cell{vm.Cell(lit), vm.Cell(two)}); err != nil {
		t.Fatalf("WriteROM: %v", err)
	}

	pc := uint32(0)
	for pc < uint32(len(machine.ROM)) {
		ir := uint32(machine.ROM[pc])
		pc = machine.Step(ir, false)
	}

	if machine.Reg.T != 42 {
		t.Errorf("T after program: want 42 got %s", machine.Reg.T)
	}
}
