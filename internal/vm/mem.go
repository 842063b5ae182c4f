package vm

// mem.go contains the machine's memory regions and the address decoder.

import (
	"fmt"
)

// ROM, RAM and AXI are addressed as cells, not bytes. An address is decoded by range: anything
// below ROMsize is ROM, the next RAMsize cells are RAM, and anything below AXIsize is AXI. Note
// the asymmetry carried over from the source hardware: the AXI test is against AXIsize alone, not
// ROMsize+RAMsize+AXIsize, so a machine built with a small AXI region and large ROM/RAM regions
// can have ROM or RAM addresses that alias into what would otherwise be the AXI window. This is
// not "fixed" here; see DESIGN.md.
type region int

const (
	regionROM region = iota
	regionRAM
	regionAXI
	regionNone
)

// decode returns which region a cell address falls into.
func (vm *VM) decode(addr uint32) region {
	switch {
	case addr < uint32(len(vm.ROM)):
		return regionROM
	case addr < uint32(len(vm.ROM)+len(vm.RAM)):
		return regionRAM
	case addr < uint32(len(vm.AXI)):
		return regionAXI
	default:
		return regionNone
	}
}

// fetchX implements the @A/@A+/W@A/C@A family: it pushes a fresh cell onto the data stack (via
// sdup) and fills T with shift/mask-selected bits read from the cell at addr, a cell index (not a
// byte address). Out-of-range addresses silently read as zero, matching the source hardware's
// floating bus rather than raising an error.
func (vm *VM) fetchX(addr uint32, shift uint, mask uint32) {
	vm.sdup()

	var cell Cell

	switch {
	case addr < uint32(len(vm.ROM)):
		cell = vm.ROM[addr]
	case addr < uint32(len(vm.ROM)+len(vm.RAM)):
		cell = vm.RAM[addr-uint32(len(vm.ROM))]
	case addr < uint32(len(vm.AXI)):
		cell = vm.AXI[addr]
	default:
		cell = 0
	}

	vm.traceReg(RegT, vm.Reg.T)
	vm.Reg.T = Cell((uint32(cell) >> shift) & mask)
}

// storeX implements the !A/!B+/W!A/C!A family: it writes shift/mask-selected bits of data into a
// RAM cell, merging with the bits outside the mask, and then pops the data stack (via sdrop). addr
// is wrapped modulo RAMsize regardless of what region it would otherwise decode to -- the source
// hardware's store path only ever targets RAM.
func (vm *VM) storeX(addr uint32, data Cell, shift uint, mask uint32) {
	idx := addr & vm.ramMask

	old := vm.RAM[idx]
	cleared := uint32(old) &^ (mask << shift)
	next := Cell(((uint32(data) & mask) << shift) | cleared)

	vm.traceMem(idx, old)
	vm.RAM[idx] = next

	vm.sdrop()
}

// WriteROM writes a single cell into ROM at byteAddr, which must be 4-byte aligned. It returns 0
// on success, ErrAlignment if byteAddr is not a multiple of 4, or ErrRange if the target cell
// falls outside ROM. Writes are unconditional in the emulator: a real one-time-programmable fuse
// would enforce write-once on the host side, but the VM itself does not.
func (vm *VM) WriteROM(data Cell, byteAddr uint32) int32 {
	if byteAddr&0x3 != 0 {
		return ErrAlignment
	}

	cell := byteAddr / 4
	if cell >= uint32(len(vm.ROM)) {
		return ErrRange
	}

	vm.ROM[cell] = data

	return 0
}

// WriteROMImage writes a contiguous program image into ROM starting at cell 0, as a convenience
// for loaders that hold a full image rather than issuing individual cell writes. It stops at the
// first WriteROM error.
func (vm *VM) WriteROMImage(image []Cell) error {
	for i, cell := range image {
		if errc := vm.WriteROM(cell, uint32(i)*4); errc != 0 {
			return fmt.Errorf("vm: WriteROM(%#x): error %d", uint32(i)*4, errc)
		}
	}

	vm.log.Debug("ROM written", "cells", len(image))

	return nil
}
