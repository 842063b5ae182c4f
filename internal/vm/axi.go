package vm

// axi.go implements the burst-transfer engine between RAM and the AXI (NOR-flash-like) region.
// SendAXI and ReceiveAXI back the !AS and @AS opcodes; the RAM-side cell index always comes from
// the A register, the way the source hardware derives it, while the AXI-side address and transfer
// length (minus one) are passed in from the opcode's T and N.

// sectorCells is the number of cells EraseAXI4K clears to all-ones per call: 4KB of bytes, i.e.
// 1024 cells, starting at the given address with no alignment rounding.
const sectorCells = 1024

// SendAXI streams length+1 cells from RAM, starting at the cell A addresses, into AXI starting at
// dest. AXI can only have bits cleared, never set, so each destination cell is ANDed with the
// source; the first cell with a bit that is clear in both the AXI cell and the source word (that
// is, old|data is not all ones) leaves vm.IOR set to ErrAXIWrite and stops the transfer, with
// every cell written before the failure left in place. Range violations set ErrRange and write
// nothing.
func (vm *VM) SendAXI(dest, length uint32) {
	src := int64(vm.Reg.A)/4 - int64(len(vm.ROM))

	if src < 0 || src+int64(length) >= int64(len(vm.RAM)) ||
		int64(dest)+int64(length) >= int64(len(vm.AXI)) {
		vm.IOR = ErrRange
		return
	}

	s := uint32(src)

	for i := uint32(0); i <= length; i++ {
		old := vm.AXI[dest]
		data := vm.RAM[s]
		s++

		if old|data != ^Cell(0) {
			vm.IOR = ErrAXIWrite
			return
		}

		vm.traceAXI(dest, old)
		vm.AXI[dest] = old & data
		dest++
	}
}

// ReceiveAXI streams length+1 cells from AXI, starting at src, into RAM starting at the cell A
// addresses. This is the direction implied by the @AS opcode's name -- pull from AXI into RAM --
// which the original C source's memmove call gets backwards, copying in the wrong direction
// through a pair of mismatched local variables. See DESIGN.md for the discrepancy.
func (vm *VM) ReceiveAXI(src, length uint32) {
	dest := int64(vm.Reg.A)/4 - int64(len(vm.ROM))

	if dest < 0 || dest+int64(length) >= int64(len(vm.RAM)) ||
		int64(src)+int64(length) >= int64(len(vm.AXI)) {
		vm.IOR = ErrRange
		return
	}

	d := uint32(dest)

	for i := uint32(0); i <= length; i++ {
		vm.traceMem(d, vm.RAM[d])
		vm.RAM[d] = vm.AXI[src]
		d++
		src++
	}
}

// EraseAXI4K sets every bit in the 1024 cells starting at the cell addressed by the byte address
// addr back to one -- no rounding to a sector boundary, matching the source hardware exactly.
// Returns 0 on success or ErrAlignment/ErrRange on failure, matching WriteROM's calling convention.
func (vm *VM) EraseAXI4K(addr uint32) int32 {
	if addr&0x3 != 0 {
		return ErrAlignment
	}

	cell := addr / 4
	if uint64(cell)+sectorCells > uint64(len(vm.AXI)) {
		return ErrRange
	}

	for i := cell; i < cell+sectorCells; i++ {
		vm.traceAXI(i, vm.AXI[i])
		vm.AXI[i] = ^Cell(0)
	}

	return 0
}
