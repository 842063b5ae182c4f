package vm

// exec.go implements the instruction group dispatcher: Step unpacks up to five 6-bit opcode slots
// plus a 2-bit tail slot from a 32-bit instruction group and executes them left to right.

// Step executes one instruction group. ir is the group fetched from the cell at the current PC;
// paused, when true, suppresses the PC pre-increment and cycle accounting -- used by a host
// single-stepping the machine without having it auto-advance. It returns the PC of the next group
// to fetch.
func (vm *VM) Step(ir uint32, paused bool) uint32 {
	if !paused {
		vm.traceReg(RegPC, Cell(vm.Reg.PC))
		vm.Reg.PC++
	}

	slot := 26

	for slot >= 0 {
		opcode := (ir >> uint(slot)) & 0x3F

		if pc, done := vm.dispatch(opcode, ir, &slot, paused); done {
			return pc
		}

		slot -= 6
	}

	if slot == -4 {
		opcode := ir & 0x3
		if pc, done := vm.dispatch(opcode, ir, &slot, paused); done {
			return pc
		}
	}

	return vm.Reg.PC
}

// dispatch executes a single opcode slot. slot is a pointer so conditional-skip and REPT opcodes
// can reassign it, mirroring the way the group loop's unconditional "slot -= 6" interacts with an
// in-case reassignment: REPT sets *slot to 26 expecting the loop to subtract 6 on its way out,
// landing on 20 and skipping slot 26 on the restarted pass -- a quirk of the source hardware
// carried over here rather than "fixed". done reports whether the instruction group -- and Step
// itself -- ends here.
func (vm *VM) dispatch(opcode uint32, ir uint32, slot *int, paused bool) (pc uint32, done bool) {
	if vm.Traceable {
		if vm.OpCounter[opcode] != 0xFFFFFFFF {
			vm.OpCounter[opcode]++
		}
		if !paused {
			vm.Cycles++
		}
	}

	imm := ir &^ (^uint32(0) << uint(*slot))

	switch opcode {
	case opNOP:
		// nothing
	case opDUP:
		vm.sdup()
	case opSEMI:
		vm.traceReg(RegPC, Cell(vm.Reg.PC))
		vm.Reg.PC = uint32(vm.Reg.R) >> 2
		vm.rdrop()
		if vm.Traceable && !paused {
			vm.Cycles += 3
		}
		return vm.Reg.PC, true
	case opADD:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.T + vm.Reg.N
		vm.snip()
	case opSKIP:
		*slot = 0
	case opRFETCH:
		vm.sdup()
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.R
	case opSEMI2:
		vm.traceReg(RegPC, Cell(vm.Reg.PC))
		vm.Reg.PC = uint32(vm.Reg.R) >> 2
		vm.rdrop()
		if vm.Traceable && !paused {
			vm.Cycles += 3
		}
		return vm.Reg.PC, true
	case opAND:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.T & vm.Reg.N
		vm.snip()
	case opNIF:
		if vm.Reg.T != 0 {
			*slot = 0
		}
	case opOVER:
		n := vm.Reg.N
		vm.sdup()
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = n
	case opRPOP:
		vm.sdup()
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.R
		vm.rdrop()
	case opXOR:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.T ^ vm.Reg.N
		vm.snip()
	case opIF:
		if vm.Reg.T == 0 {
			*slot = 0
		}
	case opAPUSH:
		vm.sdup()
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.A
	case opRDROP:
		vm.rdrop()

	case opPIF:
		if vm.Reg.T&0x80000000 != 0 {
			*slot = 0
		}
	case opSendAXI:
		length := uint32(vm.Reg.N) & 0xFF
		dest := uint32(vm.Reg.T) / 4
		vm.SendAXI(dest, length)
		vm.traceReg(RegA, vm.Reg.A)
		vm.Reg.A += Cell(4 * (length + 1))
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T += Cell(4 * (length + 1))
	case opFetchA:
		vm.fetchX(uint32(vm.Reg.A)>>2, 0, 0xFFFFFFFF)
	case opMIF:
		if vm.Reg.T&0x80000000 == 0 {
			*slot = 0
		}
	case opTwoStar:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.T * 2
	case opFetchAPP:
		vm.fetchX(uint32(vm.Reg.A)>>2, 0, 0xFFFFFFFF)
		vm.traceReg(RegA, vm.Reg.A)
		vm.Reg.A += 4

	case opNext:
		if vm.Reg.R&0x10000 != 0 {
			*slot = 0
		}
		vm.traceReg(RegR, vm.Reg.R)
		vm.Reg.R--
	case opUTwoSlash:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = Cell(uint32(vm.Reg.T) / 2)
	case opWFetchA:
		shift := uint((uint32(vm.Reg.A) & 2) * 8)
		vm.fetchX(uint32(vm.Reg.A)>>2, shift, 0xFFFF)
	case opAStore:
		vm.traceReg(RegA, vm.Reg.A)
		vm.Reg.A = vm.Reg.T
		vm.sdrop()
	case opRept:
		if vm.Reg.R&0x10000 == 0 {
			*slot = 26
		}
		vm.traceReg(RegR, vm.Reg.R)
		vm.Reg.R--
	case opTwoSlash:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = Cell(int32(vm.Reg.T) / 2)
	case opCFetchA:
		shift := uint((uint32(vm.Reg.A) & 3) * 8)
		vm.fetchX(uint32(vm.Reg.A)>>2, shift, 0xFF)
	case opBStore:
		vm.traceReg(RegB, vm.Reg.B)
		vm.Reg.B = vm.Reg.T
		vm.sdrop()

	case opSPGet:
		return vm.getPointer(imm, vm.Reg.SP), true
	case opCom:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = ^vm.Reg.T
	case opStoreA:
		vm.storeX(uint32(vm.Reg.A)>>2, vm.Reg.T, 0, 0xFFFFFFFF)
	case opRPStore:
		vm.traceReg(RegRP, Cell(vm.Reg.RP))
		vm.Reg.RP = uint32(uint8(uint32(vm.Reg.T) >> 2))
		vm.sdrop()
	case opRPGet:
		return vm.getPointer(imm, vm.Reg.RP), true
	case opPort:
		t := vm.Reg.T
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.DebugReg
		vm.traceReg(RegDebug, vm.Reg.DebugReg)
		vm.Reg.DebugReg = t
	case opStoreBPP:
		vm.storeX(uint32(vm.Reg.B)>>2, vm.Reg.T, 0, 0xFFFFFFFF)
		vm.traceReg(RegB, vm.Reg.B)
		vm.Reg.B += 4
	case opSPStore:
		vm.traceReg(RegSP, Cell(vm.Reg.SP))
		vm.Reg.SP = uint32(uint8(uint32(vm.Reg.T) >> 2))

	case opUPGet:
		return vm.getPointer(imm, vm.Reg.UP), true
	case opWStoreA:
		shift := uint((uint32(vm.Reg.A) & 2) * 8)
		vm.storeX(uint32(vm.Reg.A)>>2, vm.Reg.T, shift, 0xFFFF)
	case opUPStore:
		vm.traceReg(RegUP, Cell(vm.Reg.UP))
		vm.Reg.UP = uint32(uint8(uint32(vm.Reg.T) >> 2))
		vm.sdrop()
	case opSH24:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = Cell(uint32(vm.Reg.T)<<24) | Cell(imm&0xFFFFFF)
		return vm.Reg.PC, true
	case opCStoreA:
		shift := uint((uint32(vm.Reg.A) & 3) * 8)
		vm.storeX(uint32(vm.Reg.A)>>2, vm.Reg.T, shift, 0xFF)

	case opUser:
		result := Cell(0)
		if vm.userFn != nil {
			result = vm.userFn(vm.Reg.T, vm.Reg.N, imm)
		}
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = result
		return vm.Reg.PC, true
	case opNip:
		vm.snip()
	case opJump:
		vm.traceReg(RegPC, Cell(vm.Reg.PC))
		vm.Reg.PC = imm
		if vm.Traceable && !paused {
			vm.Cycles += 3
		}
		return vm.Reg.PC, true
	case opReceiveAXI:
		length := uint32(vm.Reg.N) & 0xFF
		src := uint32(vm.Reg.T) / 4
		vm.ReceiveAXI(src, length)
		vm.traceReg(RegA, vm.Reg.A)
		vm.Reg.A += Cell(4 * (length + 1))
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T += Cell(4 * (length + 1))
	case opLit:
		vm.sdup()
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = Cell(imm)
		return vm.Reg.PC, true

	case opDrop:
		vm.sdrop()
	case opRot:
		idx := vm.Reg.SP & vm.ramMask
		top := vm.RAM[idx]
		vm.traceMem(idx, top)
		vm.RAM[idx] = vm.Reg.N
		vm.traceReg(RegN, vm.Reg.N)
		vm.Reg.N = vm.Reg.T
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = top
	case opCall:
		vm.rdup()
		vm.traceReg(RegR, vm.Reg.R)
		vm.Reg.R = Cell(vm.Reg.PC << 2)
		vm.traceReg(RegPC, Cell(vm.Reg.PC))
		vm.Reg.PC = imm
		if vm.Traceable && !paused {
			vm.Cycles += 3
		}
		return vm.Reg.PC, true
	case opInc:
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = vm.Reg.T + 1
	case opToR:
		vm.rdup()
		vm.traceReg(RegR, vm.Reg.R)
		vm.Reg.R = vm.Reg.T
		vm.sdrop()
	case opSwap:
		t, n := vm.Reg.T, vm.Reg.N
		vm.traceReg(RegN, vm.Reg.N)
		vm.Reg.N = t
		vm.traceReg(RegT, vm.Reg.T)
		vm.Reg.T = n

	default:
		// unassigned opcode: no-op
	}

	return vm.Reg.PC, false
}

// getPointer implements the SP/RP/UP opcodes: it loads A with the byte address of the cell
// (imm+base) cells into RAM (ROMsize cells further along the unified address space), and ends the
// instruction group the way every opcode that touches A with an immediate operand does.
func (vm *VM) getPointer(imm uint32, base uint32) uint32 {
	addr := (imm + base + uint32(len(vm.ROM))) * 4
	vm.traceReg(RegA, vm.Reg.A)
	vm.Reg.A = Cell(addr)
	return vm.Reg.PC
}
