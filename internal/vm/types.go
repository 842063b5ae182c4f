package vm

// types.go defines the basic data types of the CPU.

import (
	"fmt"
)

// Cell is the VM's fundamental 32-bit unsigned word. Registers, memory cells and instruction
// groups all work on cells.
type Cell uint32

func (c Cell) String() string {
	return fmt.Sprintf("%0#10x", uint32(c))
}

// RegID identifies the target of a trace record. Negative values are the bitwise complement of a
// register index; non-negative values are a RAM cell index. See Tracer.
type RegID int32

// Register identifiers used by the tracing facility. Index order matches the source hardware's
// register file layout; UnTrace relies on it.
const (
	RegT RegID = -1 - iota
	RegN
	RegR
	RegA
	RegB
	RegRP
	RegSP
	RegUP
	RegPC
	RegDebug
)

func (id RegID) String() string {
	switch id {
	case RegT:
		return "T"
	case RegN:
		return "N"
	case RegR:
		return "R"
	case RegA:
		return "A"
	case RegB:
		return "B"
	case RegRP:
		return "RP"
	case RegSP:
		return "SP"
	case RegUP:
		return "UP"
	case RegPC:
		return "PC"
	case RegDebug:
		return "DebugReg"
	default:
		return fmt.Sprintf("RAM[%#x]", uint32(id))
	}
}

// Registers holds the nine architectural registers plus the debug mailbox.
//
// T and N are the top two cells of the data stack; the rest of the stack lives in RAM, indexed by
// SP. R is the top of the return stack, the rest indexed by RP. A and B are address registers used
// by the fetch/store and burst-transfer opcodes. UP is the user pointer. PC is a cell index, not a
// byte address, while the return stack holds PC as a byte address -- see CALL and ; in exec.go.
type Registers struct {
	T, N, R, A, B Cell
	RP, SP, UP    uint32
	PC            uint32
	DebugReg      Cell
}

// Error codes surfaced through WriteROM, EraseAXI4K and the shared IOR channel used by the AXI
// burst opcodes.
const (
	ErrAlignment int32 = -23 // byte address is not a multiple of 4
	ErrRange     int32 = -9  // address or transfer length falls outside the region
	ErrAXIWrite  int32 = -60 // AXI write found a bit clear in both the AXI cell and the source word
)
