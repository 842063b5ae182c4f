package vm

// trace.go implements the exactly-reversible mutation tracing facility.

// TraceType distinguishes the kind of storage a trace record refers to.
type TraceType int

const (
	// TraceRegister records a mutation to one of the architectural registers, identified by a
	// RegID.
	TraceRegister TraceType = iota
	// TraceRAM records a mutation to a RAM cell, identified by its cell index.
	TraceRAM
	// TraceAXI records a mutation to an AXI cell, identified by its cell index.
	TraceAXI
)

// Tracer receives a notification before every register or memory mutation the VM makes. old is
// the value about to be overwritten. Implementations must not mutate the VM from within Trace;
// the call happens before the write actually lands.
type Tracer interface {
	Trace(kind TraceType, id int32, old, new Cell)
}

// NopTracer discards every trace record. It is the default tracer so untraced execution carries
// no bookkeeping overhead beyond a single interface call.
type NopTracer struct{}

func (NopTracer) Trace(TraceType, int32, Cell, Cell) {}

// traceReg reports a register mutation, when tracing is enabled.
func (vm *VM) traceReg(id RegID, old Cell) {
	if vm.Traceable {
		vm.tracer.Trace(TraceRegister, int32(id), old, 0)
	}
}

// traceMem reports a RAM mutation, when tracing is enabled.
func (vm *VM) traceMem(idx uint32, old Cell) {
	if vm.Traceable {
		vm.tracer.Trace(TraceRAM, int32(idx), old, 0)
	}
}

// traceAXI reports an AXI mutation, when tracing is enabled.
func (vm *VM) traceAXI(idx uint32, old Cell) {
	if vm.Traceable {
		vm.tracer.Trace(TraceAXI, int32(idx), old, 0)
	}
}

// UnTrace restores a single prior value reported by a Tracer. Callers replay a sequence of trace
// records in the exact reverse of the order they were reported to undo a run of instructions. It
// performs a direct write with no side effects -- in particular, restoring a RegID that backs a
// stack register (T, N, R) does not push or pop anything on the corresponding stack; the cell(s)
// that SDUP/SDROP touched in RAM are restored by their own, separately reported, TraceRAM records.
func (vm *VM) UnTrace(kind TraceType, id int32, old Cell) {
	switch kind {
	case TraceRegister:
		switch RegID(id) {
		case RegT:
			vm.Reg.T = old
		case RegN:
			vm.Reg.N = old
		case RegR:
			vm.Reg.R = old
		case RegA:
			vm.Reg.A = old
		case RegB:
			vm.Reg.B = old
		case RegRP:
			vm.Reg.RP = uint32(old)
		case RegSP:
			vm.Reg.SP = uint32(old)
		case RegUP:
			vm.Reg.UP = uint32(old)
		case RegPC:
			vm.Reg.PC = uint32(old)
		case RegDebug:
			vm.Reg.DebugReg = old
		}
	case TraceRAM:
		vm.RAM[uint32(id)] = old
	case TraceAXI:
		vm.AXI[uint32(id)] = old
	}
}
