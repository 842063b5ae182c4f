package vm

// vm.go defines the virtual machine and assembles it from smaller parts.

import (
	"fmt"

	"github.com/mforth/tiff32/internal/log"
)

// VM is a 32-bit stack machine simulated in software.
type VM struct {
	Reg Registers

	ROM []Cell // Program memory; written through WriteROM, never by instruction execution.
	RAM []Cell // General read/write storage; the data and return stacks live in it, below SP and RP.
	AXI []Cell // NOR-flash-like burst-transfer memory; writes can only clear bits.

	// IOR is the shared result/error mailbox that burst-transfer and other fallible opcodes
	// leave a status in, mirroring the source hardware's single I/O-result register.
	IOR int32

	// OpCounter tallies how many times each of the 64 opcodes has been dispatched. It is only
	// maintained when Traceable is set, since it otherwise adds bookkeeping cost to every Step.
	OpCounter [64]uint32

	// Cycles counts the opcode slots executed since the last Reset, plus three more for each slot
	// that changes PC. Like OpCounter, it is only maintained when Traceable is set, and paused
	// steps do not add to it.
	Cycles uint64

	// Traceable turns on mutation tracing: when true, every register or memory write invokes
	// tracer.Trace before it lands.
	Traceable bool
	tracer    Tracer

	ramMask uint32
	newSlot bool

	// userFn implements the USER opcode: its result replaces T and the instruction group ends
	// there. A nil userFn makes USER set T to zero.
	userFn UserFunction

	log *log.Logger
}

// UserFunction implements the USER opcode, a host-defined extension point. t and n are the
// opcode's T and N registers at dispatch time and imm is the literal packed into the remainder of
// the slot; its return value replaces T.
type UserFunction func(t, n Cell, imm uint32) Cell

// WithUserFunction installs the handler invoked by the USER opcode.
func WithUserFunction(fn UserFunction) Option {
	return func(vm *VM) { vm.userFn = fn }
}

// Option configures a VM during New.
type Option func(*VM)

// WithLogger installs a logger other than the package default.
func WithLogger(logger *log.Logger) Option {
	return func(vm *VM) { vm.log = logger }
}

// WithTracer installs a Tracer and enables tracing. Without this option the VM runs with a
// NopTracer and Traceable false.
func WithTracer(t Tracer) Option {
	return func(vm *VM) {
		vm.tracer = t
		vm.Traceable = true
	}
}

// New creates a virtual machine with the given region sizes, in cells. ramSize must be a power of
// two: SP and RP wrap by masking, not by division, the way the source hardware's address
// generator does.
func New(romSize, ramSize, axiSize int, opts ...Option) *VM {
	if ramSize <= 0 || ramSize&(ramSize-1) != 0 {
		panic(fmt.Sprintf("vm: RAM size must be a power of two, got %d", ramSize))
	}

	vm := &VM{
		ROM:     make([]Cell, romSize),
		RAM:     make([]Cell, ramSize),
		AXI:     make([]Cell, axiSize),
		ramMask: uint32(ramSize - 1),
		tracer:  NopTracer{},
		log:     log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(vm)
	}

	vm.Reset()

	return vm
}

// Reset performs a power-on reset: registers take their documented initial values, RAM is
// cleared, and the AXI region and ROM image are left untouched (ROM only changes through WriteROM; AXI models
// non-volatile storage that survives a reset on the real hardware). Bookkeeping counters are only
// cleared when the VM is tracing -- an untraced VM never touched them in the first place.
func (vm *VM) Reset() {
	vm.Reg = Registers{
		PC: 0,
		RP: 64,
		SP: 32,
		UP: 64,
	}

	for i := range vm.RAM {
		vm.RAM[i] = 0
	}

	vm.IOR = 0
	vm.newSlot = true

	if vm.Traceable {
		vm.OpCounter = [64]uint32{}
		vm.Cycles = 0
	}
}

func (vm *VM) String() string {
	return fmt.Sprintf(
		"PC: %#08x T: %s N: %s R: %s A: %s B: %s\nRP: %#08x SP: %#08x UP: %#08x DBG: %s",
		vm.Reg.PC, vm.Reg.T, vm.Reg.N, vm.Reg.R, vm.Reg.A, vm.Reg.B,
		vm.Reg.RP, vm.Reg.SP, vm.Reg.UP, vm.Reg.DebugReg,
	)
}

func (vm *VM) LogValue() log.Value {
	return log.GroupValue(
		log.String("PC", fmt.Sprintf("%#08x", vm.Reg.PC)),
		log.RegisterValue("T", vm.Reg.T),
		log.RegisterValue("N", vm.Reg.N),
		log.RegisterValue("R", vm.Reg.R),
		log.String("SP", fmt.Sprintf("%#08x", vm.Reg.SP)),
		log.String("RP", fmt.Sprintf("%#08x", vm.Reg.RP)),
	)
}

// SetDbgReg writes the debug mailbox register. Traced like any other register when tracing is
// enabled, even though the source hardware does not bother -- see DESIGN.md.
func (vm *VM) SetDbgReg(val Cell) {
	vm.traceReg(RegDebug, vm.Reg.DebugReg)
	vm.Reg.DebugReg = val
}

// GetDbgReg reads the debug mailbox register.
func (vm *VM) GetDbgReg() Cell {
	return vm.Reg.DebugReg
}
