/*
Package vm implements a software emulator for a 32-bit stack-oriented processor in the
MachineForth tradition.

With the reason for the project to learn more about computer engineering, the design of the
virtual machine is meant to mimic the micro-architecture of the hardware it emulates. Execution
proceeds one instruction *group* at a time: a 32-bit word packs up to five 6-bit opcode slots plus
a 2-bit tail slot, and [VM.Step] walks them left to right, dispatching through a dense opcode
table.

# Memory #

The machine has three memory regions, each an array of 32-bit cells:

  - ROM holds the bootstrap program; it is written cell by cell through [VM.WriteROM] (or in bulk
    through [VM.WriteROMImage]) and is never mutated by instruction execution. Writes are
    unconditional in the emulator -- a real one-time-programmable fuse would enforce write-once on
    the host side.
  - RAM is general read/write storage. The dual data and return stacks live in RAM, growing
    downward from the cells the SP and RP registers address (32 and 64 after reset).
  - AXI models NOR-flash behind a burst-transfer interface: writes can only clear bits, and
    [VM.EraseAXI4K] is the only way to set them again.

Addresses are decoded by range: an address below ROMsize lands in ROM, the next RAMsize cells are
RAM, and an address below AXIsize (note: not ROMsize+RAMsize+AXIsize) lands in AXI. Anything else
silently reads as zero. This is carried over unchanged from the source hardware; see DESIGN.md.

# Registers #

Nine architectural registers -- T, N, R, A, B, RP, SP, UP, PC -- plus a debug mailbox make up the
register file. T and N are the top two cells of the data stack; R is the top of the return stack.
SP and RP are cell indices into RAM, wrapped modulo RAMsize; the rest of each stack lives in RAM
itself, pushed and popped by the SDUP/SDROP/RDUP/RDROP family in stack.go.

# Tracing #

When a [Tracer] is installed, every register or memory mutation is reported before it is applied,
in the exact order the mutations happen. Replaying the reported (id, old value) pairs in reverse
with [VM.UnTrace] restores the machine to its prior state -- the emulator's only concession to a
host debugger that wants to step backwards.
*/
package vm
