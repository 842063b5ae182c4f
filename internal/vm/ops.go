package vm

// ops.go names the 64 opcodes a 6-bit instruction slot can hold. Values are octal to match the
// numbering in the source hardware's documentation; slots that have no assigned opcode fall
// through to the default, no-op case in exec.go.
const (
	opNOP    = 0o00 // no-op
	opDUP    = 0o01 // DUP: push a copy of T
	opSEMI   = 0o02 // ; : return: PC = R>>2; RDROP
	opADD    = 0o03 // + : T = T + N
	opSKIP   = 0o04 // NO: : unconditionally end the group (filler slot)
	opRFETCH = 0o05 // R@ : push R
	opSEMI2  = 0o06 // ;| : PC = R>>2; RDROP; return (no RP untranslate)
	opAND    = 0o07 // AND : T = T & N
	opNIF    = 0o10 // NIF: : end group if T is non-zero
	opOVER   = 0o11 // OVER : push a copy of N
	opRPOP   = 0o12 // R> : pop return stack onto data stack
	opXOR    = 0o13 // XOR : T = T ^ N
	opIF     = 0o14 // IF| : end group if T is zero
	opAPUSH  = 0o15 // A : push A
	opRDROP  = 0o16 // RDROP : discard return stack top

	opPIF      = 0o20 // +IF: : end group if T's sign bit is set
	opSendAXI  = 0o21 // !AS : stream RAM to AXI
	opFetchA   = 0o22 // @A : fetch cell at A
	opMIF      = 0o24 // -IF: : end group if T's sign bit is clear
	opTwoStar  = 0o25 // 2* : T = T << 1
	opFetchAPP = 0o26 // @A+ : fetch cell at A, then A += 4

	opNext      = 0o30 // NEXT : loop control on R
	opUTwoSlash = 0o31 // U2/ : unsigned T = T / 2
	opWFetchA   = 0o32 // W@A : fetch halfword at A
	opAStore    = 0o33 // A! : A = T, drop
	opRept      = 0o34 // REPT : loop control, restarts the group at slot 20
	opTwoSlash  = 0o35 // 2/ : signed T = T / 2
	opCFetchA   = 0o36 // C@A : fetch byte at A
	opBStore    = 0o37 // B! : B = T, drop

	opSPGet    = 0o40 // SP : A = byte address of (IMM + SP)
	opCom      = 0o41 // COM : T = ^T
	opStoreA   = 0o42 // !A : store cell at A, drop
	opRPStore  = 0o43 // RP! : RP = T>>2, drop
	opRPGet    = 0o44 // RP : A = byte address of (IMM + RP)
	opPort     = 0o45 // PORT : swap T and DebugReg
	opStoreBPP = 0o46 // !B+ : store cell at B, then B += 4
	opSPStore  = 0o47 // SP! : SP = T>>2, no drop

	opUPGet   = 0o50 // UP : A = byte address of (IMM + UP)
	opWStoreA = 0o52 // W!A : store halfword at A, drop
	opUPStore = 0o53 // UP! : UP = T>>2, drop
	opSH24    = 0o54 // SH24 : T = (T<<24) | IMM24
	opCStoreA = 0o56 // C!A : store byte at A, drop

	opUser       = 0o60 // USER : host extension function
	opNip        = 0o63 // NIP : drop N
	opJump       = 0o64 // JUMP : PC = IMM
	opReceiveAXI = 0o66 // @AS : stream AXI to RAM
	opLit        = 0o70 // LIT : push IMM

	opDrop = 0o72 // DROP : pop T
	opRot  = 0o73 // ROT : T, N, RAM[SP] = RAM[SP], T, N
	opCall = 0o74 // CALL : R = return address, PC = IMM
	opInc  = 0o75 // 1+ : T = T + 1
	opToR  = 0o76 // >R : push T onto return stack
	opSwap = 0o77 // SWAP : exchange T and N
)
