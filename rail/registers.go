package rail

// Register indices. R0..R7 are general purpose; BZ0 and LV0 are ordinary
// cells with no VM semantics beyond read/write; D0..D3 are display
// registers, also ordinary cells; CNT is the program counter; IO is the
// only register with an observable side effect (see VM.SetIOPrint).
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	BZ0
	LV0
	D0
	D1
	D2
	D3
	CNT
	IO

	numRegisters = 16
)

const (
	programSize = 256
	ramSize     = 256
	stackCap    = 128 // shared by the call stack and the general stack
)
