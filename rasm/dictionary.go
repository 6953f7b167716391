package rasm

// dictionary is the authoritative mnemonic/register/flag vocabulary shared
// between the assembler and the VM's instruction encoding. Every token that
// isn't a label or constant is ultimately looked up here before falling
// back to numeric-literal parsing.
var dictionary = map[string]byte{
	// Registers
	"R0": 0x00, "R1": 0x01, "R2": 0x02, "R3": 0x03,
	"R4": 0x04, "R5": 0x05, "R6": 0x06, "R7": 0x07,
	"BZ0": 0x08, "LV0": 0x09,
	"D0": 0x0A, "D1": 0x0B, "D2": 0x0C, "D3": 0x0D,
	"CNT": 0x0E, "IO": 0x0F,

	// ALU
	"ADD": 0x00, "SUB": 0x01, "AND": 0x02, "OR": 0x03,
	"NOT": 0x04, "XOR": 0x05, "SHL": 0x06, "SHR": 0x07,
	"RAN_SS": 0x0C, "RAN_NEXT": 0x0D,
	"NOOP": 0x0F,

	// Control Unit
	"IF_EQ": 0x20, "IF_N_EQ": 0x21, "IF_LT": 0x22, "IF_LTE": 0x23,
	"IF_MT": 0x24, "IF_MTE": 0x25, "IF_T": 0x26, "IF_F": 0x27,

	// RAM / Stack. CALL already bakes in IM1 because its target always
	// travels as an immediate in arg1.
	"RAM_R": 0x10, "RAM_W": 0x11,
	"S_POP": 0x18, "S_PUSH": 0x19, "RET": 0x1A, "CALL": 0x9B,

	// Immediate-mode flags
	"IM1": 0x80, "IM2": 0x40,

	// Aliases
	"MOV": 0x40, "JMP": 0x26,
}

// Note deliberately absent: HALT has no dictionary entry, mirroring the
// reference vocabulary. A program that wants to halt defines its own
// CONST HALT 14 (op 14 on the ALU subsystem) rather than relying on a
// mnemonic the dictionary never shipped.

func lookupDictionary(token string) (byte, bool) {
	v, ok := dictionary[token]
	return v, ok
}
