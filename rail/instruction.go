package rail

import "fmt"

// Subsystem selects which of the four dispatch tables an instruction's
// opcode belongs to. It lives in bits 5-4 of the opcode byte.
type Subsystem byte

const (
	SubsystemALU        Subsystem = 0
	SubsystemRAMStack    Subsystem = 1
	SubsystemControlUnit Subsystem = 2
	SubsystemPeripheral  Subsystem = 3
)

func (s Subsystem) String() string {
	switch s {
	case SubsystemALU:
		return "ALU"
	case SubsystemRAMStack:
		return "RAM/Stack"
	case SubsystemControlUnit:
		return "CU"
	case SubsystemPeripheral:
		return "Peripheral"
	default:
		return "?unknown-subsystem?"
	}
}

// Instruction is the 4-byte fixed-format Rail instruction word:
// opcode, arg1, arg2, result. Laid out as a plain struct rather than a
// []byte slice so every VM field access is a bounds-checked struct field,
// not a re-derived slice index.
type Instruction struct {
	Opcode byte
	Arg1   byte
	Arg2   byte
	Result byte
}

// DecodeInstruction splits a 4-byte instruction word into its fields.
func DecodeInstruction(bytes [4]byte) Instruction {
	return Instruction{
		Opcode: bytes[0],
		Arg1:   bytes[1],
		Arg2:   bytes[2],
		Result: bytes[3],
	}
}

// Encode produces the 4-byte wire form of the instruction.
func (in Instruction) Encode() [4]byte {
	return [4]byte{in.Opcode, in.Arg1, in.Arg2, in.Result}
}

// Arg1Immediate reports whether bit 7 of the opcode marks arg1 as an
// immediate literal (vs. a register index).
func (in Instruction) Arg1Immediate() bool {
	return in.Opcode&0x80 != 0
}

// Arg2Immediate reports whether bit 6 of the opcode marks arg2 as an
// immediate literal (vs. a register index).
func (in Instruction) Arg2Immediate() bool {
	return in.Opcode&0x40 != 0
}

// Subsystem extracts bits 5-4 of the opcode.
func (in Instruction) Subsystem() Subsystem {
	return Subsystem((in.Opcode >> 4) & 0x03)
}

// Op extracts bits 3-0 of the opcode: the operation within the subsystem.
func (in Instruction) Op() byte {
	return in.Opcode & 0x0F
}

func (in Instruction) String() string {
	return fmt.Sprintf("%02X %02X %02X %02X", in.Opcode, in.Arg1, in.Arg2, in.Result)
}
