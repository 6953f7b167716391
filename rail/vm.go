package rail

// VM holds the complete architectural state of one Rail machine: 16
// registers, 256 bytes of program memory, 256 bytes of RAM, the call and
// general stacks, the RNG seed, and the halt flag. All fields are owned
// exclusively by this instance — there is no state shared between two VMs
// (see spec §5).
type VM struct {
	registers [numRegisters]byte

	program [programSize]byte
	ram     [ramSize]byte

	callStack stack
	genStack  stack

	ranSeed byte
	halted  bool

	ioPrint bool
	ioSink  IOSink
}

// New returns a zero-initialized VM: all registers, program memory, and
// RAM are zero, both stack cursors start at 0xFF, and IO-print is enabled
// on register 15 (matching the teacher's "run without a UI prints IO by
// default" behavior).
func New() *VM {
	return &VM{
		callStack: newStack(),
		genStack:  newStack(),
		ioPrint:   true,
		ioSink:    DefaultStdoutSink(),
	}
}

// NewWithProgram is a convenience constructor mirroring the original
// RailSystem::new_with_program.
func NewWithProgram(program []byte) *VM {
	vm := New()
	vm.LoadProgram(program)
	return vm
}

// LoadProgram copies program into the VM's program memory, zero-padding
// any bytes beyond len(program). A program longer than 256 bytes is
// truncated to the address space.
func (vm *VM) LoadProgram(program []byte) {
	clear(vm.program[:])
	n := copy(vm.program[:], program)
	_ = n
}

// SetIOSink installs the callback invoked on every write to register 15
// while IO-print is enabled. Passing nil disables IO emission outright.
func (vm *VM) SetIOSink(sink IOSink) {
	vm.ioSink = sink
}

// SetIOPrint toggles whether writes to register 15 are forwarded to the
// IO sink. This replaces the original source's global println!-on-write
// behavior with the single per-instance flag spec.md's design notes call
// for.
func (vm *VM) SetIOPrint(print bool) {
	vm.ioPrint = print
}

// IsHalted reports whether the HALT instruction has executed. The VM does
// not stop stepping on its own; the host driving Step is expected to
// honor this flag (spec §4.2).
func (vm *VM) IsHalted() bool {
	return vm.halted
}

// RegisterValue returns the raw value of register reg, masked to the
// 4-bit register field (registers are addressed 0-15; an out-of-range
// request wraps rather than panicking, per spec §4.2's "no recoverable
// errors" contract).
func (vm *VM) RegisterValue(reg byte) byte {
	return vm.registers[reg&0x0F]
}

// CNTValue returns the current program counter.
func (vm *VM) CNTValue() byte {
	return vm.registers[CNT]
}

// ProgramSlice returns program memory in the inclusive range [start, end].
func (vm *VM) ProgramSlice(start, end byte) []byte {
	return vm.program[start : int(end)+1]
}

// RAMSlice returns RAM in the inclusive range [start, end].
func (vm *VM) RAMSlice(start, end byte) []byte {
	return vm.ram[start : int(end)+1]
}

// CallStackSlice returns the call stack's backing array in the inclusive
// range [start, end] (not cursor-relative — callers combine this with
// CallStackPtr to read what's actually live on the stack).
func (vm *VM) CallStackSlice(start, end byte) []byte {
	return vm.callStack.slice(start, end)
}

// CallStackPtr returns the call stack's 8-bit cursor.
func (vm *VM) CallStackPtr() byte {
	return vm.callStack.ptr
}

// GenStackSlice returns the general stack's backing array in the
// inclusive range [start, end].
func (vm *VM) GenStackSlice(start, end byte) []byte {
	return vm.genStack.slice(start, end)
}

// GenStackPtr returns the general stack's 8-bit cursor.
func (vm *VM) GenStackPtr() byte {
	return vm.genStack.ptr
}

// setRegister writes value to the register addressed by the 4-bit field,
// forwarding to the IO sink when register 15 is targeted and IO-print is
// enabled.
func (vm *VM) setRegister(field, value byte) {
	idx := field & 0x0F
	vm.registers[idx] = value
	if idx == IO && vm.ioPrint && vm.ioSink != nil {
		vm.ioSink(value)
	}
}

// arg1Value resolves an instruction's arg1 operand: an immediate literal
// or a register read, depending on the opcode's immediate-mode bit 7.
func (vm *VM) arg1Value(in Instruction) byte {
	if in.Arg1Immediate() {
		return in.Arg1
	}
	return vm.RegisterValue(in.Arg1)
}

// arg2Value resolves an instruction's arg2 operand the same way, per
// opcode bit 6.
func (vm *VM) arg2Value(in Instruction) byte {
	if in.Arg2Immediate() {
		return in.Arg2
	}
	return vm.RegisterValue(in.Arg2)
}

// Step fetches, decodes, and executes exactly one instruction. Fetching
// advances CNT by 4 (wrapping) before the instruction executes, so that a
// CALL captures the correct return address and a taken CU branch or RET
// can freely overwrite CNT afterward (spec §4.2).
func (vm *VM) Step() {
	addr := vm.registers[CNT]
	raw := [4]byte{
		vm.program[addr],
		vm.program[addr+1],
		vm.program[addr+2],
		vm.program[addr+3],
	}
	vm.registers[CNT] = addr + 4

	instr := DecodeInstruction(raw)

	switch instr.Subsystem() {
	case SubsystemALU:
		vm.execALU(instr)
	case SubsystemRAMStack:
		vm.execRAMStack(instr)
	case SubsystemControlUnit:
		vm.execControlUnit(instr)
	case SubsystemPeripheral:
		// Reserved; every peripheral opcode is a no-op (spec §4.1.4).
	}
}

// Run steps the VM exactly n times, stopping early if the halt flag
// becomes set. It is the building block the CLI's run and bench
// operations are built from.
func (vm *VM) Run(n int) {
	for i := 0; i < n && !vm.halted; i++ {
		vm.Step()
	}
}
