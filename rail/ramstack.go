package rail

// RAM/Stack operation codes (opcode bits 3-0 when subsystem ==
// SubsystemRAMStack).
const (
	ramRead   = 0
	ramWrite  = 1
	ramSPop   = 8
	ramSPush  = 9
	ramRet    = 10
	ramCall   = 11
)

// execRAMStack dispatches RAM and stack-subsystem instructions.
//
// arg1 is resolved through the normal immediate/register rules into
// "source" for every op in this subsystem, but what source *means*
// differs by op: READ and S_POP ignore it; WRITE and S_PUSH treat it as
// a further register index to read the value being moved from; CALL
// treats it directly as the jump target. This mirrors the original
// RailSystem::process_ram_stack exactly.
func (vm *VM) execRAMStack(in Instruction) {
	source := vm.arg1Value(in)
	addr := vm.arg2Value(in)

	switch in.Op() {
	case ramRead:
		vm.setRegister(in.Result, vm.ram[addr])
	case ramWrite:
		vm.ram[addr] = vm.RegisterValue(source)
	case ramSPop:
		vm.setRegister(in.Result, vm.genStack.pop())
	case ramSPush:
		vm.genStack.push(vm.RegisterValue(source))
	case ramRet:
		vm.registers[CNT] = vm.callStack.pop()
	case ramCall:
		vm.callStack.push(vm.registers[CNT])
		vm.registers[CNT] = source
	default:
		// no effect
	}
}
