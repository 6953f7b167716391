package rail

import (
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

// fibonacciImage is the 36-byte reference program used by
// TestFibonacciProgram below; main.go keeps its own copy for the bench
// CLI operation.
var fibonacciImage = []byte{
	0x40, 0x00, 0x01, 0x01, 0x40, 0x0B, 0x01, 0x0B, 0x40, 0x02, 0x00, 0x0A,
	0x00, 0x01, 0x02, 0x02, 0x40, 0x0A, 0x00, 0x01, 0x40, 0x02, 0x00, 0x0F,
	0x91, 0x02, 0x04, 0x00, 0x00, 0x0B, 0x04, 0x04, 0x26, 0x00, 0x00, 0x08,
}

func TestSingleStepAddImmediate(t *testing.T) {
	vm := New()
	vm.LoadProgram([]byte{0x40, 0x00, 0x01, R1})
	vm.Step()

	assert(t, vm.RegisterValue(R1) == 0x01, "expected reg[1] == 0x01, got %d", vm.RegisterValue(R1))
	assert(t, vm.CNTValue() == 4, "expected CNT == 4, got %d", vm.CNTValue())
}

func TestTwoNoopsAdvanceCNT(t *testing.T) {
	vm := New()
	vm.LoadProgram([]byte{
		0xFF, 0, 0, 0,
		0xFF, 0, 0, 0,
	})
	vm.Step()
	vm.Step()

	assert(t, vm.CNTValue() == 8, "expected CNT == 8, got %d", vm.CNTValue())
}

func TestFibonacciProgram(t *testing.T) {
	vm := New()
	vm.SetIOPrint(false)
	vm.LoadProgram(fibonacciImage)
	vm.Run(60)

	assert(t, vm.RegisterValue(R2) == 0x90, "expected reg[2] == 0x90, got %d", vm.RegisterValue(R2))
}

func TestXorshiftSequence(t *testing.T) {
	vm := New()
	vm.LoadProgram([]byte{
		0x8C, 29, 0, 0, // RAN_SS+IM1 29 0 0
		0x0D, 0, 0, R1, // RAN_NEXT 0 0 R1
		0xA6, 0, 0, 4, // JMP+IM1 0 0 4
	})

	expected := []byte{56, 119, 225, 159, 108, 213, 241, 189}
	got := make([]byte, 0, len(expected))
	for range expected {
		vm.Step()
		vm.Step()
		got = append(got, vm.RegisterValue(R1))
	}

	for i := range expected {
		assert(t, got[i] == expected[i], "step %d: expected %d, got %d", i, expected[i], got[i])
	}
}

func TestCallRetRestoresStackAndCNT(t *testing.T) {
	vm := New()
	vm.LoadProgram([]byte{
		0x9B, 8, 0, 0, // CALL+IM1 -> address 8
		0x0F, 0, 0, 0, // NOOP (return lands here)
		0x1A, 0, 0, 0, // RET
	})

	ptrBefore := vm.CallStackPtr()
	vm.Step() // CALL: CNT becomes 4, pushes 4, jumps to 8
	assert(t, vm.CNTValue() == 8, "expected CNT == 8 after CALL, got %d", vm.CNTValue())

	vm.Step() // RET at address 8
	assert(t, vm.CNTValue() == 4, "expected CNT == 4 after RET, got %d", vm.CNTValue())
	assert(t, vm.CallStackPtr() == ptrBefore, "expected call stack pointer restored, got %d want %d", vm.CallStackPtr(), ptrBefore)
}

func TestPushPopRestoresGenStackAndValue(t *testing.T) {
	vm := New()
	vm.setRegister(R3, 0x42)
	vm.LoadProgram([]byte{
		0x99, R3, 0, 0, // S_PUSH+IM1 R3 0 0 (arg1 resolved as register index)
		0x18, 0, 0, R4, // S_POP 0 0 R4
	})

	ptrBefore := vm.GenStackPtr()
	vm.Step()
	vm.Step()

	assert(t, vm.RegisterValue(R4) == 0x42, "expected reg[4] == 0x42, got %d", vm.RegisterValue(R4))
	assert(t, vm.GenStackPtr() == ptrBefore, "expected gen stack pointer restored, got %d want %d", vm.GenStackPtr(), ptrBefore)
}

func TestArithmeticWraps(t *testing.T) {
	vm := New()
	vm.LoadProgram([]byte{
		0xC0, 250, 10, R1, // ADD+IM1+IM2 250 10 R1 -> wraps to 4
	})
	vm.Step()
	assert(t, vm.RegisterValue(R1) == 4, "expected 250+10 mod 256 == 4, got %d", vm.RegisterValue(R1))

	vm2 := New()
	vm2.LoadProgram([]byte{
		0xC1, 1, 2, R1, // SUB+IM1+IM2: 1 - 2 wraps to 255
	})
	vm2.Step()
	assert(t, vm2.RegisterValue(R1) == 255, "expected 1-2 mod 256 == 255, got %d", vm2.RegisterValue(R1))
}

func TestHaltSetsFlagWithoutRegisterWrite(t *testing.T) {
	vm := New()
	vm.setRegister(R0, 0x77)
	vm.LoadProgram([]byte{
		0xC0 | aluHalt, 1, 2, R0,
	})
	vm.Step()

	assert(t, vm.IsHalted(), "expected halt flag set")
	assert(t, vm.RegisterValue(R0) == 0x77, "HALT must not write result, got %d", vm.RegisterValue(R0))
}

func TestImmediateFlagsComposeAdditively(t *testing.T) {
	in := Instruction{Opcode: aluAdd | 0x40}
	assert(t, in.Opcode == 0x40, "expected ADD+IM2 == 0x40, got %#x", in.Opcode)

	in2 := Instruction{Opcode: aluAdd | 0x80 | 0x40}
	assert(t, in2.Opcode == 0xC0, "expected ADD+IM1+IM2 == 0xC0, got %#x", in2.Opcode)
}
