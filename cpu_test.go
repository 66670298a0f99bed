package vcpu

import (
	"bytes"
	"testing"

	"github.com/huhlig/hivemind-vcpu/internal/asmtest"
	"github.com/stretchr/testify/require"
)

func loadProgram(t *testing.T, cpu *CPU, source string) {
	t.Helper()
	words, err := asmtest.Assemble(source)
	require.NoError(t, err)
	for i, w := range words {
		cpu.WriteMemory(uint16(i), w)
	}
}

func TestCPUResetClearsState(t *testing.T) {
	cpu := NewCPU()
	cpu.SetRegister(RegA, 0x99)
	cpu.WriteMemory(0, 0x1234)
	cpu.TriggerInterrupt(5)
	cpu.state = NewBusyState(3)

	cpu.Reset()

	require.Equal(t, uint16(0), cpu.Register(RegA))
	require.Equal(t, uint16(0), cpu.ReadMemory(0))
	require.Equal(t, 0, cpu.interrupts.QueueLen())
	require.Equal(t, Active, cpu.State().Kind)
}

func TestCPUInterruptDeliveryPushesPCThenA(t *testing.T) {
	cpu := NewCPU()
	cpu.SetRegister(RegSP, 0)
	cpu.SetRegister(RegIA, 0x200)
	cpu.SetRegister(RegA, 0x11)
	cpu.SetRegister(RegPC, 0x50)

	cpu.TriggerInterrupt(0x42)
	cpu.deliverInterrupt()

	require.Equal(t, uint16(0xFFFE), cpu.Register(RegSP))
	require.Equal(t, uint16(0x50), cpu.ReadMemory(0xFFFF), "PC is pushed first, so it sits deeper on the stack")
	require.Equal(t, uint16(0x11), cpu.ReadMemory(0xFFFE), "A is pushed second, so it is on top")
	require.Equal(t, uint16(0x200), cpu.Register(RegPC))
	require.Equal(t, uint16(0x42), cpu.Register(RegA))
	require.True(t, cpu.interrupts.Queueing())
}

func TestCPUInterruptDroppedWhenIAIsZero(t *testing.T) {
	cpu := NewCPU()
	cpu.SetRegister(RegSP, 0x100)
	cpu.TriggerInterrupt(0x42)

	cpu.deliverInterrupt()

	require.Equal(t, uint16(0x100), cpu.Register(RegSP), "nothing pushed when IA is 0")
	require.Equal(t, 0, cpu.interrupts.QueueLen(), "the message is still drained, just discarded")
}

func TestCPURFIPopsAThenPC(t *testing.T) {
	cpu := NewCPU()
	cpu.SetRegister(RegSP, 0xFFFE)
	cpu.WriteMemory(0xFFFE, 0x42) // A, pushed second, sits on top
	cpu.WriteMemory(0xFFFF, 0x50) // PC, pushed first, sits underneath
	cpu.interrupts.SetQueueing(true)

	instr := Instruction{Kind: UnaryInstruction, Op: OpRFI, Operand: litOperand(0)}
	(Executor{}).Execute(cpu, instr)

	require.Equal(t, uint16(0x42), cpu.Register(RegA))
	require.Equal(t, uint16(0x50), cpu.Register(RegPC))
	require.False(t, cpu.interrupts.Queueing())
}

func TestCPUIASIAGRoundTrip(t *testing.T) {
	cpu := NewCPU()
	loadProgram(t, cpu, `
		IAS 0x300
		IAG A
	`)

	var s Scheduler
	s.StepInstruction(cpu)
	s.StepInstruction(cpu)

	require.Equal(t, uint16(0x300), cpu.Register(RegIA))
	require.Equal(t, uint16(0x300), cpu.Register(RegA))
}

func TestCPUIAQForcesQueueing(t *testing.T) {
	cpu := NewCPU()
	loadProgram(t, cpu, `IAQ 1`)

	var s Scheduler
	s.StepInstruction(cpu)

	require.True(t, cpu.interrupts.Queueing())
}

func TestCPULoadSaveImageRoundTrip(t *testing.T) {
	cpu := NewCPU()
	words, err := asmtest.Assemble(`
		SET A, 1
		SET B, 2
	`)
	require.NoError(t, err)
	for i, w := range words {
		cpu.WriteMemory(uint16(i), w)
	}

	var buf bytes.Buffer
	require.NoError(t, cpu.SaveImage(&buf))

	cpu2 := NewCPU()
	require.NoError(t, cpu2.LoadImage(&buf))
	require.Equal(t, cpu.ReadMemory(0), cpu2.ReadMemory(0))
	require.Equal(t, cpu.ReadMemory(1), cpu2.ReadMemory(1))
}

func TestCPUDisassembleRendersMnemonics(t *testing.T) {
	cpu := NewCPU()
	loadProgram(t, cpu, `
		SET A, 0x40
		JSR 0x10
	`)

	out := cpu.Disassemble(0, 2)
	require.Contains(t, out, "SET A,")
	require.Contains(t, out, "JSR ")
}
