package vcpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeWord(opcode, bField, aField uint8) uint16 {
	return uint16(aField)<<10 | uint16(bField)<<5 | uint16(opcode)
}

func TestDecodeBinaryInlineLiteral(t *testing.T) {
	var mem Memory
	var regs RegisterFile
	// SET A, 0x10 — 0x10 is inline-literal range, no NEXT word.
	mem.Write(0, encodeWord(OpSET, 0x00, 0x21+0x10))

	var d Decoder
	instr, extra := d.Decode(&mem, &regs)

	require.Equal(t, BinaryInstruction, instr.Kind)
	require.Equal(t, OpSET, instr.Op)
	require.Equal(t, OperandRegister, instr.Dst.Kind)
	require.Equal(t, RegA, instr.Dst.Register)
	require.Equal(t, OperandLiteral, instr.Src.Kind)
	require.Equal(t, uint16(0x10), instr.Src.Value)
	require.Equal(t, 0, extra)
	require.Equal(t, uint16(1), regs.Get(RegPC))
}

func TestDecodeBinaryNextLiteral(t *testing.T) {
	var mem Memory
	var regs RegisterFile
	mem.Write(0, encodeWord(OpSET, 0x00, 0x1F))
	mem.Write(1, 0x1234)

	var d Decoder
	instr, extra := d.Decode(&mem, &regs)

	require.Equal(t, OperandLiteral, instr.Src.Kind)
	require.Equal(t, uint16(0x1234), instr.Src.Value)
	require.Equal(t, 1, extra)
	require.Equal(t, uint16(2), regs.Get(RegPC))
}

func TestDecodePushPopDivergesByRole(t *testing.T) {
	var mem Memory
	var regs RegisterFile
	regs.Set(RegSP, 0x100)
	regs.Set(RegA, 0x77)

	// SET PUSH, A: dst is PUSH (0x18), src is register A.
	mem.Write(0, encodeWord(OpSET, 0x18, 0x00))
	var d Decoder
	instr, _ := d.Decode(&mem, &regs)
	require.Equal(t, OperandMemory, instr.Dst.Kind)
	require.Equal(t, uint16(0xFF), regs.Get(RegSP), "PUSH predecrements SP")
	require.Equal(t, uint16(0xFF), instr.Dst.Address)

	// reset PC/SP, now decode SET B, POP: dst is register B, src is POP.
	regs.Set(RegPC, 0)
	regs.Set(RegSP, 0x100)
	mem.Write(0, encodeWord(OpSET, 0x01, 0x18))
	mem.Write(0x100, 0xAAAA)
	instr, _ = d.Decode(&mem, &regs)
	require.Equal(t, uint16(0xAAAA), instr.Src.Value)
	require.Equal(t, uint16(0x101), regs.Get(RegSP), "POP postincrements SP")
}

func TestDecodeSizeDoesNotMutateSPForSkippedPush(t *testing.T) {
	var mem Memory
	var regs RegisterFile
	regs.Set(RegSP, 0x100)
	// SET PUSH, A — if this were actually decoded it would predecrement SP.
	mem.Write(0, encodeWord(OpSET, 0x18, 0x00))

	var d Decoder
	wasConditional := d.DecodeSize(&mem, &regs)

	require.False(t, wasConditional)
	require.Equal(t, uint16(0x100), regs.Get(RegSP), "DecodeSize must not touch SP")
	require.Equal(t, uint16(1), regs.Get(RegPC))
}

func TestDecodeSizeReportsConditional(t *testing.T) {
	var mem Memory
	var regs RegisterFile
	mem.Write(0, encodeWord(OpIFE, 0x00, 0x00))

	var d Decoder
	require.True(t, d.DecodeSize(&mem, &regs))
}

func TestDecodeUnaryAndNullary(t *testing.T) {
	var mem Memory
	var regs RegisterFile
	mem.Write(0, encodeWord(0, OpJSR, 0x21+5))
	var d Decoder
	instr, extra := d.Decode(&mem, &regs)
	require.Equal(t, UnaryInstruction, instr.Kind)
	require.Equal(t, OpJSR, instr.Op)
	require.Equal(t, uint16(5), instr.Operand.Value)
	require.Equal(t, 0, extra)

	regs.Set(RegPC, 0)
	mem.Write(0, encodeWord(0, 0, OpHIB))
	instr, extra = d.Decode(&mem, &regs)
	require.Equal(t, NullaryInstruction, instr.Kind)
	require.Equal(t, OpHIB, instr.Op)
	require.Equal(t, 0, extra)
}
