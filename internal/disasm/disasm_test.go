package disasm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// wordSlice is a minimal WordReader backed by a plain slice, so this
// package's tests never need to import the CPU's Memory type.
type wordSlice []uint16

func (w wordSlice) ReadWord(addr uint16) uint16 {
	if int(addr) >= len(w) {
		return 0
	}
	return w[addr]
}

func TestDisassembleBinaryInstruction(t *testing.T) {
	// SET A, 0x40 — opcode SET(0x01), dst A (reg code 0x00), src NEXT
	// literal (code 0x1F) followed by its value word.
	word := uint16(0x01) | uint16(0x00)<<5 | uint16(0x1F)<<10
	var b strings.Builder
	Disassemble(wordSlice{word, 0x40}, 0, 1, &b)

	require.Equal(t, "0x0000: SET A, 0x40\n", b.String())
}

func TestDisassembleUnaryInstruction(t *testing.T) {
	// JSR 0x10 — opcode field 0 selects unary, bField JSR(0x01), aField
	// NEXT literal (0x1F) followed by its value word.
	word := uint16(0x00) | uint16(0x01)<<5 | uint16(0x1F)<<10
	var b strings.Builder
	Disassemble(wordSlice{word, 0x10}, 0, 1, &b)

	require.Equal(t, "0x0000: JSR 0x10\n", b.String())
}

func TestDisassembleNullaryInstruction(t *testing.T) {
	// NOP — opcode field 0, bField 0, aField 0x00.
	word := uint16(0)
	var b strings.Builder
	Disassemble(wordSlice{word}, 0, 1, &b)

	require.Equal(t, "0x0000: NOP\n", b.String())
}

func TestDisassembleReservedOpcodeRendersERR(t *testing.T) {
	// Opcode field 0x18 is not in binaryOpcodes; b and a both register A.
	word := uint16(0x18) | uint16(0x00)<<5 | uint16(0x00)<<10
	var b strings.Builder
	Disassemble(wordSlice{word}, 0, 1, &b)

	require.Equal(t, "0x0000: ERR A, A\n", b.String())
}

func TestDisassembleMultipleInstructionsAdvancesAddress(t *testing.T) {
	// NOP, then SET A, B (dst A, src B — both register operands, no
	// extra words consumed).
	setAB := uint16(0x01) | uint16(0x00)<<5 | uint16(0x01)<<10
	var b strings.Builder
	Disassemble(wordSlice{0, setAB}, 0, 2, &b)

	require.Equal(t, "0x0000: NOP\n0x0001: SET A, B\n", b.String())
}
