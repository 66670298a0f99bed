// Package disasm renders a decoded instruction stream as text, for use by
// CPU.Disassemble as a debugging aid. It knows
// nothing about execution: it only turns instruction words back into
// mnemonics and operand syntax.
package disasm

import (
	"fmt"
	"io"
)

var registerNames = []string{"A", "B", "C", "X", "Y", "Z", "I", "J"}

var binaryOpcodes = map[uint16]string{
	0x01: "SET", 0x02: "ADD", 0x03: "SUB", 0x04: "MUL", 0x05: "MLI",
	0x06: "DIV", 0x07: "DVI", 0x08: "MOD", 0x09: "MDI", 0x0A: "AND",
	0x0B: "BOR", 0x0C: "XOR", 0x0D: "SHR", 0x0E: "ASR", 0x0F: "SHL",
	0x10: "IFB", 0x11: "IFC", 0x12: "IFE", 0x13: "IFN", 0x14: "IFG",
	0x15: "IFA", 0x16: "IFL", 0x17: "IFU", 0x1A: "ADX", 0x1B: "SBX",
	0x1E: "STI", 0x1F: "STD",
}

var unaryOpcodes = map[uint16]string{
	0x01: "JSR", 0x02: "SLP", 0x08: "INT", 0x09: "IAG", 0x0A: "IAS",
	0x0B: "RFI", 0x0C: "IAQ", 0x10: "HWN", 0x11: "HWQ", 0x12: "HWI",
}

var nullaryOpcodes = map[uint16]string{0x00: "NOP", 0x01: "HIB"}

// WordReader supplies the word stream being disassembled; Memory
// implements it directly through its ReadWord method.
type WordReader interface {
	ReadWord(addr uint16) uint16
}

// Disassemble writes one line per decoded instruction, starting at addr
// and continuing for count instructions (each consuming its opcode word and
// any NEXT words), to w. It is a best-effort text rendering: reserved
// opcodes are rendered as "ERR" followed by their decoded operands.
func Disassemble(r WordReader, addr uint16, count int, w io.Writer) {
	for i := 0; i < count; i++ {
		start := addr
		word := r.ReadWord(addr)
		addr++

		opcodeField := word & 0x1F
		bField := (word >> 5) & 0x1F
		aField := (word >> 10) & 0x3F

		switch {
		case opcodeField == 0 && bField == 0:
			name, ok := nullaryOpcodes[aField]
			if !ok {
				name = "ERR"
			}
			fmt.Fprintf(w, "0x%04x: %s\n", start, name)

		case opcodeField == 0:
			name, ok := unaryOpcodes[bField]
			if !ok {
				name = "ERR"
			}
			operand, next := addrMode(aField, addr, r)
			addr = next
			fmt.Fprintf(w, "0x%04x: %s %s\n", start, name, operand)

		default:
			name, ok := binaryOpcodes[opcodeField]
			if !ok {
				name = "ERR"
			}
			b, next := addrMode(bField, addr, r)
			addr = next
			a, next2 := addrMode(aField, addr, r)
			addr = next2
			fmt.Fprintf(w, "0x%04x: %s %s, %s\n", start, name, b, a)
		}
	}
}

func addrMode(code uint16, addr uint16, r WordReader) (string, uint16) {
	switch {
	case code <= 0x07:
		return registerNames[code], addr
	case code <= 0x0F:
		return fmt.Sprintf("[%s]", registerNames[code-0x08]), addr
	case code <= 0x17:
		v := r.ReadWord(addr)
		return fmt.Sprintf("[%s+0x%x]", registerNames[code-0x10], v), addr + 1
	case code == 0x18:
		return "PUSH/POP", addr
	case code == 0x19:
		return "PEEK", addr
	case code == 0x1A:
		v := r.ReadWord(addr)
		return fmt.Sprintf("PICK 0x%x", v), addr + 1
	case code == 0x1B:
		return "SP", addr
	case code == 0x1C:
		return "PC", addr
	case code == 0x1D:
		return "EX", addr
	case code == 0x1E:
		v := r.ReadWord(addr)
		return fmt.Sprintf("[0x%x]", v), addr + 1
	case code == 0x1F:
		v := r.ReadWord(addr)
		return fmt.Sprintf("0x%x", v), addr + 1
	default:
		return fmt.Sprintf("0x%x", code-0x21), addr
	}
}
