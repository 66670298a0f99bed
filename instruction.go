package vcpu

// InstructionKind tags the arity of a decoded Instruction: nullary (no
// operands), unary (one operand, the extended-opcode family), or binary
// (dst/src operand pair).
type InstructionKind uint8

const (
	NullaryInstruction InstructionKind = iota
	UnaryInstruction
	BinaryInstruction
)

// Nullary opcodes, selected by the a-operand field when both the opcode
// and b-operand fields are zero.
const (
	OpNOP uint8 = 0x00
	OpHIB uint8 = 0x01
	// anything else decodes to OpERR
	OpERR uint8 = 0xff
)

// Unary opcodes, selected by the b-operand field when the opcode field is
// zero and the b-operand field is non-zero.
const (
	OpJSR uint8 = 0x01
	OpSLP uint8 = 0x02
	OpINT uint8 = 0x08
	OpIAG uint8 = 0x09
	OpIAS uint8 = 0x0A
	OpRFI uint8 = 0x0B
	OpIAQ uint8 = 0x0C
	OpHWN uint8 = 0x10
	OpHWQ uint8 = 0x11
	OpHWI uint8 = 0x12
)

// Binary opcodes, selected directly by the (non-zero) opcode field.
const (
	OpSET uint8 = 0x01
	OpADD uint8 = 0x02
	OpSUB uint8 = 0x03
	OpMUL uint8 = 0x04
	OpMLI uint8 = 0x05
	OpDIV uint8 = 0x06
	OpDVI uint8 = 0x07
	OpMOD uint8 = 0x08
	OpMDI uint8 = 0x09
	OpAND uint8 = 0x0A
	OpBOR uint8 = 0x0B
	OpXOR uint8 = 0x0C
	OpSHR uint8 = 0x0D
	OpASR uint8 = 0x0E
	OpSHL uint8 = 0x0F
	OpIFB uint8 = 0x10
	OpIFC uint8 = 0x11
	OpIFE uint8 = 0x12
	OpIFN uint8 = 0x13
	OpIFG uint8 = 0x14
	OpIFA uint8 = 0x15
	OpIFL uint8 = 0x16
	OpIFU uint8 = 0x17
	OpADX uint8 = 0x1A
	OpSBX uint8 = 0x1B
	OpSTI uint8 = 0x1E
	OpSTD uint8 = 0x1F
)

var nullaryMnemonics = map[uint8]string{OpNOP: "NOP", OpHIB: "HIB"}

var unaryMnemonics = map[uint8]string{
	OpJSR: "JSR", OpSLP: "SLP", OpINT: "INT", OpIAG: "IAG", OpIAS: "IAS",
	OpRFI: "RFI", OpIAQ: "IAQ", OpHWN: "HWN", OpHWQ: "HWQ", OpHWI: "HWI",
}

var binaryMnemonics = map[uint8]string{
	OpSET: "SET", OpADD: "ADD", OpSUB: "SUB", OpMUL: "MUL", OpMLI: "MLI",
	OpDIV: "DIV", OpDVI: "DVI", OpMOD: "MOD", OpMDI: "MDI", OpAND: "AND",
	OpBOR: "BOR", OpXOR: "XOR", OpSHR: "SHR", OpASR: "ASR", OpSHL: "SHL",
	OpIFB: "IFB", OpIFC: "IFC", OpIFE: "IFE", OpIFN: "IFN", OpIFG: "IFG",
	OpIFA: "IFA", OpIFL: "IFL", OpIFU: "IFU", OpADX: "ADX", OpSBX: "SBX",
	OpSTI: "STI", OpSTD: "STD",
}

// IsConditionalBinaryOp reports whether op (a binary opcode) is one of the eight
// IFx test instructions that chain on skip.
func IsConditionalBinaryOp(op uint8) bool {
	return op >= OpIFB && op <= OpIFU
}

// Instruction is the decoded, tagged-variant result of the Decoder: one of
// a nullary, unary, or binary form. Dst/Src are populated only for
// BinaryInstruction; Operand only for UnaryInstruction. Each
// DecodedOperand already carries its captured value, so the Executor never
// needs to re-read memory or registers to apply the instruction.
type Instruction struct {
	Kind    InstructionKind
	Op      uint8
	Operand DecodedOperand // unary operand
	Dst     DecodedOperand // binary b-operand (destination)
	Src     DecodedOperand // binary a-operand (source)
}

// Mnemonic returns the textual opcode name, or "ERR" for a reserved /
// unassigned encoding.
func (in Instruction) Mnemonic() string {
	var table map[uint8]string
	switch in.Kind {
	case NullaryInstruction:
		table = nullaryMnemonics
	case UnaryInstruction:
		table = unaryMnemonics
	case BinaryInstruction:
		table = binaryMnemonics
	}
	if name, ok := table[in.Op]; ok {
		return name
	}
	return "ERR"
}

// IsErr reports whether this instruction decoded to a reserved/unassigned
// opcode (DecodeError territory: executed as NOP, surfaced on the
// diagnostic channel).
func (in Instruction) IsErr() bool {
	return in.Mnemonic() == "ERR"
}
