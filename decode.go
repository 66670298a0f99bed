package vcpu

// Decoder turns instruction words into decoded Instructions. It is a thin,
// stateless wrapper: all state it touches (Memory, RegisterFile) is passed
// in by the caller, and the side effects it performs — advancing PC past
// the instruction word and any NEXT operands, and adjusting SP for
// PUSH/POP operands — are the only side effects a DCPU-16 decode step is
// defined to have (spec §3 invariants).
type Decoder struct{}

// nextWord returns the word at [PC] and post-increments PC, per the NEXT
// operand convention (GLOSSARY). This is the one place PC mutation
// happens during decode outside of explicit SP/PC operand reads.
func nextWord(mem *Memory, regs *RegisterFile) uint16 {
	pc := regs.Get(RegPC)
	v := mem.Read(pc)
	regs.Set(RegPC, pc+1)
	return v
}

// decodeOperand resolves one operand field (6 bits for an a-operand or a
// unary operand, 5 bits for a b-operand) to a DecodedOperand plus the
// number of extra cycles its NEXT-word fetch cost (0 or 1). isDst
// distinguishes the one code (0x18) that means different things for a
// destination (PUSH) versus a source (POP) operand.
func decodeOperand(code uint8, isDst bool, regs *RegisterFile, mem *Memory) (DecodedOperand, int) {
	switch {
	case code <= 0x07: // register
		reg := RegisterID(code)
		return DecodedOperand{Kind: OperandRegister, Register: reg, Value: regs.Get(reg)}, 0

	case code <= 0x0F: // [register]
		reg := RegisterID(code - 0x08)
		addr := regs.Get(reg)
		return DecodedOperand{Kind: OperandMemory, Address: addr, Value: mem.Read(addr)}, 0

	case code <= 0x17: // [register + NEXT], wrapping
		reg := RegisterID(code - 0x10)
		offset := nextWord(mem, regs)
		addr := regs.Get(reg) + offset
		return DecodedOperand{Kind: OperandMemory, Address: addr, Value: mem.Read(addr)}, 1

	case code == 0x18: // POP (src) / PUSH (dst)
		if isDst {
			sp := regs.Get(RegSP) - 1
			regs.Set(RegSP, sp)
			return DecodedOperand{Kind: OperandMemory, Address: sp, Value: mem.Read(sp)}, 0
		}
		sp := regs.Get(RegSP)
		v := mem.Read(sp)
		regs.Set(RegSP, sp+1)
		return DecodedOperand{Kind: OperandMemory, Address: sp, Value: v}, 0

	case code == 0x19: // PEEK
		sp := regs.Get(RegSP)
		return DecodedOperand{Kind: OperandMemory, Address: sp, Value: mem.Read(sp)}, 0

	case code == 0x1A: // PICK: [SP + NEXT]
		offset := nextWord(mem, regs)
		addr := regs.Get(RegSP) + offset
		return DecodedOperand{Kind: OperandMemory, Address: addr, Value: mem.Read(addr)}, 1

	case code == 0x1B: // SP
		return DecodedOperand{Kind: OperandRegister, Register: RegSP, Value: regs.Get(RegSP)}, 0

	case code == 0x1C: // PC
		return DecodedOperand{Kind: OperandRegister, Register: RegPC, Value: regs.Get(RegPC)}, 0

	case code == 0x1D: // EX
		return DecodedOperand{Kind: OperandRegister, Register: RegEX, Value: regs.Get(RegEX)}, 0

	case code == 0x1E: // [NEXT]
		addr := nextWord(mem, regs)
		return DecodedOperand{Kind: OperandMemory, Address: addr, Value: mem.Read(addr)}, 1

	case code == 0x1F: // literal NEXT
		v := nextWord(mem, regs)
		return DecodedOperand{Kind: OperandLiteral, Value: v}, 1

	default: // 0x20-0x3F: literal (code-0x21), range -1..30
		lit := int16(code) - 0x21
		return DecodedOperand{Kind: OperandLiteral, Value: uint16(lit)}, 0
	}
}

// Decode reads the instruction word at [PC], classifies it as nullary,
// unary, or binary per the opcode/b-operand fields, resolves its
// operand(s), and returns the decoded Instruction plus the extra cycles
// its NEXT-word operand fetches cost (the base cost of the opcode itself
// is looked up separately, by the Executor, from the opcode tables). PC
// (and, for PUSH/POP operands, SP) have already been advanced as a side
// effect by the time Decode returns.
func (Decoder) Decode(mem *Memory, regs *RegisterFile) (Instruction, int) {
	word := nextWord(mem, regs)
	opcodeField := uint8(word & 0x1F)
	bField := uint8((word >> 5) & 0x1F)
	aField := uint8((word >> 10) & 0x3F)

	if opcodeField == 0 && bField == 0 {
		op := aField
		if op != OpNOP && op != OpHIB {
			op = OpERR
		}
		return Instruction{Kind: NullaryInstruction, Op: op}, 0
	}
	if opcodeField == 0 {
		operand, extra := decodeOperand(aField, false, regs, mem)
		return Instruction{Kind: UnaryInstruction, Op: bField, Operand: operand}, extra
	}
	dst, extraDst := decodeOperand(bField, true, regs, mem)
	src, extraSrc := decodeOperand(aField, false, regs, mem)
	return Instruction{Kind: BinaryInstruction, Op: opcodeField, Dst: dst, Src: src}, extraDst + extraSrc
}

// decodeOperandSize consumes exactly the NEXT words that decodeOperand
// would have consumed for code, advancing PC accordingly, but performs no
// other side effect: no register/memory write, and critically no SP
// mutation for a would-be PUSH/POP. This is what lets skipConditional
// size a skipped instruction correctly without executing its stack
// effects (spec §9 design note: "skip behavior needs real decoding").
func decodeOperandSize(code uint8, regs *RegisterFile, mem *Memory) {
	switch {
	case code >= 0x10 && code <= 0x17, code == 0x1A, code == 0x1E, code == 0x1F:
		nextWord(mem, regs)
	}
}

// DecodeSize advances PC past exactly one instruction (its opcode word and
// any NEXT-word operands) without performing any other side effect, and
// reports whether that instruction was itself a conditional (IFx) binary
// opcode, so the caller can continue a skip chain. It is used exclusively
// by the Executor's conditional-skip handling.
func (Decoder) DecodeSize(mem *Memory, regs *RegisterFile) (wasConditional bool) {
	word := nextWord(mem, regs)
	opcodeField := uint8(word & 0x1F)
	bField := uint8((word >> 5) & 0x1F)
	aField := uint8((word >> 10) & 0x3F)

	if opcodeField == 0 && bField == 0 {
		return false // nullary: no operand words, never conditional
	}
	if opcodeField == 0 {
		decodeOperandSize(aField, regs, mem)
		return false // unary: never conditional
	}
	decodeOperandSize(bField, regs, mem)
	decodeOperandSize(aField, regs, mem)
	return IsConditionalBinaryOp(opcodeField)
}
