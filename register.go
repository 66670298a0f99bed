package vcpu

// RegisterID identifies one of the twelve architectural registers. The
// first eight (A..J) are "general" and participate in register-relative
// addressing modes; the remaining four (PC, SP, EX, IA) are "special" and
// are only ever named directly.
type RegisterID uint8

// Register identities, fixed at indices 0x0..0xB per spec.
const (
	RegA RegisterID = iota
	RegB
	RegC
	RegX
	RegY
	RegZ
	RegI
	RegJ
	RegPC
	RegSP
	RegEX
	RegIA

	numRegisters
)

// registerNames backs RegisterID.String.
var registerNames = [numRegisters]string{
	RegA: "A", RegB: "B", RegC: "C", RegX: "X", RegY: "Y", RegZ: "Z", RegI: "I", RegJ: "J",
	RegPC: "PC", RegSP: "SP", RegEX: "EX", RegIA: "IA",
}

// String returns the canonical mnemonic for a register, e.g. "A" or "PC".
func (r RegisterID) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "?"
}

// IsGeneral reports whether r is one of the eight general-purpose
// registers usable in register-relative addressing modes.
func (r RegisterID) IsGeneral() bool {
	return r <= RegJ
}

// RegisterFile holds the twelve architectural registers. Gets and sets are
// direct, with no side effects; PC/SP wrap modulo 2^16 on every update, so
// callers never need to mask results themselves.
type RegisterFile struct {
	regs [numRegisters]uint16
}

// Get returns the current value of register id.
func (r *RegisterFile) Get(id RegisterID) uint16 {
	return r.regs[id]
}

// Set assigns value to register id. PC and SP assignments wrap modulo
// 2^16, which is automatic since both are backed by uint16.
func (r *RegisterFile) Set(id RegisterID, value uint16) {
	r.regs[id] = value
}

// Reset zeros every register.
func (r *RegisterFile) Reset() {
	r.regs = [numRegisters]uint16{}
}

// Snapshot returns a copy of all register values in RegisterID order,
// suitable for test comparisons (register_test.go diffs snapshots with
// go-test/deep rather than field by field).
func (r *RegisterFile) Snapshot() [numRegisters]uint16 {
	return r.regs
}
