package vcpu

import (
	"strings"

	"github.com/huhlig/hivemind-vcpu/internal/disasm"
)

// Disassemble renders count instructions of memory starting at addr as
// text, one line per instruction. It is a debugging aid: the CPU never
// calls it on its own hot path.
func (c *CPU) Disassemble(addr uint16, count int) string {
	var b strings.Builder
	disasm.Disassemble(c.mem, addr, count, &b)
	return b.String()
}
