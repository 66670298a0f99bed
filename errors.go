package vcpu

import "fmt"

// DiagnosticKind tags a non-fatal event surfaced by the CPU. None of these
// are returned as errors from Tick/StepInstruction — see spec §7: "Errors
// are never thrown out of tick; they are observable via a diagnostic
// channel the host may subscribe to."
type DiagnosticKind uint8

const (
	// DiagDecodeError: a reserved/unassigned opcode decoded to ERR and was
	// executed as a NOP.
	DiagDecodeError DiagnosticKind = iota
	// DiagHardwareIndexError: HWQ/HWI referenced a device index that does
	// not exist; treated as a NOP.
	DiagHardwareIndexError
	// DiagCaughtFire: the interrupt queue exceeded its 256-entry bound;
	// the CPU transitioned to Halted and will never resume.
	DiagCaughtFire
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagDecodeError:
		return "DecodeError"
	case DiagHardwareIndexError:
		return "HardwareIndexError"
	case DiagCaughtFire:
		return "CaughtFire"
	default:
		return "Unknown"
	}
}

// Diagnostic is one event on the CPU's diagnostic channel.
type Diagnostic struct {
	Kind    DiagnosticKind
	PC      uint16 // value of PC when raised: just past the instruction and its NEXT words
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at 0x%04x: %s", d.Kind, d.PC, d.Message)
}

// diagnosticQueueDepth bounds the buffered channel so a host that never
// drains diagnostics cannot stall the CPU; once full, further diagnostics
// of the same run are dropped rather than blocking Tick.
const diagnosticQueueDepth = 256

// diagnostics is held by CPU (its diag field) to manage the channel's
// lifecycle.
type diagnostics struct {
	ch chan Diagnostic
}

func newDiagnostics() diagnostics {
	return diagnostics{ch: make(chan Diagnostic, diagnosticQueueDepth)}
}

func (d *diagnostics) emit(kind DiagnosticKind, pc uint16, message string) {
	select {
	case d.ch <- Diagnostic{Kind: kind, PC: pc, Message: message}:
	default:
		// channel full and undrained; drop rather than block the CPU.
	}
}

// Diagnostics returns the channel of non-fatal diagnostic events. The host
// may range over it concurrently, or ignore it entirely; a full, undrained
// channel causes new diagnostics to be dropped rather than blocking Tick.
func (c *CPU) Diagnostics() <-chan Diagnostic {
	return c.diag.ch
}
