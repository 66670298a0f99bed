package vcpu

// Scheduler drives a CPU forward one clock cycle at a time. It owns none
// of the state itself; everything it touches lives on the CPU passed in.
type Scheduler struct{}

// Tick advances cpu by exactly one cycle:
//
//   - Halted: no-op, forever.
//   - Hibernating: waits for a queued interrupt, then becomes Active; the
//     instruction that follows runs on a later Tick.
//   - Busy/Sleeping: counts its remaining cycles down by one, becoming
//     Active when it reaches zero.
//   - Active: unless interrupt queueing is enabled, takes one queued
//     interrupt and delivers it (or drops it if IA is zero), then fetches, decodes, and executes exactly one instruction. If that
//     instruction's total cost exceeds one cycle, the CPU spends the
//     remainder as Busy so that later ticks account for it without
//     re-running the instruction.
func (Scheduler) Tick(cpu *CPU) {
	switch cpu.state.Kind {
	case Halted:
		return

	case Hibernating:
		if cpu.interrupts.QueueLen() > 0 {
			cpu.state = NewActiveState()
		}
		return

	case Busy, Sleeping:
		cpu.state = decrementRemaining(cpu.state)
		return

	case Active:
		cpu.deliverInterrupt()
		instr, extra := cpu.decoder.Decode(cpu.mem, cpu.regs)
		cost := cpu.executor.Execute(cpu, instr)
		total := cost + extra
		if cpu.state.Kind == Active && total > 1 {
			cpu.state = NewBusyState(uint16(total - 1))
		}
	}
}

// StepInstruction runs Tick until one full instruction has been fetched,
// decoded, and executed (ticking through any outstanding Busy/Sleeping
// remainder, or waiting out a Hibernating state, first), then ticks through
// that instruction's own Busy latency, and reports how many cycles that
// took. It returns early, before completing an
// instruction, if the CPU reaches Halted.
func (Scheduler) StepInstruction(cpu *CPU) int {
	var s Scheduler
	cycles := 0
	for cpu.state.Kind != Active {
		if cpu.state.Kind == Halted {
			return cycles
		}
		s.Tick(cpu)
		cycles++
		if cpu.state.Kind == Halted {
			return cycles
		}
	}
	s.Tick(cpu)
	cycles++
	for cpu.state.Kind == Busy {
		s.Tick(cpu)
		cycles++
	}
	return cycles
}

// decrementRemaining counts down a Busy or Sleeping state by one cycle,
// collapsing to Active once its Remaining count is exhausted.
func decrementRemaining(s ExecState) ExecState {
	if s.Remaining <= 1 {
		return NewActiveState()
	}
	return ExecState{Kind: s.Kind, Remaining: s.Remaining - 1}
}
