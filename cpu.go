package vcpu

import "io"

// CPU wires together the memory, registers, decoder, executor, interrupt
// controller, and hardware bus that make up one virtual machine. Callers
// embed or hold a *CPU and drive it one cycle at a time with Tick, or one
// instruction at a time with StepInstruction.
type CPU struct {
	regs       *RegisterFile
	mem        *Memory
	interrupts *InterruptController
	hardware   *HardwareBus
	decoder    Decoder
	executor   Executor
	state      ExecState
	diag       diagnostics
}

// NewCPU returns a freshly reset CPU with an empty hardware bus.
func NewCPU() *CPU {
	c := &CPU{
		regs:       &RegisterFile{},
		mem:        &Memory{},
		interrupts: NewInterruptController(),
		hardware:   NewHardwareBus(),
		state:      NewActiveState(),
		diag:       newDiagnostics(),
	}
	return c
}

// Reset restores registers, memory, execution state, and the interrupt
// queue to their power-on values. Attached hardware devices are left in
// place.
func (c *CPU) Reset() {
	c.regs.Reset()
	c.mem.Reset()
	c.interrupts.Reset()
	c.state = NewActiveState()
}

// LoadImage replaces memory contents from r; see Memory.LoadImage.
func (c *CPU) LoadImage(r io.Reader) error {
	return c.mem.LoadImage(r)
}

// SaveImage writes memory contents to w; see Memory.SaveImage.
func (c *CPU) SaveImage(w io.Writer) error {
	return c.mem.SaveImage(w)
}

// AttachHardware registers d on the CPU's hardware bus at the next device
// index.
func (c *CPU) AttachHardware(d HardwareDevice) {
	c.hardware.Attach(d)
}

// Hardware returns the CPU's hardware bus, for callers (and tests) that
// need to query attached devices directly rather than through HWN/HWQ/HWI.
func (c *CPU) Hardware() *HardwareBus {
	return c.hardware
}

// Register returns the current value of register id.
func (c *CPU) Register(id RegisterID) uint16 {
	return c.regs.Get(id)
}

// SetRegister assigns v to register id.
func (c *CPU) SetRegister(id RegisterID, v uint16) {
	c.regs.Set(id, v)
}

// ReadMemory returns the word at addr.
func (c *CPU) ReadMemory(addr uint16) uint16 {
	return c.mem.Read(addr)
}

// WriteMemory assigns v to the word at addr.
func (c *CPU) WriteMemory(addr uint16, v uint16) {
	c.mem.Write(addr, v)
}

// State reports the CPU's current execution state.
func (c *CPU) State() ExecState {
	return c.state
}

// View returns c as the narrow CPUView a HardwareDevice is handed during
// HWI. CPU satisfies CPUView directly.
func (c *CPU) View() CPUView {
	return c
}

// TriggerInterrupt enqueues msg for delivery at the next instruction
// boundary, transitioning to Halted if the queue overflows. This is the
// method both the INT instruction and attached hardware devices use.
func (c *CPU) TriggerInterrupt(msg uint16) {
	c.triggerInterrupt(msg)
}

func (c *CPU) triggerInterrupt(msg uint16) {
	if c.interrupts.Trigger(msg) {
		c.state = NewHaltedState()
		c.diag.emit(DiagCaughtFire, c.regs.Get(RegPC), "interrupt queue exceeded 256 entries")
	}
}

// popStack pops and returns the word at [SP], post-incrementing SP. Used
// by RFI, which pops A and PC directly rather than going through a
// decoded operand.
func (c *CPU) popStack() uint16 {
	sp := c.regs.Get(RegSP)
	v := c.mem.Read(sp)
	c.regs.Set(RegSP, sp+1)
	return v
}

// deliverInterrupt delivers the oldest queued interrupt, if any, at an
// instruction boundary. An interrupt whose message would be delivered
// while IA is zero is dropped instead of delivered, draining at most one
// queue entry per boundary either way (spec §4.8). While queueing is
// enabled, nothing is delivered or drained.
func (c *CPU) deliverInterrupt() {
	if c.interrupts.Queueing() {
		return
	}
	msg, ok := c.interrupts.popPending()
	if !ok {
		return
	}
	if c.regs.Get(RegIA) == 0 {
		return
	}
	sp := c.regs.Get(RegSP) - 1
	c.regs.Set(RegSP, sp)
	c.mem.Write(sp, c.regs.Get(RegPC))
	sp--
	c.regs.Set(RegSP, sp)
	c.mem.Write(sp, c.regs.Get(RegA))
	c.regs.Set(RegPC, c.regs.Get(RegIA))
	c.regs.Set(RegA, msg)
	c.interrupts.SetQueueing(true)
}
