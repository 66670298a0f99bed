package vcpu

// MaxInterruptQueue is the hard cap on queued-but-undelivered interrupt
// messages. Exceeding it means the CPU has "caught fire": Trigger reports
// the overflow and the caller (CPU) transitions to Halted.
const MaxInterruptQueue = 256

// InterruptController holds the single FIFO of pending interrupt messages
// and the queueing-enabled flag that governs whether the CPU is currently
// willing to let further interrupts build up rather than deliver them
// immediately at the next instruction boundary.
type InterruptController struct {
	queueingEnabled bool
	queue           []uint16
}

// NewInterruptController returns a controller with an empty queue and
// queueing disabled, matching the CPU's reset state.
func NewInterruptController() *InterruptController {
	return &InterruptController{queue: make([]uint16, 0, MaxInterruptQueue)}
}

// Reset clears all pending interrupts and flags.
func (ic *InterruptController) Reset() {
	ic.queueingEnabled = false
	ic.queue = ic.queue[:0]
}

// Trigger enqueues msg for delivery at the next instruction boundary and
// reports whether doing so overflowed MaxInterruptQueue (caught fire). The
// message is appended regardless of the overflow result; the caller is
// responsible for halting the CPU when it is told the queue caught fire.
func (ic *InterruptController) Trigger(msg uint16) (caughtFire bool) {
	ic.queue = append(ic.queue, msg)
	return len(ic.queue) > MaxInterruptQueue
}

// QueueLen reports the number of interrupts currently queued.
func (ic *InterruptController) QueueLen() int {
	return len(ic.queue)
}

// Queueing reports the current queueing-enabled flag.
func (ic *InterruptController) Queueing() bool {
	return ic.queueingEnabled
}

// SetQueueing sets the queueing-enabled flag directly; used by IAQ and by
// the delivery sequence itself.
func (ic *InterruptController) SetQueueing(enabled bool) {
	ic.queueingEnabled = enabled
}

// popPending removes and returns the oldest queued message, if any.
func (ic *InterruptController) popPending() (uint16, bool) {
	if len(ic.queue) == 0 {
		return 0, false
	}
	msg := ic.queue[0]
	ic.queue = ic.queue[1:]
	return msg, true
}
