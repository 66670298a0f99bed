// Package vcpu implements the core virtual machine of a 16-bit processor
// emulator modeled on the DCPU-16 instruction set, with a hardware
// interrupt controller, a hardware device bus, and a multi-state cycle
// scheduler.
//
// The package is organized leaf-first: Memory and RegisterFile hold state;
// Decoder turns an instruction word plus CPU state into a decoded
// Instruction without mutating anything but PC and SP; Executor applies a
// decoded Instruction; InterruptController is consulted by CPU at
// instruction boundaries and HardwareBus by HWN/HWQ/HWI; Scheduler drives everything a single cycle at a
// time. CPU wires the pieces together and is the type most callers embed.
package vcpu
