package vcpu

// DeviceInfo is the identity tuple a device reports to HWQ: a 32-bit
// hardware ID (returned split across A/B), a 16-bit version (C), and a
// 32-bit manufacturer ID (returned split across X/Y).
type DeviceInfo struct {
	HardwareID     uint32
	Version        uint16
	ManufacturerID uint32
}

// CPUView is the narrow surface a HardwareDevice is given during HWI: it
// can read and write the architectural registers and memory, and trigger
// an interrupt of its own, but cannot reach Decoder/Executor/Scheduler
// internals.
type CPUView interface {
	Register(id RegisterID) uint16
	SetRegister(id RegisterID, v uint16)
	ReadMemory(addr uint16) uint16
	WriteMemory(addr uint16, v uint16)
	TriggerInterrupt(msg uint16)
}

// HardwareDevice is anything attachable to a HardwareBus. Interrupt
// performs the device's HWI behavior against cpu and returns the number of
// cycles to add to HWI's base cost of 4.
type HardwareDevice interface {
	Info() DeviceInfo
	Interrupt(cpu CPUView) uint16
}

// HardwareBus is an ordered registry of attached devices, indexed exactly
// as HWN/HWQ/HWI address them: device 0 is the first attached, and so on.
type HardwareBus struct {
	devices []HardwareDevice
}

// NewHardwareBus returns an empty bus.
func NewHardwareBus() *HardwareBus {
	return &HardwareBus{}
}

// Attach appends d to the bus, assigning it the next device index.
func (b *HardwareBus) Attach(d HardwareDevice) {
	b.devices = append(b.devices, d)
}

// Count reports the number of attached devices, as returned by HWN.
func (b *HardwareBus) Count() int {
	return len(b.devices)
}

// Query returns the identity tuple of the device at index, as used by
// HWQ. ok is false for an out-of-range index.
func (b *HardwareBus) Query(index uint16) (DeviceInfo, bool) {
	if int(index) >= len(b.devices) {
		return DeviceInfo{}, false
	}
	return b.devices[int(index)].Info(), true
}

// Interrupt invokes the device at index's HWI handler against cpu. ok is
// false for an out-of-range index, in which case no handler runs.
func (b *HardwareBus) Interrupt(index uint16, cpu CPUView) (extraCycles uint16, ok bool) {
	if int(index) >= len(b.devices) {
		return 0, false
	}
	return b.devices[int(index)].Interrupt(cpu), true
}
