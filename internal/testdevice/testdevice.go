// Package testdevice provides a minimal HardwareDevice used only by the
// vcpu package's own tests, to exercise the HWN/HWQ/HWI contract without
// shipping any concrete device as product surface.
package testdevice

import "github.com/huhlig/hivemind-vcpu"

// Device is a fake hardware device: HWI increments Interrupts, records
// register A in LastA, and reports ExtraCycles back to the executor.
type Device struct {
	HardwareID     uint32
	Version        uint16
	ManufacturerID uint32
	ExtraCycles    uint16

	Interrupts int
	LastA      uint16
}

// New returns a Device with the given identity tuple.
func New(hardwareID uint32, version uint16, manufacturerID uint32) *Device {
	return &Device{HardwareID: hardwareID, Version: version, ManufacturerID: manufacturerID}
}

// Info implements vcpu.HardwareDevice.
func (d *Device) Info() vcpu.DeviceInfo {
	return vcpu.DeviceInfo{HardwareID: d.HardwareID, Version: d.Version, ManufacturerID: d.ManufacturerID}
}

// Interrupt implements vcpu.HardwareDevice: it records the call and the
// value of register A at the time of invocation, then reports
// ExtraCycles as the number of cycles beyond HWI's base cost.
func (d *Device) Interrupt(cpu vcpu.CPUView) uint16 {
	d.Interrupts++
	d.LastA = cpu.Register(vcpu.RegA)
	return d.ExtraCycles
}
