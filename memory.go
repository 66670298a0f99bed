package vcpu

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// RAMWords is the size of the flat, word-addressable memory: 65,536
// 16-bit words, indices 0x0000..0xFFFF.
const RAMWords = 0x10000

// ImageBytes is the exact size of a memory image: two bytes per word,
// little-endian.
const ImageBytes = RAMWords * 2

// ImageError indicates a memory image was truncated: fewer than ImageBytes
// bytes could be read. Bytes beyond ImageBytes are not read or checked.
var ImageError = errors.New("vcpu: memory image must be exactly 131072 bytes")

// Memory is the flat 65,536-word store backing a CPU. All addresses are
// valid; reads and writes wrap modulo 2^16 on the index, so addr+1
// overflowing back to 0 is never an error.
type Memory struct {
	words [RAMWords]uint16
}

// Read returns the word at addr.
func (m *Memory) Read(addr uint16) uint16 {
	return m.words[addr]
}

// ReadWord satisfies internal/disasm.WordReader.
func (m *Memory) ReadWord(addr uint16) uint16 {
	return m.words[addr]
}

// Write stores value at addr.
func (m *Memory) Write(addr uint16, value uint16) {
	m.words[addr] = value
}

// Reset zeros every word.
func (m *Memory) Reset() {
	m.words = [RAMWords]uint16{}
}

// LoadImage reads exactly ImageBytes bytes from r and replaces the entire
// contents of memory. Word i is reconstructed from bytes [2i, 2i+1],
// little-endian. A short read is reported as ImageError, wrapped with the
// underlying cause.
func (m *Memory) LoadImage(r io.Reader) error {
	var buf [ImageBytes]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return errors.Wrap(ImageError, err.Error())
	}
	for i := 0; i < RAMWords; i++ {
		m.words[i] = binary.LittleEndian.Uint16(buf[2*i : 2*i+2])
	}
	return nil
}

// SaveImage writes the entire contents of memory to w as exactly
// ImageBytes bytes, word i occupying bytes [2i, 2i+1] little-endian.
func (m *Memory) SaveImage(w io.Writer) error {
	var buf [ImageBytes]byte
	for i := 0; i < RAMWords; i++ {
		binary.LittleEndian.PutUint16(buf[2*i:2*i+2], m.words[i])
	}
	_, err := w.Write(buf[:])
	return errors.Wrap(err, "vcpu: save image")
}
