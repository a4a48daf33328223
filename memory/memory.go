// Package memory implements the 64 KiB address space of the m6502 system.
package memory

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEMORY_SIZE    = 64 * 1024 // Bytes in the address space.
	ZERO_PAGE_SIZE = 0x100     // Bytes addressable with a single byte operand.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%#x", MEMORY_SIZE),
	"ZERO_PAGE_SIZE": fmt.Sprintf("%#x", ZERO_PAGE_SIZE),
}

// Memory is a flat byte-addressed store covering every 16-bit address.
type Memory struct {
	Data [MEMORY_SIZE]byte
}

// NewMemory returns zeroed memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{}

	return
}

// Defines for the memory
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Initialize sets every cell to zero.
func (mem *Memory) Initialize() {
	clear(mem.Data[:])
}

// Read returns the byte at addr.
func (mem *Memory) Read(addr uint16) byte {
	return mem.Data[addr]
}

// Write stores value at addr.
func (mem *Memory) Write(addr uint16, value byte) {
	mem.Data[addr] = value
}

// Load copies an image into memory starting at origin.
// Nothing is written if the image does not fit below 0x10000.
func (mem *Memory) Load(origin uint16, data []byte) (err error) {
	if int(origin)+len(data) > MEMORY_SIZE {
		err = fmt.Errorf("%w: %d bytes at 0x%04x", ErrLoadOverflow, len(data), origin)
		return
	}

	copy(mem.Data[origin:], data)

	return
}
