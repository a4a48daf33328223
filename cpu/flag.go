package cpu

import (
	"strings"
)

// Flag names a status bit. The value is the bit position in the packed
// status byte.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_CARRY     = Flag(0) // carry
	FLAG_ZERO      = Flag(1) // zero
	FLAG_INTERRUPT = Flag(2) // interrupt
	FLAG_DECIMAL   = Flag(3) // decimal
	FLAG_BREAK     = Flag(4) // break
	FLAG_RESERVED  = Flag(5) // reserved
	FLAG_OVERFLOW  = Flag(6) // overflow
	FLAG_NEGATIVE  = Flag(7) // negative

	FLAG_COUNT = 8
)

// Flags is the processor status, one boolean per Flag.
type Flags [FLAG_COUNT]bool

// Get returns the state of a flag.
func (fl *Flags) Get(flag Flag) bool {
	return fl[flag]
}

// Set changes the state of a flag.
func (fl *Flags) Set(flag Flag, value bool) {
	fl[flag] = value
}

// Reset clears all flags.
func (fl *Flags) Reset() {
	clear(fl[:])
}

// Byte packs the flags into a status byte, carry in bit 0.
func (fl Flags) Byte() (value uint8) {
	for n, set := range fl {
		if set {
			value |= 1 << n
		}
	}
	return
}

// String lists the flags as 0/1 values, carry first.
func (fl Flags) String() string {
	bits := make([]string, len(fl))
	for n, set := range fl {
		bits[n] = "0"
		if set {
			bits[n] = "1"
		}
	}
	return strings.Join(bits, " ")
}
