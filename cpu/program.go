package cpu

import (
	"iter"
)

// Statement is a line of assembled source with the bytes it generated.
type Statement struct {
	LineNo    int
	Address   uint16
	Words     []string
	Bytes     []byte
	LinkLabel string
}

// Contains returns true if addr falls within the statement's bytes.
func (st *Statement) Contains(addr uint16) bool {
	offset := int(addr) - int(st.Address)
	return offset >= 0 && offset < len(st.Bytes)
}

// Program is an assembled memory image.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that generated the byte at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n := range prog.Statements {
		st := &prog.Statements[n]
		if st.Contains(addr) {
			dbg = Debug{
				Statement: st,
				Index:     int(addr - st.Address),
			}
			break
		}
	}

	return
}

// Bytes iterates over every generated byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, value byte) bool) {
		for _, st := range prog.Statements {
			for n, value := range st.Bytes {
				if !yield(st.Address+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Load writes the program image into memory.
func (prog *Program) Load(mem Memory) {
	for addr, value := range prog.Bytes() {
		mem.Write(addr, value)
	}
}
