package memory

import (
	"io"
)

// Tape reads a raw binary program image from a byte stream.
type Tape struct {
	Input io.Reader
}

// Load reads the whole input and stores it at origin.
func (tc *Tape) Load(mem *Memory, origin uint16) (n int, err error) {
	if tc.Input == nil {
		err = ErrTapeMissing
		return
	}

	data, err := io.ReadAll(tc.Input)
	if err != nil {
		return
	}

	err = mem.Load(origin, data)
	if err != nil {
		return
	}

	n = len(data)

	return
}
