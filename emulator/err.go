package emulator

import (
	"github.com/ezrec/m6502/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime diagnostic.
type ErrRuntime struct {
	LineNo int
	Pc     uint16
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d pc 0x%04X %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
