package memory

import (
	"errors"

	"github.com/ezrec/m6502/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrLoadOverflow = errors.New(f("image overflows address space"))
	ErrTapeMissing  = errors.New(f("tape has no input"))
)
