package cpu

import (
	"fmt"
)

// Opcode is the first byte of an instruction.
type Opcode byte

//go:generate go tool stringer -type=Opcode
const (
	JSR     = Opcode(0x20) // Jump to subroutine, absolute.
	LDA_ZP  = Opcode(0xa5) // Load A, zero page.
	LDA_IM  = Opcode(0xa9) // Load A, immediate.
	LDA_AB  = Opcode(0xad) // Load A, absolute.
	LDA_ZPX = Opcode(0xb5) // Load A, zero page indexed by X.
)

// AddressMode is how an instruction locates its operand.
type AddressMode int

//go:generate go tool stringer -linecomment -type=AddressMode
const (
	MODE_IMMEDIATE   = AddressMode(0) // immediate
	MODE_ZERO_PAGE   = AddressMode(1) // zeropage
	MODE_ZERO_PAGE_X = AddressMode(2) // zeropage,x
	MODE_ABSOLUTE    = AddressMode(3) // absolute
)

// OperandSize returns the number of operand bytes following the opcode.
func (mode AddressMode) OperandSize() int {
	if mode == MODE_ABSOLUTE {
		return 2
	}
	return 1
}

// Instruction describes a decoded opcode.
type Instruction struct {
	Opcode   Opcode
	Mnemonic string
	Mode     AddressMode
	Cycles   int // Total cycles charged, including the opcode fetch.
}

// Size returns the encoded length of the instruction in bytes.
func (ins Instruction) Size() int {
	return 1 + ins.Mode.OperandSize()
}

var instructionTable = map[Opcode]Instruction{
	LDA_IM:  {LDA_IM, "lda", MODE_IMMEDIATE, 2},
	LDA_ZP:  {LDA_ZP, "lda", MODE_ZERO_PAGE, 3},
	LDA_ZPX: {LDA_ZPX, "lda", MODE_ZERO_PAGE_X, 4},
	LDA_AB:  {LDA_AB, "lda", MODE_ABSOLUTE, 4},
	JSR:     {JSR, "jsr", MODE_ABSOLUTE, 6},
}

// Decode returns the instruction for an opcode byte.
func Decode(value byte) (ins Instruction, ok bool) {
	ins, ok = instructionTable[Opcode(value)]
	return
}

// Encode finds the opcode for a mnemonic in an addressing mode.
func Encode(mnemonic string, mode AddressMode) (op Opcode, ok bool) {
	for _, ins := range instructionTable {
		if ins.Mnemonic == mnemonic && ins.Mode == mode {
			return ins.Opcode, true
		}
	}

	return
}

// Format renders the instruction with its operand bytes, in the
// notation accepted by the Assembler.
func (ins Instruction) Format(operand []byte) string {
	if len(operand) < ins.Mode.OperandSize() {
		return fmt.Sprintf("%v ???", ins.Mnemonic)
	}

	switch ins.Mode {
	case MODE_IMMEDIATE:
		return fmt.Sprintf("%v #$%02x", ins.Mnemonic, operand[0])
	case MODE_ZERO_PAGE:
		return fmt.Sprintf("%v $%02x", ins.Mnemonic, operand[0])
	case MODE_ZERO_PAGE_X:
		return fmt.Sprintf("%v $%02x,x", ins.Mnemonic, operand[0])
	default:
		addr := uint16(operand[1])<<8 | uint16(operand[0])
		return fmt.Sprintf("%v $%04x", ins.Mnemonic, addr)
	}
}
