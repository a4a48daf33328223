package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// Power-up register values.
const (
	RESET_PC   = uint16(0xfffc) // Program counter after reset.
	STACK_BASE = uint16(0x0100) // Stack pointer after reset.
)

var _cpu_defines = map[string]string{
	"RESET_PC":   fmt.Sprintf("%#x", RESET_PC),
	"STACK_BASE": fmt.Sprintf("%#x", STACK_BASE),
}

// Memory is the address space the CPU executes against.
type Memory interface {
	Initialize()
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc    uint16 // Address of the next instruction byte.
	Sp    uint16 // Next free stack slot.
	A     byte   // Accumulator.
	X     byte   // X index register.
	Y     byte   // Y index register.
	Flags Flags  // Status flags.

	Ticks int // Cycles consumed since reset.

	// Diagnostic receives non-fatal execution errors, such as unknown
	// opcodes. If nil, they are logged.
	Diagnostic func(err error)
}

// NewCpu creates a CPU in its power-up state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Pc: RESET_PC,
		Sp: STACK_BASE,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %04X\n", "sp", cpu.Sp)
	text += fmt.Sprintf("% 5s: %02X\n", "a", cpu.A)
	text += fmt.Sprintf("% 5s: %02X\n", "x", cpu.X)
	text += fmt.Sprintf("% 5s: %02X\n", "y", cpu.Y)
	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Flags)

	return
}

// Reset the CPU state.
// - Sets the registers and flags to their power-up values.
// - Zeros the tick counter.
// - Initializes all of memory; programs must be loaded afterwards.
func (cpu *Cpu) Reset(mem Memory) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = RESET_PC
	cpu.Sp = STACK_BASE
	cpu.A, cpu.X, cpu.Y = 0, 0, 0
	cpu.Flags.Reset()
	cpu.Ticks = 0

	mem.Initialize()
}

// Execute runs whole instructions until the cycle budget is spent, and
// returns what is left of it. An instruction is never cut short, so the
// result may be negative.
func (cpu *Cpu) Execute(mem Memory, cycles int) (remaining int) {
	for cycles > 0 {
		used, err := cpu.Step(mem)
		cycles -= used
		if err != nil {
			cpu.diagnose(err)
		}
	}

	return cycles
}

// Step executes a single instruction, returning the cycles it used.
// An unknown opcode costs only its fetch, and is returned as
// ErrOpcodeUnknown with the registers left as they were.
func (cpu *Cpu) Step(mem Memory) (cycles int, err error) {
	defer func() {
		cpu.Ticks += cycles
	}()

	if cpu.Verbose {
		text, _ := Disassemble(mem, cpu.Pc)
		log.Printf("%04x: %v", cpu.Pc, text)
	}

	op := Opcode(cpu.fetchByte(mem, &cycles))

	switch op {
	case LDA_IM:
		cpu.A = cpu.fetchByte(mem, &cycles)
		cpu.setLoadFlags()
	case LDA_ZP:
		addr := cpu.fetchByte(mem, &cycles)
		cpu.A = cpu.readByte(mem, &cycles, uint16(addr))
		cpu.setLoadFlags()
	case LDA_ZPX:
		addr := cpu.fetchByte(mem, &cycles) + cpu.X
		cpu.A = cpu.readByte(mem, &cycles, uint16(addr))
		// Index addition.
		cycles++
		cpu.setLoadFlags()
	case LDA_AB:
		addr := cpu.fetchWord(mem, &cycles)
		cpu.A = cpu.readByte(mem, &cycles, addr)
		cpu.setLoadFlags()
	case JSR:
		addr := cpu.fetchWord(mem, &cycles)
		cpu.pushWord(mem, &cycles, cpu.Pc-1)
		cpu.Pc = addr
		cycles++
	default:
		err = ErrOpcodeUnknown(op)
	}

	return
}

// diagnose reports a non-fatal error.
func (cpu *Cpu) diagnose(err error) {
	if cpu.Diagnostic != nil {
		cpu.Diagnostic(err)
		return
	}

	log.Printf("cpu: %04x: %v", cpu.Pc-1, err)
}

// fetchByte reads the byte at Pc and advances Pc.
func (cpu *Cpu) fetchByte(mem Memory, cycles *int) (value byte) {
	value = mem.Read(cpu.Pc)
	cpu.Pc++
	*cycles += 1
	return
}

// fetchWord reads a little-endian word at Pc and advances Pc past it.
func (cpu *Cpu) fetchWord(mem Memory, cycles *int) (value uint16) {
	lo := mem.Read(cpu.Pc)
	cpu.Pc++
	hi := mem.Read(cpu.Pc)
	cpu.Pc++
	*cycles += 2
	return uint16(hi)<<8 | uint16(lo)
}

// readByte reads the byte at addr.
func (cpu *Cpu) readByte(mem Memory, cycles *int, addr uint16) (value byte) {
	value = mem.Read(addr)
	*cycles += 1
	return
}

// pushWord stores value low byte first at Sp, and advances Sp by two.
func (cpu *Cpu) pushWord(mem Memory, cycles *int, value uint16) {
	mem.Write(cpu.Sp, byte(value&0xff))
	mem.Write(cpu.Sp+1, byte(value>>8))
	cpu.Sp += 2
	*cycles += 2
}

// setLoadFlags updates Zero and Negative from A.
func (cpu *Cpu) setLoadFlags() {
	cpu.Flags.Set(FLAG_ZERO, cpu.A == 0)
	cpu.Flags.Set(FLAG_NEGATIVE, (cpu.A&0x80) != 0)
}

// Disassemble decodes the instruction at pc without side effects,
// returning its text and encoded size. Unknown opcodes decode as a
// one byte .byte directive.
func Disassemble(mem Memory, pc uint16) (text string, size int) {
	value := mem.Read(pc)
	ins, ok := Decode(value)
	if !ok {
		return fmt.Sprintf(".byte $%02x", value), 1
	}

	operand := make([]byte, ins.Mode.OperandSize())
	for n := range operand {
		operand[n] = mem.Read(pc + 1 + uint16(n))
	}

	return ins.Format(operand), ins.Size()
}
