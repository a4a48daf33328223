// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/m6502/cpu"
	"github.com/ezrec/m6502/internal"
	"github.com/ezrec/m6502/memory"
)

const (
	DEFAULT_CYCLES = 12 // Default cycle budget for a run.
)

var _emulator_defines = map[string]string{
	"DEFAULT_CYCLES": fmt.Sprintf("%v", DEFAULT_CYCLES),
}

// Emulator state. CPU + memory + loaded program.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Memory   *memory.Memory // Address space the CPU runs against.
	Program  *cpu.Program   // Reference to the currently loaded program listing.

	Diagnostics []error // Diagnostics reported since the last reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Memory:  memory.NewMemory(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Diagnostic = emu.diagnose

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Memory.Defines(),
	)
}

// Reset the CPU, clear memory, and load the program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Diagnostics = nil

	emu.Cpu.Reset(emu.Memory)
	emu.Program.Load(emu.Memory)
}

// LineNo returns the source line number for the byte at Pc.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Run executes the program for a cycle budget, returning what is left
// of the budget.
func (emu *Emulator) Run(cycles int) (remaining int) {
	emu.Cpu.Verbose = emu.Verbose

	return emu.Cpu.Execute(emu.Memory, cycles)
}

// diagnose records a diagnostic from the CPU. The faulting opcode has
// already been fetched, so it sits at Pc-1.
func (emu *Emulator) diagnose(err error) {
	pc := emu.Cpu.Pc - 1
	lineno := 0
	dbg := emu.Program.Debug(pc)
	if dbg.Statement != nil {
		lineno = dbg.LineNo
	}

	err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
	emu.Diagnostics = append(emu.Diagnostics, err)

	log.Printf("emulator: %v", err)
}

// Report writes the registers and flags in human readable form.
func (emu *Emulator) Report(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "A: %d\nX: %d\nY: %d\n\nFLAGS: %v\n",
		emu.Cpu.A, emu.Cpu.X, emu.Cpu.Y, emu.Cpu.Flags)

	return
}
