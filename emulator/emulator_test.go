package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m6502/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Memory)
	assert.NotNil(emu.Program)
	assert.Equal(uint16(cpu.RESET_PC), emu.Cpu.Pc)
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog
}

var demo = []string{
	".org RESET_PC",
	"        jsr sub",
	".org $4242",
	"sub:    lda #$24",
	"        lda $4243",
}

func TestEmulatorDemo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, demo, t)

	emu.Reset()
	assert.Equal(2, emu.LineNo())

	remaining := emu.Run(DEFAULT_CYCLES)
	assert.Equal(0, remaining)
	assert.Equal(byte(0x24), emu.Cpu.A)
	assert.Empty(emu.Diagnostics)

	out := &bytes.Buffer{}
	err := emu.Report(out)
	assert.NoError(err)
	assert.Equal("A: 36\nX: 0\nY: 0\n\nFLAGS: 0 0 0 0 0 0 0 0\n", out.String())
}

func TestEmulatorStepLines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, demo, t)
	emu.Reset()

	for _, line := range []int{2, 4, 5} {
		assert.Equal(line, emu.LineNo())
		_, err := emu.Cpu.Step(emu.Memory)
		assert.NoError(err)
	}
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorResetClearsMemory(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, demo, t)

	emu.Memory.Write(0x1000, 0x77)
	emu.Cpu.A = 0x99
	emu.Reset()

	assert.Equal(byte(0x00), emu.Memory.Read(0x1000))
	assert.Equal(byte(0x00), emu.Cpu.A)
	// Program is loaded after the clear.
	assert.Equal(byte(cpu.JSR), emu.Memory.Read(0xfffc))
	assert.Equal(byte(cpu.LDA_IM), emu.Memory.Read(0x4242))
}

func TestEmulatorNegativeFlags(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		".org RESET_PC",
		"lda #$80",
	}, t)

	emu.Reset()
	remaining := emu.Run(2)
	assert.Equal(0, remaining)

	out := &bytes.Buffer{}
	assert.NoError(emu.Report(out))
	assert.Equal("A: 128\nX: 0\nY: 0\n\nFLAGS: 0 0 0 0 0 0 0 1\n", out.String())
}

func TestEmulatorDiagnostics(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		".org $0200",
		".byte $ff",
		".org RESET_PC",
		".byte $ff",
		"lda #1",
	}, t)

	emu.Reset()
	remaining := emu.Run(3)
	assert.Equal(0, remaining)
	assert.Equal(byte(1), emu.Cpu.A)

	assert.Equal(1, len(emu.Diagnostics))
	err := emu.Diagnostics[0]
	assert.True(errors.Is(err, cpu.ErrOpcodeUnknown(0)))

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(4, runtime.LineNo)
	assert.Equal(uint16(0xfffc), runtime.Pc)
	assert.Contains(err.Error(), "FF")

	// Diagnostics are per run.
	emu.Reset()
	assert.Empty(emu.Diagnostics)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("12", defines["DEFAULT_CYCLES"])
	assert.Equal("0xfffc", defines["RESET_PC"])
	assert.Equal("0x100", defines["STACK_BASE"])
	assert.Equal("0x10000", defines["MEMORY_SIZE"])
	assert.Equal("0x100", defines["ZERO_PAGE_SIZE"])
}
