package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m6502/memory"
)

func FuzzCpu(f *testing.F) {
	for op := range 0x100 {
		f.Add(uint8(op), uint8(0x42), uint8(0x80), uint8(0x00), uint8(0x00))
		f.Add(uint8(op), uint8(0xff), uint8(0xff), uint8(0x01), uint8(0x7f))
	}

	f.Fuzz(func(t *testing.T, opcode uint8, lo uint8, hi uint8, x uint8, fill uint8) {
		assert := assert.New(t)

		mem := memory.NewMemory()
		cpu := NewCpu()
		cpu.Reset(mem)
		for n := range mem.Data {
			mem.Data[n] = fill ^ uint8(n)
		}

		pc := uint16(0x0300)
		cpu.Pc = pc
		cpu.X = x
		cpu.A = 0x5a
		mem.Write(pc, opcode)
		mem.Write(pc+1, lo)
		mem.Write(pc+2, hi)

		before := *cpu
		cycles, err := cpu.Step(mem)

		ins, ok := Decode(opcode)
		if !ok {
			assert.True(errors.Is(err, ErrOpcodeUnknown(0)))
			assert.Equal(1, cycles)
			before.Pc++
			before.Ticks++
			assert.Equal(before.String(), cpu.String())
			return
		}

		assert.NoError(err)
		assert.Equal(ins.Cycles, cycles)
		assert.Equal(before.Ticks+cycles, cpu.Ticks)

		var expected byte
		switch ins.Opcode {
		case LDA_IM:
			expected = lo
		case LDA_ZP:
			expected = mem.Read(uint16(lo))
		case LDA_ZPX:
			expected = mem.Read(uint16(lo + x))
		case LDA_AB:
			expected = mem.Read(uint16(hi)<<8 | uint16(lo))
		case JSR:
			assert.Equal(uint16(hi)<<8|uint16(lo), cpu.Pc)
			assert.Equal(before.Sp+2, cpu.Sp)
			assert.Equal(byte(0x02), mem.Read(before.Sp))
			assert.Equal(byte(0x03), mem.Read(before.Sp+1))
			assert.Equal(before.A, cpu.A)
			return
		}

		assert.Equal(expected, cpu.A)
		assert.Equal(pc+uint16(ins.Size()), cpu.Pc)
		assert.Equal(expected == 0, cpu.Flags.Get(FLAG_ZERO))
		assert.Equal(expected >= 0x80, cpu.Flags.Get(FLAG_NEGATIVE))
		assert.Equal(before.X, cpu.X)
		assert.Equal(before.Y, cpu.Y)
		assert.Equal(before.Sp, cpu.Sp)
	})
}
