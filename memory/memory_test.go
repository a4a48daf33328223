package memory

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.Equal(MEMORY_SIZE, len(mem.Data))

	mem.Write(0x0000, 0x11)
	mem.Write(0x4242, 0x22)
	mem.Write(0xffff, 0x33)

	assert.Equal(byte(0x11), mem.Read(0x0000))
	assert.Equal(byte(0x22), mem.Read(0x4242))
	assert.Equal(byte(0x33), mem.Read(0xffff))
	assert.Equal(byte(0x00), mem.Read(0x4243))
}

func TestMemory_Initialize(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	for n := range mem.Data {
		mem.Data[n] = byte(n) | 1
	}

	mem.Initialize()
	for n, value := range mem.Data {
		if value != 0 {
			t.Fatalf("cell 0x%04x is 0x%02x after Initialize", n, value)
		}
	}

	// Idempotent
	mem.Initialize()
	assert.Equal(byte(0), mem.Read(0x1234))
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	err := mem.Load(0xfffc, []byte{0x20, 0x42, 0x42, 0x00})
	assert.NoError(err)
	assert.Equal([]byte{0x20, 0x42, 0x42, 0x00}, mem.Data[0xfffc:])
}

func TestMemory_LoadOverflow(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	err := mem.Load(0xfffe, []byte{0x01, 0x02, 0x03})
	assert.True(errors.Is(err, ErrLoadOverflow))
	assert.Equal(byte(0), mem.Read(0xfffe))
	assert.Equal(byte(0), mem.Read(0xffff))
}

func TestMemory_Defines(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	defines := map[string]string{}
	for key, value := range mem.Defines() {
		defines[key] = value
	}

	assert.Equal("0x10000", defines["MEMORY_SIZE"])
	assert.Equal("0x100", defines["ZERO_PAGE_SIZE"])
}

func TestTape_Load(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	tape := &Tape{Input: bytes.NewReader([]byte{0xa9, 0x24, 0xad, 0x43, 0x42})}

	n, err := tape.Load(mem, 0x4242)
	assert.NoError(err)
	assert.Equal(5, n)
	assert.Equal([]byte{0xa9, 0x24, 0xad, 0x43, 0x42}, mem.Data[0x4242:0x4247])
}

func TestTape_LoadMissing(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	_, err := tape.Load(NewMemory(), 0)
	assert.Equal(ErrTapeMissing, err)
}

func TestTape_LoadOverflow(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: bytes.NewReader(make([]byte, 8))}
	n, err := tape.Load(NewMemory(), 0xfffc)
	assert.True(errors.Is(err, ErrLoadOverflow))
	assert.Equal(0, n)
}
