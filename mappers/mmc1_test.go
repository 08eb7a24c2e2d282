package mappers

import (
	"testing"

	"github.com/adaptco/nes/nesrom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildROM(t *testing.T, mapperID uint8, prgBanks, chrBanks uint8) *nesrom.ROM {
	t.Helper()
	data := make([]byte, 0)
	header := make([]byte, 16)
	copy(header, []byte("NES\x1A"))
	header[4] = prgBanks
	header[5] = chrBanks
	header[6] = (mapperID & 0x0F) << 4
	header[7] = mapperID & 0xF0
	data = append(data, header...)
	data = append(data, make([]byte, 16384*int(prgBanks))...)
	data = append(data, make([]byte, 8192*int(chrBanks))...)

	rom, err := nesrom.NewFromBytes(data)
	require.NoError(t, err)
	return rom
}

func TestMMC1SequentialWrite(t *testing.T) {
	rom := buildROM(t, 1, 2, 1)
	m := newMMC1(rom).(*mmc1)

	for _, v := range []uint8{0x01, 0x00, 0x00, 0x00, 0x00} {
		m.PrgWrite(0x8000, v)
	}

	assert.Equal(t, uint8(0x01), m.control)
	assert.Equal(t, uint8(0), m.shift)
	assert.Equal(t, uint8(0), m.shiftCount)

	// A mid-sequence reset (bit 7 set) at any point clears reg and forces
	// control's PRG-mode bits.
	m.PrgWrite(0x8000, 0x01)
	m.PrgWrite(0x8000, 0x00)
	m.PrgWrite(0x8000, 0x80) // reset
	assert.Equal(t, uint8(0), m.shift)
	assert.Equal(t, uint8(0), m.shiftCount)
	assert.Equal(t, uint8(0x01|0x0C), m.control)
}

func TestMMC1PRGMode3FixesLastBank(t *testing.T) {
	rom := buildROM(t, 1, 4, 1)
	m := newMMC1(rom).(*mmc1)
	m.control = 0x0C // PRG mode 3

	writeMMC1Register(m, 0xE000, 2) // prgBank = 2

	bank, _ := m.prgWindow(0x8000)
	assert.Equal(t, uint8(2), bank)
	bank, _ = m.prgWindow(0xC000)
	assert.Equal(t, m.prgBanks-1, bank)
}

func TestMMC1MirroringModes(t *testing.T) {
	rom := buildROM(t, 1, 2, 1)
	m := newMMC1(rom).(*mmc1)

	cases := []struct {
		bits uint8
		want uint8
	}{
		{0, nesrom.MIRROR_ONE_SCREEN_LOWER},
		{1, nesrom.MIRROR_ONE_SCREEN_UPPER},
		{2, nesrom.MIRROR_VERTICAL},
		{3, nesrom.MIRROR_HORIZONTAL},
	}
	for _, c := range cases {
		m.control = c.bits
		assert.Equal(t, c.want, m.MirroringMode())
	}
}

// writeMMC1Register performs a full 5-write sequence to set register reg
// (addressed by its CPU address) to value's low 5 bits.
func writeMMC1Register(m *mmc1, addr uint16, value uint8) {
	for i := 0; i < 5; i++ {
		m.PrgWrite(addr, (value>>i)&1)
	}
}
