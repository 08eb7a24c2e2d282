package mappers

import (
	"testing"

	"github.com/adaptco/nes/nesrom"
	"github.com/stretchr/testify/assert"
)

func TestMMC3ScanlineIRQAssertsOnFifthEdge(t *testing.T) {
	rom := buildROM(t, 4, 8, 8)
	m := newMMC3(rom).(*mmc3)

	m.irqLatch = 4
	m.irqEnabled = true
	m.irqReload = true // first edge always reloads

	for i := 0; i < 4; i++ {
		m.NotifyA12Rise()
		assert.False(t, m.IRQPending(), "should not fire before the counter reaches zero (edge %d)", i+1)
	}
	m.NotifyA12Rise()
	assert.True(t, m.IRQPending())

	m.ClearIRQ()
	assert.False(t, m.IRQPending())
}

func TestMMC3BankSelectRoutesRegisterWrites(t *testing.T) {
	rom := buildROM(t, 4, 8, 8)
	m := newMMC3(rom).(*mmc3)

	m.PrgWrite(0x8000, 2) // select register 2 (CHR 1KiB bank @1000-13FF)
	m.PrgWrite(0x8001, 0x07)
	assert.Equal(t, uint8(0x07), m.registers[2])

	m.PrgWrite(0x8000, 6) // select register 6 (PRG bank)
	m.PrgWrite(0x8001, 0x03)
	assert.Equal(t, uint8(0x03), m.registers[6])
}

func TestMMC3PRGModeSwapsFixedWindow(t *testing.T) {
	rom := buildROM(t, 4, 8, 8)
	m := newMMC3(rom).(*mmc3)
	m.registers[6] = 1

	m.bankSelect = 0 // prg mode 0: 0x8000 switchable, 0xC000 fixed to prgBanks-2
	assert.Equal(t, uint8(1), m.prgBankForWindow(0x8000))
	assert.Equal(t, m.prgBanks-2, m.prgBankForWindow(0xC000))

	m.bankSelect = 0x40 // prg mode 1: swapped
	assert.Equal(t, m.prgBanks-2, m.prgBankForWindow(0x8000))
	assert.Equal(t, uint8(1), m.prgBankForWindow(0xC000))
}

func TestMMC3MirroringBit(t *testing.T) {
	rom := buildROM(t, 4, 8, 8)
	m := newMMC3(rom).(*mmc3)

	m.mirroring = 0
	assert.Equal(t, uint8(nesrom.MIRROR_VERTICAL), m.MirroringMode())
	m.mirroring = 1
	assert.Equal(t, uint8(nesrom.MIRROR_HORIZONTAL), m.MirroringMode())
}
