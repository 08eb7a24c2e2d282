package mappers

import "github.com/adaptco/nes/nesrom"

func init() {
	RegisterMapper(4, newMMC3)
}

// mmc3 implements mapper 4. Grounded on
// andrewthecodertx-go-nes-emulator/pkg/cartridge/mapper4.go for the
// bank-select/window wiring, with the scanline IRQ counter fully
// implemented (not stubbed) per the REDESIGN FLAG, driven by NotifyA12Rise
// rather than that repo's explicit Scanline() call — this repository's PPU
// calls NotifyA12Rise from the CHR bus itself whenever a pattern fetch
// address's bit 12 transitions low to high, which is the real hardware
// trigger MMC3 relies on.
type mmc3 struct {
	*baseMapper

	prgRAM []uint8
	chrRAM []uint8

	prgBanks uint8 // number of 8 KiB PRG banks
	chrIsRAM bool

	bankSelect uint8 // bits 0-2 next target, bit 6 prg mode, bit 7 chr A12 invert
	registers  [8]uint8

	mirroring      uint8 // 0 = vertical, 1 = horizontal (register bit)
	prgRAMEnabled  bool
	prgRAMProtect  bool

	irqLatch     uint8
	irqCounter   uint8
	irqEnabled   bool
	irqReload    bool
	irqPending   bool
}

func newMMC3(rom *nesrom.ROM) Mapper {
	m := &mmc3{
		baseMapper: &baseMapper{id: 4, name: "MMC3", rom: rom},
		prgRAM:     make([]uint8, 8192),
		prgBanks:   uint8(rom.PrgSize() / 8192),
		chrIsRAM:   rom.HasChrRAM(),
	}
	if m.chrIsRAM {
		m.chrRAM = make([]uint8, 8192)
	}
	return m
}

func (m *mmc3) prgMode() uint8  { return (m.bankSelect >> 6) & 1 }
func (m *mmc3) chrInvert() bool { return m.bankSelect&0x80 != 0 }

func (m *mmc3) PrgRead(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		if m.prgRAMEnabled {
			return m.prgRAM[addr-0x6000]
		}
		return 0
	}
	bank := m.prgBankForWindow(addr)
	off := addr & 0x1FFF
	return m.rom.PrgRead(uint16(bank)*8192 + off)
}

func (m *mmc3) prgBankForWindow(addr uint16) uint8 {
	last := m.prgBanks - 1
	secondLast := m.prgBanks - 2
	switch {
	case addr >= 0x8000 && addr < 0xA000:
		if m.prgMode() == 0 {
			return m.registers[6] % m.prgBanks
		}
		return secondLast
	case addr >= 0xA000 && addr < 0xC000:
		return m.registers[7] % m.prgBanks
	case addr >= 0xC000 && addr < 0xE000:
		if m.prgMode() == 0 {
			return secondLast
		}
		return m.registers[6] % m.prgBanks
	default: // 0xE000-0xFFFF
		return last
	}
}

func (m *mmc3) PrgWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		if m.prgRAMEnabled && !m.prgRAMProtect {
			m.prgRAM[addr-0x6000] = val
		}
		return
	}
	if addr < 0x8000 {
		return
	}

	even := addr&1 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.bankSelect = val
		} else {
			m.registers[m.bankSelect&0x07] = val
		}
	case addr < 0xC000:
		if even {
			m.mirroring = val & 0x01
		} else {
			m.prgRAMEnabled = val&0x80 != 0
			m.prgRAMProtect = val&0x40 != 0
		}
	case addr < 0xE000:
		if even {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	default:
		if even {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) ChrRead(addr uint16) uint8 {
	if m.chrIsRAM {
		return m.chrRAM[addr]
	}
	off := m.chrOffset(addr)
	return m.rom.ChrRead(off)
}

func (m *mmc3) ChrWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chrRAM[addr] = val
	}
}

// chrOffset resolves a PPU pattern-table address into a byte offset in the
// CHR image, honoring the four 1 KiB and two 2 KiB windows and the
// A12-invert bit that swaps their ordering.
func (m *mmc3) chrOffset(addr uint16) uint16 {
	invert := m.chrInvert()
	bank2a := uint32(m.registers[0] &^ 1)
	bank2b := uint32(m.registers[1] &^ 1)
	bank1c := uint32(m.registers[2])
	bank1d := uint32(m.registers[3])
	bank1e := uint32(m.registers[4])
	bank1f := uint32(m.registers[5])

	var base, window uint32
	a := uint32(addr)
	switch {
	case a < 0x0800:
		if !invert {
			base, window = bank2a, a
		} else if a < 0x0400 {
			base, window = bank1c, a&0x03FF
		} else {
			base, window = bank1d, a&0x03FF
		}
	case a < 0x1000:
		if !invert {
			base, window = bank2b, a-0x0800
		} else if a < 0x0C00 {
			base, window = bank1e, a&0x03FF
		} else {
			base, window = bank1f, a&0x03FF
		}
	case a < 0x1400:
		if !invert {
			base, window = bank1c, a&0x03FF
		} else {
			base, window = bank2a, a-0x1000
		}
	case a < 0x1800:
		if !invert {
			base, window = bank1d, a&0x03FF
		} else {
			base, window = bank2a, a-0x1000
		}
	case a < 0x1C00:
		if !invert {
			base, window = bank1e, a&0x03FF
		} else {
			base, window = bank2b, a-0x1800
		}
	default:
		if !invert {
			base, window = bank1f, a&0x03FF
		} else {
			base, window = bank2b, a-0x1800
		}
	}
	return uint16((base*0x0400 + window) % uint32(m.rom.ChrSize()))
}

func (m *mmc3) MirroringMode() uint8 {
	if m.mirroring == 0 {
		return nesrom.MIRROR_VERTICAL
	}
	return nesrom.MIRROR_HORIZONTAL
}

// NotifyA12Rise implements the MMC3 scanline IRQ counter: on each A12
// rising edge, reload from the latch if the counter is zero or a reload
// was requested, otherwise decrement; assert IRQ when the counter reaches
// zero with IRQs enabled.
func (m *mmc3) NotifyA12Rise() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) IRQPending() bool {
	return m.irqPending
}

func (m *mmc3) ClearIRQ() {
	m.irqPending = false
}

func (m *mmc3) Serialize() []byte {
	out := make([]byte, 0, 16+len(m.prgRAM)+len(m.chrRAM))
	out = append(out, m.bankSelect)
	out = append(out, m.registers[:]...)
	out = append(out, m.mirroring, boolByte(m.prgRAMEnabled), boolByte(m.prgRAMProtect))
	out = append(out, m.irqLatch, m.irqCounter, boolByte(m.irqEnabled), boolByte(m.irqReload), boolByte(m.irqPending))
	out = append(out, m.prgRAM...)
	out = append(out, m.chrRAM...)
	return out
}

func (m *mmc3) Deserialize(data []byte) error {
	const fixed = 1 + 8 + 3 + 5
	if len(data) < fixed+len(m.prgRAM)+len(m.chrRAM) {
		return errShortMapperBlob
	}
	m.bankSelect = data[0]
	copy(m.registers[:], data[1:9])
	m.mirroring = data[9]
	m.prgRAMEnabled = data[10] != 0
	m.prgRAMProtect = data[11] != 0
	m.irqLatch = data[12]
	m.irqCounter = data[13]
	m.irqEnabled = data[14] != 0
	m.irqReload = data[15] != 0
	m.irqPending = data[16] != 0
	pos := fixed
	copy(m.prgRAM, data[pos:pos+len(m.prgRAM)])
	pos += len(m.prgRAM)
	if len(m.chrRAM) > 0 {
		copy(m.chrRAM, data[pos:pos+len(m.chrRAM)])
	}
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
