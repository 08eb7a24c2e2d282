package mappers

import "github.com/adaptco/nes/nesrom"

func init() {
	RegisterMapper(1, newMMC1)
}

// mmc1 implements mapper 1. Grounded on
// andrewthecodertx-go-nes-emulator/pkg/cartridge/mapper1.go, adapted to the
// Mapper interface's serialization and base-mapper conventions rather than
// that repo's standalone cartridge struct.
type mmc1 struct {
	*baseMapper

	prgRAM []uint8
	chrRAM []uint8

	prgBanks uint8 // number of 16 KiB PRG banks
	chrBanks uint8 // number of 4 KiB CHR banks (0 if CHR RAM)

	shift      uint8 // 5-bit serial shift register
	shiftCount uint8

	control  uint8 // mirroring (0-1), prg mode (2-3), chr mode (4)
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

func newMMC1(rom *nesrom.ROM) Mapper {
	m := &mmc1{
		baseMapper: &baseMapper{id: 1, name: "MMC1", rom: rom},
		prgRAM:     make([]uint8, 8192),
		prgBanks:   uint8(rom.PrgSize() / 16384),
		control:    0x0C, // PRG mode 3 on reset, matches hardware power-on state
	}
	if rom.HasChrRAM() {
		m.chrRAM = make([]uint8, 8192)
	} else {
		m.chrBanks = uint8(rom.ChrSize() / 4096)
	}
	return m
}

func (m *mmc1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *mmc1) chrMode() uint8 { return (m.control >> 4) & 0x01 }

func (m *mmc1) PrgRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		bank, offset := m.prgWindow(addr)
		return m.rom.PrgRead(uint16(bank)*16384 + offset)
	}
	return 0
}

// prgWindow returns the 16 KiB bank index and the in-bank offset for a
// CPU address in 0x8000-0xFFFF, honoring the PRG mode in control.
func (m *mmc1) prgWindow(addr uint16) (uint8, uint16) {
	offset := addr & 0x3FFF
	switch m.prgMode() {
	case 0, 1:
		// Switch 32 KiB at 0x8000, ignoring the low bit of the bank.
		bank32 := m.prgBank &^ 1
		if addr >= 0xC000 {
			return bank32 + 1, offset
		}
		return bank32, offset
	case 2:
		if addr < 0xC000 {
			return 0, offset
		}
		return m.prgBank, offset
	default: // 3
		if addr < 0xC000 {
			return m.prgBank, offset
		}
		return m.prgBanks - 1, offset
	}
}

func (m *mmc1) PrgWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
		return
	}
	if addr < 0x8000 {
		return
	}

	if val&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (val & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	value := m.shift
	m.shift = 0
	m.shiftCount = 0

	switch (addr >> 13) & 0x03 {
	case 0:
		m.control = value
	case 1:
		m.chrBank0 = value
	case 2:
		m.chrBank1 = value
	case 3:
		m.prgBank = value & 0x0F
	}
}

func (m *mmc1) ChrRead(addr uint16) uint8 {
	if m.chrRAM != nil {
		return m.chrRAM[addr]
	}
	bank, offset := m.chrWindow(addr)
	return m.rom.ChrRead(uint16(bank)*4096 + offset)
}

func (m *mmc1) ChrWrite(addr uint16, val uint8) {
	if m.chrRAM != nil {
		m.chrRAM[addr] = val
		return
	}
	// CHR ROM: writes ignored.
}

func (m *mmc1) chrWindow(addr uint16) (uint8, uint16) {
	if m.chrMode() == 0 {
		// 8 KiB mode: ignore low bit of chrBank0.
		bank8 := m.chrBank0 &^ 1
		if addr < 0x1000 {
			return bank8, addr
		}
		return bank8 + 1, addr - 0x1000
	}
	// 4 KiB mode: independent banks.
	if addr < 0x1000 {
		return m.chrBank0, addr
	}
	return m.chrBank1, addr - 0x1000
}

func (m *mmc1) MirroringMode() uint8 {
	switch m.control & 0x03 {
	case 0:
		return nesrom.MIRROR_ONE_SCREEN_LOWER
	case 1:
		return nesrom.MIRROR_ONE_SCREEN_UPPER
	case 2:
		return nesrom.MIRROR_VERTICAL
	default:
		return nesrom.MIRROR_HORIZONTAL
	}
}

func (m *mmc1) Serialize() []byte {
	out := make([]byte, 0, 16+len(m.prgRAM)+len(m.chrRAM))
	out = append(out, m.shift, m.shiftCount, m.control, m.chrBank0, m.chrBank1, m.prgBank)
	out = append(out, m.prgRAM...)
	out = append(out, m.chrRAM...)
	return out
}

func (m *mmc1) Deserialize(data []byte) error {
	if len(data) < 6+len(m.prgRAM)+len(m.chrRAM) {
		return errShortMapperBlob
	}
	m.shift, m.shiftCount, m.control, m.chrBank0, m.chrBank1, m.prgBank =
		data[0], data[1], data[2], data[3], data[4], data[5]
	pos := 6
	copy(m.prgRAM, data[pos:pos+len(m.prgRAM)])
	pos += len(m.prgRAM)
	if len(m.chrRAM) > 0 {
		copy(m.chrRAM, data[pos:pos+len(m.chrRAM)])
	}
	return nil
}
