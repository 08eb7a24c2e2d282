package mappers

import "github.com/adaptco/nes/nesrom"

func init() {
	RegisterMapper(0, newNROM)
}

// nrom implements mapper 0 (NROM): a fixed 16 or 32 KiB PRG window and an
// 8 KiB CHR window, no bank-switching registers. The teacher's mapper0.go
// declared MemRead/MemWrite methods that never satisfied the Mapper
// interface (it was missing PrgRead/PrgWrite/ChrRead/ChrWrite entirely);
// this is a full rewrite against the real interface.
type nrom struct {
	*baseMapper
	prgMirrored bool // true when a single 16 KiB bank mirrors into both halves
	chrRAM      []uint8
}

func newNROM(rom *nesrom.ROM) Mapper {
	return &nrom{
		baseMapper:  &baseMapper{id: 0, name: "NROM", rom: rom},
		prgMirrored: rom.PrgSize() <= 16384,
		chrRAM:      newChrRAMIfNeeded(rom),
	}
}

func newChrRAMIfNeeded(rom *nesrom.ROM) []uint8 {
	if rom.HasChrRAM() {
		return make([]uint8, 8192)
	}
	return nil
}

func (m *nrom) PrgRead(addr uint16) uint8 {
	off := addr & 0x7FFF
	if m.prgMirrored {
		off %= 0x4000
	}
	return m.rom.PrgRead(off)
}

func (m *nrom) PrgWrite(addr uint16, val uint8) {
	// NROM PRG is ROM; writes are ignored.
}

func (m *nrom) ChrRead(addr uint16) uint8 {
	if m.chrRAM != nil {
		return m.chrRAM[addr]
	}
	return m.rom.ChrRead(addr)
}

func (m *nrom) ChrWrite(addr uint16, val uint8) {
	if m.chrRAM != nil {
		m.chrRAM[addr] = val
	}
	// CHR ROM writes are ignored.
}

func (m *nrom) MirroringMode() uint8 {
	return m.rom.MirroringMode()
}

func (m *nrom) Serialize() []byte {
	if m.chrRAM == nil {
		return nil
	}
	out := make([]byte, len(m.chrRAM))
	copy(out, m.chrRAM)
	return out
}

func (m *nrom) Deserialize(data []byte) error {
	if m.chrRAM == nil {
		return nil
	}
	if len(data) != len(m.chrRAM) {
		return errMismatchedChrRAM
	}
	copy(m.chrRAM, data)
	return nil
}
