// Package mappers implements and registers cartridge mappers that are
// referenced numerically by iNES ROM files.
package mappers

import (
	"fmt"

	"github.com/adaptco/nes/nesrom"
)

// A global registry of mappers, keyed by mapper id. Populated only by
// init() functions at program start; read-only thereafter.
var allMappers map[uint16]func(*nesrom.ROM) Mapper = map[uint16]func(*nesrom.ROM) Mapper{}

// RegisterMapper registers a constructor for the mapper identified by id.
// Panics on double registration of the same id, matching the teacher's
// fail-fast style for this kind of programmer error.
func RegisterMapper(id uint16, ctor func(*nesrom.ROM) Mapper) {
	if _, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("mapper id %d already registered", id))
	}
	allMappers[id] = ctor
}

// Get constructs a mapper bound to rom, or an error if the ROM's mapper id
// has no registered implementation.
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNum()
	ctor, ok := allMappers[id]
	if !ok {
		return nil, fmt.Errorf("unsupported mapper id %d", id)
	}
	return ctor(rom), nil
}

const (
	// NESBaseMemory is the 2 KiB of CPU-internal RAM every NES has,
	// independent of cartridge mapper.
	NESBaseMemory = 2048
)

// Mapper is the cartridge capability interface: bank wiring into CPU
// address space and PPU pattern/nametable space, register writes, and
// mirroring mode advertisement. Concrete variants (NROM, MMC1, MMC3)
// register themselves by mapper id via RegisterMapper.
type Mapper interface {
	ID() uint16
	Name() string

	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)

	MirroringMode() uint8
	HasSaveRAM() bool

	// NotifyA12Rise is called by the PPU whenever a CHR address fetch
	// crosses the A12 line from low to high. Only MMC3 cares; other
	// mappers implement it as a no-op.
	NotifyA12Rise()
	IRQPending() bool
	ClearIRQ()

	Serialize() []byte
	Deserialize([]byte) error
}

// baseMapper holds the fields every mapper shares: identity and the
// backing ROM. CHR/PRG RAM, if any, lives in the concrete mapper since its
// size and banking vary per mapper.
type baseMapper struct {
	id   uint16
	name string
	rom  *nesrom.ROM
}

func (bm *baseMapper) ID() uint16 {
	return bm.id
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}

// NotifyA12Rise, IRQPending and ClearIRQ default to the no-IRQ behavior
// most mappers have; MMC3 overrides all three.
func (bm *baseMapper) NotifyA12Rise() {}
func (bm *baseMapper) IRQPending() bool {
	return false
}
func (bm *baseMapper) ClearIRQ() {}
