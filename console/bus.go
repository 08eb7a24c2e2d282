// Package console wires the CPU, PPU, cartridge mapper, and input ports
// into the single owning container (Machine) the rest of the emulator is
// driven through.
package console

import (
	"math"

	"github.com/adaptco/nes/cpu"
	"github.com/adaptco/nes/input"
	"github.com/adaptco/nes/mappers"
	"github.com/adaptco/nes/ppu"
	"github.com/adaptco/nes/trace"
)

const (
	nesBaseMemory = 0x800 // 2KB built-in RAM

	maxAddress         = math.MaxUint16
	maxNESBaseRAM      = 0x1FFF
	maxPPURegMirrored  = 0x3FFF
	maxIORegister      = 0x4020
	maxSRAM            = 0x6000
	oamDMARegister     = 0x4014
	controllerPort1    = 0x4016
	controllerPort2    = 0x4017
)

// Bus is the NES's CPU-visible 64 KiB memory map: 2 KiB mirrored internal
// RAM, mirrored PPU registers, the two standard-controller ports, and
// whatever the cartridge mapper exposes from $6000 up. $4020-$5FFF is not
// routed to the mapper: reads there return the open-bus value and writes
// are ignored.
//
// Grounded on _examples/bdwalton-gintendo/console/bus.go's Read/Write
// dispatch, extended with DMA-stall cycle accounting (the teacher's
// OAMDMA handler just looped synchronously with a TODO to "smooth this
// out across PPU cycles") and real input ports in place of the teacher's
// dead "handle joysticks" case.
type Bus struct {
	cpu    *cpu.CPU
	ppu    *ppu.PPU
	mapper mappers.Mapper
	ram    [nesBaseMemory]uint8

	ports [2]input.Port

	// lastBusValue approximates the open-bus latch: the last byte moved
	// across the bus in either direction, returned by reads that land in
	// an unmapped region instead of a hardwired 0.
	lastBusValue uint8
}

func newBus() *Bus {
	return &Bus{}
}

func (b *Bus) attach(c *cpu.CPU, p *ppu.PPU, m mappers.Mapper) {
	b.cpu, b.ppu, b.mapper = c, p, m
}

// cpu.Bus implementation.

func (b *Bus) Read(addr uint16) uint8 {
	var val uint8
	switch {
	case addr <= maxNESBaseRAM:
		val = b.ram[addr&0x07FF]
	case addr <= maxPPURegMirrored:
		val = b.ppu.ReadReg(0x2000 + (addr & 0x0007))
	case addr == controllerPort1:
		val = b.ports[0].Read()
	case addr == controllerPort2:
		val = b.ports[1].Read()
	case addr < maxIORegister:
		val = b.lastBusValue // APU and remaining I/O registers: open bus
		trace.Default.Tracef("console: open-bus read at $%04X", addr)
	case addr < maxSRAM:
		val = b.lastBusValue
		trace.Default.Tracef("console: open-bus read at $%04X", addr)
	case addr <= maxAddress:
		val = b.mapper.PrgRead(addr)
	default:
		panic("console: unreachable bus read")
	}
	b.lastBusValue = val
	return val
}

func (b *Bus) Write(addr uint16, val uint8) {
	b.lastBusValue = val
	switch {
	case addr <= maxNESBaseRAM:
		b.ram[addr&0x07FF] = val
	case addr <= maxPPURegMirrored:
		b.ppu.WriteReg(0x2000+(addr&0x0007), val)
	case addr == oamDMARegister:
		b.doOAMDMA(val)
	case addr == controllerPort1:
		b.ports[0].Write(val)
		b.ports[1].Write(val) // both ports share the $4016 strobe line
	case addr == controllerPort2:
		// $4017 is APU frame counter on real hardware; this core has
		// no APU, so it's a no-op write.
	case addr < maxIORegister:
		// remaining APU registers: no-op
	case addr < maxSRAM:
		// $4020-$5FFF: not routed to the mapper; writes are ignored
	case addr <= maxAddress:
		b.mapper.PrgWrite(addr, val)
		b.syncMapperIRQ()
	}
}

func (b *Bus) doOAMDMA(page uint8) {
	base := uint16(page) << 8
	var buf [256]uint8
	for i := 0; i < 256; i++ {
		buf[i] = b.Read(base + uint16(i))
	}
	b.ppu.WriteOAMDMA(buf)

	stall := 513
	if b.cpu.TotalCycles()%2 == 1 {
		stall = 514
	}
	b.cpu.RequestDMAStall(stall)
}

// ppu.Bus implementation.

func (b *Bus) ChrRead(addr uint16) uint8       { return b.mapper.ChrRead(addr) }
func (b *Bus) ChrWrite(addr uint16, val uint8) { b.mapper.ChrWrite(addr, val) }
func (b *Bus) Mirroring() uint8                { return b.mapper.MirroringMode() }
func (b *Bus) TriggerNMI()                     { b.cpu.RequestNMI() }

// NotifyA12Rise forwards the PPU's A12 rising-edge signal to the mapper
// (MMC3's scanline counter rides on this) and immediately re-asserts the
// CPU's level-sensitive IRQ line from the mapper's resulting state, so a
// counter reaching zero here is observed by the CPU at its next
// instruction boundary rather than sitting latched in the mapper only.
func (b *Bus) NotifyA12Rise() {
	b.mapper.NotifyA12Rise()
	b.syncMapperIRQ()
}

// syncMapperIRQ mirrors the mapper's IRQPending state onto the CPU's IRQ
// line. Called after every mapper PRG write (since $E000 acknowledges/
// disables the MMC3 IRQ there) and after every A12 rise (since that's what
// can newly assert it).
func (b *Bus) syncMapperIRQ() {
	b.cpu.SetIRQLine(b.mapper.IRQPending())
}

// registerInput attaches dev to port (0 or 1; the NES bus itself only
// exposes two ports at $4016/$4017).
func (b *Bus) registerInput(port int, dev input.Device) {
	b.ports[port].Attach(dev)
}

func (b *Bus) unregisterInput(port int) {
	b.ports[port].Detach()
}
