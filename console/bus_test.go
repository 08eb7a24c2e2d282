package console

import (
	"testing"

	"github.com/adaptco/nes/cycle"
	"github.com/adaptco/nes/mappers"
	"github.com/adaptco/nes/nesrom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine() *Machine {
	m := New()
	mp := mappers.NewDummy()
	m.mapper = mp
	m.bus.attach(m.cpu, m.ppu, mp)
	return m
}

func TestRAMMirroring(t *testing.T) {
	m := newTestMachine()
	m.bus.Write(0x0000, 0x42)
	assert.Equal(t, uint8(0x42), m.bus.Read(0x0800))
	assert.Equal(t, uint8(0x42), m.bus.Read(0x1000))
	assert.Equal(t, uint8(0x42), m.bus.Read(0x1800))
}

func TestPPURegisterMirroringViaOAM(t *testing.T) {
	m := newTestMachine()
	m.bus.Write(0x200B, 5)    // mirror of OAMADDR ($2003): oamAddr = 5
	m.bus.Write(0x2004, 0x99) // OAMDATA: oamData[5] = 0x99, oamAddr -> 6
	m.bus.Write(0x2003, 5)    // OAMADDR again: oamAddr = 5
	assert.Equal(t, uint8(0x99), m.bus.Read(0x2004))
}

func TestOAMDMAStallsCPUWithoutAdvancingPC(t *testing.T) {
	m := newTestMachine()
	m.cpu.PowerOn(0x8000)
	pc := m.cpu.PC

	m.bus.Write(0x4014, 0x00)

	target := cycle.FromCPU(m.cpu.TotalCycles()).Add(100)
	m.cpu.StepTo(target)
	assert.Equal(t, pc, m.cpu.PC)
}

func TestControllerPortRoundTrip(t *testing.T) {
	m := newTestMachine()
	dev := fakePollDevice(0x81) // A and Right pressed
	require := assert.New(t)
	require.NoError(m.RegisterInput(0, dev))

	m.bus.Write(0x4016, 1)
	m.bus.Write(0x4016, 0)

	var bits uint8
	for i := 0; i < 8; i++ {
		bits = bits<<1 | m.bus.Read(0x4016)&0x01
	}
	assert.Equal(t, uint8(0x81), bits)
}

type fakePollDevice uint8

func (f fakePollDevice) PollStatus() uint8 { return uint8(f) }

func TestOpenBusReadReturnsLastBusValue(t *testing.T) {
	m := newTestMachine()
	m.bus.Write(0x0000, 0x55)
	m.bus.Read(0x0000) // last value on the bus is now 0x55

	assert.Equal(t, uint8(0x55), m.bus.Read(0x4008)) // unused APU register: open bus
}

// buildMMC3ROM constructs a mapper-4 ROM with a CLI+infinite-loop program in
// PRG bank 0 (mapped at $8000 by default), a reset vector pointing at it,
// and an IRQ vector pointing at an arbitrary, otherwise-unused address so a
// taken interrupt is unambiguous from the resulting PC.
func buildMMC3ROM(t *testing.T) *nesrom.ROM {
	t.Helper()
	const prgBanks = 2 // 2x16KiB = 4x8KiB MMC3 banks
	data := make([]byte, 16+16384*prgBanks+8192)
	copy(data[0:4], "NES\x1a")
	data[4] = prgBanks
	data[5] = 1 // 1x8KiB CHR
	data[6] = 4 << 4
	data[7] = 0

	prg := data[16 : 16+16384*prgBanks]
	prg[0] = 0x58 // CLI
	prg[1], prg[2], prg[3] = 0x4C, 0x01, 0x80 // JMP $8001 (infinite loop)

	lastBank := prg[8192*(prgBanks*2-1) : 8192*(prgBanks*2)]
	lastBank[0x1FFC], lastBank[0x1FFD] = 0x00, 0x80 // reset vector -> $8000
	lastBank[0x1FFE], lastBank[0x1FFF] = 0x00, 0x90 // IRQ vector -> $9000

	rom, err := nesrom.NewFromBytes(data)
	require.NoError(t, err)
	return rom
}

func TestMMC3IRQReachesCPUAndClearsOnAcknowledge(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(buildMMC3ROM(t), ModeReset))
	require.Equal(t, uint16(0x8000), m.cpu.PC)

	m.bus.Write(0xC000, 0) // irqLatch = 0
	m.bus.Write(0xC001, 0) // request a reload on the next A12 rise
	m.bus.Write(0xE001, 0) // irqEnabled = true (odd address)

	m.bus.NotifyA12Rise() // reloads to 0, fires immediately since latch is 0

	target := cycle.FromCPU(m.cpu.TotalCycles()).Add(20)
	m.cpu.StepTo(target)
	assert.Equal(t, uint16(0x9000), m.cpu.PC, "CPU should have taken the IRQ to the vector")

	m.bus.Write(0xE000, 0) // acknowledge/disable (even address)
	assert.False(t, m.mapper.IRQPending())
}
