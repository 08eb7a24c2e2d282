package console

import (
	"testing"

	"github.com/adaptco/nes/cycle"
	"github.com/adaptco/nes/nesrom"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalNROM(t *testing.T) *nesrom.ROM {
	t.Helper()
	data := make([]byte, 16+16384+8192)
	copy(data[0:4], "NES\x1a")
	data[4] = 1 // 1x16KiB PRG
	data[5] = 1 // 1x8KiB CHR
	data[6] = 0 // mapper 0, horizontal mirroring
	data[7] = 0

	// Reset vector at the end of PRG ROM ($FFFC/$FFFD, offset 0x3FFC
	// within the 16KiB bank) pointing at $8000.
	prg := data[16 : 16+16384]
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80

	rom, err := nesrom.NewFromBytes(data)
	require.NoError(t, err)
	return rom
}

func TestLoadROMModeResetUsesVector(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(minimalNROM(t), ModeReset))
	assert.Equal(t, uint16(0x8000), m.cpu.PC)
}

func TestLoadROMModeDirectUsesC000(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(minimalNROM(t), ModeDirect))
	assert.Equal(t, uint16(0xC000), m.cpu.PC)
}

func TestStepExecutesLoadedProgram(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(minimalNROM(t), ModeReset))

	// LDA #$01 ; STA $00 ; JMP back to the STA, looping forever.
	// NROM ignores PRG writes, so the program runs from internal RAM.
	program := []uint8{0xA9, 0x01, 0x85, 0x00, 0x4C, 0x02, 0x02}
	for i, b := range program {
		m.bus.Write(0x0200+uint16(i), b)
	}
	m.cpu.PowerOn(0x0200)
	m.Step(cycle.Master(30))

	assert.Equal(t, uint8(0x01), m.bus.Read(0x0000))
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(minimalNROM(t), ModeReset))
	m.Step(cycle.Master(300))
	m.bus.Write(0x0010, 0xAB)

	blob, err := m.Serialize()
	require.NoError(t, err)

	m2 := New()
	require.NoError(t, m2.LoadROM(minimalNROM(t), ModeReset))
	require.NoError(t, m2.Deserialize(blob))

	assert.Equal(t, m.cpu.PC, m2.cpu.PC)
	assert.Equal(t, uint8(0xAB), m2.bus.Read(0x0010))
	if t.Failed() {
		t.Logf("want cpu:\n%s\ngot cpu:\n%s", spew.Sdump(m.cpu), spew.Sdump(m2.cpu))
	}
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(minimalNROM(t), ModeReset))
	err := m.Deserialize([]byte{0, 0, 0, 0, 1, 0, 0, 0})
	assert.Error(t, err)
}

func TestDeserializeRejectsMapperMismatch(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(minimalNROM(t), ModeReset))
	blob, err := m.Serialize()
	require.NoError(t, err)

	// Corrupt the mapper ID tag inside the mapper sub-blob is nontrivial
	// to locate generically, so instead attach a fresh machine with no
	// mapper at all and confirm it refuses to load.
	m2 := New()
	err = m2.Deserialize(blob)
	assert.Error(t, err)
}
