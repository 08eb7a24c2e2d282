package console

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/adaptco/nes/cycle"
)

// Whole-machine snapshot envelope, taken verbatim from the reference
// emulator's test/state_test.cpp fixture (see DESIGN.md): magic bytes
// "NES1" read back little-endian, a u32 version, a u64 master cycle, a
// stop-requested flag, then length-prefixed (u32 LE) sub-blobs for CPU,
// RAM, PPU, Input, and an always-present Mapper blob tagged with its
// mapper ID.
const (
	stateMagic   = 0x3153454e // "NES1" read as a little-endian u32
	stateVersion = 1
)

var (
	errBadMagic       = errors.New("console: state blob has wrong magic")
	errBadVersion     = errors.New("console: state blob has unsupported version")
	errTruncated      = errors.New("console: state blob truncated")
	errMapperMismatch = errors.New("console: state blob mapper id does not match loaded cartridge")
	errTrailingBytes  = errors.New("console: state blob has trailing bytes")
)

func errInvalidPort(port int) error {
	return fmt.Errorf("console: invalid input port %d", port)
}

// Serialize encodes the full machine state per the envelope above.
func (m *Machine) Serialize() ([]byte, error) {
	var out []byte
	out = appendUint32(out, stateMagic)
	out = appendUint32(out, stateVersion)
	out = appendUint64(out, uint64(m.masterCycle))
	out = append(out, boolToByte(m.stopRequested))

	out = appendBlob(out, m.cpu.Serialize())
	out = appendBlob(out, m.bus.ram[:])
	out = appendBlob(out, m.ppu.Serialize())
	out = appendBlob(out, append(m.bus.ports[0].Serialize(), m.bus.ports[1].Serialize()...))

	mapperBlob := append([]byte{byte(m.mapper.ID()), byte(m.mapper.ID() >> 8)}, m.mapper.Serialize()...)
	out = appendBlob(out, mapperBlob)

	return out, nil
}

// Deserialize restores machine state from a blob produced by Serialize.
// Errors in the envelope, the sub-blob framing or the mapper ID are found
// before anything is changed. An error while restoring the sub-blobs
// themselves (mapper, CPU, RAM, PPU, input, in that order) can leave the
// earlier ones already restored; callers should fall back to PowerOn.
func (m *Machine) Deserialize(data []byte) error {
	if len(data) < 4+4+8+1 {
		return errTruncated
	}
	if readUint32(data) != stateMagic {
		return errBadMagic
	}
	if readUint32(data[4:]) != stateVersion {
		return errBadVersion
	}
	masterCycle := readUint64(data[8:])
	stopRequested := data[16] != 0
	rest := data[17:]

	cpuBlob, rest, err := takeBlob(rest)
	if err != nil {
		return err
	}
	ramBlob, rest, err := takeBlob(rest)
	if err != nil {
		return err
	}
	ppuBlob, rest, err := takeBlob(rest)
	if err != nil {
		return err
	}
	inputBlob, rest, err := takeBlob(rest)
	if err != nil {
		return err
	}
	mapperBlob, rest, err := takeBlob(rest)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errTrailingBytes
	}

	if len(mapperBlob) < 2 {
		return errTruncated
	}
	mapperID := uint16(mapperBlob[0]) | uint16(mapperBlob[1])<<8
	if m.mapper == nil || m.mapper.ID() != mapperID {
		return errMapperMismatch
	}
	if err := m.mapper.Deserialize(mapperBlob[2:]); err != nil {
		return err
	}

	if err := m.cpu.Deserialize(cpuBlob); err != nil {
		return err
	}
	if len(ramBlob) != nesBaseMemory {
		return errTruncated
	}
	copy(m.bus.ram[:], ramBlob)
	if err := m.ppu.Deserialize(ppuBlob); err != nil {
		return err
	}
	if len(inputBlob) < 6 {
		return errTruncated
	}
	m.bus.ports[0].Deserialize(inputBlob[0:3])
	m.bus.ports[1].Deserialize(inputBlob[3:6])

	m.masterCycle = cycle.Master(masterCycle)
	m.stopRequested = stopRequested
	return nil
}

func appendBlob(dst, blob []byte) []byte {
	dst = appendUint32(dst, uint32(len(blob)))
	return append(dst, blob...)
}

func takeBlob(src []byte) (blob, rest []byte, err error) {
	if len(src) < 4 {
		return nil, nil, errTruncated
	}
	n := readUint32(src)
	src = src[4:]
	if uint32(len(src)) < n {
		return nil, nil, errTruncated
	}
	return src[:n], src[n:], nil
}

func appendUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func readUint32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

func appendUint64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

func readUint64(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src)
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
