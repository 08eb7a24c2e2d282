package cpu

import (
	"errors"

	"github.com/adaptco/nes/cycle"
)

var errShortCPUBlob = errors.New("cpu: state blob too short")

// Serialize encodes the CPU's full architectural and timing state as a flat
// 20-byte slice, following the same length-prefixed-by-caller convention the
// mapper blobs use (console.Machine wraps this in the state codec's
// length-prefixed sub-blob envelope).
func (c *CPU) Serialize() []byte {
	out := make([]byte, 20)
	out[0] = c.A
	out[1] = c.X
	out[2] = c.Y
	out[3] = c.S
	out[4] = uint8(c.PC)
	out[5] = uint8(c.PC >> 8)
	out[6] = c.P
	out[7] = boolToByte(c.nmiPending)
	out[8] = boolToByte(c.irqLine)
	out[9] = boolToByte(c.resetPending)
	putUint64(out[10:18], uint64(c.totalCycles))
	out[18] = uint8(c.dmaStall)
	out[19] = uint8(c.dmaStall >> 8)
	return out
}

// Deserialize restores CPU state previously produced by Serialize.
func (c *CPU) Deserialize(data []byte) error {
	if len(data) < 20 {
		return errShortCPUBlob
	}
	c.A = data[0]
	c.X = data[1]
	c.Y = data[2]
	c.S = data[3]
	c.PC = uint16(data[4]) | uint16(data[5])<<8
	c.P = data[6]
	c.nmiPending = data[7] != 0
	c.irqLine = data[8] != 0
	c.resetPending = data[9] != 0
	c.totalCycles = cycle.CPU(getUint64(data[10:18]))
	c.dmaStall = int(data[18]) | int(data[19])<<8
	return nil
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func putUint64(dst []byte, v uint64) {
	for i := 0; i < len(dst) && i < 8; i++ {
		dst[i] = uint8(v >> (8 * uint(i)))
	}
}

func getUint64(src []byte) uint64 {
	var v uint64
	for i := 0; i < len(src) && i < 8; i++ {
		v |= uint64(src[i]) << (8 * uint(i))
	}
	return v
}
