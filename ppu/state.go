package ppu

import "errors"

var errShortPPUBlob = errors.New("ppu: state blob too short")

// Serialize captures the registers, the Loopy v/t/x/w scroll state,
// nametable/OAM/palette RAM, and scanline/dot position. It does not capture
// the background shift registers and latched next-tile bytes, the sprites
// evaluated for the current scanline, or the frame buffers and which one is
// being drawn; Deserialize leaves those as they are in the receiving PPU, so
// a blob taken mid-scanline does not restore that scanline's pixel pipeline.
// The sprite state is rebuilt from OAM by the next sprite evaluation.
func (p *PPU) Serialize() []byte {
	out := make([]byte, 0, 16+VRAM_SIZE+OAM_SIZE+PALETTE_SIZE)

	out = append(out, p.ctrl, p.mask, p.status, p.oamAddr)
	out = appendUint16(out, p.v.data)
	out = appendUint16(out, p.t.data)
	out = append(out, p.fineX, boolToByte(p.writeLatch), p.bufferData)
	out = appendInt32(out, p.scanline)
	out = appendInt32(out, p.dot)
	out = append(out, boolToByte(p.frameOdd), boolToByte(p.lastA12))

	out = append(out, p.paletteTable[:]...)
	out = append(out, p.oamData[:]...)
	out = append(out, p.vram[:]...)

	return out
}

func (p *PPU) Deserialize(data []byte) error {
	const headerSize = 4 + 2 + 2 + 3 + 4 + 4 + 2
	if len(data) < headerSize+PALETTE_SIZE+OAM_SIZE+VRAM_SIZE {
		return errShortPPUBlob
	}

	i := 0
	p.ctrl, p.mask, p.status, p.oamAddr = data[i], data[i+1], data[i+2], data[i+3]
	i += 4
	p.v.data = readUint16(data[i:])
	i += 2
	p.t.data = readUint16(data[i:])
	i += 2
	p.fineX, p.writeLatch, p.bufferData = data[i], data[i+1] != 0, data[i+2]
	i += 3
	p.scanline = readInt32(data[i:])
	i += 4
	p.dot = readInt32(data[i:])
	i += 4
	p.frameOdd, p.lastA12 = data[i] != 0, data[i+1] != 0
	i += 2

	copy(p.paletteTable[:], data[i:i+PALETTE_SIZE])
	i += PALETTE_SIZE
	copy(p.oamData[:], data[i:i+OAM_SIZE])
	i += OAM_SIZE
	copy(p.vram[:], data[i:i+VRAM_SIZE])

	return nil
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func appendUint16(dst []byte, v uint16) []byte {
	return append(dst, uint8(v), uint8(v>>8))
}

func readUint16(src []byte) uint16 {
	return uint16(src[0]) | uint16(src[1])<<8
}

func appendInt32(dst []byte, v int32) []byte {
	u := uint32(v)
	return append(dst, uint8(u), uint8(u>>8), uint8(u>>16), uint8(u>>24))
}

func readInt32(src []byte) int32 {
	return int32(uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24)
}
