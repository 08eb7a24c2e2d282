package cpu

// Addressing modes, as enumerated in the teacher's mos6502.go.
const (
	modeImplicit = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
)

// operand resolves the effective address for mode, assuming PC currently
// points at the first operand byte (the opcode byte itself has already
// been consumed). It returns the address and whether an extra page-cross
// cycle is owed to the caller for read-sensitive modes.
func (c *CPU) operand(mode uint8) (addr uint16, pageCrossed bool) {
	switch mode {
	case modeImmediate:
		return c.PC, false
	case modeZeroPage:
		return uint16(c.read(c.PC)), false
	case modeZeroPageX:
		return uint16(c.read(c.PC) + c.X), false
	case modeZeroPageY:
		return uint16(c.read(c.PC) + c.Y), false
	case modeAbsolute:
		return c.read16(c.PC), false
	case modeAbsoluteX:
		base := c.read16(c.PC)
		addr = base + uint16(c.X)
		return addr, pageCrosses(base, addr)
	case modeAbsoluteY:
		base := c.read16(c.PC)
		addr = base + uint16(c.Y)
		return addr, pageCrosses(base, addr)
	case modeIndirect:
		return c.read16Bugged(c.read16(c.PC)), false
	case modeIndirectX:
		zp := c.read(c.PC) + c.X
		return c.read16ZeroPage(zp), false
	case modeIndirectY:
		zp := c.read(c.PC)
		base := c.read16ZeroPage(zp)
		addr = base + uint16(c.Y)
		return addr, pageCrosses(base, addr)
	case modeRelative:
		offset := int8(c.read(c.PC))
		return uint16(int32(c.PC) + 1 + int32(offset)), false
	default:
		panic("cpu: addressing mode has no operand address")
	}
}

// read16Bugged reproduces the 6502's JMP ($xxFF) page-wrap bug: the high
// byte is fetched from the start of the same page rather than the next
// page.
func (c *CPU) read16Bugged(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}

// read16ZeroPage reads a 16-bit pointer stored at a zero-page address,
// wrapping within the zero page for the high byte (another documented
// hardware quirk used by (indirect,X) and (indirect),Y).
func (c *CPU) read16ZeroPage(zp uint8) uint16 {
	lo := uint16(c.read(uint16(zp)))
	hi := uint16(c.read(uint16(zp + 1)))
	return hi<<8 | lo
}

func pageCrosses(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
