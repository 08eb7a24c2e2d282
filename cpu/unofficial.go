package cpu

// Unofficial (undocumented) 6502 opcodes exercised by real cartridge
// software and by nestest's automation log. None of these appear in the
// teacher's table, which only covers the documented instruction set; they
// are built directly against the 6502 reference behavior and reuse the
// same read/modify/write and addressing plumbing as the official
// instructions in instructions.go.

func init() {
	registerUnofficialCombined()
	registerUnofficialNops()
}

func registerUnofficialCombined() {
	// LAX: load A and X simultaneously.
	lax := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.A = v
		c.X = v
		c.setZN(v)
		return extra
	}
	op(0xA7, entry{"LAX", modeZeroPage, 2, 3, false, lax})
	op(0xB7, entry{"LAX", modeZeroPageY, 2, 4, false, lax})
	op(0xAF, entry{"LAX", modeAbsolute, 3, 4, false, lax})
	op(0xBF, entry{"LAX", modeAbsoluteY, 3, 4, true, lax})
	op(0xA3, entry{"LAX", modeIndirectX, 2, 6, false, lax})
	op(0xB3, entry{"LAX", modeIndirectY, 2, 5, true, lax})

	// SAX: store A & X, flags untouched.
	sax := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.A&c.X)
		return 0
	}
	op(0x87, entry{"SAX", modeZeroPage, 2, 3, false, sax})
	op(0x97, entry{"SAX", modeZeroPageY, 2, 4, false, sax})
	op(0x8F, entry{"SAX", modeAbsolute, 3, 4, false, sax})
	op(0x83, entry{"SAX", modeIndirectX, 2, 6, false, sax})

	// DCP: DEC then CMP against A.
	dcp := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		v := c.read(addr) - 1
		c.write(addr, v)
		c.compare(c.A, v)
		return 0
	}
	op(0xC7, entry{"DCP", modeZeroPage, 2, 5, false, dcp})
	op(0xD7, entry{"DCP", modeZeroPageX, 2, 6, false, dcp})
	op(0xCF, entry{"DCP", modeAbsolute, 3, 6, false, dcp})
	op(0xDF, entry{"DCP", modeAbsoluteX, 3, 7, false, dcp})
	op(0xDB, entry{"DCP", modeAbsoluteY, 3, 7, false, dcp})
	op(0xC3, entry{"DCP", modeIndirectX, 2, 8, false, dcp})
	op(0xD3, entry{"DCP", modeIndirectY, 2, 8, false, dcp})

	// ISB (a.k.a. ISC): INC then SBC.
	isb := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		v := c.read(addr) + 1
		c.write(addr, v)
		c.addWithCarry(^v)
		return 0
	}
	op(0xE7, entry{"ISB", modeZeroPage, 2, 5, false, isb})
	op(0xF7, entry{"ISB", modeZeroPageX, 2, 6, false, isb})
	op(0xEF, entry{"ISB", modeAbsolute, 3, 6, false, isb})
	op(0xFF, entry{"ISB", modeAbsoluteX, 3, 7, false, isb})
	op(0xFB, entry{"ISB", modeAbsoluteY, 3, 7, false, isb})
	op(0xE3, entry{"ISB", modeIndirectX, 2, 8, false, isb})
	op(0xF3, entry{"ISB", modeIndirectY, 2, 8, false, isb})

	// SLO: ASL then ORA with A.
	slo := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x80 != 0)
		v <<= 1
		c.write(addr, v)
		c.A |= v
		c.setZN(c.A)
		return 0
	}
	op(0x07, entry{"SLO", modeZeroPage, 2, 5, false, slo})
	op(0x17, entry{"SLO", modeZeroPageX, 2, 6, false, slo})
	op(0x0F, entry{"SLO", modeAbsolute, 3, 6, false, slo})
	op(0x1F, entry{"SLO", modeAbsoluteX, 3, 7, false, slo})
	op(0x1B, entry{"SLO", modeAbsoluteY, 3, 7, false, slo})
	op(0x03, entry{"SLO", modeIndirectX, 2, 8, false, slo})
	op(0x13, entry{"SLO", modeIndirectY, 2, 8, false, slo})

	// RLA: ROL then AND with A.
	rla := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		oldCarry := c.P & FlagCarry
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x80 != 0)
		v = (v << 1) | oldCarry
		c.write(addr, v)
		c.A &= v
		c.setZN(c.A)
		return 0
	}
	op(0x27, entry{"RLA", modeZeroPage, 2, 5, false, rla})
	op(0x37, entry{"RLA", modeZeroPageX, 2, 6, false, rla})
	op(0x2F, entry{"RLA", modeAbsolute, 3, 6, false, rla})
	op(0x3F, entry{"RLA", modeAbsoluteX, 3, 7, false, rla})
	op(0x3B, entry{"RLA", modeAbsoluteY, 3, 7, false, rla})
	op(0x23, entry{"RLA", modeIndirectX, 2, 8, false, rla})
	op(0x33, entry{"RLA", modeIndirectY, 2, 8, false, rla})

	// SRE: LSR then EOR with A.
	sre := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x01 != 0)
		v >>= 1
		c.write(addr, v)
		c.A ^= v
		c.setZN(c.A)
		return 0
	}
	op(0x47, entry{"SRE", modeZeroPage, 2, 5, false, sre})
	op(0x57, entry{"SRE", modeZeroPageX, 2, 6, false, sre})
	op(0x4F, entry{"SRE", modeAbsolute, 3, 6, false, sre})
	op(0x5F, entry{"SRE", modeAbsoluteX, 3, 7, false, sre})
	op(0x5B, entry{"SRE", modeAbsoluteY, 3, 7, false, sre})
	op(0x43, entry{"SRE", modeIndirectX, 2, 8, false, sre})
	op(0x53, entry{"SRE", modeIndirectY, 2, 8, false, sre})

	// RRA: ROR then ADC with A.
	rra := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		oldCarry := c.P & FlagCarry
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x01 != 0)
		v = (v >> 1) | (oldCarry << 7)
		c.write(addr, v)
		c.addWithCarry(v)
		return 0
	}
	op(0x67, entry{"RRA", modeZeroPage, 2, 5, false, rra})
	op(0x77, entry{"RRA", modeZeroPageX, 2, 6, false, rra})
	op(0x6F, entry{"RRA", modeAbsolute, 3, 6, false, rra})
	op(0x7F, entry{"RRA", modeAbsoluteX, 3, 7, false, rra})
	op(0x7B, entry{"RRA", modeAbsoluteY, 3, 7, false, rra})
	op(0x63, entry{"RRA", modeIndirectX, 2, 8, false, rra})
	op(0x73, entry{"RRA", modeIndirectY, 2, 8, false, rra})

	// ANC, ALR, ARR, AXS, and SBC's unofficial $EB duplicate round out the
	// commonly-exercised combined opcodes.
	anc := func(c *CPU, e *entry) uint8 {
		v, _ := c.readOperand(e)
		c.A &= v
		c.setZN(c.A)
		c.setFlag(FlagCarry, c.A&0x80 != 0)
		return 0
	}
	op(0x0B, entry{"ANC", modeImmediate, 2, 2, false, anc})
	op(0x2B, entry{"ANC", modeImmediate, 2, 2, false, anc})

	alr := func(c *CPU, e *entry) uint8 {
		v, _ := c.readOperand(e)
		c.A &= v
		c.setFlag(FlagCarry, c.A&0x01 != 0)
		c.A >>= 1
		c.setZN(c.A)
		return 0
	}
	op(0x4B, entry{"ALR", modeImmediate, 2, 2, false, alr})

	arr := func(c *CPU, e *entry) uint8 {
		v, _ := c.readOperand(e)
		c.A &= v
		oldCarry := c.P & FlagCarry
		c.A = (c.A >> 1) | (oldCarry << 7)
		c.setZN(c.A)
		c.setFlag(FlagCarry, c.A&0x40 != 0)
		c.setFlag(FlagOverflow, (c.A>>6)&1^(c.A>>5)&1 != 0)
		return 0
	}
	op(0x6B, entry{"ARR", modeImmediate, 2, 2, false, arr})

	axs := func(c *CPU, e *entry) uint8 {
		v, _ := c.readOperand(e)
		ax := c.A & c.X
		c.setFlag(FlagCarry, ax >= v)
		c.X = ax - v
		c.setZN(c.X)
		return 0
	}
	op(0xCB, entry{"AXS", modeImmediate, 2, 2, false, axs})

	op(0xEB, entry{"SBC", modeImmediate, 2, 2, false, func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.addWithCarry(^v)
		return extra
	}})
}

func registerUnofficialNops() {
	nop := func(c *CPU, e *entry) uint8 { return 0 }
	nopRead := func(c *CPU, e *entry) uint8 {
		_, extra := c.readOperand(e)
		return extra
	}

	for _, code := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		op(code, entry{"NOP", modeImplicit, 1, 2, false, nop})
	}
	for _, code := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		op(code, entry{"NOP", modeImmediate, 2, 2, false, nopRead})
	}
	for _, code := range []uint8{0x04, 0x44, 0x64} {
		op(code, entry{"NOP", modeZeroPage, 2, 3, false, nopRead})
	}
	for _, code := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		op(code, entry{"NOP", modeZeroPageX, 2, 4, false, nopRead})
	}
	op(0x0C, entry{"NOP", modeAbsolute, 3, 4, false, nopRead})
	for _, code := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		op(code, entry{"NOP", modeAbsoluteX, 3, 4, true, nopRead})
	}
}
