package cpu

// Official 6502 instructions. Grounded on the instruction bodies in
// _examples/bdwalton-gintendo/mos6502/mos6502.go, adapted from
// reflection-dispatched methods into dispatch-table entry funcs, and with
// one bug fixed relative to the teacher: ORA zero-page,X was tabled at 3
// instruction bytes there; it is correctly 2 here.

func init() {
	registerLoadStore()
	registerArithmetic()
	registerLogic()
	registerShifts()
	registerBranches()
	registerJumps()
	registerStack()
	registerFlags()
	registerTransfers()
	registerMisc()
}

func (c *CPU) addWithCarry(b uint8) {
	sum := uint16(c.A) + uint16(b) + uint16(c.P&FlagCarry)
	result := uint8(sum)
	c.setFlag(FlagCarry, sum&0x100 != 0)
	c.setFlag(FlagOverflow, (c.A^result)&(b^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) compare(reg, b uint8) {
	c.setFlag(FlagCarry, reg >= b)
	c.setZN(reg - b)
}

func registerArithmetic() {
	adc := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.addWithCarry(v)
		return extra
	}
	op(0x69, entry{"ADC", modeImmediate, 2, 2, false, adc})
	op(0x65, entry{"ADC", modeZeroPage, 2, 3, false, adc})
	op(0x75, entry{"ADC", modeZeroPageX, 2, 4, false, adc})
	op(0x6D, entry{"ADC", modeAbsolute, 3, 4, false, adc})
	op(0x7D, entry{"ADC", modeAbsoluteX, 3, 4, true, adc})
	op(0x79, entry{"ADC", modeAbsoluteY, 3, 4, true, adc})
	op(0x61, entry{"ADC", modeIndirectX, 2, 6, false, adc})
	op(0x71, entry{"ADC", modeIndirectY, 2, 5, true, adc})

	sbc := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.addWithCarry(^v)
		return extra
	}
	op(0xE9, entry{"SBC", modeImmediate, 2, 2, false, sbc})
	op(0xE5, entry{"SBC", modeZeroPage, 2, 3, false, sbc})
	op(0xF5, entry{"SBC", modeZeroPageX, 2, 4, false, sbc})
	op(0xED, entry{"SBC", modeAbsolute, 3, 4, false, sbc})
	op(0xFD, entry{"SBC", modeAbsoluteX, 3, 4, true, sbc})
	op(0xF9, entry{"SBC", modeAbsoluteY, 3, 4, true, sbc})
	op(0xE1, entry{"SBC", modeIndirectX, 2, 6, false, sbc})
	op(0xF1, entry{"SBC", modeIndirectY, 2, 5, true, sbc})

	cmp := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.compare(c.A, v)
		return extra
	}
	op(0xC9, entry{"CMP", modeImmediate, 2, 2, false, cmp})
	op(0xC5, entry{"CMP", modeZeroPage, 2, 3, false, cmp})
	op(0xD5, entry{"CMP", modeZeroPageX, 2, 4, false, cmp})
	op(0xCD, entry{"CMP", modeAbsolute, 3, 4, false, cmp})
	op(0xDD, entry{"CMP", modeAbsoluteX, 3, 4, true, cmp})
	op(0xD9, entry{"CMP", modeAbsoluteY, 3, 4, true, cmp})
	op(0xC1, entry{"CMP", modeIndirectX, 2, 6, false, cmp})
	op(0xD1, entry{"CMP", modeIndirectY, 2, 5, true, cmp})

	cpx := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.compare(c.X, v)
		return extra
	}
	op(0xE0, entry{"CPX", modeImmediate, 2, 2, false, cpx})
	op(0xE4, entry{"CPX", modeZeroPage, 2, 3, false, cpx})
	op(0xEC, entry{"CPX", modeAbsolute, 3, 4, false, cpx})

	cpy := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.compare(c.Y, v)
		return extra
	}
	op(0xC0, entry{"CPY", modeImmediate, 2, 2, false, cpy})
	op(0xC4, entry{"CPY", modeZeroPage, 2, 3, false, cpy})
	op(0xCC, entry{"CPY", modeAbsolute, 3, 4, false, cpy})

	dec := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		v := c.read(addr) - 1
		c.write(addr, v)
		c.setZN(v)
		return 0
	}
	op(0xC6, entry{"DEC", modeZeroPage, 2, 5, false, dec})
	op(0xD6, entry{"DEC", modeZeroPageX, 2, 6, false, dec})
	op(0xCE, entry{"DEC", modeAbsolute, 3, 6, false, dec})
	op(0xDE, entry{"DEC", modeAbsoluteX, 3, 7, false, dec})

	inc := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		v := c.read(addr) + 1
		c.write(addr, v)
		c.setZN(v)
		return 0
	}
	op(0xE6, entry{"INC", modeZeroPage, 2, 5, false, inc})
	op(0xF6, entry{"INC", modeZeroPageX, 2, 6, false, inc})
	op(0xEE, entry{"INC", modeAbsolute, 3, 6, false, inc})
	op(0xFE, entry{"INC", modeAbsoluteX, 3, 7, false, inc})

	op(0xCA, entry{"DEX", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 {
		c.X--
		c.setZN(c.X)
		return 0
	}})
	op(0x88, entry{"DEY", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 {
		c.Y--
		c.setZN(c.Y)
		return 0
	}})
	op(0xE8, entry{"INX", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 {
		c.X++
		c.setZN(c.X)
		return 0
	}})
	op(0xC8, entry{"INY", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 {
		c.Y++
		c.setZN(c.Y)
		return 0
	}})
}

func registerLogic() {
	and := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.A &= v
		c.setZN(c.A)
		return extra
	}
	op(0x29, entry{"AND", modeImmediate, 2, 2, false, and})
	op(0x25, entry{"AND", modeZeroPage, 2, 3, false, and})
	op(0x35, entry{"AND", modeZeroPageX, 2, 4, false, and})
	op(0x2D, entry{"AND", modeAbsolute, 3, 4, false, and})
	op(0x3D, entry{"AND", modeAbsoluteX, 3, 4, true, and})
	op(0x39, entry{"AND", modeAbsoluteY, 3, 4, true, and})
	op(0x21, entry{"AND", modeIndirectX, 2, 6, false, and})
	op(0x31, entry{"AND", modeIndirectY, 2, 5, true, and})

	eor := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.A ^= v
		c.setZN(c.A)
		return extra
	}
	op(0x49, entry{"EOR", modeImmediate, 2, 2, false, eor})
	op(0x45, entry{"EOR", modeZeroPage, 2, 3, false, eor})
	op(0x55, entry{"EOR", modeZeroPageX, 2, 4, false, eor})
	op(0x4D, entry{"EOR", modeAbsolute, 3, 4, false, eor})
	op(0x5D, entry{"EOR", modeAbsoluteX, 3, 4, true, eor})
	op(0x59, entry{"EOR", modeAbsoluteY, 3, 4, true, eor})
	op(0x41, entry{"EOR", modeIndirectX, 2, 6, false, eor})
	op(0x51, entry{"EOR", modeIndirectY, 2, 5, true, eor})

	ora := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.A |= v
		c.setZN(c.A)
		return extra
	}
	op(0x09, entry{"ORA", modeImmediate, 2, 2, false, ora})
	op(0x05, entry{"ORA", modeZeroPage, 2, 3, false, ora})
	op(0x15, entry{"ORA", modeZeroPageX, 2, 4, false, ora})
	op(0x0D, entry{"ORA", modeAbsolute, 3, 4, false, ora})
	op(0x1D, entry{"ORA", modeAbsoluteX, 3, 4, true, ora})
	op(0x19, entry{"ORA", modeAbsoluteY, 3, 4, true, ora})
	op(0x01, entry{"ORA", modeIndirectX, 2, 6, false, ora})
	op(0x11, entry{"ORA", modeIndirectY, 2, 5, true, ora})

	bit := func(c *CPU, e *entry) uint8 {
		v, _ := c.readOperand(e)
		c.setFlag(FlagZero, v&c.A == 0)
		c.setFlag(FlagOverflow, v&FlagOverflow != 0)
		c.setFlag(FlagNegative, v&FlagNegative != 0)
		return 0
	}
	op(0x24, entry{"BIT", modeZeroPage, 2, 3, false, bit})
	op(0x2C, entry{"BIT", modeAbsolute, 3, 4, false, bit})
}

func registerShifts() {
	asl := func(c *CPU, e *entry) uint8 {
		if e.mode == modeAccumulator {
			c.setFlag(FlagCarry, c.A&0x80 != 0)
			c.A <<= 1
			c.setZN(c.A)
			return 0
		}
		addr, _ := c.operand(e.mode)
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x80 != 0)
		v <<= 1
		c.write(addr, v)
		c.setZN(v)
		return 0
	}
	op(0x0A, entry{"ASL", modeAccumulator, 1, 2, false, asl})
	op(0x06, entry{"ASL", modeZeroPage, 2, 5, false, asl})
	op(0x16, entry{"ASL", modeZeroPageX, 2, 6, false, asl})
	op(0x0E, entry{"ASL", modeAbsolute, 3, 6, false, asl})
	op(0x1E, entry{"ASL", modeAbsoluteX, 3, 7, false, asl})

	lsr := func(c *CPU, e *entry) uint8 {
		if e.mode == modeAccumulator {
			c.setFlag(FlagCarry, c.A&0x01 != 0)
			c.A >>= 1
			c.setZN(c.A)
			return 0
		}
		addr, _ := c.operand(e.mode)
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x01 != 0)
		v >>= 1
		c.write(addr, v)
		c.setZN(v)
		return 0
	}
	op(0x4A, entry{"LSR", modeAccumulator, 1, 2, false, lsr})
	op(0x46, entry{"LSR", modeZeroPage, 2, 5, false, lsr})
	op(0x56, entry{"LSR", modeZeroPageX, 2, 6, false, lsr})
	op(0x4E, entry{"LSR", modeAbsolute, 3, 6, false, lsr})
	op(0x5E, entry{"LSR", modeAbsoluteX, 3, 7, false, lsr})

	rol := func(c *CPU, e *entry) uint8 {
		oldCarry := c.P & FlagCarry
		if e.mode == modeAccumulator {
			c.setFlag(FlagCarry, c.A&0x80 != 0)
			c.A = (c.A << 1) | oldCarry
			c.setZN(c.A)
			return 0
		}
		addr, _ := c.operand(e.mode)
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x80 != 0)
		v = (v << 1) | oldCarry
		c.write(addr, v)
		c.setZN(v)
		return 0
	}
	op(0x2A, entry{"ROL", modeAccumulator, 1, 2, false, rol})
	op(0x26, entry{"ROL", modeZeroPage, 2, 5, false, rol})
	op(0x36, entry{"ROL", modeZeroPageX, 2, 6, false, rol})
	op(0x2E, entry{"ROL", modeAbsolute, 3, 6, false, rol})
	op(0x3E, entry{"ROL", modeAbsoluteX, 3, 7, false, rol})

	ror := func(c *CPU, e *entry) uint8 {
		oldCarry := c.P & FlagCarry
		if e.mode == modeAccumulator {
			c.setFlag(FlagCarry, c.A&0x01 != 0)
			c.A = (c.A >> 1) | (oldCarry << 7)
			c.setZN(c.A)
			return 0
		}
		addr, _ := c.operand(e.mode)
		v := c.read(addr)
		c.setFlag(FlagCarry, v&0x01 != 0)
		v = (v >> 1) | (oldCarry << 7)
		c.write(addr, v)
		c.setZN(v)
		return 0
	}
	op(0x6A, entry{"ROR", modeAccumulator, 1, 2, false, ror})
	op(0x66, entry{"ROR", modeZeroPage, 2, 5, false, ror})
	op(0x76, entry{"ROR", modeZeroPageX, 2, 6, false, ror})
	op(0x6E, entry{"ROR", modeAbsolute, 3, 6, false, ror})
	op(0x7E, entry{"ROR", modeAbsoluteX, 3, 7, false, ror})
}

func (c *CPU) branch(cond bool) uint8 {
	if !cond {
		c.PC++ // skip the relative operand byte; stepOnce() adds 0 more since pc moved
		return 0
	}
	target, _ := c.operand(modeRelative)
	oldPC := c.PC + 1
	extra := uint8(1)
	if pageCrosses(oldPC, target) {
		extra = 2
	}
	c.PC = target
	return extra
}

func registerBranches() {
	op(0x90, entry{"BCC", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagCarry == 0) }})
	op(0xB0, entry{"BCS", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagCarry != 0) }})
	op(0xF0, entry{"BEQ", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagZero != 0) }})
	op(0xD0, entry{"BNE", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagZero == 0) }})
	op(0x30, entry{"BMI", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagNegative != 0) }})
	op(0x10, entry{"BPL", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagNegative == 0) }})
	op(0x50, entry{"BVC", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagOverflow == 0) }})
	op(0x70, entry{"BVS", modeRelative, 2, 2, false, func(c *CPU, e *entry) uint8 { return c.branch(c.P&FlagOverflow != 0) }})
}

func registerJumps() {
	op(0x4C, entry{"JMP", modeAbsolute, 3, 3, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.PC = addr
		return 0
	}})
	op(0x6C, entry{"JMP", modeIndirect, 3, 5, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.PC = addr
		return 0
	}})
	op(0x20, entry{"JSR", modeAbsolute, 3, 6, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.pushAddr(c.PC + 1)
		c.PC = addr
		return 0
	}})
	op(0x60, entry{"RTS", modeImplicit, 1, 6, false, func(c *CPU, e *entry) uint8 {
		c.PC = c.popAddr() + 1
		return 0
	}})
	op(0x00, entry{"BRK", modeImplicit, 2, 7, false, func(c *CPU, e *entry) uint8 {
		c.pushAddr(c.PC + 1)
		c.push(c.P | FlagBreak | FlagUnused)
		c.P |= FlagInterruptDisable
		c.PC = c.read16(vectorIRQ)
		return 0
	}})
	op(0x40, entry{"RTI", modeImplicit, 1, 6, false, func(c *CPU, e *entry) uint8 {
		c.P = (c.pop() &^ FlagBreak) | FlagUnused
		c.PC = c.popAddr()
		return 0
	}})
}

func registerStack() {
	op(0x48, entry{"PHA", modeImplicit, 1, 3, false, func(c *CPU, e *entry) uint8 { c.push(c.A); return 0 }})
	op(0x08, entry{"PHP", modeImplicit, 1, 3, false, func(c *CPU, e *entry) uint8 {
		c.push(c.P | FlagBreak | FlagUnused)
		return 0
	}})
	op(0x68, entry{"PLA", modeImplicit, 1, 4, false, func(c *CPU, e *entry) uint8 {
		c.A = c.pop()
		c.setZN(c.A)
		return 0
	}})
	op(0x28, entry{"PLP", modeImplicit, 1, 4, false, func(c *CPU, e *entry) uint8 {
		c.P = (c.pop() &^ FlagBreak) | FlagUnused
		return 0
	}})
}

func registerFlags() {
	op(0x18, entry{"CLC", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.setFlag(FlagCarry, false); return 0 }})
	op(0x38, entry{"SEC", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.setFlag(FlagCarry, true); return 0 }})
	op(0xD8, entry{"CLD", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.setFlag(FlagDecimal, false); return 0 }})
	op(0xF8, entry{"SED", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.setFlag(FlagDecimal, true); return 0 }})
	op(0x58, entry{"CLI", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.setFlag(FlagInterruptDisable, false); return 0 }})
	op(0x78, entry{"SEI", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.setFlag(FlagInterruptDisable, true); return 0 }})
	op(0xB8, entry{"CLV", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.setFlag(FlagOverflow, false); return 0 }})
}

func registerTransfers() {
	op(0xAA, entry{"TAX", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.X = c.A; c.setZN(c.X); return 0 }})
	op(0xA8, entry{"TAY", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.Y = c.A; c.setZN(c.Y); return 0 }})
	op(0xBA, entry{"TSX", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.X = c.S; c.setZN(c.X); return 0 }})
	op(0x8A, entry{"TXA", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.A = c.X; c.setZN(c.A); return 0 }})
	op(0x9A, entry{"TXS", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.S = c.X; return 0 }})
	op(0x98, entry{"TYA", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { c.A = c.Y; c.setZN(c.A); return 0 }})
}

func registerLoadStore() {
	lda := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.A = v
		c.setZN(c.A)
		return extra
	}
	op(0xA9, entry{"LDA", modeImmediate, 2, 2, false, lda})
	op(0xA5, entry{"LDA", modeZeroPage, 2, 3, false, lda})
	op(0xB5, entry{"LDA", modeZeroPageX, 2, 4, false, lda})
	op(0xAD, entry{"LDA", modeAbsolute, 3, 4, false, lda})
	op(0xBD, entry{"LDA", modeAbsoluteX, 3, 4, true, lda})
	op(0xB9, entry{"LDA", modeAbsoluteY, 3, 4, true, lda})
	op(0xA1, entry{"LDA", modeIndirectX, 2, 6, false, lda})
	op(0xB1, entry{"LDA", modeIndirectY, 2, 5, true, lda})

	ldx := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.X = v
		c.setZN(c.X)
		return extra
	}
	op(0xA2, entry{"LDX", modeImmediate, 2, 2, false, ldx})
	op(0xA6, entry{"LDX", modeZeroPage, 2, 3, false, ldx})
	op(0xB6, entry{"LDX", modeZeroPageY, 2, 4, false, ldx})
	op(0xAE, entry{"LDX", modeAbsolute, 3, 4, false, ldx})
	op(0xBE, entry{"LDX", modeAbsoluteY, 3, 4, true, ldx})

	ldy := func(c *CPU, e *entry) uint8 {
		v, extra := c.readOperand(e)
		c.Y = v
		c.setZN(c.Y)
		return extra
	}
	op(0xA0, entry{"LDY", modeImmediate, 2, 2, false, ldy})
	op(0xA4, entry{"LDY", modeZeroPage, 2, 3, false, ldy})
	op(0xB4, entry{"LDY", modeZeroPageX, 2, 4, false, ldy})
	op(0xAC, entry{"LDY", modeAbsolute, 3, 4, false, ldy})
	op(0xBC, entry{"LDY", modeAbsoluteX, 3, 4, true, ldy})

	sta := func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.A)
		return 0
	}
	op(0x85, entry{"STA", modeZeroPage, 2, 3, false, sta})
	op(0x95, entry{"STA", modeZeroPageX, 2, 4, false, sta})
	op(0x8D, entry{"STA", modeAbsolute, 3, 4, false, sta})
	op(0x9D, entry{"STA", modeAbsoluteX, 3, 5, false, sta})
	op(0x99, entry{"STA", modeAbsoluteY, 3, 5, false, sta})
	op(0x81, entry{"STA", modeIndirectX, 2, 6, false, sta})
	op(0x91, entry{"STA", modeIndirectY, 2, 6, false, sta})

	op(0x86, entry{"STX", modeZeroPage, 2, 3, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.X)
		return 0
	}})
	op(0x96, entry{"STX", modeZeroPageY, 2, 4, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.X)
		return 0
	}})
	op(0x8E, entry{"STX", modeAbsolute, 3, 4, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.X)
		return 0
	}})
	op(0x84, entry{"STY", modeZeroPage, 2, 3, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.Y)
		return 0
	}})
	op(0x94, entry{"STY", modeZeroPageX, 2, 4, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.Y)
		return 0
	}})
	op(0x8C, entry{"STY", modeAbsolute, 3, 4, false, func(c *CPU, e *entry) uint8 {
		addr, _ := c.operand(e.mode)
		c.write(addr, c.Y)
		return 0
	}})
}

func registerMisc() {
	op(0xEA, entry{"NOP", modeImplicit, 1, 2, false, func(c *CPU, e *entry) uint8 { return 0 }})
}
