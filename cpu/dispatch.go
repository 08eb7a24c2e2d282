package cpu

// entry describes one of the 256 possible opcodes: its addressing mode,
// instruction byte length, base cycle cost, whether a page-cross adds a
// cycle (true for read-only addressing, false for read-modify-write and
// store instructions which always take the worst-case timing), and the
// function that actually executes it.
type entry struct {
	name        string
	mode        uint8
	bytes       uint8
	cycles      uint8
	pageCrossOK bool
	exec        func(c *CPU, e *entry) uint8 // returns extra cycles owed
}

var dispatchTable [256]entry

func op(code uint8, e entry) {
	dispatchTable[code] = e
}

// readOperand resolves e's addressing mode, returns the byte at the
// effective address, and reports whether a page-cross penalty is owed
// (only possible, and only charged, when e.pageCrossOK is set).
func (c *CPU) readOperand(e *entry) (value uint8, extra uint8) {
	addr, crossed := c.operand(e.mode)
	if crossed && e.pageCrossOK {
		extra = 1
	}
	return c.read(addr), extra
}

func (c *CPU) operandAddr(e *entry) (addr uint16, extra uint8) {
	a, crossed := c.operand(e.mode)
	if crossed && e.pageCrossOK {
		extra = 1
	}
	return a, extra
}
