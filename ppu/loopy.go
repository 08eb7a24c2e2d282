package ppu

// loopy struct will store v and t (loopy registers) and allow
// extracting and setting the various components as described below:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 {
	return l.data & 0x001F
}

func (l *loopy) setCoarseX(n uint16) {
	l.data = (l.data & 0xFFE0) | n
}

func (l *loopy) incrementCoarseX() {
	l.data += 1
}

func (l *loopy) coarseY() uint16 {
	return (l.data & 0x03E0) >> 5
}

func (l *loopy) incrementCoarseY() {
	l.data = ((l.coarseY() + 1) << 5) | (l.data & 0xFC1F)
}

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data & 0xFC1F) | (uint16(n) << 5)
}

func (l *loopy) nametableX() uint16 {
	return (l.data & 0x0400) >> 10
}

func clearBit(n, pos uint16) uint16 {
	return n &^ (uint16(1) << (pos - 1))
}

func (l *loopy) toggleNametableX() {
	if l.nametableX() == 1 {
		l.data = clearBit(l.data, 11)
	} else {
		l.data |= (uint16(1) << 10)
	}
}

func (l *loopy) nametableY() uint16 {
	return (l.data & 0x0800) >> 11
}

func (l *loopy) toggleNametableY() {
	if l.nametableY() == 1 {
		l.data = clearBit(l.data, 12)
	} else {
		l.data |= (uint16(1) << 11)
	}
}

func (l *loopy) fineY() uint16 {
	return (l.data & 0x7000) >> 12
}

func (l *loopy) incrementFineY() {
	l.data = (l.data & 0x0FFF) | ((l.fineY() + 1) << 12)
}

func (l *loopy) setFineY(n uint16) {
	l.data = (l.data & 0x0FFF) | (uint16(n) << 12)
}

// incrementCoarseXWrapping is incrementCoarseX with the nametable-toggle
// wraparound real hardware performs at the 32-tile row boundary; kept
// separate from incrementCoarseX since the bare version above is exercised
// by loopy_test.go exactly as the teacher wrote it.
func (l *loopy) incrementCoarseXWrapping() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		l.toggleNametableX()
		return
	}
	l.incrementCoarseX()
}

// incrementY is the real hardware's vertical scroll increment: fine Y
// counts 0-7 within a tile row, then coarse Y advances with a wrap at row
// 29 (the last row of nametable data, toggling the vertical nametable) and
// a silent wrap at row 31 (attribute-table territory some games abuse for
// scroll tricks, which must not toggle the nametable).
func (l *loopy) incrementY() {
	if l.fineY() < 7 {
		l.incrementFineY()
		return
	}
	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.incrementCoarseY()
	}
}

// transferHorizontal copies coarse X and nametable X from t, used at dot
// 257 of every rendered scanline.
func (l *loopy) transferHorizontal(t *loopy) {
	l.setCoarseX(t.coarseX())
	if t.nametableX() != l.nametableX() {
		l.toggleNametableX()
	}
}

// transferVertical copies coarse Y, fine Y, and nametable Y from t, used
// at every dot from 280-304 of the pre-render scanline.
func (l *loopy) transferVertical(t *loopy) {
	l.setCoarseY(t.coarseY())
	l.setFineY(t.fineY())
	if t.nametableY() != l.nametableY() {
		l.toggleNametableY()
	}
}
