package ppu

// The 262-scanline x 341-dot rendering pipeline: background tile fetch via
// shift registers, sprite evaluation once per scanline (at dot 257, for
// the next scanline), per-pixel compositing with sprite-0 hit detection,
// VBlank/NMI edge timing, and the documented odd-frame dot skip.
//
// Grounded on the scanline/dot state machine and sprite evaluation timing
// in original_source/lib/src/nes_ppu.cpp (step_to/step_ppu/fetch_tile_pipeline/
// fetch_sprite_pipeline), reimplemented with shift registers and the Loopy
// v/t/x/w scrolling model from loopy.go rather than that source's single
// raw vram-address integer, and with a real per-dot vertical-bits copy
// across cycles 280-304 rather than that source's single copy at dot 0 of
// the pre-render line (see DESIGN.md).

// Step advances the PPU by exactly one PPU cycle (== one master cycle).
func (p *PPU) Step() {
	if p.renderingEnabled() && (p.scanline < 240 || p.scanline == 261) {
		p.renderCycle()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= STATUS_VERTICAL_BLANK
		if p.ctrl&CTRL_GENERATE_NMI != 0 {
			p.bus.TriggerNMI()
		}
	}
	if p.scanline == 261 && p.dot == 1 {
		p.status &^= STATUS_VERTICAL_BLANK | STATUS_SPRITE_0_HIT | STATUS_SPRITE_OVERFLOW
	}

	p.dot++
	if p.scanline == 261 && p.dot == 340 && p.frameOdd && p.renderingEnabled() {
		p.dot++ // the pre-render line is one dot short on odd frames
	}
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.frameOdd = !p.frameOdd
			// The only buffer swap point: the write buffer just finished
			// at the 261->0 wrap becomes the stable read buffer, and
			// Step begins drawing the next frame into the other one.
			p.writeIdx ^= 1
			p.frameComplete = true
		}
	}
}

// Tick advances the PPU by n PPU cycles.
func (p *PPU) Tick(n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

func (p *PPU) renderCycle() {
	visible := p.dot >= 1 && p.dot <= 256
	prefetch := p.dot >= 321 && p.dot <= 336

	if visible || prefetch {
		p.shiftBackgroundRegisters()
		switch (p.dot - 1) % 8 {
		case 0:
			p.loadBackgroundShifters()
			p.nextTileID = p.read(0x2000 | (p.v.data & 0x0FFF))
		case 2:
			p.nextTileAttr = p.fetchAttributeByte()
		case 4:
			p.nextTileLo = p.fetchBGPatternByte(0)
		case 6:
			p.nextTileHi = p.fetchBGPatternByte(1)
		case 7:
			p.v.incrementCoarseXWrapping()
		}
	}

	if p.dot == 256 {
		p.v.incrementY()
	}
	if p.dot == 257 {
		p.loadBackgroundShifters()
		p.v.transferHorizontal(&p.t)
		switch {
		case p.scanline < 239:
			p.evaluateSprites(p.scanline + 1)
		case p.scanline == 261:
			p.evaluateSprites(0)
		}
	}
	if p.scanline == 261 && p.dot >= 280 && p.dot <= 304 {
		p.v.transferVertical(&p.t)
	}

	if visible && p.scanline < 240 {
		p.renderPixel(p.dot - 1)
	}
}

func (p *PPU) shiftBackgroundRegisters() {
	if p.mask&MASK_SHOW_BACKGROUND == 0 {
		return
	}
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttrLo <<= 1
	p.bgAttrHi <<= 1
}

func (p *PPU) loadBackgroundShifters() {
	p.bgPatternLo = (p.bgPatternLo & 0xFF00) | uint16(p.nextTileLo)
	p.bgPatternHi = (p.bgPatternHi & 0xFF00) | uint16(p.nextTileHi)

	var loFill, hiFill uint16
	if p.nextTileAttr&0x01 != 0 {
		loFill = 0xFF
	}
	if p.nextTileAttr&0x02 != 0 {
		hiFill = 0xFF
	}
	p.bgAttrLo = (p.bgAttrLo & 0xFF00) | loFill
	p.bgAttrHi = (p.bgAttrHi & 0xFF00) | hiFill
}

func (p *PPU) fetchAttributeByte() uint8 {
	addr := uint16(0x23C0) | (p.v.data & 0x0C00) | ((p.v.coarseY() >> 2) << 3) | (p.v.coarseX() >> 2)
	b := p.read(addr)
	shift := ((p.v.coarseY() & 0x02) << 1) | (p.v.coarseX() & 0x02)
	return uint8((uint16(b) >> shift) & 0x03)
}

func (p *PPU) fetchBGPatternByte(plane uint16) uint8 {
	base := uint16(0)
	if p.ctrl&CTRL_BACKROUND_PATTERN_ADDR != 0 {
		base = 0x1000
	}
	addr := base + uint16(p.nextTileID)*16 + p.v.fineY() + plane*8
	return p.read(addr)
}

func (p *PPU) backgroundPixelBits() (pixel, palette uint8) {
	bit := uint16(0x8000) >> p.fineX
	if p.bgPatternLo&bit != 0 {
		pixel |= 1
	}
	if p.bgPatternHi&bit != 0 {
		pixel |= 2
	}
	if p.bgAttrLo&bit != 0 {
		palette |= 1
	}
	if p.bgAttrHi&bit != 0 {
		palette |= 2
	}
	return
}

func (p *PPU) evaluateSprites(targetScanline int32) {
	height := int32(8)
	if p.ctrl&CTRL_SPRITE_SIZE != 0 {
		height = 16
	}

	count := 0
	overflow := false
	zeroFound := false

	for i := 0; i < 64; i++ {
		base := i * 4
		spriteY := int32(p.oamData[base])
		row := targetScanline - spriteY - 1
		if row < 0 || row >= height {
			continue
		}
		if count >= 8 {
			overflow = true
			break
		}

		copy(p.secondaryOAM[count*4:count*4+4], p.oamData[base:base+4])
		attrs := p.oamData[base+2]
		o := OAMFromBytes(p.secondaryOAM[count*4 : count*4+4])
		lo, hi := p.fetchSpritePattern(o, uint8(row), uint8(height))
		p.spriteScanline[count] = spriteUnit{
			patternLo:    lo,
			patternHi:    hi,
			attr:         attrs,
			x:            o.x,
			isSpriteZero: i == 0,
		}
		if i == 0 {
			zeroFound = true
		}
		count++
	}

	p.spriteCount = count
	p.spriteZeroOnScanline = zeroFound
	if overflow {
		p.status |= STATUS_SPRITE_OVERFLOW
	}
}

func (p *PPU) fetchSpritePattern(o oam, row, height uint8) (lo, hi uint8) {
	if o.flipV {
		row = height - 1 - row
	}

	var addr uint16
	if height == 16 {
		table := uint16(o.tileId&0x01) * 0x1000
		tileIndex := uint16(o.tileId &^ 0x01)
		if row >= 8 {
			tileIndex++
			row -= 8
		}
		addr = table + tileIndex*16 + uint16(row)
	} else {
		table := uint16(0)
		if p.ctrl&CTRL_SPRITE_PATTERN_ADDR != 0 {
			table = 0x1000
		}
		addr = table + uint16(o.tileId)*16 + uint16(row)
	}

	lo = p.read(addr)
	hi = p.read(addr + 8)
	if o.flipH {
		lo = reverseBits(lo)
		hi = reverseBits(hi)
	}
	return
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r = (r << 1) | (b & 1)
		b >>= 1
	}
	return r
}

// spritePixelBits returns the first (highest-priority, lowest OAM index)
// opaque sprite pixel covering column x on the current scanline.
func (p *PPU) spritePixelBits(x int32) (pixel, palette uint8, front, isZero, found bool) {
	for i := 0; i < p.spriteCount; i++ {
		u := &p.spriteScanline[i]
		if x < int32(u.x) || x >= int32(u.x)+8 {
			continue
		}
		shift := uint8(x - int32(u.x))
		bit := 7 - shift
		px := ((u.patternHi >> bit) & 1 << 1) | ((u.patternLo >> bit) & 1)
		if px == 0 {
			continue
		}
		return px, u.attr & 0x03, u.attr&0x20 == 0, u.isSpriteZero, true
	}
	return 0, 0, false, false, false
}

func (p *PPU) renderPixel(x int32) {
	bgAllowed := p.mask&MASK_SHOW_BACKGROUND != 0 && (x >= 8 || p.mask&MASK_SHOW_BG_LEFT8 != 0)
	spAllowed := p.mask&MASK_SHOW_SPRITES != 0 && (x >= 8 || p.mask&MASK_SHOW_SPRITES_LEFT8 != 0)

	var bgPixel, bgPal uint8
	if bgAllowed {
		bgPixel, bgPal = p.backgroundPixelBits()
	}

	var spPixel, spPal uint8
	var spFront, spZero, spFound bool
	if spAllowed {
		spPixel, spPal, spFront, spZero, spFound = p.spritePixelBits(x)
	}

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && (!spFound || spPixel == 0):
		paletteAddr = PALETTE_RAM
	case bgPixel == 0:
		paletteAddr = PALETTE_RAM + 0x10 + uint16(spPal)*4 + uint16(spPixel)
	case !spFound || spPixel == 0:
		paletteAddr = PALETTE_RAM + uint16(bgPal)*4 + uint16(bgPixel)
	default:
		if spZero && p.spriteZeroOnScanline && x != 255 {
			p.status |= STATUS_SPRITE_0_HIT
		}
		if spFront {
			paletteAddr = PALETTE_RAM + 0x10 + uint16(spPal)*4 + uint16(spPixel)
		} else {
			paletteAddr = PALETTE_RAM + uint16(bgPal)*4 + uint16(bgPixel)
		}
	}

	p.plot(x, p.scanline, p.read(paletteAddr))
}
