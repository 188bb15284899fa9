// LCD register access: LCDC, STAT, LY/LYC, scroll, window, and palette
// registers, each exposed as its own get/set pair so the bus can treat
// every PPU register as a simple byte-wide address.
package ppu

// LCDC (0xFF40) control bits.
const (
	LCDCLCDEnable        uint8 = 7
	LCDCWindowTileMap    uint8 = 6
	LCDCWindowEnable     uint8 = 5
	LCDCBGWindowTileData uint8 = 4
	LCDCBGTileMap        uint8 = 3
	LCDCSpriteSize       uint8 = 2
	LCDCSpriteEnable     uint8 = 1
	LCDCBGPriority       uint8 = 0
)

// STAT (0xFF41) bits. Bits 1-0 (mode) and bit 2 (LYC flag) are read-only,
// maintained by updateSTATMode/updateLYCFlag rather than SetSTAT.
const (
	STATLYCInterrupt   uint8 = 6
	STATMode2Interrupt uint8 = 5
	STATMode1Interrupt uint8 = 4
	STATMode0Interrupt uint8 = 3
	STATLYCFlag        uint8 = 2
)

// Memory-mapped addresses of the LCD register block.
const (
	LCDCAddress uint16 = 0xFF40
	STATAddress uint16 = 0xFF41
	SCYAddress  uint16 = 0xFF42
	SCXAddress  uint16 = 0xFF43
	LYAddress   uint16 = 0xFF44
	LYCAddress  uint16 = 0xFF45
	WYAddress   uint16 = 0xFF4A
	WXAddress   uint16 = 0xFF4B
	BGPAddress  uint16 = 0xFF47
	OBP0Address uint16 = 0xFF48
	OBP1Address uint16 = 0xFF49
)

func bitSet(value, bit uint8) bool {
	return value&(1<<bit) != 0
}

// SetLCDC writes LCDC (0xFF40), handling the side effects of toggling the
// LCD and window enable bits: a disable snaps the PPU back to scanline 0
// in H-Blank, a re-enable restarts it in OAM scan, and either edge on the
// window-enable bit resets the window's internal line counter.
func (ppu *PPU) SetLCDC(value uint8) {
	wasLCDOn := ppu.LCDEnabled
	wasWindowOn := ppu.IsWindowEnabled()

	ppu.LCDC = value
	ppu.LCDEnabled = bitSet(value, LCDCLCDEnable)
	isWindowOn := ppu.IsWindowEnabled()

	switch {
	case wasLCDOn && !ppu.LCDEnabled:
		ppu.LY = 0
		ppu.Cycles = 0
		ppu.Mode = ModeHBlank
		ppu.updateSTATMode()
		ppu.resetWindowIfPresent()
	case !wasLCDOn && ppu.LCDEnabled:
		ppu.LY = 0
		ppu.Cycles = 0
		ppu.Mode = ModeOAMScan
		ppu.updateSTATMode()
	}

	if wasWindowOn != isWindowOn {
		ppu.resetWindowIfPresent()
	}
}

func (ppu *PPU) resetWindowIfPresent() {
	if ppu.windowRenderer != nil {
		ppu.windowRenderer.ResetWindowState()
	}
}

// GetLCDC reads LCDC (0xFF40).
func (ppu *PPU) GetLCDC() uint8 { return ppu.LCDC }

// IsWindowEnabled reports LCDC bit 5.
func (ppu *PPU) IsWindowEnabled() bool { return bitSet(ppu.LCDC, LCDCWindowEnable) }

// IsSpriteEnabled reports LCDC bit 1.
func (ppu *PPU) IsSpriteEnabled() bool { return bitSet(ppu.LCDC, LCDCSpriteEnable) }

// GetSpritesEnabled is the sprite renderer's naming convention for
// IsSpriteEnabled.
func (ppu *PPU) GetSpritesEnabled() bool { return ppu.IsSpriteEnabled() }

// IsBGEnabled reports LCDC bit 0.
func (ppu *PPU) IsBGEnabled() bool { return bitSet(ppu.LCDC, LCDCBGPriority) }

// GetSpriteSize returns 16 for 8x16 sprite mode (LCDC bit 2 set), else 8.
func (ppu *PPU) GetSpriteSize() uint8 {
	if bitSet(ppu.LCDC, LCDCSpriteSize) {
		return 16
	}
	return 8
}

// SetSTAT writes STAT (0xFF41). Only the interrupt-enable bits (6-3) are
// writable; the mode and LYC-flag bits are hardware-maintained and carried
// over unchanged. Enabling a source that's already satisfied (e.g. the
// LYC-select bit while LY already equals LYC) raises the interrupt right
// away rather than waiting for the next mode transition.
func (ppu *PPU) SetSTAT(value uint8) {
	ppu.STAT = value&0x78 | ppu.STAT&0x07
	if ppu.updateLYCFlag() || ppu.ShouldTriggerSTATInterrupt() {
		ppu.pendingSTATIRQ = true
	}
}

// GetSTAT reads STAT (0xFF41).
func (ppu *PPU) GetSTAT() uint8 { return ppu.STAT }

func (ppu *PPU) updateSTATMode() {
	ppu.STAT = ppu.STAT&0xFC | uint8(ppu.Mode)
}

// updateLYCFlag recomputes STAT bit 2 from LY/LYC and reports whether the
// LYC interrupt should fire as a result.
func (ppu *PPU) updateLYCFlag() bool {
	match := ppu.LY == ppu.LYC
	if match {
		ppu.STAT |= 1 << STATLYCFlag
	} else {
		ppu.STAT &^= 1 << STATLYCFlag
	}
	return match && bitSet(ppu.STAT, STATLYCInterrupt)
}

// ShouldTriggerSTATInterrupt reports whether the PPU's current mode is one
// whose STAT interrupt-enable bit is set. Mode 3 (pixel transfer) has no
// associated interrupt source.
func (ppu *PPU) ShouldTriggerSTATInterrupt() bool {
	var bit uint8
	switch ppu.Mode {
	case ModeHBlank:
		bit = STATMode0Interrupt
	case ModeVBlank:
		bit = STATMode1Interrupt
	case ModeOAMScan:
		bit = STATMode2Interrupt
	default:
		return false
	}
	return bitSet(ppu.STAT, bit)
}

// GetLY reads the current scanline (0xFF44), read-only on real hardware.
func (ppu *PPU) GetLY() uint8 { return ppu.LY }

// SetLYC writes LYC (0xFF45) and immediately refreshes the LYC=LY flag,
// raising the STAT interrupt right away if the new value already matches LY.
func (ppu *PPU) SetLYC(value uint8) {
	ppu.LYC = value
	if ppu.updateLYCFlag() {
		ppu.pendingSTATIRQ = true
	}
}

// GetLYC reads LYC (0xFF45).
func (ppu *PPU) GetLYC() uint8 { return ppu.LYC }

// SetSCY/GetSCY access background scroll Y (0xFF42).
func (ppu *PPU) SetSCY(value uint8) { ppu.SCY = value }
func (ppu *PPU) GetSCY() uint8      { return ppu.SCY }

// SetSCX/GetSCX access background scroll X (0xFF43).
func (ppu *PPU) SetSCX(value uint8) { ppu.SCX = value }
func (ppu *PPU) GetSCX() uint8      { return ppu.SCX }

// SetWY/GetWY access the window Y position (0xFF4A).
func (ppu *PPU) SetWY(value uint8) { ppu.WY = value }
func (ppu *PPU) GetWY() uint8      { return ppu.WY }

// SetWX/GetWX access the window X position (0xFF4B).
func (ppu *PPU) SetWX(value uint8) { ppu.WX = value }
func (ppu *PPU) GetWX() uint8      { return ppu.WX }

// GetWindowTileMapSelect reports LCDC bit 6 (window tile map bank).
func (ppu *PPU) GetWindowTileMapSelect() bool { return bitSet(ppu.LCDC, LCDCWindowTileMap) }

// GetBGWindowTileDataSelect reports LCDC bit 4 (BG/window tile data addressing mode).
func (ppu *PPU) GetBGWindowTileDataSelect() bool { return bitSet(ppu.LCDC, LCDCBGWindowTileData) }

// SetBGP/GetBGP access the background palette register (0xFF47).
func (ppu *PPU) SetBGP(value uint8) { ppu.BGP = value }
func (ppu *PPU) GetBGP() uint8      { return ppu.BGP }

// SetOBP0/GetOBP0 access object palette 0 (0xFF48).
func (ppu *PPU) SetOBP0(value uint8) { ppu.OBP0 = value }
func (ppu *PPU) GetOBP0() uint8      { return ppu.OBP0 }

// SetOBP1/GetOBP1 access object palette 1 (0xFF49).
func (ppu *PPU) SetOBP1(value uint8) { ppu.OBP1 = value }
func (ppu *PPU) GetOBP1() uint8      { return ppu.OBP1 }

// IsBackgroundEnabled is an alias for IsBGEnabled kept for the background
// renderer's own naming convention.
func (ppu *PPU) IsBackgroundEnabled() bool { return bitSet(ppu.LCDC, LCDCBGPriority) }

// GetScrollX/GetScrollY are background-renderer-facing aliases for
// GetSCX/GetSCY.
func (ppu *PPU) GetScrollX() uint8 { return ppu.GetSCX() }
func (ppu *PPU) GetScrollY() uint8 { return ppu.GetSCY() }

// IsBackgroundTileMap1 reports LCDC bit 3 (background tile map bank).
func (ppu *PPU) IsBackgroundTileMap1() bool { return bitSet(ppu.LCDC, LCDCBGTileMap) }

// IsBackgroundTileData1 reports LCDC bit 4 (background tile data addressing mode).
func (ppu *PPU) IsBackgroundTileData1() bool { return bitSet(ppu.LCDC, LCDCBGWindowTileData) }

// GetBackgroundPalette decodes BGP into its four shade mappings.
func (ppu *PPU) GetBackgroundPalette() [4]uint8 { return DecodePalette(ppu.GetBGP()) }
