// Package ppu: the window layer, a second scrollable background plane
// that draws above the background but below sprites.
package ppu

import "fmt"

// WindowRenderer draws the window layer one scanline at a time. Unlike
// the background, the window tracks its own internal line counter that
// only advances on scanlines where the window actually drew, so
// scrolling WY mid-frame doesn't skip rows of window tile data.
type WindowRenderer struct {
	ppu           *PPU
	vramInterface VRAMInterface

	windowLineCounter uint8
	isWindowActive    bool
}

// NewWindowRenderer binds a renderer to ppu's registers/framebuffer and
// vram's tile-map/tile-data contents.
func NewWindowRenderer(ppu *PPU, vram VRAMInterface) *WindowRenderer {
	return &WindowRenderer{ppu: ppu, vramInterface: vram}
}

// RenderWindowScanline draws the window's contribution to scanline, if
// the window is enabled and has scrolled into view by this scanline.
func (wr *WindowRenderer) RenderWindowScanline(scanline uint8) {
	if !wr.ppu.IsWindowEnabled() || scanline >= ScreenHeight {
		return
	}
	if !wr.isWindowVisibleOnScanline(scanline) {
		return
	}
	wr.isWindowActive = true

	originX := int(wr.ppu.GetWX()) - 7
	line := wr.windowLineCounter
	tileRow, pixelRow := int(line)/TileHeight, int(line)%TileHeight
	tileMapBase := wr.getWindowTileMapBase()

	startX := originX
	if startX < 0 {
		startX = 0
	}
	for screenX := startX; screenX < ScreenWidth; screenX++ {
		localX := screenX - originX
		if localX < 0 {
			continue
		}
		tileCol, pixelCol := localX/TileWidth, localX%TileWidth

		tileIndex := wr.vramInterface.ReadVRAM(tileMapBase + uint16(tileRow*TileMapWidth+tileCol))
		rowAddress := wr.getTileDataAddress(tileIndex) + uint16(pixelRow)*2
		lo := wr.vramInterface.ReadVRAM(rowAddress)
		hi := wr.vramInterface.ReadVRAM(rowAddress + 1)

		shift := uint(7 - pixelCol)
		rawColor := (hi>>shift)&1<<1 | (lo>>shift)&1
		wr.ppu.SetPixel(screenX, int(scanline), wr.applyBackgroundPalette(rawColor))
	}

	wr.windowLineCounter++
}

// isWindowVisibleOnScanline reports whether the window has scrolled
// into view by scanline (i.e. scanline >= WY).
func (wr *WindowRenderer) isWindowVisibleOnScanline(scanline uint8) bool {
	return scanline >= wr.ppu.GetWY()
}

// getWindowTileMapBase returns the window tile map's base address per LCDC bit 6.
func (wr *WindowRenderer) getWindowTileMapBase() uint16 {
	if wr.ppu.GetWindowTileMapSelect() {
		return BackgroundMap1Start
	}
	return BackgroundMap0Start
}

// getTileDataAddress resolves a tile index to its VRAM tile data address
// under whichever addressing mode LCDC bit 4 selects.
func (wr *WindowRenderer) getTileDataAddress(tileIndex uint8) uint16 {
	return GetTileAddress(tileIndex, !wr.ppu.GetBGWindowTileDataSelect())
}

// applyBackgroundPalette runs a raw window pixel through BGP — the
// window always shares the background's palette register.
func (wr *WindowRenderer) applyBackgroundPalette(rawColor uint8) uint8 {
	if rawColor > 3 {
		return ColorWhite
	}
	return (wr.ppu.GetBGP() >> (uint(rawColor) * 2)) & 0x03
}

// ResetWindowState zeroes the internal line counter and active flag;
// called when the window or LCD is disabled, or the LCD resets.
func (wr *WindowRenderer) ResetWindowState() {
	wr.windowLineCounter = 0
	wr.isWindowActive = false
}

// GetWindowLineCounter exposes the internal line counter for debugging/testing.
func (wr *WindowRenderer) GetWindowLineCounter() uint8 {
	return wr.windowLineCounter
}

// IsWindowActive reports whether the window drew on the current frame.
func (wr *WindowRenderer) IsWindowActive() bool {
	return wr.isWindowActive
}

// ValidateWindowPosition flags WX/WY values that place the window
// partly or fully off-screen, for debugging tools.
func (wr *WindowRenderer) ValidateWindowPosition() (bool, string) {
	wx, wy := wr.ppu.GetWX(), wr.ppu.GetWY()

	var issues []string
	if wx < 7 {
		issues = append(issues, fmt.Sprintf("WX=%d is less than 7, window will not be visible", wx))
	}
	if wx > 166 {
		issues = append(issues, fmt.Sprintf("WX=%d is greater than 166, window extends beyond screen", wx))
	}
	if wy > 143 {
		issues = append(issues, fmt.Sprintf("WY=%d is greater than 143, window below visible area", wy))
	}

	if len(issues) > 0 {
		return false, fmt.Sprintf("Window position issues: %v", issues)
	}
	return true, "Window position is valid"
}
