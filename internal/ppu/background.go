// Package ppu: scanline background rendering from VRAM tile maps.
package ppu

import "fmt"

// BackgroundRenderer draws the scrollable background layer one scanline
// at a time from the tile map and tile data areas LCDC selects.
type BackgroundRenderer struct {
	ppu           *PPU
	vramInterface VRAMInterface
}

// NewBackgroundRenderer binds a renderer to ppu's registers/framebuffer
// and vram's tile-map/tile-data contents.
func NewBackgroundRenderer(ppu *PPU, vram VRAMInterface) *BackgroundRenderer {
	return &BackgroundRenderer{ppu: ppu, vramInterface: vram}
}

// bgCoord is a background-map pixel coordinate decomposed into the tile
// it falls in and the pixel offset within that tile.
type bgCoord struct {
	tileX, tileY   int
	pixelX, pixelY int
}

func (br *BackgroundRenderer) coordAt(screenX, screenY int) bgCoord {
	scrollX, scrollY := br.ppu.GetScrollX(), br.ppu.GetScrollY()
	bgX := uint8((int(scrollX) + screenX) % 256)
	bgY := uint8((int(scrollY) + screenY) % 256)
	return bgCoord{
		tileX:  int(bgX) / TileWidth,
		tileY:  int(bgY) / TileHeight,
		pixelX: int(bgX) % TileWidth,
		pixelY: int(bgY) % TileHeight,
	}
}

// RenderBackgroundScanline draws scanline's 160 background pixels, or
// blanks the line to white if the background layer is off.
func (br *BackgroundRenderer) RenderBackgroundScanline(scanline uint8) {
	if !br.ppu.IsBackgroundEnabled() {
		br.clearScanline(scanline)
		return
	}
	if scanline >= ScreenHeight {
		return
	}

	for screenX := 0; screenX < ScreenWidth; screenX++ {
		c := br.coordAt(screenX, int(scanline))
		tile := br.fetchBackgroundTile(c.tileX, c.tileY)
		if tile == nil {
			tile = NewTile()
		}
		color := br.applyBackgroundPalette(tile.GetPixel(c.pixelX, c.pixelY))
		br.ppu.SetPixel(screenX, int(scanline), color)
	}
}

func wrapTileCoord(v, max int) int {
	v %= max
	if v < 0 {
		v += max
	}
	return v
}

func (br *BackgroundRenderer) tileMapAddress(tileX, tileY int) uint16 {
	base := uint16(BackgroundMap0Start)
	if br.ppu.IsBackgroundTileMap1() {
		base = BackgroundMap1Start
	}
	return base + uint16(tileY*TileMapWidth+tileX)
}

// fetchBackgroundTile loads and decodes the tile at (tileX, tileY) in
// the currently-selected background tile map, using whichever tile data
// addressing mode LCDC bit 4 selects.
func (br *BackgroundRenderer) fetchBackgroundTile(tileX, tileY int) *Tile {
	tileX = wrapTileCoord(tileX, TileMapWidth)
	tileY = wrapTileCoord(tileY, TileMapHeight)

	tileIndex := br.vramInterface.ReadVRAM(br.tileMapAddress(tileX, tileY))
	dataAddress := GetTileAddress(tileIndex, !br.ppu.IsBackgroundTileData1())

	var data TileData
	for i := range data {
		data[i] = br.vramInterface.ReadVRAM(dataAddress + uint16(i))
	}
	return NewTileFromData(data)
}

func (br *BackgroundRenderer) applyBackgroundPalette(tileColor uint8) uint8 {
	return ApplyPalette(tileColor, br.ppu.GetBackgroundPalette())
}

// clearScanline paints scanline entirely white, used when LCDC bit 0
// disables the background layer.
func (br *BackgroundRenderer) clearScanline(scanline uint8) {
	if scanline >= ScreenHeight {
		return
	}
	for x := 0; x < ScreenWidth; x++ {
		br.ppu.SetPixel(x, int(scanline), ColorWhite)
	}
}

// RenderFullBackground renders every scanline; used by tests and tools,
// never during normal emulation (which renders scanline-by-scanline).
func (br *BackgroundRenderer) RenderFullBackground() {
	for scanline := uint8(0); scanline < ScreenHeight; scanline++ {
		br.RenderBackgroundScanline(scanline)
	}
}

// GetBackgroundPixel returns the final background color at a screen
// coordinate, for the sprite renderer's priority check.
func (br *BackgroundRenderer) GetBackgroundPixel(screenX, screenY int) uint8 {
	if !br.inScreenBounds(screenX, screenY) || !br.ppu.IsBackgroundEnabled() {
		return ColorWhite
	}
	c := br.coordAt(screenX, screenY)
	tile := br.fetchBackgroundTile(c.tileX, c.tileY)
	if tile == nil {
		return ColorWhite
	}
	return br.applyBackgroundPalette(tile.GetPixel(c.pixelX, c.pixelY))
}

func (br *BackgroundRenderer) inScreenBounds(x, y int) bool {
	return x >= 0 && x < ScreenWidth && y >= 0 && y < ScreenHeight
}

// IsBackgroundPixelTransparent reports whether the raw (pre-palette)
// background pixel at a screen coordinate is shade 0.
func (br *BackgroundRenderer) IsBackgroundPixelTransparent(screenX, screenY int) bool {
	if !br.inScreenBounds(screenX, screenY) || !br.ppu.IsBackgroundEnabled() {
		return true
	}
	c := br.coordAt(screenX, screenY)
	tile := br.fetchBackgroundTile(c.tileX, c.tileY)
	if tile == nil {
		return true
	}
	return tile.GetPixel(c.pixelX, c.pixelY) == 0
}

// TileInfo describes one tile map slot: its map coordinates, tile index,
// and the screen position it projects to given current scroll.
type TileInfo struct {
	TileX     int
	TileY     int
	TileIndex uint8
	ScreenX   int
	ScreenY   int
}

// GetVisibleTiles lists every tile map entry that could contribute a
// pixel to the current screen, given scroll position.
func (br *BackgroundRenderer) GetVisibleTiles() []TileInfo {
	if !br.ppu.IsBackgroundEnabled() {
		return nil
	}

	scrollX, scrollY := br.ppu.GetScrollX(), br.ppu.GetScrollY()
	startX, startY := int(scrollX)/TileWidth, int(scrollY)/TileHeight

	var visible []TileInfo
	for ty := startY; ty <= startY+ScreenTilesHeight+1; ty++ {
		for tx := startX; tx <= startX+ScreenTilesWidth+1; tx++ {
			wx, wy := wrapTileCoord(tx, TileMapWidth), wrapTileCoord(ty, TileMapHeight)
			tileIndex := br.vramInterface.ReadVRAM(br.tileMapAddress(wx, wy))
			visible = append(visible, TileInfo{
				TileX:     wx,
				TileY:     wy,
				TileIndex: tileIndex,
				ScreenX:   tx*TileWidth - int(scrollX),
				ScreenY:   ty*TileHeight - int(scrollY),
			})
		}
	}
	return visible
}

// AnalyzeBackground reports scroll/register state plus, when the
// background is on, visible-tile statistics (unique count, most common
// tile index and its frequency).
func (br *BackgroundRenderer) AnalyzeBackground() map[string]interface{} {
	analysis := map[string]interface{}{
		"backgroundEnabled": br.ppu.IsBackgroundEnabled(),
		"scrollX":           br.ppu.GetScrollX(),
		"scrollY":           br.ppu.GetScrollY(),
		"tileMap1Selected":  br.ppu.IsBackgroundTileMap1(),
		"tileData1Selected": br.ppu.IsBackgroundTileData1(),
	}
	if !br.ppu.IsBackgroundEnabled() {
		return analysis
	}

	visible := br.GetVisibleTiles()
	analysis["visibleTileCount"] = len(visible)

	freq := make(map[uint8]int)
	for _, t := range visible {
		freq[t.TileIndex]++
	}
	analysis["uniqueTileCount"] = len(freq)

	var mostCommon uint8
	maxFreq := 0
	for index, count := range freq {
		if count > maxFreq {
			maxFreq, mostCommon = count, index
		}
	}
	analysis["mostCommonTile"] = mostCommon
	analysis["mostCommonTileFreq"] = maxFreq
	return analysis
}

// String summarizes the renderer's current enable/scroll/addressing state.
func (br *BackgroundRenderer) String() string {
	if !br.ppu.IsBackgroundEnabled() {
		return "Background Renderer: DISABLED"
	}
	tileMap := "Map 0"
	if br.ppu.IsBackgroundTileMap1() {
		tileMap = "Map 1"
	}
	tileData := "$8000"
	if !br.ppu.IsBackgroundTileData1() {
		tileData = "$8800"
	}
	return fmt.Sprintf("Background Renderer: ENABLED | Scroll: (%d,%d) | %s | %s method",
		br.ppu.GetScrollX(), br.ppu.GetScrollY(), tileMap, tileData)
}

// ValidateRenderer sanity-checks the renderer's dependencies, returning a
// list of problems found (empty if none).
func (br *BackgroundRenderer) ValidateRenderer() []string {
	var issues []string
	if br.ppu == nil {
		issues = append(issues, "PPU reference is nil")
	}
	if br.vramInterface == nil {
		issues = append(issues, "VRAM interface is nil")
	}
	if br.ppu != nil {
		_ = br.ppu.GetScrollX()
		_ = br.ppu.GetScrollY()
		_ = br.ppu.IsBackgroundEnabled()
	}
	return issues
}
