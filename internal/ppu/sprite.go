// Package ppu: Object Attribute Memory parsing and sprite compositing.
package ppu

import "sort"

// OAM layout and sprite limits.
const (
	OAMStartAddress = 0xFE00
	OAMEndAddress   = 0xFE9F
	OAMSize         = 160

	MaxSprites           = 40
	MaxSpritesPerLine    = 10
	SpriteWidth          = 8
	SpriteHeight8x8      = 8
	SpriteHeight8x16     = 16
	SpriteBytesPerSprite = 4

	SpriteYOffset = 16
	SpriteXOffset = 8
)

// Sprite attribute-byte flag bits.
const (
	SpriteFlagPriority = 0x80
	SpriteFlagFlipY    = 0x40
	SpriteFlagFlipX    = 0x20
	SpriteFlagPalette  = 0x10
)

// Sprite is one parsed OAM entry: its 4 raw bytes plus the derived
// screen-space position and flags used by the renderer.
type Sprite struct {
	Y      uint8
	X      uint8
	TileID uint8
	Flags  uint8

	ScreenY    int
	ScreenX    int
	Priority   bool
	FlipX      bool
	FlipY      bool
	PaletteNum uint8
	OAMIndex   uint8
}

// NewSprite parses a 4-byte OAM entry (plus its OAM slot) into a Sprite.
func NewSprite(oamData [4]uint8, oamIndex uint8) *Sprite {
	s := &Sprite{
		Y:        oamData[0],
		X:        oamData[1],
		TileID:   oamData[2],
		Flags:    oamData[3],
		OAMIndex: oamIndex,
	}
	s.ScreenY = int(s.Y) - SpriteYOffset
	s.ScreenX = int(s.X) - SpriteXOffset
	s.Priority = s.Flags&SpriteFlagPriority != 0
	s.FlipY = s.Flags&SpriteFlagFlipY != 0
	s.FlipX = s.Flags&SpriteFlagFlipX != 0
	if s.Flags&SpriteFlagPalette != 0 {
		s.PaletteNum = 1
	}
	return s
}

// IsVisible reports whether scanline falls within the sprite's vertical
// extent given the current sprite height mode.
func (s *Sprite) IsVisible(scanline uint8, spriteHeight int) bool {
	lo, hi := s.ScreenY, s.ScreenY+spriteHeight-1
	return int(scanline) >= lo && int(scanline) <= hi
}

// GetTileRow returns which row of the sprite's tile data corresponds to
// scanline, accounting for a vertical flip.
func (s *Sprite) GetTileRow(scanline uint8, spriteHeight int) int {
	row := int(scanline) - s.ScreenY
	if s.FlipY {
		row = spriteHeight - 1 - row
	}
	return row
}

// SpriteRenderer tracks the 40-entry OAM cache and, per scanline, the
// subset of sprites actually drawn.
type SpriteRenderer struct {
	ppu           *PPU
	vramInterface VRAMInterface

	sprites [MaxSprites]*Sprite

	visibleSprites [MaxSpritesPerLine]*Sprite
	spriteCount    int
}

// NewSpriteRenderer builds a renderer bound to ppu's registers and vram's
// OAM/VRAM contents.
func NewSpriteRenderer(ppu *PPU, vram VRAMInterface) *SpriteRenderer {
	return &SpriteRenderer{ppu: ppu, vramInterface: vram}
}

func (sr *SpriteRenderer) currentSpriteHeight() int {
	if sr.ppu.GetSpriteSize() == 16 {
		return SpriteHeight8x16
	}
	return SpriteHeight8x8
}

// ScanOAM re-reads all 40 OAM entries into the sprite cache; called once
// per frame during OAM scan (PPU mode 2).
func (sr *SpriteRenderer) ScanOAM() {
	for i := 0; i < MaxSprites; i++ {
		addr := uint16(OAMStartAddress + i*SpriteBytesPerSprite)
		var raw [4]uint8
		for b := range raw {
			raw[b] = sr.vramInterface.ReadOAM(addr + uint16(b))
		}
		sr.sprites[i] = NewSprite(raw, uint8(i))
	}
}

// GetSpritesForScanline selects, priority-sorts (by X then OAM index),
// and caps at MaxSpritesPerLine the sprites visible on scanline.
func (sr *SpriteRenderer) GetSpritesForScanline(scanline uint8) []*Sprite {
	sr.spriteCount = 0
	for i := range sr.visibleSprites {
		sr.visibleSprites[i] = nil
	}

	height := sr.currentSpriteHeight()
	var candidates []*Sprite
	for _, sprite := range sr.sprites {
		if sprite != nil && sprite.IsVisible(scanline, height) {
			candidates = append(candidates, sprite)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].X == candidates[j].X {
			return candidates[i].OAMIndex < candidates[j].OAMIndex
		}
		return candidates[i].X < candidates[j].X
	})

	if len(candidates) > MaxSpritesPerLine {
		candidates = candidates[:MaxSpritesPerLine]
	}
	for i, sprite := range candidates {
		sr.visibleSprites[i] = sprite
		sr.spriteCount++
	}
	return candidates
}

// RenderSpriteScanline draws every sprite visible on scanline, back to
// front so earlier (higher-priority) sprites end up on top.
func (sr *SpriteRenderer) RenderSpriteScanline(scanline uint8) {
	if !sr.ppu.GetSpritesEnabled() {
		return
	}
	sprites := sr.GetSpritesForScanline(scanline)
	for i := len(sprites) - 1; i >= 0; i-- {
		sr.drawSprite(sprites[i], scanline)
	}
}

func (sr *SpriteRenderer) spriteTileBytes(sprite *Sprite, row int) (lo, hi uint8) {
	addr := uint16(0x8000 + uint16(sprite.TileID)*16 + uint16(row)*2)
	return sr.vramInterface.ReadVRAM(addr), sr.vramInterface.ReadVRAM(addr + 1)
}

func (sr *SpriteRenderer) drawSprite(sprite *Sprite, scanline uint8) {
	height := sr.currentSpriteHeight()
	row := sprite.GetTileRow(scanline, height)
	if row < 0 || row >= height {
		return
	}

	tile := *sprite
	if height == SpriteHeight8x16 {
		if row >= 8 {
			tile.TileID |= 0x01
			row -= 8
		} else {
			tile.TileID &= 0xFE
		}
	}
	lo, hi := sr.spriteTileBytes(&tile, row)

	for px := 0; px < SpriteWidth; px++ {
		screenX := sprite.ScreenX + px
		if screenX < 0 || screenX >= ScreenWidth {
			continue
		}

		bit := px
		if sprite.FlipX {
			bit = 7 - px
		}
		shift := uint(7 - bit)
		color := (hi>>shift)&1<<1 | (lo>>shift)&1
		if color == 0 {
			continue
		}

		if sr.spritePixelWins(sprite, screenX, int(scanline)) {
			sr.ppu.SetPixel(screenX, int(scanline), sr.paletteFor(sprite.PaletteNum, color))
		}
	}
}

// spritePixelWins applies sprite-vs-background priority: a behind-BG
// sprite only shows through background color 0.
func (sr *SpriteRenderer) spritePixelWins(sprite *Sprite, x, y int) bool {
	if !sprite.Priority {
		return true
	}
	return sr.ppu.GetPixel(x, y) == ColorWhite
}

func (sr *SpriteRenderer) paletteFor(paletteNum uint8, color uint8) uint8 {
	reg := sr.ppu.OBP1
	if paletteNum == 0 {
		reg = sr.ppu.OBP0
	}
	if color > 3 {
		return ColorWhite
	}
	return (reg >> (uint(color) * 2)) & 0x03
}
