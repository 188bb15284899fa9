package ppu

// Tile geometry and storage format: each tile is 8x8 pixels, 2 bits per
// pixel, packed as 16 bytes (two bit-planes per row) the way the DMG PPU
// stores them in VRAM.
const (
	TileWidth  = 8
	TileHeight = 8
	TileSize   = 16

	MaxTileIndex = 255
	MaxTiles     = 256

	TilePatternTable0Start = 0x8000
	TilePatternTable0End   = 0x8FFF
	TilePatternTable1Start = 0x8800
	TilePatternTable1End   = 0x97FF

	BackgroundMap0Start = 0x9800
	BackgroundMap0End   = 0x9BFF
	BackgroundMap1Start = 0x9C00
	BackgroundMap1End   = 0x9FFF

	TileMapWidth  = 32
	TileMapHeight = 32
	TileMapSize   = TileMapWidth * TileMapHeight

	ScreenTilesWidth  = 20
	ScreenTilesHeight = 18
)

// Tile is a decoded 8x8 grid of 2-bit shade indices.
type Tile struct {
	Pixels [TileHeight][TileWidth]uint8
}

// TileData is a tile's raw 2bpp VRAM encoding.
type TileData [TileSize]uint8

// NewTile returns an all-transparent tile.
func NewTile() *Tile {
	return &Tile{}
}

// NewTileFromData decodes data into a new Tile.
func NewTileFromData(data TileData) *Tile {
	t := NewTile()
	t.LoadFromData(data)
	return t
}

func inBounds(x, y int) bool {
	return x >= 0 && x < TileWidth && y >= 0 && y < TileHeight
}

// GetPixel returns the shade at (x, y), or 0 if out of bounds.
func (t *Tile) GetPixel(x, y int) uint8 {
	if !inBounds(x, y) {
		return 0
	}
	return t.Pixels[y][x]
}

// SetPixel writes a shade (clamped to 0-3) at (x, y); out-of-bounds
// coordinates are ignored.
func (t *Tile) SetPixel(x, y int, color uint8) {
	if !inBounds(x, y) {
		return
	}
	t.Pixels[y][x] = clampShade(color)
}

func (t *Tile) forEachPixel(f func(x, y int)) {
	for y := 0; y < TileHeight; y++ {
		for x := 0; x < TileWidth; x++ {
			f(x, y)
		}
	}
}

// Clear fills every pixel with the given shade (clamped to 0-3).
func (t *Tile) Clear(color uint8) {
	c := clampShade(color)
	t.forEachPixel(func(x, y int) { t.Pixels[y][x] = c })
}

// IsEmpty reports whether every pixel is shade 0.
func (t *Tile) IsEmpty() bool {
	empty := true
	t.forEachPixel(func(x, y int) {
		if t.Pixels[y][x] != 0 {
			empty = false
		}
	})
	return empty
}

// Copy returns an independent duplicate of the tile.
func (t *Tile) Copy() *Tile {
	dup := NewTile()
	dup.Pixels = t.Pixels
	return dup
}

// LoadFromData decodes a 2bpp buffer into the tile: each row is two
// bytes (low-plane, high-plane), each pixel's shade is the low-plane bit
// plus the high-plane bit doubled, bit 7 is the leftmost pixel.
func (t *Tile) LoadFromData(data TileData) {
	for row := 0; row < TileHeight; row++ {
		lo, hi := data[row*2], data[row*2+1]
		for col := 0; col < TileWidth; col++ {
			shift := uint(7 - col)
			t.Pixels[row][col] = (lo>>shift)&1 | ((hi>>shift)&1)<<1
		}
	}
}

// ToData re-encodes the tile's pixels back into 2bpp form.
func (t *Tile) ToData() TileData {
	var data TileData
	for row := 0; row < TileHeight; row++ {
		var lo, hi uint8
		for col := 0; col < TileWidth; col++ {
			shift := uint(7 - col)
			color := t.Pixels[row][col]
			lo |= (color & 1) << shift
			hi |= ((color >> 1) & 1) << shift
		}
		data[row*2], data[row*2+1] = lo, hi
	}
	return data
}

// FlipHorizontal returns a copy mirrored left-right.
func (t *Tile) FlipHorizontal() *Tile {
	flipped := NewTile()
	t.forEachPixel(func(x, y int) {
		flipped.Pixels[y][x] = t.Pixels[y][TileWidth-1-x]
	})
	return flipped
}

// FlipVertical returns a copy mirrored top-bottom.
func (t *Tile) FlipVertical() *Tile {
	flipped := NewTile()
	t.forEachPixel(func(x, y int) {
		flipped.Pixels[y][x] = t.Pixels[TileHeight-1-y][x]
	})
	return flipped
}

// FlipBoth returns a copy rotated 180 degrees.
func (t *Tile) FlipBoth() *Tile {
	flipped := NewTile()
	t.forEachPixel(func(x, y int) {
		flipped.Pixels[y][x] = t.Pixels[TileHeight-1-y][TileWidth-1-x]
	})
	return flipped
}

var glyphs = [4]rune{' ', '░', '▒', '█'}

// String renders the tile as block-shaded ASCII art.
func (t *Tile) String() string {
	result := "Tile 8x8:\n"
	for row := 0; row < TileHeight; row++ {
		for col := 0; col < TileWidth; col++ {
			result += string(glyphs[clampShade(t.Pixels[row][col])])
		}
		result += "\n"
	}
	return result
}

// GetTileAddress returns the VRAM address of tile index under either the
// $8000 (unsigned) or $8800 (signed, based around $9000) addressing mode.
func GetTileAddress(index uint8, useSignedMode bool) uint16 {
	if useSignedMode {
		return uint16(0x9000 + int(int8(index))*TileSize)
	}
	return TilePatternTable0Start + uint16(index)*TileSize
}

// GetTileIndexFromAddress is the inverse of GetTileAddress: given a VRAM
// address it reports the tile index and which addressing mode produced it.
func GetTileIndexFromAddress(address uint16) (uint8, bool) {
	switch {
	case address >= TilePatternTable0Start && address <= TilePatternTable0End:
		return uint8((address - TilePatternTable0Start) / TileSize), false
	case address >= TilePatternTable1Start && address <= TilePatternTable1End:
		return uint8(int16(address-0x9000) / TileSize), true
	default:
		return 0, false
	}
}

// IsValidTileAddress reports whether address falls in either tile
// pattern table.
func IsValidTileAddress(address uint16) bool {
	return (address >= TilePatternTable0Start && address <= TilePatternTable0End) ||
		(address >= TilePatternTable1Start && address <= TilePatternTable1End)
}

// GetTileMapAddress returns the VRAM address of the tile-map entry at
// (x, y) in map 0 ($9800) or map 1 ($9C00).
func GetTileMapAddress(x, y int, mapSelect bool) uint16 {
	if x < 0 || x >= TileMapWidth || y < 0 || y >= TileMapHeight {
		return 0
	}
	base := uint16(BackgroundMap0Start)
	if mapSelect {
		base = BackgroundMap1Start
	}
	return base + uint16(y*TileMapWidth+x)
}

// IsValidTileMapAddress reports whether address falls in either
// background tile map.
func IsValidTileMapAddress(address uint16) bool {
	return (address >= BackgroundMap0Start && address <= BackgroundMap0End) ||
		(address >= BackgroundMap1Start && address <= BackgroundMap1End)
}

// CreateTestTile builds one of a handful of canned patterns (solid,
// checkerboard, gradient, border) for exercising rendering without ROM data.
func CreateTestTile(pattern uint8) *Tile {
	tile := NewTile()
	switch pattern {
	case 0:
		tile.Clear(0)
	case 1:
		tile.Clear(3)
	case 2:
		tile.forEachPixel(func(x, y int) {
			if (x+y)%2 == 0 {
				tile.Pixels[y][x] = 0
			} else {
				tile.Pixels[y][x] = 3
			}
		})
	case 3:
		tile.forEachPixel(func(x, y int) {
			tile.Pixels[y][x] = uint8((x + y) % 4)
		})
	case 4:
		tile.forEachPixel(func(x, y int) {
			if x == 0 || x == TileWidth-1 || y == 0 || y == TileHeight-1 {
				tile.Pixels[y][x] = 3
			} else {
				tile.Pixels[y][x] = 0
			}
		})
	default:
		tile.Clear(0)
	}
	return tile
}

// AnalyzeTile reports per-shade pixel counts and emptiness, for debugging.
func AnalyzeTile(tile *Tile) map[string]interface{} {
	var counts [4]int
	tile.forEachPixel(func(x, y int) {
		if c := tile.Pixels[y][x]; c <= 3 {
			counts[c]++
		}
	})
	return map[string]interface{}{
		"isEmpty":     tile.IsEmpty(),
		"color0Count": counts[0],
		"color1Count": counts[1],
		"color2Count": counts[2],
		"color3Count": counts[3],
		"totalPixels": TileWidth * TileHeight,
	}
}

// CompareTiles reports whether two tiles hold identical pixel data.
func CompareTiles(tile1, tile2 *Tile) bool {
	return tile1.Pixels == tile2.Pixels
}

// CreateTileFromPattern builds a tile from an ASCII-art string, one
// character per pixel (rows separated by newlines): ' '=0, '.'=1, 'o'=2,
// '#'=3, anything else=0.
func CreateTileFromPattern(pattern string) *Tile {
	tile := NewTile()
	i := 0
	for _, char := range pattern {
		if char == '\n' || char == '\r' {
			continue
		}
		if i >= TileWidth*TileHeight {
			break
		}
		var color uint8
		switch char {
		case ' ':
			color = 0
		case '.':
			color = 1
		case 'o':
			color = 2
		case '#':
			color = 3
		}
		tile.SetPixel(i%TileWidth, i/TileWidth, color)
		i++
	}
	return tile
}
