package ppu

// RGB is a 24-bit color sample produced by palette lookup.
type RGB struct {
	R, G, B uint8
}

// shade is a palette entry index, 0 (lightest) through 3 (darkest).
type shade = uint8

// GameBoyPalette reproduces the LCD's authentic green tint.
var GameBoyPalette = [4]RGB{
	{155, 188, 15},
	{139, 172, 15},
	{48, 98, 48},
	{15, 56, 15},
}

// GrayscalePalette is a true-monochrome alternative to GameBoyPalette.
var GrayscalePalette = [4]RGB{
	{255, 255, 255},
	{170, 170, 170},
	{85, 85, 85},
	{0, 0, 0},
}

func clampShade(s uint8) shade {
	if s > 3 {
		return 3
	}
	return s
}

// DecodePalette unpacks a palette register (BGP/OBP0/OBP1) into its four
// 2-bit shade assignments, one per source pixel value 0-3.
func DecodePalette(paletteValue uint8) [4]uint8 {
	var mapping [4]uint8
	for i := range mapping {
		mapping[i] = (paletteValue >> (uint(i) * 2)) & 0x03
	}
	return mapping
}

// ApplyPalette maps a raw tile/sprite pixel value through a decoded
// palette to the shade that should actually be drawn.
func ApplyPalette(pixelColor uint8, palette [4]uint8) uint8 {
	return palette[clampShade(pixelColor)]
}

// GetRGBColor resolves a shade index to RGB, picking the authentic Game
// Boy palette or a plain grayscale ramp.
func GetRGBColor(colorIndex uint8, useGameBoyColors bool) RGB {
	idx := clampShade(colorIndex)
	if useGameBoyColors {
		return GameBoyPalette[idx]
	}
	return GrayscalePalette[idx]
}

// GetBGColor runs a background pixel through BGP.
func (ppu *PPU) GetBGColor(pixelColor uint8) uint8 {
	return ApplyPalette(pixelColor, DecodePalette(ppu.BGP))
}

// GetSpriteColor runs a sprite pixel through OBP0 or OBP1.
// paletteNumber 0 selects OBP0; any other value selects OBP1.
func (ppu *PPU) GetSpriteColor(pixelColor uint8, paletteNumber uint8) uint8 {
	reg := ppu.OBP1
	if paletteNumber == 0 {
		reg = ppu.OBP0
	}
	return ApplyPalette(pixelColor, DecodePalette(reg))
}

// GetBGColorRGB resolves a raw background pixel straight to RGB.
func (ppu *PPU) GetBGColorRGB(pixelColor uint8, useGameBoyColors bool) RGB {
	return GetRGBColor(ppu.GetBGColor(pixelColor), useGameBoyColors)
}

// GetSpriteColorRGB resolves a raw sprite pixel straight to RGB.
func (ppu *PPU) GetSpriteColorRGB(pixelColor uint8, paletteNumber uint8, useGameBoyColors bool) RGB {
	return GetRGBColor(ppu.GetSpriteColor(pixelColor, paletteNumber), useGameBoyColors)
}

var shadeNames = [4]string{"White", "Light Gray", "Dark Gray", "Black"}

// AnalyzePalette renders a palette register as a comma-joined list of
// shade names, for logging/debugging.
func AnalyzePalette(paletteValue uint8) string {
	mapping := DecodePalette(paletteValue)
	out := "Palette: "
	for i, s := range mapping {
		if i > 0 {
			out += ", "
		}
		out += shadeNames[clampShade(s)]
	}
	return out
}

// GetPaletteInfo summarizes all three PPU palette registers.
func (ppu *PPU) GetPaletteInfo() map[string]string {
	return map[string]string{
		"BGP":  AnalyzePalette(ppu.BGP),
		"OBP0": AnalyzePalette(ppu.OBP0),
		"OBP1": AnalyzePalette(ppu.OBP1),
	}
}

// IsColorTransparent reports whether a sprite pixel value is the
// always-transparent index 0.
func IsColorTransparent(pixelColor uint8) bool {
	return pixelColor == 0
}
