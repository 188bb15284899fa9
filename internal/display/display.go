// Package display turns a PPU framebuffer into pixels on whatever graphics
// library the host chooses (SDL2, a terminal, a test double), handling the
// backend-agnostic concerns once: palette conversion, scale/VSync
// configuration validation, and frame pacing.
package display

import (
	"fmt"
	"time"
)

// Game Boy display geometry and the authentic DMG LCD refresh rate.
const (
	GameBoyWidth  = 160
	GameBoyHeight = 144

	TargetFPS = 59.7275

	ColorWhite     uint8 = 0
	ColorLightGray uint8 = 1
	ColorDarkGray  uint8 = 2
	ColorBlack     uint8 = 3
)

// ScalingMode selects the algorithm a backend uses to magnify pixels.
type ScalingMode int

const (
	ScaleNearest ScalingMode = iota
	ScaleLinear
)

// RGBColor is a 24-bit color.
type RGBColor struct {
	R, G, B uint8
}

// ColorPalette maps the four Game Boy shades to RGB.
type ColorPalette struct {
	White     RGBColor
	LightGray RGBColor
	DarkGray  RGBColor
	Black     RGBColor
}

// ConvertColor maps a Game Boy color index to its RGB value; any index
// outside 0-3 is treated as black rather than panicking, since a corrupt
// palette byte is recoverable.
func (p ColorPalette) ConvertColor(gbColor uint8) RGBColor {
	switch gbColor {
	case ColorWhite:
		return p.White
	case ColorLightGray:
		return p.LightGray
	case ColorDarkGray:
		return p.DarkGray
	default:
		return p.Black
	}
}

// DefaultPalette returns the classic Game Boy green tint.
func DefaultPalette() ColorPalette {
	return ColorPalette{
		White:     RGBColor{155, 188, 15},
		LightGray: RGBColor{139, 172, 15},
		DarkGray:  RGBColor{48, 98, 48},
		Black:     RGBColor{15, 56, 15},
	}
}

// GrayscalePalette returns a true monochrome palette.
func GrayscalePalette() ColorPalette {
	return ColorPalette{
		White:     RGBColor{255, 255, 255},
		LightGray: RGBColor{170, 170, 170},
		DarkGray:  RGBColor{85, 85, 85},
		Black:     RGBColor{0, 0, 0},
	}
}

// ConvertFramebuffer flattens a Game Boy framebuffer into row-major,
// 3-bytes-per-pixel RGB data for backends that want raw pixel bytes.
func ConvertFramebuffer(framebuffer *[GameBoyHeight][GameBoyWidth]uint8, palette ColorPalette) []uint8 {
	rgb := make([]uint8, 0, GameBoyWidth*GameBoyHeight*3)
	for y := 0; y < GameBoyHeight; y++ {
		for x := 0; x < GameBoyWidth; x++ {
			c := palette.ConvertColor(framebuffer[y][x])
			rgb = append(rgb, c.R, c.G, c.B)
		}
	}
	return rgb
}

// DisplayConfig configures a backend's scaling and sync behavior.
type DisplayConfig struct {
	ScaleFactor int
	ScalingMode ScalingMode
	Palette     ColorPalette
	VSync       bool
	ShowFPS     bool
}

// ValidateConfig rejects scale factors and scaling modes a backend
// couldn't reasonably honor.
func ValidateConfig(config DisplayConfig) error {
	if config.ScaleFactor < 1 || config.ScaleFactor > 8 {
		return fmt.Errorf("invalid scale factor: %d (must be 1-8)", config.ScaleFactor)
	}
	if config.ScalingMode != ScaleNearest && config.ScalingMode != ScaleLinear {
		return fmt.Errorf("invalid scaling mode: %d", config.ScalingMode)
	}
	return nil
}

// DisplayInterface is implemented by each concrete output backend.
type DisplayInterface interface {
	Initialize(config DisplayConfig) error
	Present(framebuffer *[GameBoyHeight][GameBoyWidth]uint8) error
	SetTitle(title string) error
	ShouldClose() bool
	PollEvents()
	Cleanup() error
}

// Display wraps a backend with shared VSync pacing so every backend gets
// frame-rate limiting without implementing it itself.
type Display struct {
	impl   DisplayInterface
	config DisplayConfig

	pacer framePacer
}

// framePacer sleeps out the remainder of a target frame interval when the
// backend presents faster than TargetFPS allows.
type framePacer struct {
	interval time.Duration
	last     time.Time
}

func newFramePacer(fps float64) framePacer {
	return framePacer{
		interval: time.Duration(float64(time.Second) / fps),
		last:     time.Now(),
	}
}

func (p *framePacer) wait() {
	if elapsed := time.Since(p.last); elapsed < p.interval {
		time.Sleep(p.interval - elapsed)
	}
	p.last = time.Now()
}

// NewDisplay wraps impl with VSync pacing targeted at the authentic Game
// Boy refresh rate.
func NewDisplay(impl DisplayInterface) *Display {
	return &Display{impl: impl, pacer: newFramePacer(TargetFPS)}
}

// Initialize configures the backend.
func (d *Display) Initialize(config DisplayConfig) error {
	d.config = config
	return d.impl.Initialize(config)
}

// Present paces to the configured frame rate (when VSync is on) and then
// hands the framebuffer to the backend.
func (d *Display) Present(framebuffer *[GameBoyHeight][GameBoyWidth]uint8) error {
	if d.config.VSync {
		d.pacer.wait()
	}
	return d.impl.Present(framebuffer)
}

// SetTitle updates the backend's window title.
func (d *Display) SetTitle(title string) error {
	return d.impl.SetTitle(title)
}

// ShouldClose reports whether the backend's window wants to close.
func (d *Display) ShouldClose() bool {
	return d.impl.ShouldClose()
}

// PollEvents processes backend input/window events.
func (d *Display) PollEvents() {
	d.impl.PollEvents()
}

// Cleanup releases backend resources.
func (d *Display) Cleanup() error {
	return d.impl.Cleanup()
}

// GetConfig returns the configuration passed to Initialize.
func (d *Display) GetConfig() DisplayConfig {
	return d.config
}

// SetFrameRate changes the VSync pacing target.
func (d *Display) SetFrameRate(fps float64) {
	d.pacer.interval = time.Duration(float64(time.Second) / fps)
}

// DisplayStats reports display-side performance counters.
type DisplayStats struct {
	FramesRendered   uint64
	AverageFrameTime time.Duration
	CurrentFPS       float64
}

// GetStats returns display performance statistics.
func (d *Display) GetStats() DisplayStats {
	return DisplayStats{
		AverageFrameTime: d.pacer.interval,
		CurrentFPS:       TargetFPS,
	}
}
