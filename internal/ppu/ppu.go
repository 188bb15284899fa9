// Package ppu implements the Game Boy Picture Processing Unit (PPU)
// for graphics rendering, including background, window, and sprite systems.
//
// The Game Boy PPU renders a 160x144 pixel display with 4-color grayscale
// graphics using a tile-based system with sprites and scrolling backgrounds.
package ppu

// Game Boy display constants
const (
	// Display dimensions
	ScreenWidth  = 160 // Visible pixels per scanline
	ScreenHeight = 144 // Visible scanlines per frame
	
	// Timing constants (cycles per operation)
	TotalScanlines    = 154 // Total scanlines including V-Blank (144 visible + 10 V-Blank)
	CyclesPerScanline = 456 // CPU cycles per scanline (456 T-cycles)
	CyclesPerFrame    = TotalScanlines * CyclesPerScanline // 70224 cycles per frame
	
	// PPU mode durations (in T-cycles)
	OAMScanCycles  = 80  // Mode 2: OAM scan duration (20 M-cycles × 4)
	DrawingCycles  = 172 // Mode 3: Drawing duration (43 M-cycles × 4, minimum)
	HBlankCycles   = 204 // Mode 0: H-Blank duration (51 M-cycles × 4, minimum)
	VBlankDuration = 4560 // Mode 1: V-Blank duration (10 scanlines × 456 T-cycles)
	
	// Color values (4-shade grayscale)
	ColorWhite     = 0 // Lightest shade
	ColorLightGray = 1 // Light gray
	ColorDarkGray  = 2 // Dark gray  
	ColorBlack     = 3 // Darkest shade
)

// PPUMode represents the current state of the PPU rendering pipeline
type PPUMode uint8

const (
	ModeHBlank  PPUMode = 0 // H-Blank: CPU can access VRAM/OAM
	ModeVBlank  PPUMode = 1 // V-Blank: Frame complete, CPU can access all video memory
	ModeOAMScan PPUMode = 2 // OAM Scan: PPU reading sprite data, CPU cannot access OAM
	ModeDrawing PPUMode = 3 // Drawing: PPU rendering pixels, CPU cannot access VRAM/OAM
)

// String returns human-readable PPU mode name
func (mode PPUMode) String() string {
	switch mode {
	case ModeHBlank:
		return "H-Blank"
	case ModeVBlank:
		return "V-Blank"  
	case ModeOAMScan:
		return "OAM Scan"
	case ModeDrawing:
		return "Drawing"
	default:
		return "Unknown"
	}
}

// PPU represents the Game Boy Picture Processing Unit
// Handles all graphics rendering including background, window, and sprites
type PPU struct {
	// Own VRAM/OAM storage, embedded so PPU itself satisfies VRAMInterface.
	// The emulator wires this back in: ppu.SetVRAMInterface(ppu).
	*VRAM

	// Display framebuffer - stores final pixel colors for each screen position
	// [row][column] format, values 0-3 representing 4-color grayscale
	Framebuffer [ScreenHeight][ScreenWidth]uint8
	
	// LCD Control Registers (memory-mapped I/O at 0xFF40-0xFF4B)
	LCDC uint8 // 0xFF40 - LCD Control register
	STAT uint8 // 0xFF41 - LCD Status register
	SCY  uint8 // 0xFF42 - Background scroll Y
	SCX  uint8 // 0xFF43 - Background scroll X
	LY   uint8 // 0xFF44 - Current scanline (0-153)
	LYC  uint8 // 0xFF45 - LY Compare register
	WY   uint8 // 0xFF4A - Window Y position
	WX   uint8 // 0xFF4B - Window X position
	
	// Palette Registers (color mapping)
	BGP  uint8 // 0xFF47 - Background palette data
	OBP0 uint8 // 0xFF48 - Object palette 0 data
	OBP1 uint8 // 0xFF49 - Object palette 1 data
	
	// Internal PPU state
	Mode         PPUMode // Current PPU mode (0-3)
	Cycles       uint16  // Cycle counter for current scanline
	FrameReady   bool    // True when a complete frame has been rendered
	LCDEnabled   bool    // LCD on/off state from LCDC bit 7

	// VRAM access interface (will be connected to MMU)
	vramInterface VRAMInterface

	// Scanline renderers, lazily bound once a VRAM interface is known
	// (NewPPU's own embedded *VRAM satisfies VRAMInterface, so these are
	// created eagerly against that).
	backgroundRenderer *BackgroundRenderer
	windowRenderer     *WindowRenderer
	spriteRenderer     *SpriteRenderer

	// Latched per-source interrupt requests raised during the most recent
	// Update call. Update's bool return only says "something fired"; these
	// tell the caller which IF bit(s) to actually set, so V-Blank and STAT
	// (itself mode-change or LYC-driven) are never conflated or dropped.
	pendingVBlankIRQ bool
	pendingSTATIRQ   bool
}

// VRAMInterface defines the interface for accessing video memory
// This allows the PPU to read tile data and tile maps from VRAM
type VRAMInterface interface {
	ReadVRAM(address uint16) uint8   // Read byte from VRAM (0x8000-0x9FFF)
	WriteVRAM(address uint16, value uint8) // Write byte to VRAM
	ReadOAM(address uint16) uint8    // Read byte from OAM (0xFE00-0xFE9F)
	WriteOAM(address uint16, value uint8)  // Write byte to OAM
}

// NewPPU creates a new PPU instance with default Game Boy state
func NewPPU() *PPU {
	ppu := &PPU{
		VRAM: NewVRAM(),

		// Initialize display to white (color 0)
		Framebuffer: [ScreenHeight][ScreenWidth]uint8{},
		
		// Initialize LCD registers to Game Boy power-on state
		LCDC: 0x91, // LCD enabled, background enabled, default tile maps
		STAT: 0x00, // Mode 0 (H-Blank), no interrupts enabled
		SCY:  0x00, // No initial scroll
		SCX:  0x00,
		LY:   0x00, // Start at scanline 0
		LYC:  0x00,
		WY:   0x00, // Window at top-left
		WX:   0x00,
		
		// Initialize palettes to identity mapping (0→0, 1→1, 2→2, 3→3)
		BGP:  0xE4, // 11100100 - standard Game Boy palette
		OBP0: 0xE4,
		OBP1: 0xE4,
		
		// Initialize PPU state
		Mode:       ModeOAMScan, // Start in OAM scan mode
		Cycles:     0,
		FrameReady: false,
		LCDEnabled: true, // LCD starts enabled (LCDC bit 7)
	}
	
	// Set STAT register mode bits to match initial mode
	ppu.updateSTATMode()

	ppu.bindRenderers(ppu.VRAM)
	ppu.spriteRenderer.ScanOAM()

	return ppu
}

// SetVRAMInterface connects the PPU to a VRAM access interface (typically
// the PPU's own embedded VRAM, routed back through the MMU) and rebinds
// the scanline renderers to read tile/sprite data through it.
func (ppu *PPU) SetVRAMInterface(vramInterface VRAMInterface) {
	ppu.vramInterface = vramInterface
	ppu.bindRenderers(vramInterface)
}

// bindRenderers (re)creates the background/window/sprite renderers
// against the given VRAM source, preserving window line-counter state
// across rebinds triggered by anything other than a fresh PPU.
func (ppu *PPU) bindRenderers(vram VRAMInterface) {
	ppu.backgroundRenderer = NewBackgroundRenderer(ppu, vram)
	ppu.spriteRenderer = NewSpriteRenderer(ppu, vram)

	var priorLine uint8
	var priorActive bool
	if ppu.windowRenderer != nil {
		priorLine = ppu.windowRenderer.windowLineCounter
		priorActive = ppu.windowRenderer.isWindowActive
	}
	ppu.windowRenderer = NewWindowRenderer(ppu, vram)
	ppu.windowRenderer.windowLineCounter = priorLine
	ppu.windowRenderer.isWindowActive = priorActive
}

// GetBackgroundRenderer exposes the bound background scanline renderer.
func (ppu *PPU) GetBackgroundRenderer() *BackgroundRenderer { return ppu.backgroundRenderer }

// GetWindowRenderer exposes the bound window scanline renderer.
func (ppu *PPU) GetWindowRenderer() *WindowRenderer { return ppu.windowRenderer }

// GetSpriteRenderer exposes the bound sprite scanline renderer.
func (ppu *PPU) GetSpriteRenderer() *SpriteRenderer { return ppu.spriteRenderer }

// Reset resets the PPU to initial Game Boy state
func (ppu *PPU) Reset() {
	// Clear framebuffer to white
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			ppu.Framebuffer[y][x] = ColorWhite
		}
	}
	
	// Reset registers to power-on state
	ppu.LCDC = 0x91
	ppu.STAT = 0x00
	ppu.SCY = 0x00
	ppu.SCX = 0x00
	ppu.LY = 0x00
	ppu.LYC = 0x00
	ppu.WY = 0x00
	ppu.WX = 0x00
	ppu.BGP = 0xE4
	ppu.OBP0 = 0xE4
	ppu.OBP1 = 0xE4
	
	// Reset internal state
	ppu.Mode = ModeOAMScan
	ppu.Cycles = 0
	ppu.FrameReady = false
	ppu.LCDEnabled = true
	ppu.pendingVBlankIRQ = false
	ppu.pendingSTATIRQ = false

	ppu.resetWindowIfPresent()
	if ppu.spriteRenderer != nil {
		ppu.spriteRenderer.ScanOAM()
	}
}

// IsFrameReady returns true if a complete frame has been rendered
// The caller should reset this flag after processing the frame
func (ppu *PPU) IsFrameReady() bool {
	return ppu.FrameReady
}

// ClearFrameReady resets the frame ready flag after the frame has been processed
func (ppu *PPU) ClearFrameReady() {
	ppu.FrameReady = false
}

// GetCurrentMode returns the current PPU mode for STAT register access
func (ppu *PPU) GetCurrentMode() PPUMode {
	return ppu.Mode
}

// GetCurrentScanline returns the current scanline (LY register value)
func (ppu *PPU) GetCurrentScanline() uint8 {
	return ppu.LY
}

// IsLCDEnabled returns true if the LCD is currently enabled (LCDC bit 7)
func (ppu *PPU) IsLCDEnabled() bool {
	return ppu.LCDEnabled
}

// Update advances the PPU state by the specified number of CPU cycles
// This should be called once per CPU instruction execution
// Returns true if any interrupts should be triggered
func (ppu *PPU) Update(cycles uint8) bool {
	// If LCD is disabled, don't update PPU timing
	if !ppu.LCDEnabled {
		return false
	}
	
	ppu.Cycles += uint16(cycles)
	interruptRequested := false

	// Handle PPU mode transitions based on current scanline and cycle count
	if ppu.LY < ScreenHeight {
		// Visible scanlines (0-143): OAM Scan → Drawing → H-Blank
		switch ppu.Mode {
		case ModeOAMScan:
			if ppu.Cycles >= OAMScanCycles {
				ppu.setMode(ModeDrawing)
				// Check for STAT interrupt on mode change
				if ppu.ShouldTriggerSTATInterrupt() {
					ppu.pendingSTATIRQ = true
					interruptRequested = true
				}
			}

		case ModeDrawing:
			if ppu.Cycles >= OAMScanCycles+DrawingCycles {
				ppu.renderScanline(ppu.LY)
				ppu.setMode(ModeHBlank)
				// Check for STAT interrupt on mode change
				if ppu.ShouldTriggerSTATInterrupt() {
					ppu.pendingSTATIRQ = true
					interruptRequested = true
				}
			}

		case ModeHBlank:
			if ppu.Cycles >= CyclesPerScanline {
				ppu.nextScanline()
				// Check for LYC=LY interrupt
				if ppu.updateLYCFlag() {
					ppu.pendingSTATIRQ = true
					interruptRequested = true
				}

				if ppu.LY == ScreenHeight {
					// Entering V-Blank
					ppu.setMode(ModeVBlank)
					ppu.FrameReady = true
					ppu.pendingVBlankIRQ = true // V-Blank interrupt (always triggered)
					interruptRequested = true
					// Also check for STAT V-Blank interrupt
					if ppu.ShouldTriggerSTATInterrupt() {
						ppu.pendingSTATIRQ = true
					}
				} else {
					// Next visible scanline
					ppu.setMode(ModeOAMScan)
					ppu.spriteRenderer.ScanOAM()
					// Check for STAT interrupt on mode change
					if ppu.ShouldTriggerSTATInterrupt() {
						ppu.pendingSTATIRQ = true
						interruptRequested = true
					}
				}
			}
		}
	} else {
		// V-Blank scanlines (144-153): V-Blank mode only
		if ppu.Cycles >= CyclesPerScanline {
			ppu.nextScanline()
			// Check for LYC=LY interrupt during V-Blank
			if ppu.updateLYCFlag() {
				ppu.pendingSTATIRQ = true
				interruptRequested = true
			}

			if ppu.LY == TotalScanlines {
				// Frame complete, restart at scanline 0
				ppu.LY = 0
				ppu.setMode(ModeOAMScan)
				ppu.spriteRenderer.ScanOAM()
				// Check for STAT interrupt on mode change
				if ppu.ShouldTriggerSTATInterrupt() {
					ppu.pendingSTATIRQ = true
					interruptRequested = true
				}
			}
		}
	}

	return interruptRequested
}

// ConsumeVBlankInterrupt reports whether V-Blank entry was latched since the
// last call and clears the latch. The emulator calls this once per step to
// decide whether to set IF bit 0; it never re-derives the condition itself.
func (ppu *PPU) ConsumeVBlankInterrupt() bool {
	fired := ppu.pendingVBlankIRQ
	ppu.pendingVBlankIRQ = false
	return fired
}

// ConsumeSTATInterrupt reports whether a STAT condition (mode change or
// LYC=LY) fired since the last call and clears the latch.
func (ppu *PPU) ConsumeSTATInterrupt() bool {
	fired := ppu.pendingSTATIRQ
	ppu.pendingSTATIRQ = false
	return fired
}

// setMode changes the current PPU mode and updates STAT register
func (ppu *PPU) setMode(newMode PPUMode) {
	ppu.Mode = newMode
	ppu.updateSTATMode()
}

// renderScanline draws the background, window, and sprite contributions
// to scanline in priority order (background first, window painted over
// it, sprites composited last against the sprite-vs-background priority
// rule), matching §4.3's per-scanline render-at-end-of-PIXEL_TRANSFER
// design.
func (ppu *PPU) renderScanline(scanline uint8) {
	ppu.backgroundRenderer.RenderBackgroundScanline(scanline)
	ppu.windowRenderer.RenderWindowScanline(scanline)
	ppu.spriteRenderer.RenderSpriteScanline(scanline)
}

// nextScanline advances to the next scanline and resets cycle counter
func (ppu *PPU) nextScanline() {
	ppu.Cycles = 0
	ppu.LY++
	
	// Check LYC=LY interrupt condition
	ppu.updateLYCFlag()
}

// GetPixel returns the color value (0-3) at the specified screen coordinates
// Returns ColorWhite if coordinates are out of bounds
func (ppu *PPU) GetPixel(x, y int) uint8 {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return ColorWhite
	}
	return ppu.Framebuffer[y][x]
}

// SetPixel sets the color value (0-3) at the specified screen coordinates
// Does nothing if coordinates are out of bounds
func (ppu *PPU) SetPixel(x, y int, color uint8) {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return
	}
	if color > ColorBlack {
		color = ColorBlack // Clamp to valid color range
	}
	ppu.Framebuffer[y][x] = color
}