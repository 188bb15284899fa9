package display

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// glyphs maps each Game Boy color index (ColorWhite..ColorBlack) to the
// terminal character used to represent it, lightest to darkest.
var glyphs = [4]rune{' ', '░', '▒', '█'}

// ConsoleDisplay renders frames as ASCII art, for running and debugging the
// emulator without a graphics backend.
type ConsoleDisplay struct {
	config     DisplayConfig
	frameCount uint64
	shouldQuit bool
}

// NewConsoleDisplay returns an uninitialized console backend.
func NewConsoleDisplay() *ConsoleDisplay {
	return &ConsoleDisplay{}
}

// Initialize validates config and stores it.
func (c *ConsoleDisplay) Initialize(config DisplayConfig) error {
	if err := ValidateConfig(config); err != nil {
		return fmt.Errorf("console display: %w", err)
	}
	c.config = config
	c.frameCount = 0
	c.shouldQuit = false
	fmt.Printf("Console Display initialized: %dx%d, scale: %dx\n", GameBoyWidth, GameBoyHeight, config.ScaleFactor)
	return nil
}

// Present clears the terminal and draws framebuffer as scaled ASCII art.
func (c *ConsoleDisplay) Present(framebuffer *[GameBoyHeight][GameBoyWidth]uint8) error {
	c.frameCount++
	c.clearScreen()

	border := strings.Repeat("-", GameBoyWidth*c.config.ScaleFactor)
	fmt.Printf("Frame #%d | %dx%d | Scale: %dx\n", c.frameCount, GameBoyWidth, GameBoyHeight, c.config.ScaleFactor)
	fmt.Println("+" + border + "+")

	for y := 0; y < GameBoyHeight; y++ {
		row := c.renderRow(framebuffer, y)
		for sy := 0; sy < c.config.ScaleFactor; sy++ {
			fmt.Println("|" + row + "|")
		}
	}

	fmt.Println("+" + border + "+")
	fmt.Println("Controls: Press Ctrl+C to quit")
	return nil
}

func (c *ConsoleDisplay) renderRow(framebuffer *[GameBoyHeight][GameBoyWidth]uint8, y int) string {
	var b strings.Builder
	for x := 0; x < GameBoyWidth; x++ {
		color := framebuffer[y][x]
		if color > 3 {
			color = 3
		}
		for sx := 0; sx < c.config.ScaleFactor; sx++ {
			b.WriteRune(glyphs[color])
		}
	}
	return b.String()
}

// SetTitle prints the title since a terminal window has no title bar to update.
func (c *ConsoleDisplay) SetTitle(title string) error {
	fmt.Printf("Title: %s\n", title)
	return nil
}

// ShouldClose reports the quit flag (there is no window manager to ask).
func (c *ConsoleDisplay) ShouldClose() bool {
	return c.shouldQuit
}

// PollEvents is a no-op; console input arrives through normal signal handling.
func (c *ConsoleDisplay) PollEvents() {}

// Cleanup prints a closing message.
func (c *ConsoleDisplay) Cleanup() error {
	fmt.Println("\nConsole display cleanup complete.")
	return nil
}

func (c *ConsoleDisplay) clearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}

func repeatChar(char string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(char, count)
}

// CreateTestPattern builds a checkerboard-with-gradient pattern for
// exercising a display backend without a running emulator.
func CreateTestPattern() [GameBoyHeight][GameBoyWidth]uint8 {
	var fb [GameBoyHeight][GameBoyWidth]uint8
	for y := 0; y < GameBoyHeight; y++ {
		for x := 0; x < GameBoyWidth; x++ {
			var color uint8
			if (x/8+y/8)%2 == 0 {
				color = uint8((x + y) % 4)
			} else {
				color = uint8((x - y + 400) % 4)
			}
			if color > 3 {
				color = 3
			}
			fb[y][x] = color
		}
	}
	return fb
}

// CreateSolidColorPattern fills every pixel with a single color, clamping
// out-of-range input to black.
func CreateSolidColorPattern(color uint8) [GameBoyHeight][GameBoyWidth]uint8 {
	if color > 3 {
		color = 3
	}
	var fb [GameBoyHeight][GameBoyWidth]uint8
	for y := range fb {
		for x := range fb[y] {
			fb[y][x] = color
		}
	}
	return fb
}
