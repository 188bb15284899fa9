package cpu

import (
	"dmgcore/internal/cartridge"
	"dmgcore/internal/interrupt"
	"dmgcore/internal/joypad"
	"dmgcore/internal/memory"
)

// createTestMMU builds a standalone MMU backed by a blank 32KB ROM-only
// cartridge, for tests that only care about CPU/memory interaction and
// don't need a CPU's own interrupt controller wired in.
func createTestMMU() memory.MemoryInterface {
	mbc := cartridge.NewMBC0(make([]byte, 0x8000))
	return memory.NewMMU(mbc, interrupt.NewInterruptController(), joypad.NewJoypad())
}
