// Package memory implements the Game Boy's 16-bit memory bus: the single
// address space every other component is wired onto, and the address
// decoder that routes each access to ROM/RAM banks, video memory, the
// peripheral registers, or a fixed fallback value.
package memory

import (
	"dmgcore/internal/apu"
	"dmgcore/internal/cartridge"
	"dmgcore/internal/dma"
	"dmgcore/internal/interrupt"
	"dmgcore/internal/joypad"
	"dmgcore/internal/ppu"
	"dmgcore/internal/serial"
	"dmgcore/internal/timer"
)

// Memory region boundaries. Together they cover the full 16-bit address
// space with no gaps and no overlap (see TestMemoryRegionBoundaries).
const (
	ROMBank0Start uint16 = 0x0000
	ROMBank0End   uint16 = 0x3FFF
	ROMBank0Size  uint32 = 0x4000

	ROMBank1Start uint16 = 0x4000
	ROMBank1End   uint16 = 0x7FFF
	ROMBank1Size  uint32 = 0x4000

	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0x9FFF
	VRAMSize  uint32 = 0x2000

	ExternalRAMStart uint16 = 0xA000
	ExternalRAMEnd   uint16 = 0xBFFF
	ExternalRAMSize  uint32 = 0x2000

	WRAMStart uint16 = 0xC000
	WRAMEnd   uint16 = 0xDFFF
	WRAMSize  uint32 = 0x2000

	EchoRAMStart uint16 = 0xE000
	EchoRAMEnd   uint16 = 0xFDFF

	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F
	OAMSize  uint32 = 0xA0

	ProhibitedStart uint16 = 0xFEA0
	ProhibitedEnd   uint16 = 0xFEFF

	IORegistersStart uint16 = 0xFF00
	IORegistersEnd   uint16 = 0xFF7F
	IORegistersSize  uint32 = 0x80

	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFE
	HRAMSize  uint32 = 0x7F

	InterruptEnableRegister uint16 = 0xFFFF
)

// Individual I/O register addresses within the I/O region.
const (
	JoypadRegister            uint16 = 0xFF00
	SerialDataRegister        uint16 = 0xFF01
	SerialControlRegister     uint16 = 0xFF02
	DividerRegister           uint16 = 0xFF04
	TimerCounterRegister      uint16 = 0xFF05
	TimerModuloRegister       uint16 = 0xFF06
	TimerControlRegister      uint16 = 0xFF07
	InterruptFlagRegister     uint16 = 0xFF0F
	LCDControlRegister        uint16 = 0xFF40
	LCDStatusRegister         uint16 = 0xFF41
	ScrollYRegister           uint16 = 0xFF42
	ScrollXRegister           uint16 = 0xFF43
	LYRegister                uint16 = 0xFF44
	LYCompareRegister         uint16 = 0xFF45
	DMARegister               uint16 = 0xFF46
	BackgroundPaletteRegister uint16 = 0xFF47
	ObjectPalette0Register    uint16 = 0xFF48
	ObjectPalette1Register    uint16 = 0xFF49
	WindowYRegister           uint16 = 0xFF4A
	WindowXRegister           uint16 = 0xFF4B
)

// MemoryInterface is the bus surface every CPU-facing consumer uses.
// Defined locally (rather than imported from a component package) so the
// component packages never need to import memory, avoiding import cycles.
type MemoryInterface interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, value uint8)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, value uint16)
}

// modeSource reports the PPU's current mode, used to gate VRAM/OAM access
// during Drawing and OAM Scan. Kept as a narrow interface (rather than the
// concrete *ppu.PPU type) so the bus only depends on what it needs.
type modeSource interface {
	GetCurrentMode() ppu.PPUMode
}

// MMU is the Game Boy memory bus. It owns the internal RAM regions
// directly and routes ROM/external-RAM accesses to the cartridge's MBC,
// video memory accesses to the PPU, and register accesses to the
// corresponding peripheral.
type MMU struct {
	memory [0x10000]uint8 // internal RAM regions (WRAM, HRAM) and fallback storage

	mbc                  cartridge.MBC
	interruptController *interrupt.InterruptController
	joypad               *joypad.Joypad
	timer                *timer.Timer
	serial               *serial.Serial
	apu                  *apu.APU
	ppuInstance          ppu.VRAMInterface
	ppuModeSource        modeSource
	dmaController        *dma.DMAController
}

// NewMMU creates a memory bus wired to the given cartridge controller,
// interrupt controller, and joypad. Timer, serial, and APU are created
// internally; PPU is connected later via SetPPU since it is constructed
// after the bus in the usual wiring order.
func NewMMU(mbc cartridge.MBC, interruptController *interrupt.InterruptController, joypadInstance *joypad.Joypad) *MMU {
	return &MMU{
		mbc:                  mbc,
		interruptController:  interruptController,
		joypad:               joypadInstance,
		timer:                timer.NewTimer(),
		serial:               serial.NewSerial(),
		apu:                  apu.NewAPU(),
		dmaController:        dma.NewDMAController(),
	}
}

// SetPPU connects a PPU to the bus for VRAM, OAM, and LCD register routing.
func (m *MMU) SetPPU(p *ppu.PPU) {
	m.ppuInstance = p
	m.ppuModeSource = p
}

// GetDMAController returns the bus's DMA controller.
func (m *MMU) GetDMAController() *dma.DMAController {
	return m.dmaController
}

// GetTimer returns the bus's timer.
func (m *MMU) GetTimer() *timer.Timer {
	return m.timer
}

// GetSerial returns the bus's serial port.
func (m *MMU) GetSerial() *serial.Serial {
	return m.serial
}

// GetAPU returns the bus's APU.
func (m *MMU) GetAPU() *apu.APU {
	return m.apu
}

// UpdateDMA advances the DMA controller and the timer/serial/joypad
// peripherals by the given number of T-cycles, and raises any interrupts
// they now have pending. Returns true if a DMA transfer completed.
func (m *MMU) UpdateDMA(cycles uint8) bool {
	completed := m.dmaController.Update(cycles, m)

	m.timer.Update(cycles)
	if m.timer.HasTimerInterrupt() {
		m.interruptController.RequestInterrupt(interrupt.InterruptTimer)
		m.timer.ClearTimerInterrupt()
	}

	m.serial.Update(cycles)
	if m.serial.HasSerialInterrupt() {
		m.interruptController.RequestInterrupt(interrupt.InterruptSerial)
		m.serial.ClearSerialInterrupt()
	}

	if m.joypad.HasJoypadInterrupt() {
		m.interruptController.RequestInterrupt(interrupt.InterruptJoypad)
		m.joypad.ClearJoypadInterrupt()
	}

	return completed
}

// WriteByteForDMA writes to OAM during a DMA transfer, bypassing the PPU
// mode restrictions that block ordinary CPU writes (real OAM DMA hardware
// is not gated by the PPU's current mode).
func (m *MMU) WriteByteForDMA(address uint16, value uint8) {
	if address >= OAMStart && address <= OAMEnd {
		if m.ppuInstance != nil {
			m.ppuInstance.WriteOAM(address, value)
			return
		}
		m.memory[address] = value
		return
	}
	m.WriteByte(address, value)
}

// ReadByte reads a single byte from the address space.
func (m *MMU) ReadByte(address uint16) uint8 {
	if !m.dmaController.CanCPUAccessMemory(address) {
		return 0xFF
	}

	switch {
	case address <= ROMBank1End:
		return m.mbc.ReadByte(address)

	case address >= VRAMStart && address <= VRAMEnd:
		if m.ppuModeSource != nil && m.ppuModeSource.GetCurrentMode() == ppu.ModeDrawing {
			return 0xFF
		}
		if m.ppuInstance != nil {
			return m.ppuInstance.ReadVRAM(address)
		}
		return m.memory[address]

	case address >= ExternalRAMStart && address <= ExternalRAMEnd:
		return m.mbc.ReadByte(address)

	case address >= WRAMStart && address <= WRAMEnd:
		return m.memory[address]

	case address >= EchoRAMStart && address <= EchoRAMEnd:
		return m.memory[address-0x2000]

	case address >= OAMStart && address <= OAMEnd:
		if m.ppuModeSource != nil {
			mode := m.ppuModeSource.GetCurrentMode()
			if mode == ppu.ModeDrawing || mode == ppu.ModeOAMScan {
				return 0xFF
			}
		}
		if m.ppuInstance != nil {
			return m.ppuInstance.ReadOAM(address)
		}
		return m.memory[address]

	case address >= ProhibitedStart && address <= ProhibitedEnd:
		return 0xFF

	case address == DMARegister:
		return 0xFF // write-only

	case address >= IORegistersStart && address <= IORegistersEnd:
		return m.readIORegister(address)

	case address >= HRAMStart && address <= HRAMEnd:
		return m.memory[address]

	case address == InterruptEnableRegister:
		return m.interruptController.GetInterruptEnable()

	default:
		return 0xFF
	}
}

// WriteByte writes a single byte to the address space.
func (m *MMU) WriteByte(address uint16, value uint8) {
	if !m.dmaController.CanCPUAccessMemory(address) {
		return
	}

	switch {
	case address <= ROMBank1End:
		m.mbc.WriteByte(address, value) // bank-select / RAM-enable writes

	case address >= VRAMStart && address <= VRAMEnd:
		if m.ppuModeSource != nil && m.ppuModeSource.GetCurrentMode() == ppu.ModeDrawing {
			return
		}
		if m.ppuInstance != nil {
			m.ppuInstance.WriteVRAM(address, value)
			return
		}
		m.memory[address] = value

	case address >= ExternalRAMStart && address <= ExternalRAMEnd:
		m.mbc.WriteByte(address, value)

	case address >= WRAMStart && address <= WRAMEnd:
		m.memory[address] = value

	case address >= EchoRAMStart && address <= EchoRAMEnd:
		m.memory[address-0x2000] = value

	case address >= OAMStart && address <= OAMEnd:
		if m.ppuModeSource != nil {
			mode := m.ppuModeSource.GetCurrentMode()
			if mode == ppu.ModeDrawing || mode == ppu.ModeOAMScan {
				return
			}
		}
		if m.ppuInstance != nil {
			m.ppuInstance.WriteOAM(address, value)
			return
		}
		m.memory[address] = value

	case address >= ProhibitedStart && address <= ProhibitedEnd:
		// writes ignored

	case address == DMARegister:
		m.dmaController.StartTransfer(value)

	case address >= IORegistersStart && address <= IORegistersEnd:
		m.writeIORegister(address, value)

	case address >= HRAMStart && address <= HRAMEnd:
		m.memory[address] = value

	case address == InterruptEnableRegister:
		m.interruptController.SetInterruptEnable(value)
	}
}

// readIORegister dispatches a read within 0xFF00-0xFF7F to the owning
// peripheral. An address with no owning peripheral falls back to whatever
// was last written to internal memory at that address.
func (m *MMU) readIORegister(address uint16) uint8 {
	switch {
	case address == JoypadRegister:
		return m.joypad.ReadRegister(address)
	case serial.IsSerialRegister(address):
		return m.serial.ReadRegister(address)
	case timer.IsTimerRegister(address):
		return m.timer.ReadRegister(address)
	case address == InterruptFlagRegister:
		return m.interruptController.GetInterruptFlag()
	case address >= 0xFF10 && address <= 0xFF3F:
		return m.apu.ReadByte(address)
	case address == LCDControlRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetLCDC()
	case address == LCDStatusRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetSTAT()
	case address == ScrollYRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetSCY()
	case address == ScrollXRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetSCX()
	case address == LYRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetLY()
	case address == LYCompareRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetLYC()
	case address == BackgroundPaletteRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetBGP()
	case address == ObjectPalette0Register && m.ppuRegs() != nil:
		return m.ppuRegs().GetOBP0()
	case address == ObjectPalette1Register && m.ppuRegs() != nil:
		return m.ppuRegs().GetOBP1()
	case address == WindowYRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetWY()
	case address == WindowXRegister && m.ppuRegs() != nil:
		return m.ppuRegs().GetWX()
	default:
		return m.memory[address]
	}
}

func (m *MMU) writeIORegister(address uint16, value uint8) {
	switch {
	case address == JoypadRegister:
		m.joypad.WriteRegister(address, value)
	case serial.IsSerialRegister(address):
		m.serial.WriteRegister(address, value)
	case timer.IsTimerRegister(address):
		m.timer.WriteRegister(address, value)
	case address == InterruptFlagRegister:
		m.interruptController.SetInterruptFlag(value)
	case address >= 0xFF10 && address <= 0xFF3F:
		m.apu.WriteByte(address, value)
	case address == LCDControlRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetLCDC(value)
	case address == LCDStatusRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetSTAT(value)
	case address == ScrollYRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetSCY(value)
	case address == ScrollXRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetSCX(value)
	case address == LYRegister:
		// LY is read-only on real hardware; writes are ignored
	case address == LYCompareRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetLYC(value)
	case address == BackgroundPaletteRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetBGP(value)
	case address == ObjectPalette0Register && m.ppuRegs() != nil:
		m.ppuRegs().SetOBP0(value)
	case address == ObjectPalette1Register && m.ppuRegs() != nil:
		m.ppuRegs().SetOBP1(value)
	case address == WindowYRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetWY(value)
	case address == WindowXRegister && m.ppuRegs() != nil:
		m.ppuRegs().SetWX(value)
	default:
		m.memory[address] = value
	}
}

// ppuRegs returns the connected PPU as its concrete type for LCD register
// access, or nil if none is connected. LCD registers live on *ppu.PPU
// itself rather than the narrower VRAMInterface SetPPU also satisfies.
func (m *MMU) ppuRegs() *ppu.PPU {
	p, _ := m.ppuInstance.(*ppu.PPU)
	return p
}

// ReadWord reads a little-endian 16-bit word.
func (m *MMU) ReadWord(address uint16) uint16 {
	low := uint16(m.ReadByte(address))
	high := uint16(m.ReadByte(address + 1))
	return (high << 8) | low
}

// WriteWord writes a little-endian 16-bit word.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.WriteByte(address, uint8(value&0xFF))
	m.WriteByte(address+1, uint8(value>>8))
}

// isValidAddress reports whether address falls outside the prohibited
// region (0xFEA0-0xFEFF is the only gap in the address space).
func (m *MMU) isValidAddress(address uint16) bool {
	return address < ProhibitedStart || address > ProhibitedEnd
}

// getMemoryRegion returns a human-readable name for the region address
// falls in, used for debugging and diagnostics.
func (m *MMU) getMemoryRegion(address uint16) string {
	switch {
	case address <= ROMBank0End:
		return "ROM Bank 0"
	case address <= ROMBank1End:
		return "ROM Bank 1+"
	case address <= VRAMEnd:
		return "VRAM"
	case address <= ExternalRAMEnd:
		return "External RAM"
	case address <= WRAMEnd:
		return "WRAM"
	case address <= EchoRAMEnd:
		return "Echo RAM"
	case address <= OAMEnd:
		return "OAM"
	case address <= ProhibitedEnd:
		return "Prohibited"
	case address <= IORegistersEnd:
		return "I/O Registers"
	case address <= HRAMEnd:
		return "HRAM"
	default:
		return "Interrupt Enable"
	}
}
