package cpu

import (
	"dmgcore/internal/memory"
)

// Control and Interrupt Instructions for Game Boy CPU
// These instructions control CPU execution state and interrupt handling

// ================================
// CPU Control Instructions
// ================================

// HALT - Halt CPU until interrupt (0x76)
// Stops CPU execution until an interrupt occurs
// Used for power saving and waiting for events
// Flags affected: None
// Cycles: 4
// If IME is clear and a source is already both enabled and flagged, the CPU
// never actually stops: it falls into the HALT bug instead, where the next
// opcode fetch reads without advancing PC and so executes twice.
func (cpu *CPU) HALT(mmu memory.MemoryInterface) uint8 {
	if !cpu.InterruptsEnabled && cpu.InterruptController.HasPendingInterrupts() {
		cpu.HaltBug = true
	} else {
		cpu.Halted = true
	}
	return 4 // 4 cycles
}

// STOP - Stop CPU and LCD until button press (0x10)
// Stops CPU and LCD completely until a button is pressed
// Most aggressive power saving mode
// Flags affected: None  
// Cycles: 4
// Note: In real Game Boy, next byte is consumed (should be 0x00)
func (cpu *CPU) STOP(mmu memory.MemoryInterface) uint8 {
	cpu.Stopped = true
	cpu.Halted = true // STOP also halts the CPU
	return 4 // 4 cycles
}

// ================================
// Interrupt Control Instructions
// ================================

// Note: For a complete Game Boy emulator, interrupt handling would require:
// - Interrupt Master Enable (IME) flag
// - Interrupt Enable register (IE) at 0xFFFF
// - Interrupt Flag register (IF) at 0xFF0F  
// - 5 interrupt types: V-Blank, LCD STAT, Timer, Serial, Joypad
//
// For now, we implement the basic instructions that would control IME.

// DI - Disable Interrupts (0xF3)
// Disables interrupt handling by clearing the Interrupt Master Enable flag
// Prevents CPU from responding to interrupt requests
// Flags affected: None
// Cycles: 4
// Example usage: Critical sections where interrupts must not occur
func (cpu *CPU) DI(mmu memory.MemoryInterface) uint8 {
	cpu.InterruptsEnabled = false
	cpu.EIDelay = 0 // a DI right after EI cancels the pending enable
	return 4 // 4 cycles
}

// EI - Enable Interrupts (0xFB)
// Enables interrupt handling by setting the Interrupt Master Enable flag
// Allows CPU to respond to interrupt requests
// Flags affected: None
// Cycles: 4
// IME does not rise immediately: TickEIDelay (driven once per instruction
// boundary by the caller) raises it after the instruction following this one.
func (cpu *CPU) EI(mmu memory.MemoryInterface) uint8 {
	cpu.EIDelay = 2
	return 4 // 4 cycles
}

// TickEIDelay advances the EI delay countdown by one instruction boundary.
// Call once per Step, before fetching the next opcode. Returns true the
// instant IME rises, so callers can re-check for a newly unblocked interrupt.
func (cpu *CPU) TickEIDelay() bool {
	if cpu.EIDelay == 0 {
		return false
	}
	cpu.EIDelay--
	if cpu.EIDelay == 0 {
		cpu.InterruptsEnabled = true
		return true
	}
	return false
}

// ================================
// CPU State Query Functions
// ================================

// IsHalted returns true if CPU is in halt state
func (cpu *CPU) IsHalted() bool {
	return cpu.Halted
}

// IsStopped returns true if CPU is in stop state
func (cpu *CPU) IsStopped() bool {
	return cpu.Stopped
}

// AreInterruptsEnabled returns true if interrupts are enabled
func (cpu *CPU) AreInterruptsEnabled() bool {
	return cpu.InterruptsEnabled
}

// Resume - Resume CPU from halt/stop state
// Used by interrupt handling or external events
func (cpu *CPU) Resume() {
	cpu.Halted = false
	cpu.Stopped = false
}

// STOP still requires the following byte to be 0x00; instruction fetch
// consumes it like any other operand. Only a joypad transition wakes the
// CPU back up from STOP on real hardware.

// wrapHALT wraps the HALT instruction for opcode dispatch (0x76)
func wrapHALT(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.HALT(mmu)
	return cycles, nil
}

// wrapSTOP wraps the STOP instruction for opcode dispatch (0x10)
func wrapSTOP(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.STOP(mmu)
	return cycles, nil
}

// wrapDI wraps the DI instruction for opcode dispatch (0xF3)
func wrapDI(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.DI(mmu)
	return cycles, nil
}

// wrapEI wraps the EI instruction for opcode dispatch (0xFB)
func wrapEI(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.EI(mmu)
	return cycles, nil
}