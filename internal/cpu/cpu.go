package cpu

import "dmgcore/internal/interrupt"

// CPU represents the Sharp LR35902 CPU used in the Game Boy
// Think of this as our office worker with all their desk drawers (registers)
type CPU struct {
	// 8-bit registers - individual "desk drawers"
	A uint8 // Accumulator - main workspace for calculations
	B uint8 // General purpose register
	C uint8 // General purpose register
	D uint8 // General purpose register
	E uint8 // General purpose register
	F uint8 // Flags register - status indicators (Zero, Subtract, Half-carry, Carry)
	H uint8 // General purpose register (often used for high byte of addresses)
	L uint8 // General purpose register (often used for low byte of addresses)

	// 16-bit registers - special purpose
	SP uint16 // Stack Pointer - points to top of stack
	PC uint16 // Program Counter - points to next instruction to execute

	// CPU state
	Halted  bool // CPU is in halt state
	Stopped bool // CPU is in stop state

	// InterruptController holds the IE/IF register pair this CPU services.
	InterruptController *interrupt.InterruptController

	// InterruptsEnabled is IME, the master interrupt enable flip-flop. It is
	// distinct from IE: IE gates which sources can fire, IME gates whether
	// the CPU services any of them at all.
	InterruptsEnabled bool

	// EIDelay counts instruction boundaries remaining before IME rises. EI
	// sets it to 2: one decrement lands on the boundary right after EI
	// itself, the next lands after the following instruction, which is
	// where real hardware raises IME.
	EIDelay uint8

	// HaltBug is set when HALT executes with IME=0 and an interrupt already
	// pending: the next opcode fetch reads PC without advancing it, so the
	// byte following HALT is fetched and decoded twice.
	HaltBug bool
}

// NewCPU creates a new CPU instance with initial state
// Like hiring a new office worker and giving them a clean desk
func NewCPU() *CPU {
	return &CPU{
		// Initialize registers to Game Boy boot values
		A:       0x01,
		F:       0xB0,
		B:       0x00,
		C:       0x13,
		D:       0x00,
		E:       0xD8,
		H:       0x01,
		L:       0x4D,
		SP:      0xFFFE, // Stack starts at top of memory
		PC:      0x0100, // Program starts after boot ROM
		Halted:  false,
		Stopped: false,

		InterruptController: interrupt.NewInterruptController(),
		InterruptsEnabled:   false,
		EIDelay:             0,
		HaltBug:             false,
	}
}

// Register pair accessors (GetAF/SetAF/GetBC/...) and flag helpers
// (GetFlag/SetFlag/FlagZ/FlagN/FlagH/FlagC) live in cpu_registers.go.

// === CPU Instructions ===

// NOP - No Operation (0x00)
// Does nothing for 4 cycles
func (cpu *CPU) NOP() uint8 {
	return 4 // Takes 4 CPU cycles
}

// LD_A_n - Load immediate 8-bit value into register A (0x3E)
// Like writing a number on a sticky note and putting it in drawer A
func (cpu *CPU) LD_A_n(value uint8) uint8 {
	cpu.A = value
	return 8 // Takes 8 CPU cycles (fetch opcode + fetch immediate value)
}

// INC_A/DEC_A live in cpu_increment_decrement.go alongside the other
// single-register increment/decrement instructions.

// LD_B_n - Load immediate 8-bit value into register B (0x06)
// Like writing a number on a sticky note and putting it in drawer B
func (cpu *CPU) LD_B_n(value uint8) uint8 {
	cpu.B = value
	return 8 // Takes 8 CPU cycles (fetch opcode + fetch immediate value)
}

// LD_A_B - Copy register B to register A (0x78)
// Like photocopying what's in drawer B and putting copy in drawer A
func (cpu *CPU) LD_A_B() uint8 {
	cpu.A = cpu.B // Copy B's value to A
	return 4      // Takes 4 CPU cycles (faster than immediate load)
}

// LD_B_A - Copy register A to register B (0x47)
// Like photocopying what's in drawer A and putting copy in drawer B
func (cpu *CPU) LD_B_A() uint8 {
	cpu.B = cpu.A // Copy A's value to B
	return 4      // Takes 4 CPU cycles (faster than immediate load)
}

// LD_C_A - Copy register A to register C (0x4F)
// Like photocopying what's in drawer A and putting copy in drawer C
func (cpu *CPU) LD_C_A() uint8 {
	cpu.C = cpu.A // Copy A's value to C
	return 4      // Takes 4 CPU cycles
}

// LD_A_C - Copy register C to register A (0x79)
// Like photocopying what's in drawer C and putting copy in drawer A
func (cpu *CPU) LD_A_C() uint8 {
	cpu.A = cpu.C // Copy C's value to A
	return 4      // Takes 4 CPU cycles
}

// LD_C_n - Load immediate 8-bit value into register C (0x0E)
// Like writing a specific number on a sticky note and putting it in drawer C
func (cpu *CPU) LD_C_n(value uint8) uint8 {
	cpu.C = value
	return 8 // Takes 8 CPU cycles (fetch opcode + fetch immediate value)
}

// LD_B_C - Copy register C to register B (0x41)
// Like photocopying what's in drawer C and putting copy in drawer B
func (cpu *CPU) LD_B_C() uint8 {
	cpu.B = cpu.C // Copy C's value to B
	return 4      // Takes 4 CPU cycles
}

// LD_C_B - Copy register B to register C (0x48)
// Like photocopying what's in drawer B and putting copy in drawer C
func (cpu *CPU) LD_C_B() uint8 {
	cpu.C = cpu.B // Copy B's value to C
	return 4      // Takes 4 CPU cycles
}

// === D Register Operations ===

// LD_D_n - Load immediate 8-bit value into register D (0x16)
// Like writing a specific number on a sticky note and putting it in drawer D
func (cpu *CPU) LD_D_n(value uint8) uint8 {
	cpu.D = value
	return 8 // Takes 8 CPU cycles (fetch opcode + fetch immediate value)
}

// === D Register Load Operations ===

// LD_A_D - Copy register D to register A (0x7A)
// Like photocopying what's in drawer D and putting copy in drawer A
func (cpu *CPU) LD_A_D() uint8 {
	cpu.A = cpu.D // Copy D's value to A
	return 4      // Takes 4 CPU cycles
}

// LD_D_A - Copy register A to register D (0x57)
// Like photocopying what's in drawer A and putting copy in drawer D
func (cpu *CPU) LD_D_A() uint8 {
	cpu.D = cpu.A // Copy A's value to D
	return 4      // Takes 4 CPU cycles
}

// LD_B_D - Copy register D to register B (0x42)
// Like photocopying what's in drawer D and putting copy in drawer B
func (cpu *CPU) LD_B_D() uint8 {
	cpu.B = cpu.D // Copy D's value to B
	return 4      // Takes 4 CPU cycles
}

// LD_D_B - Copy register B to register D (0x50)
// Like photocopying what's in drawer B and putting copy in drawer D
func (cpu *CPU) LD_D_B() uint8 {
	cpu.D = cpu.B // Copy B's value to D
	return 4      // Takes 4 CPU cycles
}

// LD_C_D - Copy register D to register C (0x4A)
// Like photocopying what's in drawer D and putting copy in drawer C
func (cpu *CPU) LD_C_D() uint8 {
	cpu.C = cpu.D // Copy D's value to C
	return 4      // Takes 4 CPU cycles
}

// LD_D_C - Copy register C to register D (0x51)
// Like photocopying what's in drawer C and putting copy in drawer D
func (cpu *CPU) LD_D_C() uint8 {
	cpu.D = cpu.C // Copy C's value to D
	return 4      // Takes 4 CPU cycles
}

// LD_D_E - Copy register E to register D (0x53)
// Like photocopying what's in drawer E and putting copy in drawer D
func (cpu *CPU) LD_D_E() uint8 {
	cpu.D = cpu.E // Copy E's value to D
	return 4      // Takes 4 CPU cycles
}

// LD_D_H - Copy register H to register D (0x54)
// Like photocopying what's in drawer H and putting copy in drawer D
func (cpu *CPU) LD_D_H() uint8 {
	cpu.D = cpu.H // Copy H's value to D
	return 4      // Takes 4 CPU cycles
}

// LD_D_L - Copy register L to register D (0x55)
// Like photocopying what's in drawer L and putting copy in drawer D
func (cpu *CPU) LD_D_L() uint8 {
	cpu.D = cpu.L // Copy L's value to D
	return 4      // Takes 4 CPU cycles
}

// === E Register Operations ===

// LD_E_n - Load immediate 8-bit value into register E (0x1E)
// Like writing a specific number on a sticky note and putting it in drawer E
func (cpu *CPU) LD_E_n(value uint8) uint8 {
	cpu.E = value
	return 8 // Takes 8 CPU cycles (fetch opcode + fetch immediate value)
}

// === E Register Load Operations ===

// LD_A_E - Copy register E to register A (0x7B)
// Like photocopying what's in drawer E and putting copy in drawer A
func (cpu *CPU) LD_A_E() uint8 {
	cpu.A = cpu.E // Copy E's value to A
	return 4      // Takes 4 CPU cycles
}

// LD_E_A - Copy register A to register E (0x5F)
// Like photocopying what's in drawer A and putting copy in drawer E
func (cpu *CPU) LD_E_A() uint8 {
	cpu.E = cpu.A // Copy A's value to E
	return 4      // Takes 4 CPU cycles
}

// LD_B_E - Copy register E to register B (0x43)
// Like photocopying what's in drawer E and putting copy in drawer B
func (cpu *CPU) LD_B_E() uint8 {
	cpu.B = cpu.E // Copy E's value to B
	return 4      // Takes 4 CPU cycles
}

// LD_E_B - Copy register B to register E (0x58)
// Like photocopying what's in drawer B and putting copy in drawer E
func (cpu *CPU) LD_E_B() uint8 {
	cpu.E = cpu.B // Copy B's value to E
	return 4      // Takes 4 CPU cycles
}

// LD_C_E - Copy register E to register C (0x4B)
// Like photocopying what's in drawer E and putting copy in drawer C
func (cpu *CPU) LD_C_E() uint8 {
	cpu.C = cpu.E // Copy E's value to C
	return 4      // Takes 4 CPU cycles
}

// LD_E_C - Copy register C to register E (0x59)
// Like photocopying what's in drawer C and putting copy in drawer E
func (cpu *CPU) LD_E_C() uint8 {
	cpu.E = cpu.C // Copy C's value to E
	return 4      // Takes 4 CPU cycles
}

// LD_E_D - Copy register D to register E (0x5A)
// Like photocopying what's in drawer D and putting copy in drawer E
func (cpu *CPU) LD_E_D() uint8 {
	cpu.E = cpu.D // Copy D's value to E
	return 4      // Takes 4 CPU cycles
}

// LD_E_H - Copy register H to register E (0x5C)
// Like photocopying what's in drawer H and putting copy in drawer E
func (cpu *CPU) LD_E_H() uint8 {
	cpu.E = cpu.H // Copy H's value to E
	return 4      // Takes 4 CPU cycles
}

// LD_E_L - Copy register L to register E (0x5D)
// Like photocopying what's in drawer L and putting copy in drawer E
func (cpu *CPU) LD_E_L() uint8 {
	cpu.E = cpu.L // Copy L's value to E
	return 4      // Takes 4 CPU cycles
}

// === H Register Operations ===

// LD_H_n - Load immediate 8-bit value into register H (0x26)
// Like writing a specific number on a sticky note and putting it in drawer H
func (cpu *CPU) LD_H_n(value uint8) uint8 {
	cpu.H = value
	return 8 // Takes 8 CPU cycles (fetch opcode + fetch immediate value)
}

// === H Register Load Operations ===

// LD_A_H - Copy register H to register A (0x7C)
// Like photocopying what's in drawer H and putting copy in drawer A
func (cpu *CPU) LD_A_H() uint8 {
	cpu.A = cpu.H // Copy H's value to A
	return 4      // Takes 4 CPU cycles
}

// LD_H_A - Copy register A to register H (0x67)
// Like photocopying what's in drawer A and putting copy in drawer H
func (cpu *CPU) LD_H_A() uint8 {
	cpu.H = cpu.A // Copy A's value to H
	return 4      // Takes 4 CPU cycles
}

// LD_B_H - Copy register H to register B (0x44)
// Like photocopying what's in drawer H and putting copy in drawer B
func (cpu *CPU) LD_B_H() uint8 {
	cpu.B = cpu.H // Copy H's value to B
	return 4      // Takes 4 CPU cycles
}

// LD_H_B - Copy register B to register H (0x60)
// Like photocopying what's in drawer B and putting copy in drawer H
func (cpu *CPU) LD_H_B() uint8 {
	cpu.H = cpu.B // Copy B's value to H
	return 4      // Takes 4 CPU cycles
}

// LD_C_H - Copy register H to register C (0x4C)
// Like photocopying what's in drawer H and putting copy in drawer C
func (cpu *CPU) LD_C_H() uint8 {
	cpu.C = cpu.H // Copy H's value to C
	return 4      // Takes 4 CPU cycles
}

// LD_H_C - Copy register C to register H (0x61)
// Like photocopying what's in drawer C and putting copy in drawer H
func (cpu *CPU) LD_H_C() uint8 {
	cpu.H = cpu.C // Copy C's value to H
	return 4      // Takes 4 CPU cycles
}

// LD_H_D - Copy register D to register H (0x62)
// Like photocopying what's in drawer D and putting copy in drawer H
func (cpu *CPU) LD_H_D() uint8 {
	cpu.H = cpu.D // Copy D's value to H
	return 4      // Takes 4 CPU cycles
}

// LD_H_E - Copy register E to register H (0x63)
// Like photocopying what's in drawer E and putting copy in drawer H
func (cpu *CPU) LD_H_E() uint8 {
	cpu.H = cpu.E // Copy E's value to H
	return 4      // Takes 4 CPU cycles
}

// LD_H_L - Copy register L to register H (0x65)
// Like photocopying what's in drawer L and putting copy in drawer H
func (cpu *CPU) LD_H_L() uint8 {
	cpu.H = cpu.L // Copy L's value to H
	return 4      // Takes 4 CPU cycles
}

// === Utility Methods ===

// Reset resets the CPU to initial state
func (cpu *CPU) Reset() {
	cpu.A = 0x01
	cpu.F = 0xB0
	cpu.B = 0x00
	cpu.C = 0x13
	cpu.D = 0x00
	cpu.E = 0xD8
	cpu.H = 0x01
	cpu.L = 0x4D
	cpu.SP = 0xFFFE
	cpu.PC = 0x0100
	cpu.Halted = false
	cpu.Stopped = false

	if cpu.InterruptController != nil {
		cpu.InterruptController.Reset()
	} else {
		cpu.InterruptController = interrupt.NewInterruptController()
	}
	cpu.InterruptsEnabled = false
	cpu.EIDelay = 0
	cpu.HaltBug = false
}
