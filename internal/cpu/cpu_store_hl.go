package cpu

import "dmgcore/internal/memory"

// === Memory Store Operations: LD (HL),r ===
// These instructions store a register's value into the memory address HL

// LD_HL_B stores register B at memory address HL (opcode 0x70)
// Flags affected: None
// Cycles: 8
func (cpu *CPU) LD_HL_B(mmu memory.MemoryInterface) uint8 {
	mmu.WriteByte(cpu.GetHL(), cpu.B)
	return 8
}

// LD_HL_C stores register C at memory address HL (opcode 0x71)
// Flags affected: None
// Cycles: 8
func (cpu *CPU) LD_HL_C(mmu memory.MemoryInterface) uint8 {
	mmu.WriteByte(cpu.GetHL(), cpu.C)
	return 8
}

// LD_HL_D stores register D at memory address HL (opcode 0x72)
// Flags affected: None
// Cycles: 8
func (cpu *CPU) LD_HL_D(mmu memory.MemoryInterface) uint8 {
	mmu.WriteByte(cpu.GetHL(), cpu.D)
	return 8
}

// LD_HL_E stores register E at memory address HL (opcode 0x73)
// Flags affected: None
// Cycles: 8
func (cpu *CPU) LD_HL_E(mmu memory.MemoryInterface) uint8 {
	mmu.WriteByte(cpu.GetHL(), cpu.E)
	return 8
}

// LD_HL_H stores register H at memory address HL (opcode 0x74)
// Flags affected: None
// Cycles: 8
func (cpu *CPU) LD_HL_H(mmu memory.MemoryInterface) uint8 {
	mmu.WriteByte(cpu.GetHL(), cpu.H)
	return 8
}

// LD_HL_L stores register L at memory address HL (opcode 0x75)
// Flags affected: None
// Cycles: 8
func (cpu *CPU) LD_HL_L(mmu memory.MemoryInterface) uint8 {
	mmu.WriteByte(cpu.GetHL(), cpu.L)
	return 8
}

// LD_HL_A stores register A at memory address HL (opcode 0x77)
// Flags affected: None
// Cycles: 8
func (cpu *CPU) LD_HL_A(mmu memory.MemoryInterface) uint8 {
	mmu.WriteByte(cpu.GetHL(), cpu.A)
	return 8
}

// wrapLD_HL_B wraps the LD (HL),B instruction (0x70)
func wrapLD_HL_B(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.LD_HL_B(mmu)
	return cycles, nil
}

// wrapLD_HL_C wraps the LD (HL),C instruction (0x71)
func wrapLD_HL_C(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.LD_HL_C(mmu)
	return cycles, nil
}

// wrapLD_HL_D wraps the LD (HL),D instruction (0x72)
func wrapLD_HL_D(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.LD_HL_D(mmu)
	return cycles, nil
}

// wrapLD_HL_E wraps the LD (HL),E instruction (0x73)
func wrapLD_HL_E(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.LD_HL_E(mmu)
	return cycles, nil
}

// wrapLD_HL_H wraps the LD (HL),H instruction (0x74)
func wrapLD_HL_H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.LD_HL_H(mmu)
	return cycles, nil
}

// wrapLD_HL_L wraps the LD (HL),L instruction (0x75)
func wrapLD_HL_L(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	cycles := cpu.LD_HL_L(mmu)
	return cycles, nil
}
