package cpu

import "dmgcore/internal/memory"

// === ADD Operations ===
// ADD operations add a value to register A and store the result in A
// All ADD operations affect flags: Z N H C
// Z: Set if result is zero
// N: Always cleared (addition operation)
// H: Set if carry from bit 3 to bit 4
// C: Set if carry out of bit 7

// ADD_A_A - Add register A to itself (0x87)
// Cycles: 4
func (cpu *CPU) ADD_A_A() uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.A)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(oldA&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADD_A_B - Add register B to register A (0x80)
// Cycles: 4
func (cpu *CPU) ADD_A_B() uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.B)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.B&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADD_A_C - Add register C to register A (0x81)
// Cycles: 4
func (cpu *CPU) ADD_A_C() uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.C)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.C&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADD_A_D - Add register D to register A (0x82)
// Cycles: 4
func (cpu *CPU) ADD_A_D() uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.D)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.D&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADD_A_E - Add register E to register A (0x83)
// Cycles: 4
func (cpu *CPU) ADD_A_E() uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.E)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.E&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADD_A_H - Add register H to register A (0x84)
// Cycles: 4
func (cpu *CPU) ADD_A_H() uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.H)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.H&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADD_A_L - Add register L to register A (0x85)
// Cycles: 4
func (cpu *CPU) ADD_A_L() uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.L)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.L&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADD_A_HL - Add memory value at HL to register A (0x86)
// Cycles: 8 (4 for instruction + 4 for memory access)
func (cpu *CPU) ADD_A_HL(mmu memory.MemoryInterface) uint8 {
	address := cpu.GetHL()
	memoryValue := mmu.ReadByte(address)
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(memoryValue)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(memoryValue&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 8
}

// ADD_A_n - Add immediate value to register A (0xC6)
// Cycles: 8 (4 for instruction + 4 for immediate fetch)
func (cpu *CPU) ADD_A_n(value uint8) uint8 {
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(value)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(value&0x0F) > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 8
}
