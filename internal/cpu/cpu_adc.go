package cpu

import "dmgcore/internal/memory"

// === ADC Operations ===
// ADC operations add a value and the carry flag to register A and store the result in A
// Formula: A = A + operand + carry_flag
// All ADC operations affect flags: Z N H C
// Z: Set if result is zero
// N: Always cleared (addition operation)
// H: Set if carry from bit 3 to bit 4
// C: Set if carry out of bit 7

// ADC_A_A - Add register A and carry flag to register A (0x8F)
// Cycles: 4
func (cpu *CPU) ADC_A_A() uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.A) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(oldA&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADC_A_B - Add register B and carry flag to register A (0x88)
// Cycles: 4
func (cpu *CPU) ADC_A_B() uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.B) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.B&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADC_A_C - Add register C and carry flag to register A (0x89)
// Cycles: 4
func (cpu *CPU) ADC_A_C() uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.C) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.C&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADC_A_D - Add register D and carry flag to register A (0x8A)
// Cycles: 4
func (cpu *CPU) ADC_A_D() uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.D) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.D&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADC_A_E - Add register E and carry flag to register A (0x8B)
// Cycles: 4
func (cpu *CPU) ADC_A_E() uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.E) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.E&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADC_A_H - Add register H and carry flag to register A (0x8C)
// Cycles: 4
func (cpu *CPU) ADC_A_H() uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.H) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.H&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADC_A_L - Add register L and carry flag to register A (0x8D)
// Cycles: 4
func (cpu *CPU) ADC_A_L() uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(cpu.L) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(cpu.L&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 4
}

// ADC_A_HL - Add memory value at HL and carry flag to register A (0x8E)
// Cycles: 8 (4 for instruction + 4 for memory access)
func (cpu *CPU) ADC_A_HL(mmu memory.MemoryInterface) uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	address := cpu.GetHL()
	memoryValue := mmu.ReadByte(address)
	oldA := cpu.A
	result := uint16(cpu.A) + uint16(memoryValue) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(memoryValue&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 8
}

// ADC_A_n - Add immediate value and carry flag to register A (0xCE)
// Cycles: 8 (4 for instruction + 4 for immediate fetch)
func (cpu *CPU) ADC_A_n(value uint8) uint8 {
	carry := uint8(0)
	if cpu.GetFlag(FlagC) {
		carry = 1
	}

	oldA := cpu.A
	result := uint16(cpu.A) + uint16(value) + uint16(carry)
	cpu.A = uint8(result)

	cpu.SetFlag(FlagZ, cpu.A == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, (oldA&0x0F)+(value&0x0F)+carry > 0x0F)
	cpu.SetFlag(FlagC, result > 0xFF)

	return 8
}
