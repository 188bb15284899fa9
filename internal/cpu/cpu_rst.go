package cpu

import "dmgcore/internal/memory"

// ================================
// RST Operations (0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF)
// ================================

// RST pushes the current PC onto the stack and jumps to one of the eight
// fixed zero-page vectors. Used as a cheap one-byte CALL for the most
// common interrupt/bootstrap entry points.
// Flags affected: None
// Cycles: 16
func (cpu *CPU) rst(mmu memory.MemoryInterface, vector uint16) uint8 {
	cpu.pushWord(mmu, cpu.PC)
	cpu.PC = vector

	return 16
}

// RST_00H - RST 00H (0xC7)
func (cpu *CPU) RST_00H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0000) }

// RST_08H - RST 08H (0xCF)
func (cpu *CPU) RST_08H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0008) }

// RST_10H - RST 10H (0xD7)
func (cpu *CPU) RST_10H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0010) }

// RST_18H - RST 18H (0xDF)
func (cpu *CPU) RST_18H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0018) }

// RST_20H - RST 20H (0xE7)
func (cpu *CPU) RST_20H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0020) }

// RST_28H - RST 28H (0xEF)
func (cpu *CPU) RST_28H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0028) }

// RST_30H - RST 30H (0xF7)
func (cpu *CPU) RST_30H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0030) }

// RST_38H - RST 38H (0xFF)
func (cpu *CPU) RST_38H(mmu memory.MemoryInterface) uint8 { return cpu.rst(mmu, 0x0038) }

// wrapRST_00H wraps RST 00H for opcode dispatch (0xC7)
func wrapRST_00H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_00H(mmu), nil
}

// wrapRST_08H wraps RST 08H for opcode dispatch (0xCF)
func wrapRST_08H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_08H(mmu), nil
}

// wrapRST_10H wraps RST 10H for opcode dispatch (0xD7)
func wrapRST_10H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_10H(mmu), nil
}

// wrapRST_18H wraps RST 18H for opcode dispatch (0xDF)
func wrapRST_18H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_18H(mmu), nil
}

// wrapRST_20H wraps RST 20H for opcode dispatch (0xE7)
func wrapRST_20H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_20H(mmu), nil
}

// wrapRST_28H wraps RST 28H for opcode dispatch (0xEF)
func wrapRST_28H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_28H(mmu), nil
}

// wrapRST_30H wraps RST 30H for opcode dispatch (0xF7)
func wrapRST_30H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_30H(mmu), nil
}

// wrapRST_38H wraps RST 38H for opcode dispatch (0xFF)
func wrapRST_38H(cpu *CPU, mmu memory.MemoryInterface, params ...uint8) (uint8, error) {
	return cpu.RST_38H(mmu), nil
}
