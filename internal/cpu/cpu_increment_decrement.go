package cpu

// Single-register INC/DEC (0x04-0x3D family, excluding the (HL)-indexed
// pair handled by cpu_memory_operations.go). Every one of the eight
// variants shares the same flag rule — Z and H off the result, N fixed by
// direction, C left alone — so they're expressed as two small helpers
// operating on a register pointer rather than eight near-identical bodies.

func (cpu *CPU) incRegister(reg *uint8) uint8 {
	halfCarry := *reg&0x0F == 0x0F
	*reg++
	cpu.SetFlag(FlagZ, *reg == 0)
	cpu.SetFlag(FlagN, false)
	cpu.SetFlag(FlagH, halfCarry)
	return 4
}

func (cpu *CPU) decRegister(reg *uint8) uint8 {
	halfCarry := *reg&0x0F == 0x00
	*reg--
	cpu.SetFlag(FlagZ, *reg == 0)
	cpu.SetFlag(FlagN, true)
	cpu.SetFlag(FlagH, halfCarry)
	return 4
}

// INC_A: A++. 0x3C.
func (cpu *CPU) INC_A() uint8 { return cpu.incRegister(&cpu.A) }

// DEC_A: A--. 0x3D.
func (cpu *CPU) DEC_A() uint8 { return cpu.decRegister(&cpu.A) }

// INC_B: B++. 0x04.
func (cpu *CPU) INC_B() uint8 { return cpu.incRegister(&cpu.B) }

// DEC_B: B--. 0x05.
func (cpu *CPU) DEC_B() uint8 { return cpu.decRegister(&cpu.B) }

// INC_C: C++. 0x0C.
func (cpu *CPU) INC_C() uint8 { return cpu.incRegister(&cpu.C) }

// DEC_C: C--. 0x0D.
func (cpu *CPU) DEC_C() uint8 { return cpu.decRegister(&cpu.C) }

// INC_D: D++. 0x14.
func (cpu *CPU) INC_D() uint8 { return cpu.incRegister(&cpu.D) }

// DEC_D: D--. 0x15.
func (cpu *CPU) DEC_D() uint8 { return cpu.decRegister(&cpu.D) }

// INC_E: E++. 0x1C.
func (cpu *CPU) INC_E() uint8 { return cpu.incRegister(&cpu.E) }

// DEC_E: E--. 0x1D.
func (cpu *CPU) DEC_E() uint8 { return cpu.decRegister(&cpu.E) }

// INC_H: H++. 0x24.
func (cpu *CPU) INC_H() uint8 { return cpu.incRegister(&cpu.H) }

// DEC_H: H--. 0x25.
func (cpu *CPU) DEC_H() uint8 { return cpu.decRegister(&cpu.H) }

// INC_L: L++. 0x2C.
func (cpu *CPU) INC_L() uint8 { return cpu.incRegister(&cpu.L) }

// DEC_L: L--. 0x2D.
func (cpu *CPU) DEC_L() uint8 { return cpu.decRegister(&cpu.L) }
