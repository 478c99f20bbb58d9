// instructions_65c02.go - WDC 65C02 opcode table

package mpu

var cmosInstructions = buildCMOSInstructions()

// buildCMOSInstructions overlays the 65C02 additions on a copy of the NMOS
// table. Decimal mode flag behaviour is left as on the NMOS part.
func buildCMOSInstructions() *InstructionSet {
	s := buildNMOSInstructions().Clone()

	// Store zero
	s.def(0x64, "STZ", ModeZeroPage, 3, false, (*CPU).opSTZ)
	s.def(0x74, "STZ", ModeZeroPageX, 4, false, (*CPU).opSTZ)
	s.def(0x9C, "STZ", ModeAbsolute, 4, false, (*CPU).opSTZ)
	s.def(0x9E, "STZ", ModeAbsoluteX, 5, false, (*CPU).opSTZ)

	// Index register stack operations
	s.def(0x5A, "PHY", ModeImplied, 3, false, (*CPU).opPHY)
	s.def(0x7A, "PLY", ModeImplied, 4, false, (*CPU).opPLY)
	s.def(0xDA, "PHX", ModeImplied, 3, false, (*CPU).opPHX)
	s.def(0xFA, "PLX", ModeImplied, 4, false, (*CPU).opPLX)

	// Zero page indirect
	s.def(0x12, "ORA", ModeZeroPageIndirect, 5, false, (*CPU).opORA)
	s.def(0x32, "AND", ModeZeroPageIndirect, 5, false, (*CPU).opAND)
	s.def(0x52, "EOR", ModeZeroPageIndirect, 5, false, (*CPU).opEOR)
	s.def(0x72, "ADC", ModeZeroPageIndirect, 5, false, (*CPU).opADC)
	s.def(0x92, "STA", ModeZeroPageIndirect, 5, false, (*CPU).opSTA)
	s.def(0xB2, "LDA", ModeZeroPageIndirect, 5, false, (*CPU).opLDA)
	s.def(0xD2, "CMP", ModeZeroPageIndirect, 5, false, (*CPU).opCMP)
	s.def(0xF2, "SBC", ModeZeroPageIndirect, 5, false, (*CPU).opSBC)

	// Bit operations
	s.def(0x04, "TSB", ModeZeroPage, 5, false, (*CPU).opTSB)
	s.def(0x0C, "TSB", ModeAbsolute, 6, false, (*CPU).opTSB)
	s.def(0x14, "TRB", ModeZeroPage, 5, false, (*CPU).opTRB)
	s.def(0x1C, "TRB", ModeAbsolute, 6, false, (*CPU).opTRB)
	s.def(0x89, "BIT", ModeImmediate, 2, false, (*CPU).opBITImmediate)
	s.def(0x34, "BIT", ModeZeroPageX, 4, false, (*CPU).opBIT)
	s.def(0x3C, "BIT", ModeAbsoluteX, 4, true, (*CPU).opBIT)

	// Accumulator increments
	s.def(0x1A, "INC", ModeAccumulator, 2, false, (*CPU).opINC)
	s.def(0x3A, "DEC", ModeAccumulator, 2, false, (*CPU).opDEC)

	// Control flow
	s.def(0x80, "BRA", ModeRelative, 2, false, (*CPU).opBRA)
	s.def(0x6C, "JMP", ModeIndirect, 6, false, (*CPU).opJMP)
	s.def(0x7C, "JMP", ModeAbsoluteIndirectX, 6, false, (*CPU).opJMP)
	s.def(0xCB, "WAI", ModeImplied, 3, false, (*CPU).opWAI)

	return s
}
