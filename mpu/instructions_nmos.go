// instructions_nmos.go - NMOS 6502 opcode table

package mpu

var nmosInstructions = buildNMOSInstructions()

func buildNMOSInstructions() *InstructionSet {
	s := newInstructionSet()

	// Loads and stores
	s.def(0xA1, "LDA", ModeIndirectX, 6, false, (*CPU).opLDA)
	s.def(0xA5, "LDA", ModeZeroPage, 3, false, (*CPU).opLDA)
	s.def(0xA9, "LDA", ModeImmediate, 2, false, (*CPU).opLDA)
	s.def(0xAD, "LDA", ModeAbsolute, 4, false, (*CPU).opLDA)
	s.def(0xB1, "LDA", ModeIndirectY, 5, true, (*CPU).opLDA)
	s.def(0xB5, "LDA", ModeZeroPageX, 4, false, (*CPU).opLDA)
	s.def(0xB9, "LDA", ModeAbsoluteY, 4, true, (*CPU).opLDA)
	s.def(0xBD, "LDA", ModeAbsoluteX, 4, true, (*CPU).opLDA)
	s.def(0xA2, "LDX", ModeImmediate, 2, false, (*CPU).opLDX)
	s.def(0xA6, "LDX", ModeZeroPage, 3, false, (*CPU).opLDX)
	s.def(0xB6, "LDX", ModeZeroPageY, 4, false, (*CPU).opLDX)
	s.def(0xAE, "LDX", ModeAbsolute, 4, false, (*CPU).opLDX)
	s.def(0xBE, "LDX", ModeAbsoluteY, 4, true, (*CPU).opLDX)
	s.def(0xA0, "LDY", ModeImmediate, 2, false, (*CPU).opLDY)
	s.def(0xA4, "LDY", ModeZeroPage, 3, false, (*CPU).opLDY)
	s.def(0xB4, "LDY", ModeZeroPageX, 4, false, (*CPU).opLDY)
	s.def(0xAC, "LDY", ModeAbsolute, 4, false, (*CPU).opLDY)
	s.def(0xBC, "LDY", ModeAbsoluteX, 4, true, (*CPU).opLDY)
	s.def(0x81, "STA", ModeIndirectX, 6, false, (*CPU).opSTA)
	s.def(0x85, "STA", ModeZeroPage, 3, false, (*CPU).opSTA)
	s.def(0x8D, "STA", ModeAbsolute, 4, false, (*CPU).opSTA)
	s.def(0x91, "STA", ModeIndirectY, 6, false, (*CPU).opSTA)
	s.def(0x95, "STA", ModeZeroPageX, 4, false, (*CPU).opSTA)
	s.def(0x99, "STA", ModeAbsoluteY, 5, false, (*CPU).opSTA)
	s.def(0x9D, "STA", ModeAbsoluteX, 5, false, (*CPU).opSTA)
	s.def(0x86, "STX", ModeZeroPage, 3, false, (*CPU).opSTX)
	s.def(0x96, "STX", ModeZeroPageY, 4, false, (*CPU).opSTX)
	s.def(0x8E, "STX", ModeAbsolute, 4, false, (*CPU).opSTX)
	s.def(0x84, "STY", ModeZeroPage, 3, false, (*CPU).opSTY)
	s.def(0x94, "STY", ModeZeroPageX, 4, false, (*CPU).opSTY)
	s.def(0x8C, "STY", ModeAbsolute, 4, false, (*CPU).opSTY)

	// Arithmetic and logic
	s.def(0x01, "ORA", ModeIndirectX, 6, false, (*CPU).opORA)
	s.def(0x05, "ORA", ModeZeroPage, 3, false, (*CPU).opORA)
	s.def(0x09, "ORA", ModeImmediate, 2, false, (*CPU).opORA)
	s.def(0x0D, "ORA", ModeAbsolute, 4, false, (*CPU).opORA)
	s.def(0x11, "ORA", ModeIndirectY, 5, true, (*CPU).opORA)
	s.def(0x15, "ORA", ModeZeroPageX, 4, false, (*CPU).opORA)
	s.def(0x19, "ORA", ModeAbsoluteY, 4, true, (*CPU).opORA)
	s.def(0x1D, "ORA", ModeAbsoluteX, 4, true, (*CPU).opORA)
	s.def(0x21, "AND", ModeIndirectX, 6, false, (*CPU).opAND)
	s.def(0x25, "AND", ModeZeroPage, 3, false, (*CPU).opAND)
	s.def(0x29, "AND", ModeImmediate, 2, false, (*CPU).opAND)
	s.def(0x2D, "AND", ModeAbsolute, 4, false, (*CPU).opAND)
	s.def(0x31, "AND", ModeIndirectY, 5, true, (*CPU).opAND)
	s.def(0x35, "AND", ModeZeroPageX, 4, false, (*CPU).opAND)
	s.def(0x39, "AND", ModeAbsoluteY, 4, true, (*CPU).opAND)
	s.def(0x3D, "AND", ModeAbsoluteX, 4, true, (*CPU).opAND)
	s.def(0x41, "EOR", ModeIndirectX, 6, false, (*CPU).opEOR)
	s.def(0x45, "EOR", ModeZeroPage, 3, false, (*CPU).opEOR)
	s.def(0x49, "EOR", ModeImmediate, 2, false, (*CPU).opEOR)
	s.def(0x4D, "EOR", ModeAbsolute, 4, false, (*CPU).opEOR)
	s.def(0x51, "EOR", ModeIndirectY, 5, true, (*CPU).opEOR)
	s.def(0x55, "EOR", ModeZeroPageX, 4, false, (*CPU).opEOR)
	s.def(0x59, "EOR", ModeAbsoluteY, 4, true, (*CPU).opEOR)
	s.def(0x5D, "EOR", ModeAbsoluteX, 4, true, (*CPU).opEOR)
	s.def(0x61, "ADC", ModeIndirectX, 6, false, (*CPU).opADC)
	s.def(0x65, "ADC", ModeZeroPage, 3, false, (*CPU).opADC)
	s.def(0x69, "ADC", ModeImmediate, 2, false, (*CPU).opADC)
	s.def(0x6D, "ADC", ModeAbsolute, 4, false, (*CPU).opADC)
	s.def(0x71, "ADC", ModeIndirectY, 5, true, (*CPU).opADC)
	s.def(0x75, "ADC", ModeZeroPageX, 4, false, (*CPU).opADC)
	s.def(0x79, "ADC", ModeAbsoluteY, 4, true, (*CPU).opADC)
	s.def(0x7D, "ADC", ModeAbsoluteX, 4, true, (*CPU).opADC)
	s.def(0xC1, "CMP", ModeIndirectX, 6, false, (*CPU).opCMP)
	s.def(0xC5, "CMP", ModeZeroPage, 3, false, (*CPU).opCMP)
	s.def(0xC9, "CMP", ModeImmediate, 2, false, (*CPU).opCMP)
	s.def(0xCD, "CMP", ModeAbsolute, 4, false, (*CPU).opCMP)
	s.def(0xD1, "CMP", ModeIndirectY, 5, true, (*CPU).opCMP)
	s.def(0xD5, "CMP", ModeZeroPageX, 4, false, (*CPU).opCMP)
	s.def(0xD9, "CMP", ModeAbsoluteY, 4, true, (*CPU).opCMP)
	s.def(0xDD, "CMP", ModeAbsoluteX, 4, true, (*CPU).opCMP)
	s.def(0xE1, "SBC", ModeIndirectX, 6, false, (*CPU).opSBC)
	s.def(0xE5, "SBC", ModeZeroPage, 3, false, (*CPU).opSBC)
	s.def(0xE9, "SBC", ModeImmediate, 2, false, (*CPU).opSBC)
	s.def(0xED, "SBC", ModeAbsolute, 4, false, (*CPU).opSBC)
	s.def(0xF1, "SBC", ModeIndirectY, 5, true, (*CPU).opSBC)
	s.def(0xF5, "SBC", ModeZeroPageX, 4, false, (*CPU).opSBC)
	s.def(0xF9, "SBC", ModeAbsoluteY, 4, true, (*CPU).opSBC)
	s.def(0xFD, "SBC", ModeAbsoluteX, 4, true, (*CPU).opSBC)
	s.def(0xE0, "CPX", ModeImmediate, 2, false, (*CPU).opCPX)
	s.def(0xE4, "CPX", ModeZeroPage, 3, false, (*CPU).opCPX)
	s.def(0xEC, "CPX", ModeAbsolute, 4, false, (*CPU).opCPX)
	s.def(0xC0, "CPY", ModeImmediate, 2, false, (*CPU).opCPY)
	s.def(0xC4, "CPY", ModeZeroPage, 3, false, (*CPU).opCPY)
	s.def(0xCC, "CPY", ModeAbsolute, 4, false, (*CPU).opCPY)
	s.def(0x24, "BIT", ModeZeroPage, 3, false, (*CPU).opBIT)
	s.def(0x2C, "BIT", ModeAbsolute, 4, false, (*CPU).opBIT)

	// Shifts and increments
	s.def(0x0A, "ASL", ModeAccumulator, 2, false, (*CPU).opASL)
	s.def(0x06, "ASL", ModeZeroPage, 5, false, (*CPU).opASL)
	s.def(0x0E, "ASL", ModeAbsolute, 6, false, (*CPU).opASL)
	s.def(0x16, "ASL", ModeZeroPageX, 6, false, (*CPU).opASL)
	s.def(0x1E, "ASL", ModeAbsoluteX, 7, false, (*CPU).opASL)
	s.def(0x2A, "ROL", ModeAccumulator, 2, false, (*CPU).opROL)
	s.def(0x26, "ROL", ModeZeroPage, 5, false, (*CPU).opROL)
	s.def(0x2E, "ROL", ModeAbsolute, 6, false, (*CPU).opROL)
	s.def(0x36, "ROL", ModeZeroPageX, 6, false, (*CPU).opROL)
	s.def(0x3E, "ROL", ModeAbsoluteX, 7, false, (*CPU).opROL)
	s.def(0x4A, "LSR", ModeAccumulator, 2, false, (*CPU).opLSR)
	s.def(0x46, "LSR", ModeZeroPage, 5, false, (*CPU).opLSR)
	s.def(0x4E, "LSR", ModeAbsolute, 6, false, (*CPU).opLSR)
	s.def(0x56, "LSR", ModeZeroPageX, 6, false, (*CPU).opLSR)
	s.def(0x5E, "LSR", ModeAbsoluteX, 7, false, (*CPU).opLSR)
	s.def(0x6A, "ROR", ModeAccumulator, 2, false, (*CPU).opROR)
	s.def(0x66, "ROR", ModeZeroPage, 5, false, (*CPU).opROR)
	s.def(0x6E, "ROR", ModeAbsolute, 6, false, (*CPU).opROR)
	s.def(0x76, "ROR", ModeZeroPageX, 6, false, (*CPU).opROR)
	s.def(0x7E, "ROR", ModeAbsoluteX, 7, false, (*CPU).opROR)
	s.def(0xC6, "DEC", ModeZeroPage, 5, false, (*CPU).opDEC)
	s.def(0xCE, "DEC", ModeAbsolute, 6, false, (*CPU).opDEC)
	s.def(0xD6, "DEC", ModeZeroPageX, 6, false, (*CPU).opDEC)
	s.def(0xDE, "DEC", ModeAbsoluteX, 7, false, (*CPU).opDEC)
	s.def(0xE6, "INC", ModeZeroPage, 5, false, (*CPU).opINC)
	s.def(0xEE, "INC", ModeAbsolute, 6, false, (*CPU).opINC)
	s.def(0xF6, "INC", ModeZeroPageX, 6, false, (*CPU).opINC)
	s.def(0xFE, "INC", ModeAbsoluteX, 7, false, (*CPU).opINC)
	s.def(0xE8, "INX", ModeImplied, 2, false, (*CPU).opINX)
	s.def(0xC8, "INY", ModeImplied, 2, false, (*CPU).opINY)
	s.def(0xCA, "DEX", ModeImplied, 2, false, (*CPU).opDEX)
	s.def(0x88, "DEY", ModeImplied, 2, false, (*CPU).opDEY)

	// Transfers
	s.def(0xAA, "TAX", ModeImplied, 2, false, (*CPU).opTAX)
	s.def(0x8A, "TXA", ModeImplied, 2, false, (*CPU).opTXA)
	s.def(0xA8, "TAY", ModeImplied, 2, false, (*CPU).opTAY)
	s.def(0x98, "TYA", ModeImplied, 2, false, (*CPU).opTYA)
	s.def(0xBA, "TSX", ModeImplied, 2, false, (*CPU).opTSX)
	s.def(0x9A, "TXS", ModeImplied, 2, false, (*CPU).opTXS)

	// Flags
	s.def(0x18, "CLC", ModeImplied, 2, false, (*CPU).opCLC)
	s.def(0x38, "SEC", ModeImplied, 2, false, (*CPU).opSEC)
	s.def(0x58, "CLI", ModeImplied, 2, false, (*CPU).opCLI)
	s.def(0x78, "SEI", ModeImplied, 2, false, (*CPU).opSEI)
	s.def(0xD8, "CLD", ModeImplied, 2, false, (*CPU).opCLD)
	s.def(0xF8, "SED", ModeImplied, 2, false, (*CPU).opSED)
	s.def(0xB8, "CLV", ModeImplied, 2, false, (*CPU).opCLV)

	// Stack
	s.def(0x48, "PHA", ModeImplied, 3, false, (*CPU).opPHA)
	s.def(0x68, "PLA", ModeImplied, 4, false, (*CPU).opPLA)
	s.def(0x08, "PHP", ModeImplied, 3, false, (*CPU).opPHP)
	s.def(0x28, "PLP", ModeImplied, 4, false, (*CPU).opPLP)

	// Branches
	s.def(0x10, "BPL", ModeRelative, 2, false, (*CPU).opBPL)
	s.def(0x30, "BMI", ModeRelative, 2, false, (*CPU).opBMI)
	s.def(0x50, "BVC", ModeRelative, 2, false, (*CPU).opBVC)
	s.def(0x70, "BVS", ModeRelative, 2, false, (*CPU).opBVS)
	s.def(0x90, "BCC", ModeRelative, 2, false, (*CPU).opBCC)
	s.def(0xB0, "BCS", ModeRelative, 2, false, (*CPU).opBCS)
	s.def(0xD0, "BNE", ModeRelative, 2, false, (*CPU).opBNE)
	s.def(0xF0, "BEQ", ModeRelative, 2, false, (*CPU).opBEQ)

	// Control flow
	s.def(0x00, "BRK", ModeImplied, 7, false, (*CPU).opBRK)
	s.def(0x40, "RTI", ModeImplied, 6, false, (*CPU).opRTI)
	s.def(0x20, "JSR", ModeAbsolute, 6, false, (*CPU).opJSR)
	s.def(0x60, "RTS", ModeImplied, 6, false, (*CPU).opRTS)
	s.def(0x4C, "JMP", ModeAbsolute, 3, false, (*CPU).opJMP)
	s.def(0x6C, "JMP", ModeIndirect, 5, false, (*CPU).opJMPIndirectWrapped)
	s.def(0xEA, "NOP", ModeImplied, 2, false, (*CPU).opNOP)

	return s
}
