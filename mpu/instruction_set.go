// instruction_set.go - Opcode dispatch tables and instruction metadata

package mpu

import "strings"

// AddrMode identifies how an instruction locates its operand.
type AddrMode uint8

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
	ModeZeroPageIndirect
	ModeAbsoluteIndirectX
)

var modeTags = [...]string{
	ModeImplied:           "imp",
	ModeAccumulator:       "acc",
	ModeImmediate:         "imm",
	ModeZeroPage:          "zpg",
	ModeZeroPageX:         "zpx",
	ModeZeroPageY:         "zpy",
	ModeAbsolute:          "abs",
	ModeAbsoluteX:         "abx",
	ModeAbsoluteY:         "aby",
	ModeIndirect:          "ind",
	ModeIndirectX:         "inx",
	ModeIndirectY:         "iny",
	ModeRelative:          "rel",
	ModeZeroPageIndirect:  "zpi",
	ModeAbsoluteIndirectX: "iax",
}

func (m AddrMode) String() string {
	if int(m) < len(modeTags) {
		return modeTags[m]
	}
	return "???"
}

// Length is the instruction length in cells, opcode included.
func (m AddrMode) Length() int {
	switch m {
	case ModeImplied, ModeAccumulator:
		return 1
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeIndirect, ModeAbsoluteIndirectX:
		return 3
	default:
		return 2
	}
}

// Instruction is one dispatch table entry.
type Instruction struct {
	Mnemonic  string
	Mode      AddrMode
	Cycles    uint8
	PageCycle bool // one extra cycle when indexing crosses a page

	exec func(*CPU)
}

// Implemented reports whether the opcode has a defined behaviour.
func (i Instruction) Implemented() bool { return i.Mnemonic != unknownMnemonic }

func (i Instruction) Length() int { return i.Mode.Length() }

const unknownMnemonic = "???"

// InstructionSet is a complete 256-entry opcode table.
type InstructionSet struct {
	ops [256]Instruction
}

func newInstructionSet() *InstructionSet {
	s := &InstructionSet{}
	for i := range s.ops {
		s.ops[i] = Instruction{Mnemonic: unknownMnemonic, Mode: ModeImplied, Cycles: 2, exec: (*CPU).opNotImplemented}
	}
	return s
}

func (s *InstructionSet) def(op byte, mnemonic string, mode AddrMode, cycles uint8, pageCycle bool, exec func(*CPU)) {
	s.ops[op] = Instruction{Mnemonic: mnemonic, Mode: mode, Cycles: cycles, PageCycle: pageCycle, exec: exec}
}

// Clone copies the table so a derived variant can overlay its own entries.
func (s *InstructionSet) Clone() *InstructionSet {
	c := *s
	return &c
}

// Instruction returns the table entry for op.
func (s *InstructionSet) Instruction(op byte) Instruction {
	return s.ops[op]
}

// Opcode finds the opcode that encodes mnemonic in mode.
func (s *InstructionSet) Opcode(mnemonic string, mode AddrMode) (byte, bool) {
	mnemonic = strings.ToUpper(mnemonic)
	for op, ins := range s.ops {
		if ins.Mnemonic == mnemonic && ins.Mode == mode {
			return byte(op), true
		}
	}
	return 0, false
}

// Modes lists every addressing mode mnemonic is encoded with.
func (s *InstructionSet) Modes(mnemonic string) []AddrMode {
	mnemonic = strings.ToUpper(mnemonic)
	var modes []AddrMode
	for _, ins := range s.ops {
		if ins.Mnemonic == mnemonic {
			modes = append(modes, ins.Mode)
		}
	}
	return modes
}
