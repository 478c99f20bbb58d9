// disassembler.go - Instruction disassembly driven by the mpu opcode tables

package assembler

import (
	"fmt"

	"github.com/intuitionamiga/six5go/mpu"
)

// CellReader reads memory without side effects.
type CellReader interface {
	Peek(addr uint32) uint16
}

type Disassembler struct {
	cfg    mpu.Config
	mem    CellReader
	parser *AddressParser
}

// NewDisassembler returns a disassembler for cfg. parser supplies label
// names for operands and may be nil.
func NewDisassembler(cfg mpu.Config, mem CellReader, parser *AddressParser) *Disassembler {
	return &Disassembler{cfg: cfg, mem: mem, parser: parser}
}

// InstructionAt decodes the instruction at pc and returns its length in
// cells and its text. Undefined opcodes decode as "???" of length one.
func (d *Disassembler) InstructionAt(pc uint32) (int, string) {
	op := byte(d.mem.Peek(pc & d.cfg.AddrMask))
	ins := d.cfg.Set.Instruction(op)
	if !ins.Implemented() {
		return 1, "???"
	}

	bd, ad := d.cfg.ByteDigits(), d.cfg.AddrDigits()
	cell := func(offset uint32) uint32 {
		return uint32(d.mem.Peek((pc+offset)&d.cfg.AddrMask) & d.cfg.ByteMask)
	}
	word := func() uint32 {
		return (cell(1) | cell(2)<<d.cfg.ByteWidth) & d.cfg.AddrMask
	}
	zp := func() string { return d.name(cell(1), bd) }
	abs := func() string { return d.name(word(), ad) }

	var operand string
	switch ins.Mode {
	case mpu.ModeImplied:
	case mpu.ModeAccumulator:
		operand = "A"
	case mpu.ModeImmediate:
		operand = fmt.Sprintf("#$%0*X", bd, cell(1))
	case mpu.ModeZeroPage:
		operand = zp()
	case mpu.ModeZeroPageX:
		operand = zp() + ",X"
	case mpu.ModeZeroPageY:
		operand = zp() + ",Y"
	case mpu.ModeAbsolute:
		operand = abs()
	case mpu.ModeAbsoluteX:
		operand = abs() + ",X"
	case mpu.ModeAbsoluteY:
		operand = abs() + ",Y"
	case mpu.ModeIndirect:
		operand = "(" + abs() + ")"
	case mpu.ModeIndirectX:
		operand = "(" + zp() + ",X)"
	case mpu.ModeIndirectY:
		operand = "(" + zp() + "),Y"
	case mpu.ModeZeroPageIndirect:
		operand = "(" + zp() + ")"
	case mpu.ModeAbsoluteIndirectX:
		operand = "(" + abs() + ",X)"
	case mpu.ModeRelative:
		operand = d.name(d.branchTarget(pc, cell(1)), ad)
	}

	if operand == "" {
		return ins.Length(), ins.Mnemonic
	}
	return ins.Length(), ins.Mnemonic + " " + operand
}

// Bytes returns the cells of the instruction at pc.
func (d *Disassembler) Bytes(pc uint32) []uint16 {
	n, _ := d.InstructionAt(pc)
	cells := make([]uint16, n)
	for i := range cells {
		cells[i] = d.mem.Peek((pc + uint32(i)) & d.cfg.AddrMask)
	}
	return cells
}

func (d *Disassembler) branchTarget(pc, offset uint32) uint32 {
	next := pc + 2
	if uint16(offset)&d.cfg.Negative != 0 {
		return (next - (offset ^ uint32(d.cfg.ByteMask)) - 1) & d.cfg.AddrMask
	}
	return (next + offset) & d.cfg.AddrMask
}

func (d *Disassembler) name(addr uint32, digits int) string {
	if d.parser != nil {
		if label, ok := d.parser.LabelFor(addr); ok {
			return label
		}
	}
	return fmt.Sprintf("$%0*X", digits, addr)
}
