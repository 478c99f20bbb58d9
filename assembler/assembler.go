// assembler.go - One-statement assembler for the monitor

package assembler

import (
	"strings"

	"github.com/intuitionamiga/six5go/mpu"
	"github.com/pkg/errors"
)

type Assembler struct {
	cfg    mpu.Config
	parser *AddressParser
}

func NewAssembler(cfg mpu.Config, parser *AddressParser) *Assembler {
	return &Assembler{cfg: cfg, parser: parser}
}

// operand syntax, before the zero page or absolute choice is made
type syntax uint8

const (
	synNone syntax = iota
	synAccumulator
	synImmediate
	synDirect
	synDirectX
	synDirectY
	synIndirect
	synIndirectX
	synIndirectY
)

// Assemble encodes one statement ("LDA #$10", "JMP ($FFFC)") as if it
// were placed at pc.
func (a *Assembler) Assemble(stmt string, pc uint32) ([]uint16, error) {
	/*
	   Assemble resolves a statement in three steps:
	   1. Classify the operand syntax and extract the value expression
	   2. Evaluate the expression through the address parser
	   3. Pick the opcode: relative for branches, zero page forms when the
	      value fits a cell and the variant has one, absolute otherwise
	*/

	stmt = strings.TrimSpace(stmt)
	if i := strings.IndexByte(stmt, ';'); i >= 0 {
		stmt = strings.TrimSpace(stmt[:i])
	}
	if stmt == "" {
		return nil, errors.Wrap(ErrSyntax, "empty statement")
	}

	mnemonic, rest, _ := strings.Cut(stmt, " ")
	mnemonic = strings.ToUpper(mnemonic)
	set := a.cfg.Set
	if len(set.Modes(mnemonic)) == 0 || mnemonic == "???" {
		return nil, errors.Wrapf(ErrSyntax, "unknown mnemonic %q", mnemonic)
	}

	syn, expr := classify(strings.ReplaceAll(strings.TrimSpace(rest), " ", ""))
	if syn == synNone || syn == synAccumulator {
		return a.encodeImplied(mnemonic, syn)
	}

	if op, ok := set.Opcode(mnemonic, mpu.ModeRelative); ok && syn == synDirect {
		target, err := a.parser.Number(expr)
		if err != nil {
			return nil, err
		}
		return a.encodeBranch(op, target, pc)
	}

	value, err := a.parser.Value(expr)
	if err != nil {
		return nil, err
	}

	if syn == synImmediate {
		op, ok := set.Opcode(mnemonic, mpu.ModeImmediate)
		if !ok {
			return nil, errors.Wrapf(ErrBadAddressMode, "%s immediate", mnemonic)
		}
		if value < -int64(a.cfg.Negative) || value > int64(a.cfg.ByteMask) {
			return nil, errors.Wrapf(ErrOverflow, "immediate %d", value)
		}
		return []uint16{uint16(op), uint16(value) & a.cfg.ByteMask}, nil
	}

	if value < 0 || value > int64(a.cfg.AddrMask) {
		return nil, errors.Wrapf(ErrOverflow, "address %d", value)
	}
	addr := uint32(value)

	zpMode, absMode, hasAbs := modesFor(syn)
	if addr <= uint32(a.cfg.ByteMask) {
		if op, ok := set.Opcode(mnemonic, zpMode); ok {
			return []uint16{uint16(op), uint16(addr)}, nil
		}
	}
	if hasAbs {
		if op, ok := set.Opcode(mnemonic, absMode); ok {
			return a.withWord(op, addr), nil
		}
	}
	return nil, errors.Wrapf(ErrBadAddressMode, "%s %s", mnemonic, rest)
}

func (a *Assembler) encodeImplied(mnemonic string, syn syntax) ([]uint16, error) {
	set := a.cfg.Set
	order := []mpu.AddrMode{mpu.ModeImplied, mpu.ModeAccumulator}
	if syn == synAccumulator {
		order = []mpu.AddrMode{mpu.ModeAccumulator}
	}
	for _, mode := range order {
		if op, ok := set.Opcode(mnemonic, mode); ok {
			return []uint16{uint16(op)}, nil
		}
	}
	return nil, errors.Wrapf(ErrBadAddressMode, "%s needs an operand", mnemonic)
}

func (a *Assembler) encodeBranch(op byte, target, pc uint32) ([]uint16, error) {
	offset := int64(target) - int64(pc+2)
	limit := int64(a.cfg.Negative)
	if offset < -limit || offset >= limit {
		return nil, errors.Wrapf(ErrOverflow, "branch to $%X out of range", target)
	}
	return []uint16{uint16(op), uint16(offset) & a.cfg.ByteMask}, nil
}

func (a *Assembler) withWord(op byte, addr uint32) []uint16 {
	return []uint16{
		uint16(op),
		uint16(addr) & a.cfg.ByteMask,
		uint16(addr>>a.cfg.ByteWidth) & a.cfg.ByteMask,
	}
}

func classify(operand string) (syntax, string) {
	upper := strings.ToUpper(operand)
	switch {
	case operand == "":
		return synNone, ""
	case upper == "A":
		return synAccumulator, ""
	case strings.HasPrefix(operand, "#"):
		return synImmediate, operand[1:]
	case strings.HasPrefix(operand, "(") && strings.HasSuffix(upper, ",X)"):
		return synIndirectX, operand[1 : len(operand)-3]
	case strings.HasPrefix(operand, "(") && strings.HasSuffix(upper, "),Y"):
		return synIndirectY, operand[1 : len(operand)-3]
	case strings.HasPrefix(operand, "(") && strings.HasSuffix(operand, ")"):
		return synIndirect, operand[1 : len(operand)-1]
	case strings.HasSuffix(upper, ",X"):
		return synDirectX, operand[:len(operand)-2]
	case strings.HasSuffix(upper, ",Y"):
		return synDirectY, operand[:len(operand)-2]
	}
	return synDirect, operand
}

// modesFor maps operand syntax to its zero page and absolute modes.
// (zp),Y has no absolute form.
func modesFor(syn syntax) (mpu.AddrMode, mpu.AddrMode, bool) {
	switch syn {
	case synDirectX:
		return mpu.ModeZeroPageX, mpu.ModeAbsoluteX, true
	case synDirectY:
		return mpu.ModeZeroPageY, mpu.ModeAbsoluteY, true
	case synIndirect:
		return mpu.ModeZeroPageIndirect, mpu.ModeIndirect, true
	case synIndirectX:
		return mpu.ModeIndirectX, mpu.ModeAbsoluteIndirectX, true
	case synIndirectY:
		return mpu.ModeIndirectY, 0, false
	}
	return mpu.ModeZeroPage, mpu.ModeAbsolute, true
}
