// addressing.go - Operand resolution for every addressing mode

package mpu

// OperandKind says where an operand lives.
type OperandKind uint8

const (
	OperandMemory OperandKind = iota
	OperandAccumulator
)

// Operand is the resolved target of an instruction: either the
// accumulator or a memory address.
type Operand struct {
	Kind OperandKind
	Addr uint32
}

func (cpu *CPU) operand() Operand {
	/*
	   operand resolves the current instruction's operand using the
	   addressing mode from its table entry. PC is advanced past the
	   operand bytes. Indexed modes add one cycle on a page crossing when
	   the instruction is page sensitive.
	*/

	switch cpu.mode {
	case ModeAccumulator, ModeImplied:
		return Operand{Kind: OperandAccumulator}
	case ModeImmediate:
		return Operand{Addr: cpu.immediateAddr()}
	case ModeZeroPage:
		return Operand{Addr: cpu.zeroPageAddr()}
	case ModeZeroPageX:
		return Operand{Addr: cpu.zeroPageIndexedAddr(cpu.X)}
	case ModeZeroPageY:
		return Operand{Addr: cpu.zeroPageIndexedAddr(cpu.Y)}
	case ModeAbsolute:
		return Operand{Addr: cpu.absoluteAddr()}
	case ModeAbsoluteX:
		return Operand{Addr: cpu.absoluteIndexedAddr(cpu.X)}
	case ModeAbsoluteY:
		return Operand{Addr: cpu.absoluteIndexedAddr(cpu.Y)}
	case ModeIndirect:
		return Operand{Addr: cpu.indirectAddr()}
	case ModeIndirectX:
		return Operand{Addr: cpu.indirectXAddr()}
	case ModeIndirectY:
		return Operand{Addr: cpu.indirectYAddr()}
	case ModeZeroPageIndirect:
		return Operand{Addr: cpu.zeroPageIndirectAddr()}
	case ModeAbsoluteIndirectX:
		return Operand{Addr: cpu.absoluteIndirectXAddr()}
	}
	return Operand{Kind: OperandAccumulator}
}

func (cpu *CPU) load(o Operand) uint16 {
	if o.Kind == OperandAccumulator {
		return cpu.A
	}
	return cpu.byteAt(o.Addr)
}

func (cpu *CPU) store(o Operand, value uint16) {
	if o.Kind == OperandAccumulator {
		cpu.A = value & cpu.cfg.ByteMask
		return
	}
	cpu.writeByte(o.Addr, value)
}

// fetch resolves the operand and returns its value.
func (cpu *CPU) fetch() uint16 {
	return cpu.load(cpu.operand())
}

// address resolves the operand and returns its effective address.
func (cpu *CPU) address() uint32 {
	return cpu.operand().Addr
}

// The operand is the cell at PC itself.
func (cpu *CPU) immediateAddr() uint32 {
	addr := cpu.PC
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask
	return addr
}

func (cpu *CPU) zeroPageAddr() uint32 {
	addr := uint32(cpu.byteAt(cpu.PC))
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask
	return addr
}

func (cpu *CPU) zeroPageIndexedAddr(index uint16) uint32 {
	addr := uint32((cpu.byteAt(cpu.PC) + index) & cpu.cfg.ByteMask)
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask
	return addr
}

func (cpu *CPU) absoluteAddr() uint32 {
	addr := cpu.wordAt(cpu.PC)
	cpu.PC = (cpu.PC + 2) & cpu.cfg.AddrMask
	return addr
}

func (cpu *CPU) absoluteIndexedAddr(index uint16) uint32 {
	base := cpu.absoluteAddr()
	addr := (base + uint32(index)) & cpu.cfg.AddrMask
	cpu.pageCross(base, addr)
	return addr
}

// indirectAddr follows a full-word pointer with no page wrap.
func (cpu *CPU) indirectAddr() uint32 {
	return cpu.wordAt(cpu.absoluteAddr())
}

func (cpu *CPU) indirectXAddr() uint32 {
	zp := cpu.byteAt(cpu.PC) + cpu.X
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask
	return cpu.zeroPageWordAt(zp)
}

func (cpu *CPU) indirectYAddr() uint32 {
	zp := cpu.byteAt(cpu.PC)
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask
	base := cpu.zeroPageWordAt(zp)
	addr := (base + uint32(cpu.Y)) & cpu.cfg.AddrMask
	cpu.pageCross(base, addr)
	return addr
}

func (cpu *CPU) zeroPageIndirectAddr() uint32 {
	zp := cpu.byteAt(cpu.PC)
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask
	return cpu.zeroPageWordAt(zp)
}

func (cpu *CPU) absoluteIndirectXAddr() uint32 {
	base := cpu.absoluteAddr()
	return cpu.wordAt((base + uint32(cpu.X)) & cpu.cfg.AddrMask)
}

func (cpu *CPU) pageCross(base, addr uint32) {
	if cpu.addcycles && base&cpu.cfg.AddrHighMask != addr&cpu.cfg.AddrHighMask {
		cpu.excycles++
	}
}

// branch takes a relative branch when cond holds; otherwise it skips the
// offset. A taken branch costs one cycle, two if it lands on another page.
func (cpu *CPU) branch(cond bool) {
	if !cond {
		cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask
		return
	}

	cpu.excycles++
	offset := cpu.byteAt(cpu.PC)
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask

	var target uint32
	if offset&cpu.cfg.Negative != 0 {
		target = cpu.PC - uint32(offset^cpu.cfg.ByteMask) - 1
	} else {
		target = cpu.PC + uint32(offset)
	}
	target &= cpu.cfg.AddrMask

	if cpu.PC&cpu.cfg.AddrHighMask != target&cpu.cfg.AddrHighMask {
		cpu.excycles++
	}
	cpu.PC = target
}
