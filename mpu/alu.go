// alu.go - Instruction handlers shared by every variant

package mpu

import "github.com/pkg/errors"

// Loads and stores

func (cpu *CPU) opLDA() { cpu.A = cpu.fetch(); cpu.updateNZ(cpu.A) }
func (cpu *CPU) opLDX() { cpu.X = cpu.fetch(); cpu.updateNZ(cpu.X) }
func (cpu *CPU) opLDY() { cpu.Y = cpu.fetch(); cpu.updateNZ(cpu.Y) }
func (cpu *CPU) opSTA() { cpu.writeByte(cpu.address(), cpu.A) }
func (cpu *CPU) opSTX() { cpu.writeByte(cpu.address(), cpu.X) }
func (cpu *CPU) opSTY() { cpu.writeByte(cpu.address(), cpu.Y) }
func (cpu *CPU) opSTZ() { cpu.writeByte(cpu.address(), 0) }

// Logic

func (cpu *CPU) opORA() { cpu.A |= cpu.fetch(); cpu.updateNZ(cpu.A) }
func (cpu *CPU) opAND() { cpu.A &= cpu.fetch(); cpu.updateNZ(cpu.A) }
func (cpu *CPU) opEOR() { cpu.A ^= cpu.fetch(); cpu.updateNZ(cpu.A) }

func (cpu *CPU) opBIT() {
	value := cpu.fetch()
	cpu.P &^= ZERO_FLAG | cpu.cfg.Negative | cpu.cfg.Overflow
	if cpu.A&value == 0 {
		cpu.P |= ZERO_FLAG
	}
	cpu.P |= value & (cpu.cfg.Negative | cpu.cfg.Overflow)
}

// opBITImmediate only touches ZERO_FLAG.
func (cpu *CPU) opBITImmediate() {
	cpu.setFlag(ZERO_FLAG, cpu.A&cpu.fetch() == 0)
}

func (cpu *CPU) opTSB() {
	o := cpu.operand()
	value := cpu.load(o)
	cpu.setFlag(ZERO_FLAG, cpu.A&value == 0)
	cpu.store(o, value|cpu.A)
}

func (cpu *CPU) opTRB() {
	o := cpu.operand()
	value := cpu.load(o)
	cpu.setFlag(ZERO_FLAG, cpu.A&value == 0)
	cpu.store(o, value&^cpu.A)
}

// Arithmetic

func (cpu *CPU) opADC() {
	/*
	   opADC adds the operand and carry to A.

	   Binary Mode:
	   - Carry: set when the sum exceeds the register width
	   - Overflow: operands share a sign the result does not
	   - Negative, Zero: from the result

	   Decimal Mode:
	   Each nibble is added with a decimal carry into the next. N, Z and V
	   come from the unadjusted sum, as on the NMOS part.
	*/

	data := cpu.fetch()
	if cpu.P&DECIMAL_FLAG != 0 {
		cpu.adcDecimal(data)
		return
	}

	neg, mask := cpu.cfg.Negative, cpu.cfg.ByteMask
	sum := uint32(cpu.A) + uint32(data) + uint32(cpu.P&CARRY_FLAG)
	result := uint16(sum) & mask

	cpu.setFlag(cpu.cfg.Overflow, ^(cpu.A^data)&(cpu.A^result)&neg != 0)
	cpu.setFlag(CARRY_FLAG, sum > uint32(mask))
	cpu.A = result
	cpu.updateNZ(result)
}

func (cpu *CPU) adcDecimal(data uint16) {
	carry := cpu.P & CARRY_FLAG
	var alu, result uint16
	for shift := uint(0); shift < cpu.cfg.ByteWidth; shift += 4 {
		n := (cpu.A>>shift)&0xF + (data>>shift)&0xF + carry
		adjust := uint16(0)
		carry = 0
		if n > 9 {
			adjust, carry = 6, 1
		}
		alu |= (n & 0xF) << shift
		result |= ((n + adjust) & 0xF) << shift
	}

	cpu.updateNZ(alu)
	cpu.setFlag(CARRY_FLAG, carry != 0)
	cpu.setFlag(cpu.cfg.Overflow, ^(cpu.A^data)&(cpu.A^alu)&cpu.cfg.Negative != 0)
	cpu.A = result
}

func (cpu *CPU) opSBC() {
	/*
	   opSBC subtracts the operand and the inverted carry from A.

	   Binary mode adds the one's complement of the operand. Decimal mode
	   computes the same binary sum for N, Z, V and C, then corrects each
	   nibble that borrowed by ten.
	*/

	data := cpu.fetch()
	neg, mask := cpu.cfg.Negative, cpu.cfg.ByteMask
	inverted := ^data & mask
	sum := uint32(cpu.A) + uint32(inverted) + uint32(cpu.P&CARRY_FLAG)
	alu := uint16(sum) & mask

	result := alu
	if cpu.P&DECIMAL_FLAG != 0 {
		result = 0
		carry := cpu.P & CARRY_FLAG
		for shift := uint(0); shift < cpu.cfg.ByteWidth; shift += 4 {
			s := (cpu.A>>shift)&0xF + (inverted>>shift)&0xF + carry
			adjust := uint16(0)
			if s <= 0xF {
				adjust, carry = 10, 0
			} else {
				carry = 1
			}
			result |= ((alu>>shift)&0xF + adjust) & 0xF << shift
		}
	}

	cpu.setFlag(cpu.cfg.Overflow, (cpu.A^data)&(cpu.A^alu)&neg != 0)
	cpu.setFlag(CARRY_FLAG, sum > uint32(mask))
	cpu.updateNZ(alu)
	cpu.A = result
}

func (cpu *CPU) compare(reg uint16) {
	value := cpu.fetch()
	cpu.setFlag(CARRY_FLAG, reg >= value)
	cpu.setFlag(ZERO_FLAG, reg == value)
	cpu.P &^= cpu.cfg.Negative
	cpu.P |= (reg - value) & cpu.cfg.Negative
}

func (cpu *CPU) opCMP() { cpu.compare(cpu.A) }
func (cpu *CPU) opCPX() { cpu.compare(cpu.X) }
func (cpu *CPU) opCPY() { cpu.compare(cpu.Y) }

// Read-modify-write. These work on the accumulator or memory depending on
// the addressing mode.

func (cpu *CPU) opASL() {
	o := cpu.operand()
	value := cpu.load(o)
	cpu.setFlag(CARRY_FLAG, value&cpu.cfg.Negative != 0)
	value = (value << 1) & cpu.cfg.ByteMask
	cpu.updateNZ(value)
	cpu.store(o, value)
}

func (cpu *CPU) opLSR() {
	o := cpu.operand()
	value := cpu.load(o)
	cpu.setFlag(CARRY_FLAG, value&1 != 0)
	value >>= 1
	cpu.updateNZ(value)
	cpu.store(o, value)
}

func (cpu *CPU) opROL() {
	o := cpu.operand()
	value := cpu.load(o)
	carryIn := cpu.P & CARRY_FLAG
	cpu.setFlag(CARRY_FLAG, value&cpu.cfg.Negative != 0)
	value = ((value << 1) | carryIn) & cpu.cfg.ByteMask
	cpu.updateNZ(value)
	cpu.store(o, value)
}

func (cpu *CPU) opROR() {
	o := cpu.operand()
	value := cpu.load(o)
	carryIn := cpu.P&CARRY_FLAG != 0
	cpu.setFlag(CARRY_FLAG, value&1 != 0)
	value >>= 1
	if carryIn {
		value |= cpu.cfg.Negative
	}
	cpu.updateNZ(value)
	cpu.store(o, value)
}

func (cpu *CPU) opINC() {
	o := cpu.operand()
	value := (cpu.load(o) + 1) & cpu.cfg.ByteMask
	cpu.updateNZ(value)
	cpu.store(o, value)
}

func (cpu *CPU) opDEC() {
	o := cpu.operand()
	value := (cpu.load(o) - 1) & cpu.cfg.ByteMask
	cpu.updateNZ(value)
	cpu.store(o, value)
}

// Register increments and transfers

func (cpu *CPU) opINX() { cpu.X = (cpu.X + 1) & cpu.cfg.ByteMask; cpu.updateNZ(cpu.X) }
func (cpu *CPU) opINY() { cpu.Y = (cpu.Y + 1) & cpu.cfg.ByteMask; cpu.updateNZ(cpu.Y) }
func (cpu *CPU) opDEX() { cpu.X = (cpu.X - 1) & cpu.cfg.ByteMask; cpu.updateNZ(cpu.X) }
func (cpu *CPU) opDEY() { cpu.Y = (cpu.Y - 1) & cpu.cfg.ByteMask; cpu.updateNZ(cpu.Y) }

func (cpu *CPU) opTAX() { cpu.X = cpu.A; cpu.updateNZ(cpu.X) }
func (cpu *CPU) opTXA() { cpu.A = cpu.X; cpu.updateNZ(cpu.A) }
func (cpu *CPU) opTAY() { cpu.Y = cpu.A; cpu.updateNZ(cpu.Y) }
func (cpu *CPU) opTYA() { cpu.A = cpu.Y; cpu.updateNZ(cpu.A) }
func (cpu *CPU) opTSX() { cpu.X = cpu.SP; cpu.updateNZ(cpu.X) }
func (cpu *CPU) opTXS() { cpu.SP = cpu.X }

// Flags

func (cpu *CPU) opCLC() { cpu.P &^= CARRY_FLAG }
func (cpu *CPU) opSEC() { cpu.P |= CARRY_FLAG }
func (cpu *CPU) opCLI() { cpu.P &^= INTERRUPT_FLAG }
func (cpu *CPU) opSEI() { cpu.P |= INTERRUPT_FLAG }
func (cpu *CPU) opCLD() { cpu.P &^= DECIMAL_FLAG }
func (cpu *CPU) opSED() { cpu.P |= DECIMAL_FLAG }
func (cpu *CPU) opCLV() { cpu.P &^= cpu.cfg.Overflow }

// Stack

func (cpu *CPU) opPHA() { cpu.push(cpu.A) }
func (cpu *CPU) opPHX() { cpu.push(cpu.X) }
func (cpu *CPU) opPHY() { cpu.push(cpu.Y) }
func (cpu *CPU) opPHP() { cpu.push(cpu.P | BREAK_FLAG | UNUSED_FLAG) }
func (cpu *CPU) opPLA() { cpu.A = cpu.pop(); cpu.updateNZ(cpu.A) }
func (cpu *CPU) opPLX() { cpu.X = cpu.pop(); cpu.updateNZ(cpu.X) }
func (cpu *CPU) opPLY() { cpu.Y = cpu.pop(); cpu.updateNZ(cpu.Y) }
func (cpu *CPU) opPLP() { cpu.P = cpu.pop() | BREAK_FLAG | UNUSED_FLAG }

// Branches

func (cpu *CPU) opBPL() { cpu.branch(cpu.P&cpu.cfg.Negative == 0) }
func (cpu *CPU) opBMI() { cpu.branch(cpu.P&cpu.cfg.Negative != 0) }
func (cpu *CPU) opBVC() { cpu.branch(cpu.P&cpu.cfg.Overflow == 0) }
func (cpu *CPU) opBVS() { cpu.branch(cpu.P&cpu.cfg.Overflow != 0) }
func (cpu *CPU) opBCC() { cpu.branch(cpu.P&CARRY_FLAG == 0) }
func (cpu *CPU) opBCS() { cpu.branch(cpu.P&CARRY_FLAG != 0) }
func (cpu *CPU) opBNE() { cpu.branch(cpu.P&ZERO_FLAG == 0) }
func (cpu *CPU) opBEQ() { cpu.branch(cpu.P&ZERO_FLAG != 0) }
func (cpu *CPU) opBRA() { cpu.branch(true) }

// Control flow

func (cpu *CPU) opBRK() {
	/*
	   opBRK pushes the address two past the opcode, then the status
	   register with BREAK set, masks interrupts and jumps through the
	   IRQ vector.
	*/

	cpu.pushWord((cpu.PC + 1) & cpu.cfg.AddrMask)
	cpu.P |= BREAK_FLAG
	cpu.push(cpu.P | BREAK_FLAG | UNUSED_FLAG)
	cpu.P |= INTERRUPT_FLAG
	cpu.PC = cpu.wordAt(cpu.cfg.IRQVector)
}

func (cpu *CPU) opRTI() {
	cpu.P = cpu.pop() | BREAK_FLAG | UNUSED_FLAG
	cpu.PC = cpu.popWord()
}

func (cpu *CPU) opJSR() {
	target := cpu.address()
	cpu.pushWord((cpu.PC - 1) & cpu.cfg.AddrMask)
	cpu.PC = target
}

func (cpu *CPU) opRTS() {
	cpu.PC = (cpu.popWord() + 1) & cpu.cfg.AddrMask
}

func (cpu *CPU) opJMP() { cpu.PC = cpu.address() }

// opJMPIndirectWrapped keeps the NMOS bug: a pointer at the end of a page
// takes its high byte from the start of that same page.
func (cpu *CPU) opJMPIndirectWrapped() {
	cpu.PC = cpu.wrapAt(cpu.absoluteAddr())
}

func (cpu *CPU) opNOP() {}

func (cpu *CPU) opWAI() { cpu.Waiting = true }

func (cpu *CPU) opNotImplemented() {
	if cpu.Debug {
		cpu.fault = errors.Wrapf(ErrNotImplemented, "%s opcode $%02X at $%0*X",
			cpu.cfg.Name, cpu.opcode, cpu.cfg.AddrDigits(), cpu.opAddr)
		cpu.PC = cpu.opAddr
		return
	}
	cpu.PC++
}
