// cpu.go - Instruction-level 6502 family processor core

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
cpu.go - 6502 Family Processor Core

This module implements an instruction-stepped core for the NMOS 6502, the
WDC 65C02 and the 16-bit 65Org16. All three share one engine: a variant is
a Config (register width, address width, derived masks and vector
locations) plus a 256-entry InstructionSet.

Execution Model:

    Step fetches the opcode at PC, advances PC, and runs the handler the
    table holds for that opcode. The handler resolves its operand through
    the addressing mode recorded in the same table entry, which in turn
    advances PC past the operand. Cycles grow by the table's base count
    plus any branch or page-crossing penalty picked up along the way.

    Memory is reached only through the Bus interface. If the bus also
    reports deferred errors (TakeErr), Step returns the first one raised
    during the instruction unmodified. The instruction still completes,
    using the stored cell for a failed read.

Register Width:

    Registers, the stack pointer and memory cells are ByteWidth bits. The
    address space is AddrWidth bits. Words are little-endian pairs of
    cells, so a 65Org16 word is 32 bits.
*/

package mpu

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotImplemented is returned by Step in debug mode when the fetched
// opcode has no defined behaviour.
var ErrNotImplemented = errors.New("opcode not implemented")

// Bus is the memory the processor executes against.
type Bus interface {
	Read(addr uint32) uint16
	Write(addr uint32, value uint16)
}

type errorSource interface {
	TakeErr() error
}

type CPU struct {
	PC     uint32
	A      uint16
	X      uint16
	Y      uint16
	SP     uint16
	P      uint16
	Cycles uint64

	// Waiting is set by WAI and cleared by the next interrupt.
	Waiting bool
	// Debug turns undefined opcodes into ErrNotImplemented instead of
	// skipping them.
	Debug bool

	Memory Bus

	cfg     Config
	ops     *InstructionSet
	startPC uint32

	opcode    byte
	opAddr    uint32
	mode      AddrMode
	addcycles bool
	excycles  uint64
	fault     error
}

// New creates a processor for cfg on bus and resets it so execution
// starts at startPC.
func New(cfg Config, bus Bus, startPC uint32) *CPU {
	cpu := &CPU{
		Memory:  bus,
		cfg:     cfg,
		ops:     cfg.Set,
		startPC: startPC & cfg.AddrMask,
	}
	cpu.Reset()
	return cpu
}

func (cpu *CPU) Config() Config { return cpu.cfg }

// Instruction returns the metadata for op on this variant.
func (cpu *CPU) Instruction(op byte) Instruction { return cpu.ops.Instruction(op) }

// StartPC is the address Reset returns to.
func (cpu *CPU) StartPC() uint32 { return cpu.startPC }

func (cpu *CPU) SetStartPC(pc uint32) { cpu.startPC = pc & cpu.cfg.AddrMask }

func (cpu *CPU) Reset() {
	/*
	   Reset returns every register to its power-on value. Memory is left
	   alone.

	   Register State:
	   - PC: start address given to New
	   - SP: top of the stack page
	   - A, X, Y: zero
	   - P: BREAK and UNUSED set
	   - Cycles: zero
	*/

	cpu.PC = cpu.startPC
	cpu.SP = cpu.cfg.ByteMask
	cpu.A, cpu.X, cpu.Y = 0, 0, 0
	cpu.P = BREAK_FLAG | UNUSED_FLAG
	cpu.Cycles = 0
	cpu.Waiting = false
	cpu.fault = nil
}

// ResetFromVector resets and then loads PC from the reset vector.
func (cpu *CPU) ResetFromVector() {
	cpu.Reset()
	cpu.PC = cpu.wordAt(cpu.cfg.ResetVector)
}

func (cpu *CPU) Step() error {
	/*
	   Step executes exactly one instruction.

	   Sequence:
	   1. A waiting processor burns one cycle and returns
	   2. Fetch the opcode at PC and advance PC
	   3. Run the handler, which consumes its operand bytes
	   4. Mask PC and add base plus extra cycles
	   5. Collect any deferred bus error

	   An error left pending by accesses made outside Step is discarded
	   first so it is never charged to this instruction.
	*/

	cpu.dropBusErr()
	if cpu.Waiting {
		cpu.Cycles++
		return cpu.busErr()
	}

	cpu.opAddr = cpu.PC
	cpu.opcode = byte(cpu.byteAt(cpu.PC))
	cpu.PC = (cpu.PC + 1) & cpu.cfg.AddrMask

	ins := &cpu.ops.ops[cpu.opcode]
	cpu.mode = ins.Mode
	cpu.addcycles = ins.PageCycle
	cpu.excycles = 0

	ins.exec(cpu)

	cpu.PC &= cpu.cfg.AddrMask
	cpu.Cycles += uint64(ins.Cycles) + cpu.excycles

	if cpu.fault != nil {
		err := cpu.fault
		cpu.fault = nil
		return err
	}
	return cpu.busErr()
}

// Run steps until the processor has executed n instructions or an error
// occurs.
func (cpu *CPU) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := cpu.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (cpu *CPU) busErr() error {
	if src, ok := cpu.Memory.(errorSource); ok {
		return src.TakeErr()
	}
	return nil
}

func (cpu *CPU) dropBusErr() {
	if src, ok := cpu.Memory.(errorSource); ok {
		src.TakeErr()
	}
}

// IRQ raises a maskable interrupt. It is ignored while INTERRUPT_FLAG is
// set, although it still releases a WAI.
func (cpu *CPU) IRQ() {
	cpu.Waiting = false
	if cpu.P&INTERRUPT_FLAG != 0 {
		return
	}
	cpu.interrupt(cpu.cfg.IRQVector)
}

// NMI raises a non-maskable interrupt.
func (cpu *CPU) NMI() {
	cpu.Waiting = false
	cpu.interrupt(cpu.cfg.NMIVector)
}

func (cpu *CPU) interrupt(vector uint32) {
	cpu.pushWord(cpu.PC)
	cpu.P &^= BREAK_FLAG
	cpu.push(cpu.P | UNUSED_FLAG)
	cpu.P |= INTERRUPT_FLAG
	cpu.PC = cpu.wordAt(vector)
	cpu.Cycles += 7
}

// FlagString renders P as one character per bit, most significant first.
func (cpu *CPU) FlagString() string {
	return fmt.Sprintf("%0*b", int(cpu.cfg.ByteWidth), cpu.P&cpu.cfg.ByteMask)
}

// FlagHeader names the bits FlagString prints.
func (cpu *CPU) FlagHeader() string {
	return "NV" + strings.Repeat("-", int(cpu.cfg.ByteWidth)-7) + "BDIZC"
}

func (cpu *CPU) String() string {
	ad, bd := cpu.cfg.AddrDigits(), cpu.cfg.ByteDigits()
	name := cpu.cfg.Name
	header := fmt.Sprintf("%s %-*s %-*s %-*s %-*s %-*s %s",
		name, ad-1, "PC", bd, "AC", bd, "XR", bd, "YR", bd, "SP", cpu.FlagHeader())
	values := fmt.Sprintf("%s: %0*x %0*x %0*x %0*x %0*x %s",
		name, ad, cpu.PC, bd, cpu.A, bd, cpu.X, bd, cpu.Y, bd, cpu.SP, cpu.FlagString())
	return header + "\n" + values
}

// Register access by name, for the monitor and script bindings.

func (cpu *CPU) Register(name string) (uint32, bool) {
	switch strings.ToUpper(name) {
	case "PC":
		return cpu.PC, true
	case "A", "AC":
		return uint32(cpu.A), true
	case "X", "XR":
		return uint32(cpu.X), true
	case "Y", "YR":
		return uint32(cpu.Y), true
	case "SP":
		return uint32(cpu.SP), true
	case "P", "SR", "FLAGS":
		return uint32(cpu.P), true
	}
	return 0, false
}

func (cpu *CPU) SetRegister(name string, value uint32) bool {
	bm := uint32(cpu.cfg.ByteMask)
	switch strings.ToUpper(name) {
	case "PC":
		cpu.PC = value & cpu.cfg.AddrMask
	case "A", "AC":
		cpu.A = uint16(value & bm)
	case "X", "XR":
		cpu.X = uint16(value & bm)
	case "Y", "YR":
		cpu.Y = uint16(value & bm)
	case "SP":
		cpu.SP = uint16(value & bm)
	case "P", "SR", "FLAGS":
		cpu.P = uint16(value&bm) | UNUSED_FLAG
	default:
		return false
	}
	return true
}

// RegisterNames lists the names Register accepts, in display order.
func RegisterNames() []string {
	return []string{"PC", "A", "X", "Y", "SP", "P"}
}

// Memory access helpers. All addresses are masked to the address space
// and all values to the register width.

func (cpu *CPU) byteAt(addr uint32) uint16 {
	return cpu.Memory.Read(addr&cpu.cfg.AddrMask) & cpu.cfg.ByteMask
}

func (cpu *CPU) writeByte(addr uint32, value uint16) {
	cpu.Memory.Write(addr&cpu.cfg.AddrMask, value&cpu.cfg.ByteMask)
}

func (cpu *CPU) wordAt(addr uint32) uint32 {
	lo := uint32(cpu.byteAt(addr))
	hi := uint32(cpu.byteAt(addr + 1))
	return (lo | hi<<cpu.cfg.ByteWidth) & cpu.cfg.AddrMask
}

// wrapAt reads a word whose high byte comes from the same page as the
// low byte, reproducing the NMOS indirect jump fetch.
func (cpu *CPU) wrapAt(addr uint32) uint32 {
	next := (addr & cpu.cfg.AddrHighMask) | ((addr + 1) & uint32(cpu.cfg.ByteMask))
	lo := uint32(cpu.byteAt(addr))
	hi := uint32(cpu.byteAt(next))
	return (lo | hi<<cpu.cfg.ByteWidth) & cpu.cfg.AddrMask
}

// zeroPageWordAt reads a pointer that wraps inside the zero page.
func (cpu *CPU) zeroPageWordAt(zp uint16) uint32 {
	bm := cpu.cfg.ByteMask
	lo := uint32(cpu.byteAt(uint32(zp & bm)))
	hi := uint32(cpu.byteAt(uint32((zp + 1) & bm)))
	return (lo | hi<<cpu.cfg.ByteWidth) & cpu.cfg.AddrMask
}

// Stack. The stack lives in the page at SPBase and grows downwards.

func (cpu *CPU) push(value uint16) {
	cpu.writeByte(cpu.cfg.SPBase+uint32(cpu.SP), value)
	cpu.SP = (cpu.SP - 1) & cpu.cfg.ByteMask
}

func (cpu *CPU) pop() uint16 {
	cpu.SP = (cpu.SP + 1) & cpu.cfg.ByteMask
	return cpu.byteAt(cpu.cfg.SPBase + uint32(cpu.SP))
}

func (cpu *CPU) pushWord(value uint32) {
	cpu.push(uint16(value>>cpu.cfg.ByteWidth) & cpu.cfg.ByteMask)
	cpu.push(uint16(value) & cpu.cfg.ByteMask)
}

func (cpu *CPU) popWord() uint32 {
	lo := uint32(cpu.pop())
	hi := uint32(cpu.pop())
	return (lo | hi<<cpu.cfg.ByteWidth) & cpu.cfg.AddrMask
}

// Flag helpers.

func (cpu *CPU) setFlag(flag uint16, on bool) {
	if on {
		cpu.P |= flag
	} else {
		cpu.P &^= flag
	}
}

func (cpu *CPU) updateNZ(value uint16) {
	cpu.P &^= ZERO_FLAG | cpu.cfg.Negative
	if value == 0 {
		cpu.P |= ZERO_FLAG
	} else {
		cpu.P |= value & cpu.cfg.Negative
	}
}
