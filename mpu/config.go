// config.go - Processor variant configuration

package mpu

import (
	"strings"
)

// Status register bit positions. OVERFLOW_FLAG and NEGATIVE_FLAG are the
// byte-wide positions; wider variants take theirs from Config.
const (
	CARRY_FLAG     = 0x01 // Carry flag
	ZERO_FLAG      = 0x02 // Zero flag
	INTERRUPT_FLAG = 0x04 // Interrupt disable
	DECIMAL_FLAG   = 0x08 // Decimal mode
	BREAK_FLAG     = 0x10 // Break command
	UNUSED_FLAG    = 0x20 // Unused (always 1)
	OVERFLOW_FLAG  = 0x40 // Overflow flag
	NEGATIVE_FLAG  = 0x80 // Negative flag
)

// Config describes one processor variant. Every mask is derived once in
// NewConfig and never changes afterwards.
type Config struct {
	Name      string
	ByteWidth uint
	AddrWidth uint

	ByteMask     uint16
	AddrMask     uint32
	AddrHighMask uint32
	SPBase       uint32

	Negative uint16
	Overflow uint16

	ResetVector uint32
	NMIVector   uint32
	IRQVector   uint32

	Set *InstructionSet
}

// NewConfig derives the masks and vector locations for a variant with
// the given register and address widths.
func NewConfig(name string, byteWidth, addrWidth uint, set *InstructionSet) Config {
	byteMask := uint16(uint32(1)<<byteWidth - 1)
	addrMask := uint32(uint64(1)<<addrWidth - 1)
	return Config{
		Name:         name,
		ByteWidth:    byteWidth,
		AddrWidth:    addrWidth,
		ByteMask:     byteMask,
		AddrMask:     addrMask,
		AddrHighMask: addrMask ^ uint32(byteMask),
		SPBase:       uint32(1) << byteWidth,
		Negative:     1 << (byteWidth - 1),
		Overflow:     1 << (byteWidth - 2),
		ResetVector:  addrMask - 3,
		NMIVector:    addrMask - 5,
		IRQVector:    addrMask - 1,
		Set:          set,
	}
}

var (
	NMOS6502  = NewConfig("6502", 8, 16, nmosInstructions)
	CMOS65C02 = NewConfig("65C02", 8, 16, cmosInstructions)
	Org16     = NewConfig("65Org16", 16, 32, nmosInstructions)
)

// Configs lists the built-in variants in display order.
func Configs() []Config {
	return []Config{NMOS6502, CMOS65C02, Org16}
}

// ConfigByName looks a variant up by name, ignoring case.
func ConfigByName(name string) (Config, bool) {
	for _, cfg := range Configs() {
		if strings.EqualFold(cfg.Name, name) {
			return cfg, true
		}
	}
	return Config{}, false
}

// AddrDigits is the number of hex digits needed to print an address.
func (c Config) AddrDigits() int { return int(c.AddrWidth+3) / 4 }

// ByteDigits is the number of hex digits needed to print a register.
func (c Config) ByteDigits() int { return int(c.ByteWidth+3) / 4 }
