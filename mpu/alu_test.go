package mpu

import "testing"

func toBCD(n int) uint16 { return uint16(n/10<<4 | n%10) }

func Test6502ADCBinaryFlags(t *testing.T) {
	tests := []struct {
		name    string
		a, m    uint16
		carry   bool
		want    uint16
		set     uint16
		cleared uint16
	}{
		{"simple", 0x01, 0x01, true, 0x03, 0, CARRY_FLAG | OVERFLOW_FLAG | ZERO_FLAG | NEGATIVE_FLAG},
		{"signed overflow", 0x50, 0x50, false, 0xA0, OVERFLOW_FLAG | NEGATIVE_FLAG, CARRY_FLAG | ZERO_FLAG},
		{"carry and zero", 0x80, 0x80, false, 0x00, CARRY_FLAG | OVERFLOW_FLAG | ZERO_FLAG, NEGATIVE_FLAG},
		{"carry no overflow", 0xFF, 0x01, false, 0x00, CARRY_FLAG | ZERO_FLAG, OVERFLOW_FLAG | NEGATIVE_FLAG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := new6502TestRig()
			rig.load(0x0200, 0x69, byte(tt.m)) // ADC #m
			rig.cpu.A = tt.a
			rig.cpu.setFlag(CARRY_FLAG, tt.carry)
			rig.step(t)
			if rig.cpu.A != tt.want {
				t.Fatalf("A=0x%02X, want 0x%02X", rig.cpu.A, tt.want)
			}
			rig.requireFlags(t, tt.set, tt.cleared)
		})
	}
}

func Test6502SBCBinaryFlags(t *testing.T) {
	tests := []struct {
		name    string
		a, m    uint16
		carry   bool
		want    uint16
		set     uint16
		cleared uint16
	}{
		{"no borrow", 0x05, 0x03, true, 0x02, CARRY_FLAG, OVERFLOW_FLAG | ZERO_FLAG | NEGATIVE_FLAG},
		{"borrow in", 0x05, 0x03, false, 0x01, CARRY_FLAG, OVERFLOW_FLAG | ZERO_FLAG},
		{"borrow out", 0x50, 0xF0, true, 0x60, 0, CARRY_FLAG | OVERFLOW_FLAG},
		{"signed overflow", 0x50, 0xB0, true, 0xA0, OVERFLOW_FLAG | NEGATIVE_FLAG, CARRY_FLAG},
		{"zero", 0x42, 0x42, true, 0x00, CARRY_FLAG | ZERO_FLAG, NEGATIVE_FLAG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := new6502TestRig()
			rig.load(0x0200, 0xE9, byte(tt.m)) // SBC #m
			rig.cpu.A = tt.a
			rig.cpu.setFlag(CARRY_FLAG, tt.carry)
			rig.step(t)
			if rig.cpu.A != tt.want {
				t.Fatalf("A=0x%02X, want 0x%02X", rig.cpu.A, tt.want)
			}
			rig.requireFlags(t, tt.set, tt.cleared)
		})
	}
}

func Test6502DecimalExamples(t *testing.T) {
	tests := []struct {
		name  string
		op    byte
		a, m  uint16
		carry bool
		want  uint16
		cout  bool
	}{
		{"adc 58+46", 0x69, 0x58, 0x46, false, 0x04, true},
		{"adc 12+34", 0x69, 0x12, 0x34, false, 0x46, false},
		{"adc 99+99+1", 0x69, 0x99, 0x99, true, 0x99, true},
		{"sbc 46-12", 0xE9, 0x46, 0x12, true, 0x34, true},
		{"sbc 40-13", 0xE9, 0x40, 0x13, true, 0x27, true},
		{"sbc 00-01", 0xE9, 0x00, 0x01, true, 0x99, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := new6502TestRig()
			rig.load(0x0200, tt.op, byte(tt.m))
			rig.cpu.A = tt.a
			rig.cpu.P |= DECIMAL_FLAG
			rig.cpu.setFlag(CARRY_FLAG, tt.carry)
			rig.step(t)
			if rig.cpu.A != tt.want {
				t.Fatalf("A=0x%02X, want 0x%02X", rig.cpu.A, tt.want)
			}
			if got := rig.cpu.P&CARRY_FLAG != 0; got != tt.cout {
				t.Fatalf("carry=%v, want %v", got, tt.cout)
			}
		})
	}
}

func Test6502DecimalIsValidBCD(t *testing.T) {
	rig := new6502TestRig()
	for a := 0; a < 100; a++ {
		for b := 0; b < 100; b++ {
			for c := 0; c < 2; c++ {
				rig.load(0x0200, 0x69, byte(toBCD(b)))
				rig.cpu.A = toBCD(a)
				rig.cpu.P = UNUSED_FLAG | DECIMAL_FLAG | uint16(c)
				rig.step(t)
				sum := a + b + c
				if rig.cpu.A != toBCD(sum%100) || (rig.cpu.P&CARRY_FLAG != 0) != (sum > 99) {
					t.Fatalf("ADC %d+%d+%d: A=0x%02X C=%v", a, b, c, rig.cpu.A, rig.cpu.P&CARRY_FLAG != 0)
				}

				rig.load(0x0200, 0xE9, byte(toBCD(b)))
				rig.cpu.A = toBCD(a)
				rig.cpu.P = UNUSED_FLAG | DECIMAL_FLAG | uint16(c)
				rig.step(t)
				diff := a - b - (1 - c)
				want := (diff + 100) % 100
				if rig.cpu.A != toBCD(want) || (rig.cpu.P&CARRY_FLAG != 0) != (diff >= 0) {
					t.Fatalf("SBC %d-%d-%d: A=0x%02X C=%v", a, b, 1-c, rig.cpu.A, rig.cpu.P&CARRY_FLAG != 0)
				}
			}
		}
	}
}

func Test6502ROLRORRoundTrip(t *testing.T) {
	rig := new6502TestRig()
	for v := 0; v < 256; v++ {
		for c := 0; c < 2; c++ {
			rig.load(0x0200, 0x2A, 0x6A) // ROL A, ROR A
			rig.cpu.A = uint16(v)
			rig.cpu.P = UNUSED_FLAG | uint16(c)
			rig.steps(t, 2)
			if rig.cpu.A != uint16(v) || rig.cpu.P&CARRY_FLAG != uint16(c) {
				t.Fatalf("v=0x%02X c=%d: A=0x%02X C=%d", v, c, rig.cpu.A, rig.cpu.P&CARRY_FLAG)
			}
		}
	}
}

func Test6502ShiftsOnMemory(t *testing.T) {
	tests := []struct {
		name  string
		op    byte
		in    uint16
		carry bool
		want  uint16
		cout  bool
	}{
		{"asl", 0x06, 0x81, false, 0x02, true},
		{"lsr", 0x46, 0x01, false, 0x00, true},
		{"rol", 0x26, 0x40, true, 0x81, false},
		{"ror", 0x66, 0x02, true, 0x81, false},
		{"inc wraps", 0xE6, 0xFF, false, 0x00, false},
		{"dec wraps", 0xC6, 0x00, false, 0xFF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := new6502TestRig()
			rig.load(0x0200, tt.op, 0x10)
			rig.mem.Poke(0x10, tt.in)
			rig.cpu.setFlag(CARRY_FLAG, tt.carry)
			rig.step(t)
			if got := rig.mem.Peek(0x10); got != tt.want {
				t.Fatalf("mem[0x10]=0x%02X, want 0x%02X", got, tt.want)
			}
			if got := rig.cpu.P&CARRY_FLAG != 0; got != tt.cout {
				t.Fatalf("carry=%v, want %v", got, tt.cout)
			}
		})
	}
}

func Test6502CompareFlags(t *testing.T) {
	tests := []struct {
		reg, m  uint16
		set     uint16
		cleared uint16
	}{
		{0x40, 0x40, CARRY_FLAG | ZERO_FLAG, NEGATIVE_FLAG},
		{0x41, 0x40, CARRY_FLAG, ZERO_FLAG | NEGATIVE_FLAG},
		{0x01, 0x02, NEGATIVE_FLAG, CARRY_FLAG | ZERO_FLAG},
	}
	for _, tt := range tests {
		for _, op := range []byte{0xC9, 0xE0, 0xC0} { // CMP, CPX, CPY immediate
			rig := new6502TestRig()
			rig.load(0x0200, op, byte(tt.m))
			rig.cpu.A, rig.cpu.X, rig.cpu.Y = tt.reg, tt.reg, tt.reg
			rig.step(t)
			rig.requireFlags(t, tt.set, tt.cleared)
		}
	}
}

func Test6502BIT(t *testing.T) {
	rig := new6502TestRig()
	rig.load(0x0200, 0x24, 0x10) // BIT $10
	rig.mem.Poke(0x10, 0xC0)
	rig.cpu.A = 0x01
	rig.step(t)
	rig.requireFlags(t, ZERO_FLAG|NEGATIVE_FLAG|OVERFLOW_FLAG, 0)
	if rig.cpu.A != 0x01 {
		t.Fatalf("BIT changed A to 0x%02X", rig.cpu.A)
	}
}

func Test6502TransfersAndTXS(t *testing.T) {
	rig := new6502TestRig()
	rig.load(0x0200, 0xA2, 0x00, 0x9A, 0xBA) // LDX #0, TXS, TSX
	rig.steps(t, 1)
	rig.cpu.P &^= ZERO_FLAG
	rig.step(t) // TXS leaves flags alone
	if rig.cpu.SP != 0 {
		t.Fatalf("SP=0x%02X, want 0", rig.cpu.SP)
	}
	if rig.cpu.P&ZERO_FLAG != 0 {
		t.Fatal("TXS must not change flags")
	}
	rig.step(t)
	rig.requireFlags(t, ZERO_FLAG, 0)
}

func Test6502StackDiscipline(t *testing.T) {
	rig := new6502TestRig()
	// LDA #$5A, PHA, LDA #0, PLA, PHP, PLP
	rig.load(0x0200, 0xA9, 0x5A, 0x48, 0xA9, 0x00, 0x68, 0x08, 0x28)
	rig.steps(t, 2)
	if rig.cpu.SP != 0xFE || rig.mem.Peek(0x01FF) != 0x5A {
		t.Fatalf("after PHA SP=0x%02X stack=0x%02X", rig.cpu.SP, rig.mem.Peek(0x01FF))
	}
	rig.steps(t, 2)
	if rig.cpu.A != 0x5A || rig.cpu.SP != 0xFF {
		t.Fatalf("after PLA A=0x%02X SP=0x%02X", rig.cpu.A, rig.cpu.SP)
	}

	rig.cpu.P = CARRY_FLAG
	rig.step(t) // PHP
	if got := rig.mem.Peek(0x01FF); got != CARRY_FLAG|BREAK_FLAG|UNUSED_FLAG {
		t.Fatalf("pushed P=0x%02X, want 0x31", got)
	}
	rig.mem.Poke(0x01FF, 0x00)
	rig.step(t) // PLP
	if rig.cpu.P != BREAK_FLAG|UNUSED_FLAG {
		t.Fatalf("P=0x%02X after PLP, want 0x30", rig.cpu.P)
	}
}

func Test6502StackWraps(t *testing.T) {
	rig := new6502TestRig()
	rig.load(0x0200, 0x48, 0x68) // PHA, PLA
	rig.cpu.SP = 0x00
	rig.cpu.A = 0x77
	rig.step(t)
	if rig.cpu.SP != 0xFF || rig.mem.Peek(0x0100) != 0x77 {
		t.Fatalf("SP=0x%02X mem[0x100]=0x%02X", rig.cpu.SP, rig.mem.Peek(0x0100))
	}
	rig.step(t)
	if rig.cpu.SP != 0x00 || rig.cpu.A != 0x77 {
		t.Fatalf("SP=0x%02X A=0x%02X", rig.cpu.SP, rig.cpu.A)
	}
}

func Test6502ZeroPageIndexWraps(t *testing.T) {
	rig := new6502TestRig()
	rig.load(0x0200, 0xB5, 0xF0) // LDA $F0,X
	rig.cpu.X = 0x20
	rig.mem.Poke(0x0010, 0x99)
	rig.mem.Poke(0x0110, 0x11)
	rig.step(t)
	if rig.cpu.A != 0x99 {
		t.Fatalf("A=0x%02X, want 0x99 from $0010", rig.cpu.A)
	}
}

func Test6502IndirectXPointerWraps(t *testing.T) {
	rig := new6502TestRig()
	rig.load(0x0200, 0xA1, 0xFE) // LDA ($FE,X)
	rig.cpu.X = 0x01
	rig.mem.Poke(0x00FF, 0x34)
	rig.mem.Poke(0x0000, 0x12)
	rig.mem.Poke(0x1234, 0x5E)
	rig.step(t)
	if rig.cpu.A != 0x5E {
		t.Fatalf("A=0x%02X, want 0x5E", rig.cpu.A)
	}
}

func Test6502PageCrossCycles(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		x, y    uint16
		zp      []uint16
		cycles  uint64
	}{
		{"lda abs,x same page", []byte{0xBD, 0x00, 0x10}, 1, 0, nil, 4},
		{"lda abs,x crossing", []byte{0xBD, 0xFF, 0x10}, 1, 0, nil, 5},
		{"lda abs,y crossing", []byte{0xB9, 0xFF, 0x10}, 0, 1, nil, 5},
		{"sta abs,x crossing", []byte{0x9D, 0xFF, 0x10}, 1, 0, nil, 5},
		{"sta abs,x same page", []byte{0x9D, 0x00, 0x10}, 1, 0, nil, 5},
		{"lda (zp),y same page", []byte{0xB1, 0x10}, 0, 1, []uint16{0x00, 0x20}, 5},
		{"lda (zp),y crossing", []byte{0xB1, 0x10}, 0, 1, []uint16{0xFF, 0x20}, 6},
		{"asl abs,x crossing", []byte{0x1E, 0xFF, 0x10}, 1, 0, nil, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := new6502TestRig()
			rig.load(0x0200, tt.program...)
			for i, v := range tt.zp {
				rig.mem.Poke(0x10+uint32(i), v)
			}
			rig.cpu.X, rig.cpu.Y = tt.x, tt.y
			rig.step(t)
			if rig.cpu.Cycles != tt.cycles {
				t.Fatalf("Cycles=%d, want %d", rig.cpu.Cycles, tt.cycles)
			}
		})
	}
}

func Test6502BranchCycles(t *testing.T) {
	tests := []struct {
		name   string
		pc     uint32
		offset byte
		zero   bool
		wantPC uint32
		cycles uint64
	}{
		{"not taken", 0x0200, 0x10, true, 0x0202, 2},
		{"taken same page", 0x0200, 0x10, false, 0x0212, 3},
		{"taken forward crossing", 0x02F0, 0x20, false, 0x0312, 4},
		{"taken backward crossing", 0x0300, 0xFC, false, 0x02FE, 4},
		{"taken backward same page", 0x0310, 0xFE, false, 0x0310, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := new6502TestRig()
			rig.load(tt.pc, 0xD0, tt.offset) // BNE
			rig.cpu.setFlag(ZERO_FLAG, tt.zero)
			rig.step(t)
			if rig.cpu.PC != tt.wantPC {
				t.Fatalf("PC=0x%04X, want 0x%04X", rig.cpu.PC, tt.wantPC)
			}
			if rig.cpu.Cycles != tt.cycles {
				t.Fatalf("Cycles=%d, want %d", rig.cpu.Cycles, tt.cycles)
			}
		})
	}
}

func Test6502JMPIndirectPageWrap(t *testing.T) {
	tests := []struct {
		cfg    Config
		want   uint32
		cycles uint64
	}{
		{NMOS6502, 0x1234, 5},
		{CMOS65C02, 0x5634, 6},
	}
	for _, tt := range tests {
		rig := newTestRig(tt.cfg)
		rig.load(0x0200, 0x6C, 0xFF, 0x10) // JMP ($10FF)
		rig.mem.Poke(0x10FF, 0x34)
		rig.mem.Poke(0x1000, 0x12)
		rig.mem.Poke(0x1100, 0x56)
		rig.step(t)
		if rig.cpu.PC != tt.want {
			t.Fatalf("%s: PC=0x%04X, want 0x%04X", tt.cfg.Name, rig.cpu.PC, tt.want)
		}
		if rig.cpu.Cycles != tt.cycles {
			t.Fatalf("%s: Cycles=%d, want %d", tt.cfg.Name, rig.cpu.Cycles, tt.cycles)
		}
	}
}

func Test6502PCWrapsAtTop(t *testing.T) {
	rig := new6502TestRig()
	rig.load(0xFFFF, 0xEA) // NOP
	rig.step(t)
	if rig.cpu.PC != 0x0000 {
		t.Fatalf("PC=0x%04X, want 0x0000", rig.cpu.PC)
	}
}
