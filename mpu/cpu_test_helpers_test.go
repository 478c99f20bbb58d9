package mpu

import (
	"testing"

	"github.com/intuitionamiga/six5go/memory"
)

type cpuTestRig struct {
	mem *memory.Memory
	cpu *CPU
}

func newTestRig(cfg Config) *cpuTestRig {
	mem := memory.New(cfg.AddrWidth, cfg.ByteWidth)
	return &cpuTestRig{
		mem: mem,
		cpu: New(cfg, mem, 0),
	}
}

func new6502TestRig() *cpuTestRig  { return newTestRig(NMOS6502) }
func new65C02TestRig() *cpuTestRig { return newTestRig(CMOS65C02) }

// load writes program at start and points PC at it.
func (r *cpuTestRig) load(start uint32, program ...byte) {
	r.mem.WriteBlock(start, program)
	r.cpu.PC = start
}

func (r *cpuTestRig) loadCells(start uint32, cells ...uint16) {
	for i, c := range cells {
		r.mem.Poke(start+uint32(i), c)
	}
	r.cpu.PC = start
}

func (r *cpuTestRig) setWord(addr uint32, value uint32) {
	w := r.cpu.cfg.ByteWidth
	r.mem.Poke(addr, uint16(value)&r.cpu.cfg.ByteMask)
	r.mem.Poke(addr+1, uint16(value>>w)&r.cpu.cfg.ByteMask)
}

func (r *cpuTestRig) step(t *testing.T) {
	t.Helper()
	if err := r.cpu.Step(); err != nil {
		t.Fatalf("Step at PC=0x%04X: %v", r.cpu.PC, err)
	}
}

func (r *cpuTestRig) steps(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		r.step(t)
	}
}

func (r *cpuTestRig) requireFlags(t *testing.T, set, clear uint16) {
	t.Helper()
	if r.cpu.P&set != set {
		t.Fatalf("P=%08b, want bits %08b set", r.cpu.P, set)
	}
	if r.cpu.P&clear != 0 {
		t.Fatalf("P=%08b, want bits %08b clear", r.cpu.P, clear)
	}
}
