package main

import (
	"strings"
	"testing"

	"github.com/intuitionamiga/six5go/mpu"
)

func newLuaTestRig(t *testing.T) (*monitorTestRig, *LuaEngine) {
	t.Helper()
	r := newMonitorTestRig(t, mpu.NMOS6502)
	return r, r.mon.luaEngine()
}

func runLua(t *testing.T, e *LuaEngine, src string) {
	t.Helper()
	if err := e.DoString(src); err != nil {
		t.Fatalf("lua: %v", err)
	}
}

func TestLua_RegistersAndMemory(t *testing.T) {
	r, e := newLuaTestRig(t)
	runLua(t, e, `
		setreg("A", 0x42)
		poke(0x200, 0xEA)
		write(0x201, 0x60)
		print(reg("a"), peek(0x200), read(0x201), reg("nope"))
	`)
	if r.mon.CPU().A != 0x42 {
		t.Fatalf("A=$%02X, want $42", r.mon.CPU().A)
	}
	r.requireOutput(t, "66\t234\t96\tnil")
}

func TestLua_Step(t *testing.T) {
	r, e := newLuaTestRig(t)
	runLua(t, e, `
		poke(0, 0xEA)
		poke(1, 0xEA)
		local err = step(2)
		print(reg("pc"), err, cycles())
	`)
	r.requireOutput(t, "2\tnil\t4")
}

func TestLua_StepReportsError(t *testing.T) {
	r, e := newLuaTestRig(t)
	r.mon.SetDebug(true)
	runLua(t, e, `poke(0, 0x02) print(step() ~= nil)`)
	r.requireOutput(t, "true")
}

func TestLua_ReadAndWriteHandlers(t *testing.T) {
	r, e := newLuaTestRig(t)
	runLua(t, e, `
		onread(0x300, function(addr) return 0x55 end)
		onwrite(0x301, function(addr, value) return value + 1 end)
		onwrite(0x302, function(addr, value) return nil end)
	`)
	mem := r.mon.Memory()
	if got := mem.Read(0x300); got != 0x55 {
		t.Fatalf("read=$%02X, want $55", got)
	}
	mem.Write(0x301, 5)
	if got := mem.Peek(0x301); got != 6 {
		t.Fatalf("stored=%d, want 6", got)
	}
	mem.Write(0x302, 9)
	if got := mem.Peek(0x302); got != 9 {
		t.Fatalf("stored=%d, want 9 (nil passes through)", got)
	}

	r.mon.Close()
	if mem.Observed(0x300) || mem.Observed(0x301) {
		t.Fatal("Close should remove Lua handlers")
	}
	if !mem.Observed(DEFAULT_PUTC_ADDR) {
		t.Fatal("Close should keep the console")
	}
}

func TestLua_HandlerErrorIsReported(t *testing.T) {
	r, e := newLuaTestRig(t)
	runLua(t, e, `onread(0x310, function(addr) error("boom") end)`)
	mem := r.mon.Memory()
	mem.Read(0x310)
	err := mem.TakeErr()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err=%v, want boom", err)
	}
}

func TestLua_Cmd(t *testing.T) {
	r, e := newLuaTestRig(t)
	runLua(t, e, `print(cmd("r a=7"))`)
	if r.mon.CPU().A != 7 {
		t.Fatalf("A=%d, want 7", r.mon.CPU().A)
	}
	r.requireOutput(t, "false")

	if err := e.DoString(`error("bad script")`); err == nil || !strings.Contains(err.Error(), "bad script") {
		t.Fatalf("err=%v", err)
	}
}

func TestMonitor_LuaCommand(t *testing.T) {
	r := newMonitorTestRig(t, mpu.NMOS6502)
	path := writeTestFile(t, "setup.lua", `
		setreg("x", 3)
		onwrite(0xC000, function(addr, value) print("wrote", value) end)
	`)
	r.exec(t, "lua "+path, ">c000 2a")
	if r.mon.CPU().X != 3 {
		t.Fatalf("X=%d, want 3", r.mon.CPU().X)
	}
	r.requireOutput(t, "wrote\t42")

	quit := writeTestFile(t, "quit.lua", `cmd("quit")`)
	if !r.mon.ExecuteCommand("lua " + quit) {
		t.Fatal("cmd(\"quit\") should end the monitor")
	}

	r.exec(t, "lua /nonexistent-six5go.lua")
	r.requireOutput(t, "Error:")
}

func TestLua_AccessErrorsRaiseInLua(t *testing.T) {
	r, e := newLuaTestRig(t)
	runLua(t, e, `
		onwrite(0x10, function(addr, value) error("boom") end)
		onread(0x11, function(addr) error("bang") end)
		local okw, errw = pcall(write, 0x10, 1)
		local okr, errr = pcall(read, 0x11)
		print(okw, okr, string.find(errw, "boom") ~= nil, string.find(errr, "bang") ~= nil)
	`)
	r.requireOutput(t, "false\tfalse\ttrue\ttrue")

	err := e.DoString(`write(0x10, 1)`)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err=%v, want boom", err)
	}

	mem := r.mon.Memory()
	if mem.Err() != nil {
		t.Fatalf("pending error left behind: %v", mem.Err())
	}
	mem.Poke(0x0200, 0xEA) // NOP
	r.mon.CPU().PC = 0x0200
	if err := r.mon.CPU().Step(); err != nil {
		t.Fatalf("Step err=%v, want nil", err)
	}
}

func TestLua_NegativeValuesWrap(t *testing.T) {
	r, e := newLuaTestRig(t)
	runLua(t, e, `poke(0x20, -1) setreg("x", -2) print(peek(0x20), reg("x"), peek(-1))`)
	r.requireOutput(t, "255\t254\t0")
}
