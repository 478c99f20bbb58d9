package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/intuitionamiga/six5go/mpu"
)

func TestPackCells(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56}

	cells := packCells(data, 8)
	if len(cells) != 3 || cells[2] != 0x56 {
		t.Fatalf("8-bit cells=%X", cells)
	}
	if got := unpackCells(cells, 8); !bytes.Equal(got, data) {
		t.Fatalf("8-bit round trip=%X", got)
	}

	cells = packCells(data, 16)
	if len(cells) != 1 || cells[0] != 0x1234 {
		t.Fatalf("16-bit cells=%X, want [1234]", cells)
	}
	if got := unpackCells(cells, 16); !bytes.Equal(got, []byte{0x12, 0x34}) {
		t.Fatalf("16-bit unpack=%X", got)
	}
}

func TestMonitor_SaveAndLoad(t *testing.T) {
	r := newMonitorTestRig(t, mpu.NMOS6502)
	path := filepath.Join(t.TempDir(), "prog.bin")

	r.exec(t, ">200 a9 01 60", "save "+path+" 200 202")
	r.requireOutput(t, "Saved $3 cells to "+path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{0xA9, 0x01, 0x60}) {
		t.Fatalf("saved %X", data)
	}

	r.exec(t, "reset", "load "+path+" 300")
	r.requireOutput(t, "Wrote $3 cells from $0300 to $0302")
	mem := r.mon.Memory()
	if mem.Peek(0x200) != 0 || mem.Peek(0x300) != 0xA9 || mem.Peek(0x302) != 0x60 {
		t.Fatal("load did not place the image at $0300")
	}

	r.exec(t, "save "+path+" 202 200")
	r.requireOutput(t, "End must be >= start")
	r.exec(t, "load /nonexistent-six5go.bin")
	r.requireOutput(t, "Error:")
}

func TestMonitor_LoadHexdump(t *testing.T) {
	r := newMonitorTestRig(t, mpu.NMOS6502)
	path := writeTestFile(t, "prog.hex", "; demo\n$C000: 01 02\nC002: 03\n")

	r.exec(t, "load "+path)
	r.requireOutput(t, "from $C000 to $C002")
	if got := r.mon.Memory().ReadRange(0xC000, 3); got[0] != 1 || got[2] != 3 {
		t.Fatalf("cells=%X", got)
	}

	bad := writeTestFile(t, "bad.hex", "C000: 01\nC005: 02\n")
	r.exec(t, "load "+bad)
	r.requireOutput(t, "non-contiguous")
}

func TestMonitor_LoadOrg16(t *testing.T) {
	r := newMonitorTestRig(t, mpu.Org16)
	path := writeTestFile(t, "wide.bin", "\x12\x34\xAB\xCD\xEF")

	start, n, err := r.mon.LoadFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if start != 0 || n != 2 {
		t.Fatalf("start=%X n=%d, want 0 2", start, n)
	}
	if r.mon.Memory().Peek(1) != 0xABCD {
		t.Fatalf("cell 1=%X, want ABCD", r.mon.Memory().Peek(1))
	}
}

func TestLoadROM(t *testing.T) {
	r := newMonitorTestRig(t, mpu.NMOS6502)
	// NMI, RESET and IRQ vectors.
	path := writeTestFile(t, "rom.bin", "\x00\x10\x00\x04\x00\x20")

	start, n, err := r.mon.LoadROM(path)
	if err != nil {
		t.Fatal(err)
	}
	if start != 0xFFFA || n != 6 {
		t.Fatalf("start=%X n=%d", start, n)
	}
	cpu := r.mon.CPU()
	cpu.ResetFromVector()
	if cpu.PC != 0x0400 {
		t.Fatalf("PC=%04X, want 0400", cpu.PC)
	}

	empty := writeTestFile(t, "empty.bin", "")
	if _, _, err := r.mon.LoadROM(empty); err == nil {
		t.Fatal("empty ROM should fail")
	}
}
