package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Batch(t *testing.T) {
	script := writeTestFile(t, "batch.txt", "# setup\nr a=5\nregisters\n")
	out := &bytes.Buffer{}
	if err := run([]string{"-batch", script}, strings.NewReader(""), out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "6502: 0000 05") {
		t.Fatalf("output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "License") {
		t.Fatal("batch mode should not print the banner")
	}
}

func TestRun_ROMResetsThroughVector(t *testing.T) {
	rom := writeTestFile(t, "rom.bin", "\x00\x00\x00\x04\x00\x00")
	out := &bytes.Buffer{}
	if err := run([]string{"-rom", rom}, strings.NewReader("r\nq\n"), out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "6502: 0400") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestRun_LoadAndGoto(t *testing.T) {
	// LDA #'A ; STA $F001 ; BRK
	hex := writeTestFile(t, "hello.hex", "0200: A9 41 8D 01 F0 00\n")
	out := &bytes.Buffer{}
	if err := run([]string{"-load", hex, "-goto", "200"}, strings.NewReader(""), out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "A") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown mpu", []string{"-mpu", "bogus"}, "unknown mpu"},
		{"extra argument", []string{"stray"}, "unexpected argument"},
		{"bad port", []string{"-putc", "zz!"}, "putc"},
		{"missing file", []string{"-load", "/nonexistent-six5go.bin"}, "load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, strings.NewReader(""), &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err=%v, want %q", err, tt.want)
			}
		})
	}
}
