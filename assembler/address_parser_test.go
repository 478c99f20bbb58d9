package assembler

import (
	"testing"

	"github.com/pkg/errors"
)

func TestAddressParserNumbers(t *testing.T) {
	p := NewAddressParser(16, 0xFFFF)
	tests := []struct {
		in   string
		want uint32
	}{
		{"ff", 0xFF},
		{"$c000", 0xC000},
		{"0xC000", 0xC000},
		{"+255", 255},
		{"%1010", 10},
		{"@17", 15},
		{"$10+$10", 0x20},
		{"$10 - 1", 0x0F},
		{"+10+5", 15},
	}
	for _, tt := range tests {
		got, err := p.Number(tt.in)
		if err != nil {
			t.Fatalf("Number(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Number(%q)=0x%X, want 0x%X", tt.in, got, tt.want)
		}
	}
}

func TestAddressParserRadix(t *testing.T) {
	p := NewAddressParser(10, 0xFFFF)
	if got, err := p.Number("100"); err != nil || got != 100 {
		t.Fatalf("Number(100)=%d %v, want 100", got, err)
	}
	if got := p.Format(100); got != "+100" {
		t.Fatalf("Format=%q, want +100", got)
	}
	p.Radix = 16
	if got := p.Format(0x1F); got != "$1F" {
		t.Fatalf("Format=%q, want $1F", got)
	}
}

func TestAddressParserLabels(t *testing.T) {
	p := NewAddressParser(16, 0xFFFF)
	p.SetLabel("start", 0xC000)
	p.SetLabel("vec", 0xFFFC)

	if got, err := p.Number("start+2"); err != nil || got != 0xC002 {
		t.Fatalf("Number(start+2)=0x%X %v", got, err)
	}
	if name, ok := p.LabelFor(0xFFFC); !ok || name != "vec" {
		t.Fatalf("LabelFor(0xFFFC)=%q %v", name, ok)
	}
	if got := p.Labels(); len(got) != 2 || got[0] != "start" {
		t.Fatalf("Labels=%v", got)
	}
	if !p.DeleteLabel("start") || p.DeleteLabel("start") {
		t.Fatal("DeleteLabel should succeed once")
	}
	if _, err := p.Number("start"); errors.Cause(err) != ErrUnknownLabel {
		t.Fatalf("Number(start) err=%v, want ErrUnknownLabel", err)
	}
}

func TestAddressParserRegisters(t *testing.T) {
	p := NewAddressParser(16, 0xFFFF)
	p.Registers = func(name string) (uint32, bool) {
		if name == "pc" {
			return 0x0200, true
		}
		return 0, false
	}
	if got, err := p.Number("pc+3"); err != nil || got != 0x0203 {
		t.Fatalf("Number(pc+3)=0x%X %v", got, err)
	}
}

func TestAddressParserErrors(t *testing.T) {
	p := NewAddressParser(16, 0xFFFF)
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrSyntax},
		{"$", ErrSyntax},
		{"$10+", ErrSyntax},
		{"$10000", ErrOverflow},
		{"$0-1", ErrOverflow},
		{"zork", ErrUnknownLabel},
	}
	for _, tt := range tests {
		_, err := p.Number(tt.in)
		if errors.Cause(err) != tt.want {
			t.Fatalf("Number(%q) err=%v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestAddressParserRange(t *testing.T) {
	p := NewAddressParser(16, 0xFFFF)
	tests := []struct {
		in         string
		start, end uint32
	}{
		{"c000:c0ff", 0xC000, 0xC0FF},
		{"$10,$20", 0x10, 0x20},
		{"$42", 0x42, 0x42},
	}
	for _, tt := range tests {
		start, end, err := p.Range(tt.in)
		if err != nil || start != tt.start || end != tt.end {
			t.Fatalf("Range(%q)=0x%X:0x%X %v", tt.in, start, end, err)
		}
	}
	if _, _, err := p.Range("$20:$10"); errors.Cause(err) != ErrSyntax {
		t.Fatalf("reversed range err=%v", err)
	}
}
