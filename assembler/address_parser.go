// address_parser.go - Address, label and range parsing for the monitor

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

package assembler

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrSyntax         = errors.New("syntax error")
	ErrOverflow       = errors.New("value out of range")
	ErrUnknownLabel   = errors.New("unknown label")
	ErrBadAddressMode = errors.New("addressing mode not available")
)

// AddressParser turns monitor arguments into addresses. A term is a label,
// a register name (when Registers is set) or a number; terms may be joined
// with + and -.
//
// Numbers use the default Radix unless prefixed:
//
//	$ff   hexadecimal
//	+255  decimal
//	%1111 binary
//	@377  octal
//	0xff  hexadecimal
type AddressParser struct {
	Radix   int
	MaxAddr uint32

	// Registers resolves register names used as terms. Optional.
	Registers func(name string) (uint32, bool)

	labels map[string]uint32
}

func NewAddressParser(radix int, maxAddr uint32) *AddressParser {
	return &AddressParser{
		Radix:   radix,
		MaxAddr: maxAddr,
		labels:  make(map[string]uint32),
	}
}

func (p *AddressParser) SetLabel(name string, addr uint32) {
	p.labels[name] = addr & p.MaxAddr
}

func (p *AddressParser) DeleteLabel(name string) bool {
	if _, ok := p.labels[name]; !ok {
		return false
	}
	delete(p.labels, name)
	return true
}

// Labels returns the label names in sorted order.
func (p *AddressParser) Labels() []string {
	return slices.Sorted(maps.Keys(p.labels))
}

func (p *AddressParser) LabelAddress(name string) (uint32, bool) {
	addr, ok := p.labels[name]
	return addr, ok
}

// LabelFor returns the first label, in sorted order, that names addr.
func (p *AddressParser) LabelFor(addr uint32) (string, bool) {
	for _, name := range p.Labels() {
		if p.labels[name] == addr {
			return name, true
		}
	}
	return "", false
}

// Number evaluates an expression and checks it fits the address space.
func (p *AddressParser) Number(expr string) (uint32, error) {
	v, err := p.Value(expr)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > int64(p.MaxAddr) {
		return 0, errors.Wrapf(ErrOverflow, "%s", expr)
	}
	return uint32(v), nil
}

// Value evaluates an expression without range checking.
func (p *AddressParser) Value(expr string) (int64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, errors.Wrap(ErrSyntax, "empty expression")
	}

	type term struct {
		text string
		op   byte
	}
	var terms []term
	current := strings.Builder{}
	op := byte(0)
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		if (ch == '+' || ch == '-') && current.Len() > 0 && strings.TrimSpace(current.String()) != "" {
			terms = append(terms, term{strings.TrimSpace(current.String()), op})
			op = ch
			current.Reset()
			continue
		}
		current.WriteByte(ch)
	}
	last := strings.TrimSpace(current.String())
	if last == "" {
		return 0, errors.Wrapf(ErrSyntax, "dangling operator in %q", expr)
	}
	terms = append(terms, term{last, op})

	var result int64
	for _, t := range terms {
		v, err := p.term(t.text)
		if err != nil {
			return 0, err
		}
		if t.op == '-' {
			result -= v
		} else {
			result += v
		}
	}
	return result, nil
}

func (p *AddressParser) term(s string) (int64, error) {
	if addr, ok := p.labels[s]; ok {
		return int64(addr), nil
	}
	if p.Registers != nil {
		if v, ok := p.Registers(s); ok {
			return int64(v), nil
		}
	}

	digits, base := s, p.Radix
	switch {
	case strings.HasPrefix(s, "$"):
		digits, base = s[1:], 16
	case strings.HasPrefix(s, "+"):
		digits, base = s[1:], 10
	case strings.HasPrefix(s, "%"):
		digits, base = s[1:], 2
	case strings.HasPrefix(s, "@"):
		digits, base = s[1:], 8
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err == nil {
		return int64(v), nil
	}
	if isIdentifier(s) {
		return 0, errors.Wrapf(ErrUnknownLabel, "%s", s)
	}
	return 0, errors.Wrapf(ErrSyntax, "bad number %q", s)
}

// Range parses "start:end", "start,end" or a single address.
func (p *AddressParser) Range(s string) (uint32, uint32, error) {
	sep := strings.IndexAny(s, ":,")
	if sep < 0 {
		addr, err := p.Number(s)
		return addr, addr, err
	}
	start, err := p.Number(s[:sep])
	if err != nil {
		return 0, 0, err
	}
	end, err := p.Number(s[sep+1:])
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, errors.Wrapf(ErrSyntax, "range start $%X after end $%X", start, end)
	}
	return start, end, nil
}

// Format prints n in the current radix with its prefix.
func (p *AddressParser) Format(n uint32) string {
	switch p.Radix {
	case 2:
		return fmt.Sprintf("%%%b", n)
	case 8:
		return fmt.Sprintf("@%o", n)
	case 10:
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("$%X", n)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '.':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
