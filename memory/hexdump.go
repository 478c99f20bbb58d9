// hexdump.go - Hex dump loader for observable memory

package memory

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrBadHexdump    = errors.New("hexdump: malformed input")
	ErrNonContiguous = errors.New("hexdump: non-contiguous data")
)

// ParseHexdump reads lines of the form
//
//	[$]ADDR: HH HH HH ... ; comment
//
// and returns the first address and the concatenated data. Each line
// must start where the previous one ended. Blank and comment-only lines
// are ignored.
func ParseHexdump(r io.Reader) (uint32, []byte, error) {
	var (
		start   uint32
		data    []byte
		started bool
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		addrText, bytesText, ok := strings.Cut(line, ":")
		if !ok {
			return 0, nil, errors.Wrapf(ErrBadHexdump, "line %d: missing ':'", lineNo)
		}
		addrText = strings.TrimPrefix(strings.TrimSpace(addrText), "$")
		addr, err := strconv.ParseUint(addrText, 16, 32)
		if err != nil {
			return 0, nil, errors.Wrapf(ErrBadHexdump, "line %d: bad address %q", lineNo, addrText)
		}

		if !started {
			start, started = uint32(addr), true
		} else if want := uint64(start) + uint64(len(data)); addr != want {
			return 0, nil, errors.Wrapf(ErrNonContiguous, "line %d: address $%X, expected $%X", lineNo, addr, want)
		}

		for _, field := range strings.Fields(bytesText) {
			field = strings.TrimPrefix(field, "$")
			if len(field) > 2 {
				return 0, nil, errors.Wrapf(ErrBadHexdump, "line %d: bad byte %q", lineNo, field)
			}
			b, err := strconv.ParseUint(field, 16, 8)
			if err != nil {
				return 0, nil, errors.Wrapf(ErrBadHexdump, "line %d: bad byte %q", lineNo, field)
			}
			data = append(data, byte(b))
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, errors.Wrap(err, "hexdump")
	}
	if !started {
		return 0, nil, errors.Wrap(ErrBadHexdump, "no data")
	}
	return start, data, nil
}

// LoadHexdump parses r and writes the data into m. It returns the start
// address and the number of bytes loaded.
func (m *Memory) LoadHexdump(r io.Reader) (uint32, int, error) {
	start, data, err := ParseHexdump(r)
	if err != nil {
		return 0, 0, err
	}
	m.WriteBlock(start, data)
	return start, len(data), nil
}
