// loader.go - Program image loading and saving for the monitor

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/intuitionamiga/six5go/memory"
	"github.com/pkg/errors"
)

// packCells turns file bytes into cells. 16-bit cells take byte pairs
// most significant first; a trailing odd byte is dropped.
func packCells(data []byte, cellWidth uint) []uint16 {
	if cellWidth <= 8 {
		cells := make([]uint16, len(data))
		for i, b := range data {
			cells[i] = uint16(b)
		}
		return cells
	}
	cells := make([]uint16, len(data)/2)
	for i := range cells {
		cells[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return cells
}

// unpackCells is the inverse of packCells.
func unpackCells(cells []uint16, cellWidth uint) []byte {
	if cellWidth <= 8 {
		data := make([]byte, len(cells))
		for i, c := range cells {
			data[i] = byte(c)
		}
		return data
	}
	data := make([]byte, 0, 2*len(cells))
	for _, c := range cells {
		data = append(data, byte(c>>8), byte(c))
	}
	return data
}

// readImage loads a binary or .hex file. Hexdump files carry their own
// start address; binaries start at 0.
func readImage(path string, cellWidth uint) ([]uint16, uint32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "load")
	}
	if strings.EqualFold(filepath.Ext(path), ".hex") {
		start, data, err := memory.ParseHexdump(bytes.NewReader(raw))
		if err != nil {
			return nil, 0, errors.Wrapf(err, "load %s", path)
		}
		return packCells(data, cellWidth), start, nil
	}
	return packCells(raw, cellWidth), 0, nil
}

// LoadFile writes an image into memory through the subscribers. addr
// overrides the address of a hexdump and defaults to 0 for binaries.
func (m *Monitor) LoadFile(path string, addr *uint32) (uint32, int, error) {
	cells, start, err := readImage(path, m.cfg.ByteWidth)
	if err != nil {
		return 0, 0, err
	}
	if addr != nil {
		start = *addr
	}
	if len(cells) == 0 {
		return start, 0, errors.Errorf("load %s: no data", path)
	}
	if uint64(len(cells)) > m.mem.Size() {
		return start, 0, errors.Errorf("load %s: %d cells exceed memory", path, len(cells))
	}
	start &= m.cfg.AddrMask
	m.mem.WriteRange(start, cells)
	return start, len(cells), m.mem.TakeErr()
}

// LoadROM places an image so that it ends at the top of the address
// space, where the vectors live.
func (m *Monitor) LoadROM(path string) (uint32, int, error) {
	cells, _, err := readImage(path, m.cfg.ByteWidth)
	if err != nil {
		return 0, 0, err
	}
	if len(cells) == 0 || uint64(len(cells)) > m.mem.Size() {
		return 0, 0, errors.Errorf("rom %s: size %d does not fit", path, len(cells))
	}
	start := uint32(m.mem.Size() - uint64(len(cells)))
	m.mem.WriteRange(start, cells)
	return start, len(cells), m.mem.TakeErr()
}

// SaveFile writes cells start..end to path without notifying subscribers.
func (m *Monitor) SaveFile(path string, start, end uint32) (int, error) {
	cells := make([]uint16, 0, uint64(end)-uint64(start)+1)
	for a := uint64(start); a <= uint64(end); a++ {
		cells = append(cells, m.mem.Peek(uint32(a)))
	}
	if err := os.WriteFile(path, unpackCells(cells, m.cfg.ByteWidth), 0644); err != nil {
		return 0, errors.Wrap(err, "save")
	}
	return len(cells), nil
}
