// memory.go - Observable cell memory for the six5go processors

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

/*
memory.go - Observable Cell Memory

This package provides the flat address space the processor cores execute
against. A memory is a fixed number of cells (2^addrWidth), each holding
a value of cellWidth bits. Addresses are masked to the address space on
every access and values are masked to the cell width before they are
stored.

Core Features:

    Dense backing storage for address spaces up to 16M cells.
    Sparse page-allocated storage for the 32-bit address space of the
    65Org16, so untouched pages cost nothing.
    Per-address read and write subscribers, used to map console ports
    and other devices into the address space.
    Sticky subscriber errors, collected by the processor after each step.

Subscribers:

    Read subscribers are consulted in registration order. A subscriber
    may substitute the value returned by the read; the last substitution
    wins and the stored cell is left unchanged.

    Write subscribers are consulted in registration order. Each may
    replace the value being written; the value handed to the next
    subscriber, and finally stored, is the replacement.

    The first error raised by a subscriber aborts the remaining
    subscribers for that access and is held, exactly as returned, until
    TakeErr collects it. A failed read yields the stored cell. A failed
    write stores nothing.
*/

package memory

import (
	"reflect"
	"slices"

	"github.com/pkg/errors"
)

const (
	denseLimit = 24
	pageBits   = 12
	pageSize   = 1 << pageBits
	pageMask   = pageSize - 1
)

// ReadSubscriber observes reads of the addresses it was registered for.
// When ok is true the returned value replaces the stored cell for this read.
type ReadSubscriber interface {
	ObserveRead(addr uint32) (value uint16, ok bool, err error)
}

// WriteSubscriber observes writes of the addresses it was registered for.
// When ok is true the returned value replaces the value being written.
type WriteSubscriber interface {
	ObserveWrite(addr uint32, value uint16) (replacement uint16, ok bool, err error)
}

// ReadFunc adapts a plain function to ReadSubscriber.
type ReadFunc struct {
	fn func(addr uint32) (uint16, bool, error)
}

// OnRead wraps fn as a subscriber. The returned pointer is the identity
// used for duplicate detection, so keep it if the same hook is
// registered more than once.
func OnRead(fn func(addr uint32) (uint16, bool, error)) *ReadFunc {
	return &ReadFunc{fn: fn}
}

func (r *ReadFunc) ObserveRead(addr uint32) (uint16, bool, error) {
	return r.fn(addr)
}

// WriteFunc adapts a plain function to WriteSubscriber.
type WriteFunc struct {
	fn func(addr uint32, value uint16) (uint16, bool, error)
}

func OnWrite(fn func(addr uint32, value uint16) (uint16, bool, error)) *WriteFunc {
	return &WriteFunc{fn: fn}
}

func (w *WriteFunc) ObserveWrite(addr uint32, value uint16) (uint16, bool, error) {
	return w.fn(addr, value)
}

type cellStore interface {
	get(addr uint32) uint16
	set(addr uint32, value uint16)
	clear()
}

type denseStore []uint16

func (d denseStore) get(addr uint32) uint16        { return d[addr] }
func (d denseStore) set(addr uint32, value uint16) { d[addr] = value }
func (d denseStore) clear()                        { clear(d) }

type sparseStore map[uint32]*[pageSize]uint16

func (s sparseStore) get(addr uint32) uint16 {
	page, ok := s[addr>>pageBits]
	if !ok {
		return 0
	}
	return page[addr&pageMask]
}

func (s sparseStore) set(addr uint32, value uint16) {
	page, ok := s[addr>>pageBits]
	if !ok {
		if value == 0 {
			return
		}
		page = new([pageSize]uint16)
		s[addr>>pageBits] = page
	}
	page[addr&pageMask] = value
}

func (s sparseStore) clear() { clear(s) }

// Memory is an observable array of cells.
type Memory struct {
	store     cellStore
	addrWidth uint
	cellWidth uint
	addrMask  uint32
	cellMask  uint16

	readSubs  map[uint32][]ReadSubscriber
	writeSubs map[uint32][]WriteSubscriber

	err error
}

// New creates a zero-filled memory of 2^addrWidth cells of cellWidth bits.
func New(addrWidth, cellWidth uint) *Memory {
	if addrWidth == 0 || addrWidth > 32 {
		panic(errors.Errorf("memory: address width %d out of range", addrWidth))
	}
	if cellWidth == 0 || cellWidth > 16 {
		panic(errors.Errorf("memory: cell width %d out of range", cellWidth))
	}

	m := &Memory{
		addrWidth: addrWidth,
		cellWidth: cellWidth,
		addrMask:  uint32(uint64(1)<<addrWidth - 1),
		cellMask:  uint16(uint32(1)<<cellWidth - 1),
		readSubs:  make(map[uint32][]ReadSubscriber),
		writeSubs: make(map[uint32][]WriteSubscriber),
	}
	if addrWidth <= denseLimit {
		m.store = make(denseStore, 1<<addrWidth)
	} else {
		m.store = make(sparseStore)
	}
	return m
}

func (m *Memory) AddrMask() uint32 { return m.addrMask }
func (m *Memory) CellMask() uint16 { return m.cellMask }
func (m *Memory) AddrWidth() uint  { return m.addrWidth }
func (m *Memory) CellWidth() uint  { return m.cellWidth }

// Size returns the number of addressable cells.
func (m *Memory) Size() uint64 { return uint64(m.addrMask) + 1 }

// Read returns the cell at addr after consulting its read subscribers.
func (m *Memory) Read(addr uint32) uint16 {
	addr &= m.addrMask
	subs := m.readSubs[addr]
	if len(subs) == 0 {
		return m.store.get(addr)
	}

	value, substituted := uint16(0), false
	for _, sub := range subs {
		v, ok, err := sub.ObserveRead(addr)
		if err != nil {
			m.fail(err)
			return m.store.get(addr)
		}
		if ok {
			value, substituted = v&m.cellMask, true
		}
	}
	if substituted {
		return value
	}
	return m.store.get(addr)
}

// Write stores value at addr after its write subscribers have seen it.
func (m *Memory) Write(addr uint32, value uint16) {
	addr &= m.addrMask
	value &= m.cellMask
	for _, sub := range m.writeSubs[addr] {
		v, ok, err := sub.ObserveWrite(addr, value)
		if err != nil {
			m.fail(err)
			return
		}
		if ok {
			value = v & m.cellMask
		}
	}
	m.store.set(addr, value)
}

// Peek reads a cell without notifying subscribers.
func (m *Memory) Peek(addr uint32) uint16 {
	return m.store.get(addr & m.addrMask)
}

// Poke writes a cell without notifying subscribers.
func (m *Memory) Poke(addr uint32, value uint16) {
	m.store.set(addr&m.addrMask, value&m.cellMask)
}

// ReadRange reads count cells starting at start, wrapping at the top of
// the address space. Subscribers fire for every cell.
func (m *Memory) ReadRange(start uint32, count int) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = m.Read(start + uint32(i))
	}
	return out
}

// WriteRange writes values starting at start through the subscribers.
func (m *Memory) WriteRange(start uint32, values []uint16) {
	for i, v := range values {
		m.Write(start+uint32(i), v)
	}
}

// WriteBlock bulk-loads bytes starting at start, one byte per cell.
// Subscribers are not notified.
func (m *Memory) WriteBlock(start uint32, data []byte) {
	for i, b := range data {
		m.store.set((start+uint32(i))&m.addrMask, uint16(b)&m.cellMask)
	}
}

// ReadBlock copies count cells starting at start, truncated to bytes.
// Subscribers are not notified.
func (m *Memory) ReadBlock(start uint32, count int) []byte {
	out := make([]byte, count)
	for i := range out {
		out[i] = byte(m.store.get((start + uint32(i)) & m.addrMask))
	}
	return out
}

// SubscribeToRead registers sub for every address in addrs. Registering
// the same subscriber twice for an address has no effect.
func (m *Memory) SubscribeToRead(addrs []uint32, sub ReadSubscriber) {
	for _, addr := range addrs {
		addr &= m.addrMask
		subs := m.readSubs[addr]
		if slices.ContainsFunc(subs, func(s ReadSubscriber) bool { return sameSubscriber(s, sub) }) {
			continue
		}
		m.readSubs[addr] = append(subs, sub)
	}
}

// SubscribeToWrite registers sub for every address in addrs. Registering
// the same subscriber twice for an address has no effect.
func (m *Memory) SubscribeToWrite(addrs []uint32, sub WriteSubscriber) {
	for _, addr := range addrs {
		addr &= m.addrMask
		subs := m.writeSubs[addr]
		if slices.ContainsFunc(subs, func(s WriteSubscriber) bool { return sameSubscriber(s, sub) }) {
			continue
		}
		m.writeSubs[addr] = append(subs, sub)
	}
}

// Unsubscribe removes sub from every address it observes, for reads and writes.
func (m *Memory) Unsubscribe(sub any) {
	for addr, subs := range m.readSubs {
		subs = slices.DeleteFunc(subs, func(s ReadSubscriber) bool { return sameSubscriber(s, sub) })
		if len(subs) == 0 {
			delete(m.readSubs, addr)
		} else {
			m.readSubs[addr] = subs
		}
	}
	for addr, subs := range m.writeSubs {
		subs = slices.DeleteFunc(subs, func(s WriteSubscriber) bool { return sameSubscriber(s, sub) })
		if len(subs) == 0 {
			delete(m.writeSubs, addr)
		} else {
			m.writeSubs[addr] = subs
		}
	}
}

// Observed reports whether any subscriber is registered for addr.
func (m *Memory) Observed(addr uint32) bool {
	addr &= m.addrMask
	return len(m.readSubs[addr]) > 0 || len(m.writeSubs[addr]) > 0
}

// Reset zero-fills every cell and drops any pending error.
// Subscriptions are kept.
func (m *Memory) Reset() {
	m.store.clear()
	m.err = nil
}

// Err returns the pending subscriber error without clearing it.
func (m *Memory) Err() error { return m.err }

// TakeErr returns the pending subscriber error and clears it.
func (m *Memory) TakeErr() error {
	err := m.err
	m.err = nil
	return err
}

func (m *Memory) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

// Span returns the inclusive address list start..end.
func Span(start, end uint32) []uint32 {
	if end < start {
		return nil
	}
	addrs := make([]uint32, 0, uint64(end-start)+1)
	for a := uint64(start); a <= uint64(end); a++ {
		addrs = append(addrs, uint32(a))
	}
	return addrs
}

// sameSubscriber compares two subscribers by identity. Dynamic types that
// are not comparable never match.
func sameSubscriber(a, b any) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
