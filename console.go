// console.go - Character console ports for programs running under the monitor

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
console.go - Console Character Ports

Memory-observer device that gives emulated programs a minimal terminal:

Core Features:
- PUTC port: a write prints the cell value as one character
- GETC port: a read returns the next queued key, or 0 when none is waiting
- 256-byte key ring fed by the terminal host goroutine
- Ctrl-C from the host raises an interrupt flag the monitor polls while running
*/

package main

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/intuitionamiga/six5go/memory"
)

const (
	DEFAULT_PUTC_ADDR = 0xF001
	DEFAULT_GETC_ADDR = 0xF004

	KEY_INTERRUPT = 0x03
)

// Console implements both memory subscriber interfaces.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	keyBuf  [256]byte
	keyHead int
	keyLen  int

	putc, getc uint32
	mem        *memory.Memory

	interrupted atomic.Bool
	crlf        atomic.Bool
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Attach subscribes the console to putc and getc on mem, replacing any
// earlier attachment.
func (c *Console) Attach(mem *memory.Memory, putc, getc uint32) {
	c.Detach()
	c.mu.Lock()
	c.mem, c.putc, c.getc = mem, putc, getc
	c.mu.Unlock()
	mem.SubscribeToWrite([]uint32{putc}, c)
	mem.SubscribeToRead([]uint32{getc}, c)
}

func (c *Console) Detach() {
	c.mu.Lock()
	mem := c.mem
	c.mem = nil
	c.mu.Unlock()
	if mem != nil {
		mem.Unsubscribe(c)
	}
}

// Ports returns the attached PUTC and GETC addresses.
func (c *Console) Ports() (uint32, uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.putc, c.getc
}

func (c *Console) ObserveWrite(_ uint32, value uint16) (uint16, bool, error) {
	c.mu.Lock()
	out := c.out
	c.mu.Unlock()
	if out == nil {
		return 0, false, nil
	}
	data := []byte{byte(value)}
	if data[0] == '\n' && c.crlf.Load() {
		data = []byte{'\r', '\n'}
	}
	if _, err := out.Write(data); err != nil {
		return 0, false, err
	}
	return 0, false, nil
}

// SetRawOutput makes the console emit CR LF for LF, for terminals in raw mode.
func (c *Console) SetRawOutput(on bool) { c.crlf.Store(on) }

func (c *Console) ObserveRead(_ uint32) (uint16, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keyLen == 0 {
		return 0, true, nil
	}
	b := c.keyBuf[c.keyHead]
	c.keyHead = (c.keyHead + 1) % len(c.keyBuf)
	c.keyLen--
	return uint16(b), true, nil
}

// RouteHostKey queues a key from the host. A full ring drops the key.
func (c *Console) RouteHostKey(b byte) {
	if b == KEY_INTERRUPT {
		c.interrupted.Store(true)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keyLen == len(c.keyBuf) {
		return
	}
	c.keyBuf[(c.keyHead+c.keyLen)%len(c.keyBuf)] = b
	c.keyLen++
}

// QueueString queues every byte of s as if typed.
func (c *Console) QueueString(s string) {
	for i := 0; i < len(s); i++ {
		c.RouteHostKey(s[i])
	}
}

func (c *Console) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyLen
}

// TakeInterrupt reports and clears a pending host interrupt.
func (c *Console) TakeInterrupt() bool {
	return c.interrupted.Swap(false)
}
