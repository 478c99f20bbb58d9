//go:build !windows

package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TerminalHost feeds raw stdin into a Console while a program runs.
// It can be started and stopped repeatedly.
type TerminalHost struct {
	console      *Console
	fd           int
	nonblockSet  bool
	oldTermState *term.State

	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewTerminalHost(console *Console) *TerminalHost {
	return &TerminalHost{console: console, fd: int(os.Stdin.Fd())}
}

// Start puts stdin in raw non-blocking mode and begins reading keys.
// Stdin that is not a terminal is read without changing its mode.
func (h *TerminalHost) Start() error {
	if h.group != nil {
		return nil
	}

	if term.IsTerminal(h.fd) {
		oldState, err := term.MakeRaw(h.fd)
		if err != nil {
			return errors.Wrap(err, "terminal host: raw mode")
		}
		h.oldTermState = oldState
		h.console.SetRawOutput(true)
	}

	if err := unix.SetNonblock(h.fd, true); err != nil {
		h.restore()
		return errors.Wrap(err, "terminal host: nonblocking stdin")
	}
	h.nonblockSet = true

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	h.cancel, h.group = cancel, group
	group.Go(func() error { return h.readLoop(ctx) })
	return nil
}

func (h *TerminalHost) readLoop(ctx context.Context) error {
	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := unix.Read(h.fd, buf)
		if n > 0 {
			for _, b := range buf[:n] {
				h.console.RouteHostKey(translateHostKey(b))
			}
			continue
		}
		if err == unix.EAGAIN || err == unix.EINTR {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return errors.Wrap(err, "terminal host: read")
		}
		// EOF
		return nil
	}
}

// Stop ends the reader and restores stdin.
func (h *TerminalHost) Stop() error {
	if h.group == nil {
		return nil
	}
	h.cancel()
	err := h.group.Wait()
	h.cancel, h.group = nil, nil
	h.restore()
	return err
}

func (h *TerminalHost) restore() {
	if h.nonblockSet {
		_ = unix.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		h.console.SetRawOutput(false)
	}
}

// translateHostKey maps raw-mode Enter to LF and DEL to backspace.
func translateHostKey(b byte) byte {
	switch b {
	case '\r':
		return '\n'
	case 0x7F:
		return 0x08
	}
	return b
}
