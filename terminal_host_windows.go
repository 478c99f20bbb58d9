//go:build windows

package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// TerminalHost feeds raw stdin into a Console while a program runs.
// Console reads on Windows block, so Stop does not wait for the reader;
// a reader left blocked exits after the next key.
type TerminalHost struct {
	console      *Console
	fd           int
	oldTermState *term.State

	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewTerminalHost(console *Console) *TerminalHost {
	return &TerminalHost{console: console, fd: int(os.Stdin.Fd())}
}

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

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	h.cancel, h.group = cancel, group
	group.Go(func() error {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if ctx.Err() != nil {
				return nil
			}
			if n > 0 {
				h.console.RouteHostKey(translateHostKey(buf[0]))
			}
			if err != nil {
				return nil
			}
		}
	})
	return nil
}

func (h *TerminalHost) Stop() error {
	if h.group == nil {
		return nil
	}
	h.cancel()
	h.cancel, h.group = nil, nil
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		h.console.SetRawOutput(false)
	}
	return nil
}

func translateHostKey(b byte) byte {
	switch b {
	case '\r':
		return '\n'
	case 0x7F:
		return 0x08
	}
	return b
}
