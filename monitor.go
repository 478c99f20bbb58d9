// monitor.go - Machine monitor core for the 6502 family

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
monitor.go - Machine Monitor

Line-oriented monitor driving one processor and its observable memory.

Core Features:
- Command loop over any io.Reader, one command per line
- Long command names with short aliases
- Shared address parser with labels, radix and pc/sp terms
- goto/return runs with breakpoints and host interrupt
- Interactive assemble mode
- Command scripts and a persistent Lua engine
*/

package main

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/intuitionamiga/six5go/assembler"
	"github.com/intuitionamiga/six5go/memory"
	"github.com/intuitionamiga/six5go/mpu"
	"github.com/pkg/errors"
)

const (
	DEFAULT_WIDTH    = 78
	MAX_SCRIPT_DEPTH = 8

	OPCODE_BRK = 0x00
	OPCODE_RTS = 0x60
)

// keyHost supplies console keys while a program runs.
type keyHost interface {
	Start() error
	Stop() error
}

type breakpoint struct {
	ID   int
	Addr uint32
}

// MonitorCommand is a parsed command with name and arguments.
type MonitorCommand struct {
	Name string
	Args []string
}

type Monitor struct {
	out    io.Writer
	Prompt string

	cfg   mpu.Config
	mem   *memory.Memory
	cpu   *mpu.CPU
	debug bool

	parser *assembler.AddressParser
	asm    *assembler.Assembler
	dis    *assembler.Disassembler

	console *Console
	host    keyHost

	breakpoints    []breakpoint
	nextBreakpoint int

	width       int
	scriptDepth int

	assembling bool
	assemblePC uint32

	lua *LuaEngine
}

var commandAliases = map[string]string{
	"r":    "registers",
	"z":    "step",
	"g":    "goto",
	"ret":  "return",
	"m":    "mem",
	"f":    "fill",
	">":    "fill",
	"d":    "disassemble",
	"a":    "assemble",
	"al":   "add_label",
	"dl":   "delete_label",
	"shl":  "show_labels",
	"ab":   "add_breakpoint",
	"db":   "delete_breakpoint",
	"shb":  "show_breakpoints",
	"l":    "load",
	"s":    "save",
	"rad":  "radix",
	"~":    "tilde",
	"h":    "help",
	"?":    "help",
	"q":    "quit",
	"x":    "quit",
	"exit": "quit",
}

// NewMonitor creates a monitor for cfg writing to out, with the console
// on its default ports.
func NewMonitor(cfg mpu.Config, out io.Writer) *Monitor {
	m := &Monitor{
		out:     out,
		Prompt:  ".",
		width:   DEFAULT_WIDTH,
		console: NewConsole(out),
		parser:  assembler.NewAddressParser(16, cfg.AddrMask),
	}
	m.parser.Registers = m.registerTerm
	m.configure(cfg, DEFAULT_PUTC_ADDR, DEFAULT_GETC_ADDR)
	return m
}

// configure switches to cfg. Memory survives when its geometry matches.
func (m *Monitor) configure(cfg mpu.Config, putc, getc uint32) {
	if m.mem == nil || m.mem.AddrWidth() != cfg.AddrWidth || m.mem.CellWidth() != cfg.ByteWidth {
		m.console.Detach()
		m.mem = memory.New(cfg.AddrWidth, cfg.ByteWidth)
	}
	m.cfg = cfg
	m.cpu = mpu.New(cfg, m.mem, 0)
	m.cpu.Debug = m.debug
	m.parser.MaxAddr = cfg.AddrMask
	m.asm = assembler.NewAssembler(cfg, m.parser)
	m.dis = assembler.NewDisassembler(cfg, m.mem, m.parser)
	m.console.Attach(m.mem, putc&cfg.AddrMask, getc&cfg.AddrMask)
}

func (m *Monitor) CPU() *mpu.CPU { return m.cpu }
func (m *Monitor) Memory() *memory.Memory { return m.mem }
func (m *Monitor) Console() *Console { return m.console }
func (m *Monitor) Parser() *assembler.AddressParser { return m.parser }
func (m *Monitor) Disassembler() *assembler.Disassembler { return m.dis }

// SetHost installs the key source started around goto and return.
func (m *Monitor) SetHost(h keyHost) { m.host = h }

// SetPorts moves the console character ports.
func (m *Monitor) SetPorts(putc, getc uint32) {
	m.console.Attach(m.mem, putc&m.cfg.AddrMask, getc&m.cfg.AddrMask)
}

// SetDebug makes undefined opcodes stop execution with an error.
func (m *Monitor) SetDebug(on bool) {
	m.debug = on
	m.cpu.Debug = on
}

// Close releases the Lua engine, if one was started.
func (m *Monitor) Close() {
	if m.lua != nil {
		m.lua.Close()
		m.lua = nil
	}
}

// registerTerm lets expressions use pc and sp. Single-letter register
// names are left alone so they still read as hex digits.
func (m *Monitor) registerTerm(name string) (uint32, bool) {
	switch strings.ToLower(name) {
	case "pc", "sp":
		return m.cpu.Register(name)
	}
	return 0, false
}

// Run reads commands from in until quit or end of input.
func (m *Monitor) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		m.prompt()
		if !scanner.Scan() {
			return errors.Wrap(scanner.Err(), "monitor: input")
		}
		if m.Feed(scanner.Text()) {
			return nil
		}
	}
}

// Feed handles one input line, either as a statement in assemble mode or
// as a command. It returns true when the monitor should exit.
func (m *Monitor) Feed(line string) bool {
	if m.assembling {
		m.assembleLine(line)
		return false
	}
	return m.ExecuteCommand(line)
}

func (m *Monitor) prompt() {
	if m.assembling {
		fmt.Fprintf(m.out, "$%0*X  ", m.cfg.AddrDigits(), m.assemblePC)
		return
	}
	fmt.Fprint(m.out, m.Prompt)
}

// ParseCommand splits a raw input line into a command name and arguments.
// The single-character commands > and ~ may be written against their
// first argument.
func ParseCommand(input string) MonitorCommand {
	input = strings.TrimSpace(input)
	if input == "" {
		return MonitorCommand{}
	}
	if (input[0] == '>' || input[0] == '~') && len(input) > 1 && input[1] != ' ' {
		input = input[:1] + " " + input[1:]
	}
	parts := strings.Fields(input)
	return MonitorCommand{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// ExecuteCommand dispatches one command line. It returns true when the
// monitor should exit.
func (m *Monitor) ExecuteCommand(input string) bool {
	cmd := ParseCommand(input)
	if cmd.Name == "" {
		return false
	}
	if full, ok := commandAliases[cmd.Name]; ok {
		cmd.Name = full
	}

	switch cmd.Name {
	case "registers":
		return m.cmdRegisters(cmd)
	case "step":
		return m.cmdStep(cmd)
	case "goto":
		return m.cmdGoto(cmd)
	case "return":
		return m.cmdReturn(cmd)
	case "mem":
		return m.cmdMem(cmd)
	case "fill":
		return m.cmdFill(cmd)
	case "disassemble":
		return m.cmdDisassemble(cmd)
	case "assemble":
		return m.cmdAssemble(cmd)
	case "add_label":
		return m.cmdAddLabel(cmd)
	case "delete_label":
		return m.cmdDeleteLabel(cmd)
	case "show_labels":
		return m.cmdShowLabels(cmd)
	case "add_breakpoint":
		return m.cmdAddBreakpoint(cmd)
	case "delete_breakpoint":
		return m.cmdDeleteBreakpoint(cmd)
	case "show_breakpoints":
		return m.cmdShowBreakpoints(cmd)
	case "load":
		return m.cmdLoad(cmd)
	case "save":
		return m.cmdSave(cmd)
	case "mpu":
		return m.cmdMPU(cmd)
	case "reset":
		return m.cmdReset(cmd)
	case "cycles":
		return m.cmdCycles(cmd)
	case "irq":
		return m.cmdIRQ(cmd)
	case "nmi":
		return m.cmdNMI(cmd)
	case "radix":
		return m.cmdRadix(cmd)
	case "width":
		return m.cmdWidth(cmd)
	case "tilde":
		return m.cmdTilde(cmd)
	case "script":
		return m.cmdScript(cmd)
	case "lua":
		return m.cmdLua(cmd)
	case "cd":
		return m.cmdCd(cmd)
	case "pwd":
		return m.cmdPwd(cmd)
	case "help":
		return m.cmdHelp(cmd)
	case "quit":
		return true
	default:
		m.printf("Unknown command: %s", cmd.Name)
		return false
	}
}

// run executes until the next instruction is one of stops, a breakpoint
// is reached, the host interrupts or the processor reports an error. The
// instruction at the starting address never triggers its breakpoint, so
// goto resumes from a breakpoint.
func (m *Monitor) run(stops ...uint16) {
	m.console.TakeInterrupt()
	if m.host != nil {
		if err := m.host.Start(); err != nil {
			m.report(err)
		} else {
			defer func() {
				if err := m.host.Stop(); err != nil {
					m.report(err)
				}
			}()
		}
	}

	for first := true; ; first = false {
		pc := m.cpu.PC
		if slices.Contains(stops, m.mem.Peek(pc)) {
			return
		}
		if !first {
			if i := slices.IndexFunc(m.breakpoints, func(b breakpoint) bool { return b.Addr == pc }); i >= 0 {
				m.printf("Breakpoint %d reached.", m.breakpoints[i].ID)
				return
			}
		}
		if err := m.cpu.Step(); err != nil {
			m.report(err)
			return
		}
		if m.console.TakeInterrupt() {
			m.printf("Interrupted at $%0*X", m.cfg.AddrDigits(), m.cpu.PC)
			return
		}
	}
}

func (m *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format+"\n", args...)
}

func (m *Monitor) report(err error) {
	m.printf("Error: %v", err)
}
