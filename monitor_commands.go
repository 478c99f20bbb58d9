// monitor_commands.go - Machine monitor command handlers

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

package main

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/intuitionamiga/six5go/mpu"
	"github.com/pkg/errors"
)

var labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

func (m *Monitor) cmdRegisters(cmd MonitorCommand) bool {
	if len(cmd.Args) == 0 {
		m.showRegisters()
		return false
	}

	// r pc=c000,a=10 or r pc=c000 a=10
	for _, pair := range strings.Split(strings.Join(cmd.Args, ","), ",") {
		if pair == "" {
			continue
		}
		name, expr, ok := strings.Cut(pair, "=")
		if !ok {
			m.printf("Syntax error: %s", pair)
			return false
		}
		if _, known := m.cpu.Register(name); !known {
			m.printf("Invalid register: %s", name)
			return false
		}
		value, err := m.parser.Number(expr)
		if err != nil {
			m.report(err)
			return false
		}
		if !strings.EqualFold(name, "pc") && value > uint32(m.cfg.ByteMask) {
			m.printf("Overflow: %s too wide for register %s", expr, strings.ToUpper(name))
			return false
		}
		m.cpu.SetRegister(name, value)
	}
	return false
}

func (m *Monitor) showRegisters() {
	m.printf("%s", m.cpu.String())
}

func (m *Monitor) cmdStep(cmd MonitorCommand) bool {
	count := uint32(1)
	if len(cmd.Args) > 0 {
		n, err := m.parser.Number(cmd.Args[0])
		if err != nil {
			m.report(err)
			return false
		}
		count = n
	}

	for range count {
		if err := m.cpu.Step(); err != nil {
			m.report(err)
			break
		}
	}
	m.showInstruction(m.cpu.PC)
	m.showRegisters()
	return false
}

func (m *Monitor) cmdGoto(cmd MonitorCommand) bool {
	if len(cmd.Args) > 0 {
		addr, err := m.parser.Number(cmd.Args[0])
		if err != nil {
			m.report(err)
			return false
		}
		m.cpu.PC = addr
	}
	m.run(OPCODE_BRK)
	m.showRegisters()
	return false
}

func (m *Monitor) cmdReturn(_ MonitorCommand) bool {
	m.run(OPCODE_RTS)
	m.showRegisters()
	return false
}

func (m *Monitor) cmdMem(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: mem <address_range>")
		return false
	}
	start, end, err := m.parser.Range(cmd.Args[0])
	if err != nil {
		m.report(err)
		return false
	}

	ad, bd := m.cfg.AddrDigits(), m.cfg.ByteDigits()
	prefix := ad + 3
	perLine := max(1, (m.width-prefix)/(bd+1))

	var line strings.Builder
	for addr, n := uint64(start), 0; addr <= uint64(end); addr, n = addr+1, n+1 {
		if n%perLine == 0 {
			if line.Len() > 0 {
				m.printf("%s", line.String())
				line.Reset()
			}
			fmt.Fprintf(&line, "$%0*X:", ad, addr)
		}
		// Peek keeps dumps free of port side effects
		fmt.Fprintf(&line, " %0*X", bd, m.mem.Peek(uint32(addr)))
	}
	m.printf("%s", line.String())
	return false
}

func (m *Monitor) cmdFill(cmd MonitorCommand) bool {
	if len(cmd.Args) < 2 {
		m.printf("Usage: fill <address_range> <data_list>")
		return false
	}
	start, end, err := m.parser.Range(cmd.Args[0])
	if err != nil {
		m.report(err)
		return false
	}
	data, err := m.parseData(cmd.Args[1:])
	if err != nil {
		m.report(err)
		return false
	}

	count := uint64(end) - uint64(start) + 1
	// A single address writes the data list once.
	if start == end {
		count = uint64(len(data))
		end = start + uint32(count) - 1
	}
	for i := range count {
		m.mem.Write(start+uint32(i), data[i%uint64(len(data))])
	}
	if err := m.mem.TakeErr(); err != nil {
		m.report(err)
	}
	m.printf("Wrote %s cells from $%0*X to $%0*X", m.formatCount(count), m.cfg.AddrDigits(), start,
		m.cfg.AddrDigits(), end&m.cfg.AddrMask)
	return false
}

// parseData evaluates a list of cell values, each checked against the
// cell width.
func (m *Monitor) parseData(args []string) ([]uint16, error) {
	var data []uint16
	for _, arg := range strings.Split(strings.Join(args, ","), ",") {
		if arg == "" {
			continue
		}
		v, err := m.parser.Value(arg)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > int64(m.cfg.ByteMask) {
			return nil, errors.Errorf("overflow: %s does not fit a %d-bit cell", arg, m.cfg.ByteWidth)
		}
		data = append(data, uint16(v))
	}
	if len(data) == 0 {
		return nil, errors.New("no data")
	}
	return data, nil
}

func (m *Monitor) cmdDisassemble(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: disassemble <address_range>")
		return false
	}
	start, end, err := m.parser.Range(cmd.Args[0])
	if err != nil {
		m.report(err)
		return false
	}
	for addr := uint64(start); addr <= uint64(end); {
		n := m.showInstruction(uint32(addr))
		addr += uint64(n)
	}
	return false
}

// showInstruction prints one disassembled line and returns its length.
func (m *Monitor) showInstruction(pc uint32) int {
	n, text := m.dis.InstructionAt(pc)
	bd := m.cfg.ByteDigits()
	cells := m.dis.Bytes(pc)
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%0*X", bd, c)
	}
	m.printf("$%0*X  %-*s  %s", m.cfg.AddrDigits(), pc, 3*(bd+1)-1, strings.Join(parts, " "), text)
	return n
}

func (m *Monitor) cmdAssemble(cmd MonitorCommand) bool {
	if len(cmd.Args) == 0 {
		m.printf("Usage: assemble <address> [statement]")
		return false
	}
	addr, err := m.parser.Number(cmd.Args[0])
	if err != nil {
		m.report(err)
		return false
	}
	if len(cmd.Args) == 1 {
		m.assembling, m.assemblePC = true, addr
		return false
	}
	if _, err := m.assembleAt(addr, strings.Join(cmd.Args[1:], " ")); err != nil {
		m.report(err)
	}
	return false
}

// assembleLine handles a statement in assemble mode. An empty line leaves
// the mode.
func (m *Monitor) assembleLine(line string) {
	if strings.TrimSpace(line) == "" {
		m.assembling = false
		return
	}
	next, err := m.assembleAt(m.assemblePC, line)
	if err != nil {
		m.report(err)
		return
	}
	m.assemblePC = next
}

func (m *Monitor) assembleAt(addr uint32, stmt string) (uint32, error) {
	cells, err := m.asm.Assemble(stmt, addr)
	if err != nil {
		return addr, err
	}
	m.mem.WriteRange(addr, cells)
	if err := m.mem.TakeErr(); err != nil {
		return addr, err
	}
	m.showInstruction(addr)
	return (addr + uint32(len(cells))) & m.cfg.AddrMask, nil
}

func (m *Monitor) cmdAddLabel(cmd MonitorCommand) bool {
	if len(cmd.Args) != 2 {
		m.printf("Usage: add_label <address> <label>")
		return false
	}
	addr, err := m.parser.Number(cmd.Args[0])
	if err != nil {
		m.report(err)
		return false
	}
	name := cmd.Args[1]
	if !labelPattern.MatchString(name) {
		m.printf("Syntax error: %s", name)
		return false
	}
	m.parser.SetLabel(name, addr)
	return false
}

func (m *Monitor) cmdDeleteLabel(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: delete_label <label>")
		return false
	}
	if !m.parser.DeleteLabel(cmd.Args[0]) {
		m.printf("Label not found: %s", cmd.Args[0])
	}
	return false
}

func (m *Monitor) cmdShowLabels(_ MonitorCommand) bool {
	for _, name := range m.parser.Labels() {
		addr, _ := m.parser.LabelAddress(name)
		m.printf("$%0*X: %s", m.cfg.AddrDigits(), addr, name)
	}
	return false
}

func (m *Monitor) cmdAddBreakpoint(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: add_breakpoint <address>")
		return false
	}
	addr, err := m.parser.Number(cmd.Args[0])
	if err != nil {
		m.report(err)
		return false
	}
	id := m.nextBreakpoint
	m.nextBreakpoint++
	m.breakpoints = append(m.breakpoints, breakpoint{ID: id, Addr: addr})
	m.printf("Breakpoint %d added at $%0*X", id, m.cfg.AddrDigits(), addr)
	return false
}

func (m *Monitor) cmdDeleteBreakpoint(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: delete_breakpoint <number>")
		return false
	}
	id, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		m.printf("Illegal number: %s", cmd.Args[0])
		return false
	}
	i := slices.IndexFunc(m.breakpoints, func(b breakpoint) bool { return b.ID == id })
	if i < 0 {
		m.printf("Invalid breakpoint number %d", id)
		return false
	}
	m.breakpoints = slices.Delete(m.breakpoints, i, i+1)
	m.printf("Breakpoint %d removed", id)
	return false
}

func (m *Monitor) cmdShowBreakpoints(_ MonitorCommand) bool {
	for _, b := range m.breakpoints {
		m.printf("Breakpoint %d : $%0*X", b.ID, m.cfg.AddrDigits(), b.Addr)
	}
	return false
}

func (m *Monitor) cmdLoad(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 || len(cmd.Args) > 2 {
		m.printf("Usage: load <filename> [address]")
		return false
	}
	var addr *uint32
	if len(cmd.Args) == 2 {
		a, err := m.parser.Number(cmd.Args[1])
		if err != nil {
			m.report(err)
			return false
		}
		addr = &a
	}
	start, n, err := m.LoadFile(cmd.Args[0], addr)
	if err != nil {
		m.report(err)
		return false
	}
	m.printf("Wrote %s cells from $%0*X to $%0*X", m.formatCount(uint64(n)), m.cfg.AddrDigits(), start,
		m.cfg.AddrDigits(), (start+uint32(n)-1)&m.cfg.AddrMask)
	return false
}

func (m *Monitor) cmdSave(cmd MonitorCommand) bool {
	if len(cmd.Args) != 3 {
		m.printf("Usage: save <filename> <start> <end>")
		return false
	}
	start, err := m.parser.Number(cmd.Args[1])
	if err != nil {
		m.report(err)
		return false
	}
	end, err := m.parser.Number(cmd.Args[2])
	if err != nil {
		m.report(err)
		return false
	}
	if end < start {
		m.printf("End must be >= start")
		return false
	}
	n, err := m.SaveFile(cmd.Args[0], start, end)
	if err != nil {
		m.report(err)
		return false
	}
	m.printf("Saved %s cells to %s", m.formatCount(uint64(n)), cmd.Args[0])
	return false
}

func (m *Monitor) cmdMPU(cmd MonitorCommand) bool {
	var names []string
	for _, cfg := range mpu.Configs() {
		names = append(names, cfg.Name)
	}
	if len(cmd.Args) == 0 {
		m.printf("Current MPU is %s", m.cfg.Name)
		m.printf("Available MPUs: %s", strings.Join(names, ", "))
		return false
	}
	cfg, ok := mpu.ConfigByName(cmd.Args[0])
	if !ok {
		m.printf("Unknown MPU: %s", cmd.Args[0])
		m.printf("Available MPUs: %s", strings.Join(names, ", "))
		return false
	}
	putc, getc := m.console.Ports()
	m.configure(cfg, putc, getc)
	m.printf("Reset with new MPU %s", cfg.Name)
	return false
}

func (m *Monitor) cmdReset(_ MonitorCommand) bool {
	m.mem.Reset()
	m.cpu.Reset()
	return false
}

func (m *Monitor) cmdCycles(_ MonitorCommand) bool {
	m.printf("%d", m.cpu.Cycles)
	return false
}

func (m *Monitor) cmdIRQ(_ MonitorCommand) bool {
	m.cpu.IRQ()
	m.showRegisters()
	return false
}

func (m *Monitor) cmdNMI(_ MonitorCommand) bool {
	m.cpu.NMI()
	m.showRegisters()
	return false
}

var radixNames = map[int]string{2: "Binary", 8: "Octal", 10: "Decimal", 16: "Hexadecimal"}

func (m *Monitor) cmdRadix(cmd MonitorCommand) bool {
	if len(cmd.Args) == 1 {
		radix, ok := map[string]int{
			"b": 2, "2": 2, "o": 8, "8": 8, "d": 10, "10": 10, "h": 16, "16": 16,
		}[strings.ToLower(cmd.Args[0])]
		if !ok {
			m.printf("Illegal radix: %s", cmd.Args[0])
			return false
		}
		m.parser.Radix = radix
	}
	m.printf("Default radix is %s", radixNames[m.parser.Radix])
	return false
}

func (m *Monitor) cmdWidth(cmd MonitorCommand) bool {
	if len(cmd.Args) == 1 {
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			m.printf("Illegal width: %s", cmd.Args[0])
			return false
		}
		if n < 1 {
			m.printf("Minimum terminal width is 1")
			n = 1
		}
		m.width = n
	}
	m.printf("Terminal width is %d", m.width)
	return false
}

func (m *Monitor) cmdTilde(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: ~ <number>")
		return false
	}
	v, err := m.parser.Number(cmd.Args[0])
	if err != nil {
		m.report(err)
		return false
	}
	m.printf("$%X", v)
	m.printf("+%d", v)
	m.printf("@%o", v)
	m.printf("%%%b", v)
	return false
}

func (m *Monitor) cmdScript(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: script <filename>")
		return false
	}
	quit, err := m.RunScript(cmd.Args[0])
	if err != nil {
		m.report(err)
	}
	return quit
}

// RunScript executes a command file. Blank lines and lines starting with
// # are skipped; assemble mode works inside scripts.
func (m *Monitor) RunScript(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrap(err, "script")
	}

	m.scriptDepth++
	defer func() { m.scriptDepth-- }()
	if m.scriptDepth > MAX_SCRIPT_DEPTH {
		return false, errors.New("script recursion limit reached")
	}

	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if !m.assembling && strings.TrimSpace(line) == "" {
			continue
		}
		if m.Feed(line) {
			return true, nil
		}
	}
	m.assembling = false
	return false, nil
}

func (m *Monitor) cmdLua(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: lua <filename>")
		return false
	}

	m.scriptDepth++
	defer func() { m.scriptDepth-- }()
	if m.scriptDepth > MAX_SCRIPT_DEPTH {
		m.printf("Script recursion limit reached")
		return false
	}

	engine := m.luaEngine()
	if err := engine.DoFile(cmd.Args[0]); err != nil {
		m.report(err)
	}
	return engine.TakeQuit()
}

func (m *Monitor) luaEngine() *LuaEngine {
	if m.lua == nil {
		m.lua = NewLuaEngine(m)
	}
	return m.lua
}

func (m *Monitor) cmdCd(cmd MonitorCommand) bool {
	if len(cmd.Args) != 1 {
		m.printf("Usage: cd <directory>")
		return false
	}
	if err := os.Chdir(cmd.Args[0]); err != nil {
		m.report(err)
		return false
	}
	return m.cmdPwd(cmd)
}

func (m *Monitor) cmdPwd(_ MonitorCommand) bool {
	dir, err := os.Getwd()
	if err != nil {
		m.report(err)
		return false
	}
	m.printf("%s", dir)
	return false
}

func (m *Monitor) cmdHelp(_ MonitorCommand) bool {
	helpLines := []string{
		"Machine Monitor Commands:",
		"  registers|r [name=value,...]      Show or set registers",
		"  step|z [count]                    Single-step",
		"  goto|g [addr]                     Run until BRK or a breakpoint",
		"  return|ret                        Run until RTS or a breakpoint",
		"  mem|m <range>                     Memory dump",
		"  fill|f|> <range> <data..>         Fill memory with a repeating list",
		"  disassemble|d <range>             Disassemble",
		"  assemble|a <addr> [statement]     Assemble (no statement: assemble mode)",
		"  add_label|al <addr> <label>       Define a label",
		"  delete_label|dl <label>           Remove a label",
		"  show_labels|shl                   List labels",
		"  add_breakpoint|ab <addr>          Set breakpoint",
		"  delete_breakpoint|db <number>     Clear breakpoint",
		"  show_breakpoints|shb              List breakpoints",
		"  load|l <file> [addr]              Load binary or .hex file",
		"  save|s <file> <start> <end>       Save memory to file",
		"  mpu [name]                        Show or switch processor",
		"  reset                             Reset processor and clear memory",
		"  cycles                            Show cycle count",
		"  irq | nmi                         Raise an interrupt",
		"  radix|rad [b|o|d|h]               Show or set default radix",
		"  width [n]                         Show or set terminal width",
		"  tilde|~ <number>                  Show number in every radix",
		"  script <file>                     Run command script",
		"  lua <file>                        Run Lua script",
		"  cd <dir> | pwd                    Change or show directory",
		"  quit|q|x|exit                     Leave the monitor",
		"",
		"Numbers: $hex +decimal %binary @octal 0xhex, label+offset, pc, sp",
		"Ranges: start:end or start,end",
	}
	for _, line := range helpLines {
		m.printf("%s", line)
	}
	return false
}

// formatCount prints a count in the current radix.
func (m *Monitor) formatCount(n uint64) string {
	return m.parser.Format(uint32(n))
}
