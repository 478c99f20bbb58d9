// main.go - Entry point for the six5go 6502 family emulator and monitor

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
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/intuitionamiga/six5go/mpu"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

func boilerPlate(out io.Writer) {
	fmt.Fprintln(out, "six5go - 6502, 65C02 and 65Org16 emulator and machine monitor")
	fmt.Fprintln(out, "(c) 2024 - 2026 Zayn Otley")
	fmt.Fprintln(out, "https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Fprintln(out, "License: GPLv3 or later")
	fmt.Fprintln(out)
}

type options struct {
	mpuName  string
	load     string
	rom      string
	gotoAddr string
	batch    string
	putc     string
	getc     string
	debug    bool
}

func parseOptions(args []string) (options, error) {
	var opts options
	flagSet := flag.NewFlagSet("six5go", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.mpuName, "mpu", mpu.NMOS6502.Name, "Processor: 6502, 65C02 or 65Org16")
	flagSet.StringVar(&opts.load, "load", "", "Load a binary (at 0) or .hex file")
	flagSet.StringVar(&opts.rom, "rom", "", "Load a binary ending at the top of memory and reset through the vector")
	flagSet.StringVar(&opts.gotoAddr, "goto", "", "Run from this address after loading")
	flagSet.StringVar(&opts.batch, "batch", "", "Run a command script and exit")
	flagSet.StringVar(&opts.putc, "putc", "$F001", "Console output port address")
	flagSet.StringVar(&opts.getc, "getc", "$F004", "Console input port address")
	flagSet.BoolVar(&opts.debug, "debug", false, "Stop on undefined opcodes")
	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: six5go [-mpu 6502|65C02|65Org16] [-load file] [-rom file] [-goto addr] [-batch script]")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if flagSet.NArg() > 0 {
		return opts, errors.Errorf("unexpected argument %q", flagSet.Arg(0))
	}
	return opts, nil
}

// run builds a monitor from args and drives it from in. The terminal host
// is only attached when in is an interactive terminal.
func run(args []string, in io.Reader, out io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	cfg, ok := mpu.ConfigByName(opts.mpuName)
	if !ok {
		return errors.Errorf("unknown mpu %q", opts.mpuName)
	}

	mon := NewMonitor(cfg, out)
	defer mon.Close()
	mon.SetDebug(opts.debug)

	putc, err := mon.Parser().Number(opts.putc)
	if err != nil {
		return errors.Wrap(err, "putc")
	}
	getc, err := mon.Parser().Number(opts.getc)
	if err != nil {
		return errors.Wrap(err, "getc")
	}
	mon.SetPorts(putc, getc)

	if f, ok := in.(*os.File); ok && opts.batch == "" && term.IsTerminal(int(f.Fd())) {
		mon.SetHost(NewTerminalHost(mon.Console()))
	}

	if opts.rom != "" {
		if _, _, err := mon.LoadROM(opts.rom); err != nil {
			return err
		}
		mon.CPU().ResetFromVector()
	}
	if opts.load != "" {
		if _, _, err := mon.LoadFile(opts.load, nil); err != nil {
			return err
		}
	}
	if opts.gotoAddr != "" {
		if mon.ExecuteCommand("goto " + opts.gotoAddr) {
			return nil
		}
	}

	if opts.batch != "" {
		_, err := mon.RunScript(opts.batch)
		return err
	}

	boilerPlate(out)
	return mon.Run(in)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("six5go: ")

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}
