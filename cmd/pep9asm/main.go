// This file is part of Pep9.
//
// Pep9 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pep9 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pep9.  If not, see <https://www.gnu.org/licenses/>.

// Command pep9asm assembles Pep/9 source: ISA assembly (plain user
// programs and operating systems) and microcode. Grounded on
// Pep9Term/termhelper.cpp's BuildHelper and on the teacher's
// flag-parsing main (gopher2600.go): subcommands dispatched from
// os.Args[1], flag-based option parsing per subcommand, errors written
// to stderr, non-zero exit on failure.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pep9sim/pep9/asm"
	"github.com/pep9sim/pep9/asm/program"
	"github.com/pep9sim/pep9/config"
	"github.com/pep9sim/pep9/cpu"
	"github.com/pep9sim/pep9/logger"
	"github.com/pep9sim/pep9/memory"
	"github.com/pep9sim/pep9/micro"
)

var log = logger.NewLogger(1000)

func main() {
	var mode string
	if len(os.Args) > 1 {
		mode = strings.ToUpper(os.Args[1])
	}

	var err error
	switch mode {
	case "ASM":
		err = buildUser(os.Args[2:])
	case "OS":
		err = buildOS(os.Args[2:])
	case "MICRO":
		err = buildMicro(os.Args[2:])
	case "VERSION":
		fmt.Println("pep9asm (pep9sim/pep9)")
		return
	default:
		fmt.Fprintln(os.Stderr, "usage: pep9asm {asm|os|micro|version} [flags] <file>")
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pep9asm: %s\n", err)
		os.Exit(1)
	}
}

func buildUser(args []string) error {
	flgs := flag.NewFlagSet("asm", flag.ContinueOnError)
	osPath := flgs.String("os", "", "operating system source, used to resolve charIn/charOut")
	if err := flgs.Parse(args); err != nil {
		return err
	}
	args = flgs.Args()
	if len(args) == 0 {
		return fmt.Errorf("source file required")
	}
	path := args[0]

	mgr := program.NewManager()
	if *osPath != "" {
		osSource, err := readFile(*osPath)
		if err != nil {
			return err
		}
		cfg := config.Default()
		if _, diags, ok := mgr.AssembleOS(osSource, cfg.ForceBurnAtFFFF); !ok {
			return writeErrorLog(*osPath, &asm.Result{Diagnostics: diags}, fmt.Errorf("operating system failed to assemble"))
		}
	}

	source, err := readFile(path)
	if err != nil {
		return err
	}

	var r *asm.Result
	if mgr.OS != nil {
		_, diags, ok := mgr.AssembleUser(source)
		r = &asm.Result{Diagnostics: diags}
		if ok {
			r = resultFromProgram(mgr.User, diags)
		}
	} else {
		r = asm.Assemble(source)
	}
	return writeAsmOutputs(path, r)
}

// resultFromProgram reconstructs an *asm.Result view of an already
// assembled Program, so writeAsmOutputs has a single shape to render
// regardless of whether charIn/charOut were resolved via an OS.
func resultFromProgram(p *program.Program, diags []asm.Diagnostic) *asm.Result {
	return &asm.Result{
		Codes:             p.Codes,
		Symbols:           p.Symbols,
		Diagnostics:       diags,
		Static:            p.Static,
		ProgramByteLength: p.ByteLength,
		FirstAddress:      p.FirstAddress,
		LastAddress:       p.LastAddress,
		BurnAddr:          p.BurnAddr,
		BurnCount:         p.BurnCount,
	}
}

func buildOS(args []string) error {
	flgs := flag.NewFlagSet("os", flag.ContinueOnError)
	forceBurn := flgs.Bool("forceburn", false, "require .BURN 0xFFFF")
	configPath := flgs.String("config", "", "optional YAML config profile, overridden by -forceburn")
	if err := flgs.Parse(args); err != nil {
		return err
	}
	args = flgs.Args()
	if len(args) == 0 {
		return fmt.Errorf("source file required")
	}
	path := args[0]
	cfg, err := loadConfig(*configPath, config.WithForceBurnAtFFFF(*forceBurn))
	if err != nil {
		return err
	}

	source, err := readFile(path)
	if err != nil {
		return err
	}

	mgr := program.NewManager()
	_, diags, ok := mgr.AssembleOS(source, cfg.ForceBurnAtFFFF)
	r := &asm.Result{Diagnostics: diags}
	if !ok {
		return writeErrorLog(path, r, fmt.Errorf("operating system failed to assemble"))
	}
	log.Logf(logger.Allow, "pep9asm", "assembled operating system from %s", path)
	return writeErrorLog(path, r, nil)
}

func buildMicro(args []string) error {
	flgs := flag.NewFlagSet("micro", flag.ContinueOnError)
	extended := flgs.Bool("extended", true, "enable symbolic if/goto branch syntax")
	configPath := flgs.String("config", "", "optional YAML config profile, overridden by -extended")
	if err := flgs.Parse(args); err != nil {
		return err
	}
	args = flgs.Args()
	if len(args) == 0 {
		return fmt.Errorf("source file required")
	}
	path := args[0]
	cfg, err := loadConfig(*configPath, config.WithExtendedMicrocode(*extended))
	if err != nil {
		return err
	}

	source, err := readFile(path)
	if err != nil {
		return err
	}

	result := micro.Assemble(source, cfg.ExtendedMicrocode)
	if !result.Success() {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, ";ERROR: line %d: %s\n", d.Line, d.Message)
		}
		return fmt.Errorf("microcode failed to assemble")
	}

	return runUnitTests(result.Program)
}

// runUnitTests collects every UnitPre/UnitPost spec in mp into a single
// unit test and drives a fresh cpu.Engine through it, per spec.md §4.4's
// "MicrocodeProgram" post-pass linking description. A program with no
// pre/post-condition lines has nothing to check and is treated as a
// plain assembly-only run.
func runUnitTests(mp *micro.Program) error {
	ut := micro.NewUnitTest(mp)
	if len(ut.Pre) == 0 && len(ut.Post) == 0 {
		fmt.Println("microcode assembled, no unit test specified")
		return nil
	}

	engine := cpu.NewEngine(memory.NewMain(), config.Default())
	engine.LoadMicrocode(mp)
	engine.Reset()

	if err := ut.Run(engine); err != nil {
		fmt.Printf("unit test: FAIL: %s\n", err)
		log.Logf(logger.Allow, "pep9asm", "unit test failed, register snapshots:\n%s", engine.DumpSnapshots())
		return err
	}
	fmt.Println("unit test: PASS")
	return nil
}

// loadConfig starts from a YAML profile when path is non-empty, otherwise
// from config.Default(), and then applies opts on top so the subcommand's
// own flags always win over whatever a profile says.
func loadConfig(path string, opts ...config.Option) (config.Config, error) {
	if path == "" {
		return config.New(opts...), nil
	}
	cfg, err := config.LoadYAML(path)
	if err != nil {
		return cfg, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", path, err)
	}
	return string(b), nil
}

func baseName(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	dir := ""
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		dir = path[:i+1]
	}
	return dir + base
}

// writeAsmOutputs writes the object code and listing next to source on
// success, and always writes an error log when there are diagnostics.
func writeAsmOutputs(path string, r *asm.Result) error {
	base := baseName(path)

	if len(r.Diagnostics) > 0 {
		if err := writeErrorLog(path, r, nil); err != nil {
			return err
		}
	}

	if !r.Success() {
		return fmt.Errorf("errors encountered assembling %s, see %s", path, base+"_errLog.txt")
	}

	obj := asm.ObjectImage(r.Codes)
	if err := os.WriteFile(base+".pepo", []byte(asm.FormatObjectCode(obj)), 0o644); err != nil {
		return fmt.Errorf("cannot open %s: %w", base+".pepo", err)
	}
	if err := os.WriteFile(base+".pepl", []byte(asm.FormatListing(r)), 0o644); err != nil {
		return fmt.Errorf("cannot open %s: %w", base+".pepl", err)
	}
	log.Logf(logger.Allow, "pep9asm", "assembled %s into %s", path, base+".pepo")
	return nil
}

func writeErrorLog(path string, r *asm.Result, outer error) error {
	if len(r.Diagnostics) == 0 {
		return outer
	}
	base := baseName(path)
	var b strings.Builder
	for _, d := range r.Diagnostics {
		prefix := ";ERROR:"
		if d.Warning {
			prefix = ";WARNING:"
		}
		fmt.Fprintf(&b, "%s line %d: %s\n", prefix, d.Line, d.Message)
	}
	if err := os.WriteFile(base+"_errLog.txt", []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("cannot open %s: %w", base+"_errLog.txt", err)
	}
	return outer
}
