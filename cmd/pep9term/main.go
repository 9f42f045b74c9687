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

// Command pep9term runs a Pep/9 user program against a microcode
// implementation and an operating system, reading CharIn from a file
// (or "\n" if none is given) and writing CharOut to a named output
// file. Grounded on Pep9Term/termhelper.cpp's RunHelper, adapted from
// its Qt signal/slot IO plumbing to a single synchronous pass since this
// module has no event loop.
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
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pep9term: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flgs := flag.NewFlagSet("pep9term", flag.ContinueOnError)
	osPath := flgs.String("os", "", "operating system source (required)")
	programPath := flgs.String("program", "", "user program source (required)")
	microPath := flgs.String("micro", "", "microcode implementation (required)")
	inputPath := flgs.String("input", "", "CharIn source file (defaults to a single newline)")
	outputPath := flgs.String("output", "", "CharOut destination file (required)")
	forceBurn := flgs.Bool("forceburn", false, "require the OS's .BURN to be 0xFFFF")
	extended := flgs.Bool("extended", true, "enable symbolic if/goto microcode syntax")
	configPath := flgs.String("config", "", "optional YAML config profile, overridden by -forceburn/-extended")
	if err := flgs.Parse(args); err != nil {
		return err
	}

	if *osPath == "" || *programPath == "" || *microPath == "" || *outputPath == "" {
		return fmt.Errorf("-os, -program, -micro and -output are all required")
	}

	cfg, err := loadConfig(*configPath, *forceBurn, *extended)
	if err != nil {
		return err
	}

	mgr := program.NewManager()

	osSource, err := readFile(*osPath)
	if err != nil {
		return err
	}
	_, diags, ok := mgr.AssembleOS(osSource, cfg.ForceBurnAtFFFF)
	if !ok {
		return diagErr(*osPath, diags, "operating system failed to assemble")
	}
	log.Logf(logger.Allow, "pep9term", "assembled operating system from %s", *osPath)

	progSource, err := readFile(*programPath)
	if err != nil {
		return err
	}
	_, diags, ok = mgr.AssembleUser(progSource)
	if !ok {
		return diagErr(*programPath, diags, "user program failed to assemble")
	}
	log.Logf(logger.Allow, "pep9term", "assembled user program from %s", *programPath)

	microSource, err := readFile(*microPath)
	if err != nil {
		return err
	}
	microResult := micro.Assemble(microSource, cfg.ExtendedMicrocode)
	if !microResult.Success() {
		return fmt.Errorf("%s: %s", *microPath, microcodeDiagSummary(microResult))
	}

	charIn, charOut, err := resolveCharIO(mgr)
	if err != nil {
		return err
	}

	inputBytes := []byte(cfg.CharInDefault)
	if *inputPath != "" {
		b, err := os.ReadFile(*inputPath)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", *inputPath, err)
		}
		inputBytes = b
	}

	mem := memory.NewMain()
	if err := mgr.OS.LoadInto(mem); err != nil {
		return err
	}
	if err := mgr.User.LoadInto(mem); err != nil {
		return err
	}

	io := memory.NewIODevice(mem, charIn, charOut, inputBytes)

	engine := cpu.NewEngine(io, cfg)
	engine.LoadMicrocode(microResult.Program)
	engine.LoadProgram(mgr.User)
	engine.Reset()
	engine.Current.Regs.PC = uint16(mgr.User.FirstAddress)
	engine.Current.Regs.SP = mgr.OS.Vector(program.VectorUserStack)

	runErr := engine.RunToCompletion()

	output := io.Output()
	if runErr != nil {
		output = append(output, []byte(fmt.Sprintf("[[%s]]", runErr))...)
		log.Logf(logger.Allow, "pep9term", "run failed, register snapshots:\n%s", engine.DumpSnapshots())
	}
	if err := os.WriteFile(*outputPath, output, 0o644); err != nil {
		return fmt.Errorf("cannot open %s: %w", *outputPath, err)
	}

	return runErr
}

// resolveCharIO reads the charIn/charOut port addresses out of the
// assembled OS's symbol table, the way the original engine reads them
// off the operating system before constructing the memory map.
func resolveCharIO(mgr *program.Manager) (charIn, charOut uint16, err error) {
	in, ok := mgr.OS.Symbols.Get("charIn")
	if !ok || !in.IsDefined() {
		return 0, 0, fmt.Errorf("operating system does not define charIn")
	}
	out, ok := mgr.OS.Symbols.Get("charOut")
	if !ok || !out.IsDefined() {
		return 0, 0, fmt.Errorf("operating system does not define charOut")
	}
	return in.Value.Addr(), out.Value.Addr(), nil
}

// loadConfig starts from a YAML profile when path is non-empty, otherwise
// from config.Default(), and then applies the -forceburn/-extended flags
// on top so they always win over whatever a profile says.
func loadConfig(path string, forceBurn, extended bool) (config.Config, error) {
	if path == "" {
		return config.New(
			config.WithForceBurnAtFFFF(forceBurn),
			config.WithExtendedMicrocode(extended),
		), nil
	}
	cfg, err := config.LoadYAML(path)
	if err != nil {
		return cfg, err
	}
	cfg.ForceBurnAtFFFF = forceBurn
	cfg.ExtendedMicrocode = extended
	return cfg, nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", path, err)
	}
	return string(b), nil
}

func diagErr(path string, diags []asm.Diagnostic, fallback string) error {
	var b strings.Builder
	b.WriteString(fallback)
	for _, d := range diags {
		prefix := "error"
		if d.Warning {
			prefix = "warning"
		}
		fmt.Fprintf(&b, "\nline %d: %s: %s", d.Line, prefix, d.Message)
	}
	return fmt.Errorf("%s: %s", path, b.String())
}

func microcodeDiagSummary(r *micro.Result) string {
	var b strings.Builder
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "line %d: %s\n", d.Line, d.Message)
	}
	return b.String()
}
