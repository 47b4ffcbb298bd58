// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"io"
	"log"

	"github.com/ezrec/isa16/cpu"
	"github.com/ezrec/isa16/dump"
	"github.com/ezrec/isa16/loader"
)

// Emulator state. CPU + input loader + output dump.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Program  *cpu.Program   // Listing of the loaded program.
	Budget   int            // Instruction budget for Run, 0 is unbounded.
	Define   map[string]int // Additional loader expression constants.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Reset the CPU execution state, keeping memory.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// newLoader clears the processor and listing, and returns a loader for them.
func (emu *Emulator) newLoader() *loader.Loader {
	emu.Cpu.Memory.Reset()
	emu.Reset()
	emu.Program = &cpu.Program{}

	return &loader.Loader{
		Verbose: emu.Verbose,
		Define:  emu.Define,
		Program: emu.Program,
	}
}

// Load clears the processor, then loads registers, data and program from r.
func (emu *Emulator) Load(r io.Reader) (err error) {
	err = emu.newLoader().Load(r, &emu.Cpu.Memory)
	if err != nil {
		return
	}

	emu.logProgram()
	return
}

// LoadFile clears the processor, then loads the input file at path.
func (emu *Emulator) LoadFile(path string) (err error) {
	err = emu.newLoader().LoadFile(path, &emu.Cpu.Memory)
	if err != nil {
		return
	}

	emu.logProgram()
	return
}

// logProgram logs the loaded listing.
func (emu *Emulator) logProgram() {
	if !emu.Verbose {
		return
	}

	for pc, code := range emu.Program.Codes() {
		log.Printf("emulator: line %d: %03d %v", emu.Program.LineNo(pc), pc, code)
	}
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.Pc)
}

// Registers returns a copy of the register file.
func (emu *Emulator) Registers() [cpu.REGISTER_COUNT]int16 {
	return emu.Cpu.Register
}

// LineNo returns the input line number of the instruction at PC,
// or 0 if that slot was not loaded from input.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Code returns the instruction at the current program counter.
func (emu *Emulator) Code() cpu.Code {
	return emu.Cpu.Instruction(int(emu.Cpu.Pc) / 2)
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run the loaded program until HLT, the budget is exhausted, or ctx is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Run(ctx, emu.Budget)
	if err != nil {
		err = &ErrRuntime{Pc: emu.Pc(), LineNo: emu.LineNo(), Err: err}
		return
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Ticks())
	}

	return
}

// Dump writes the memory dump to w.
func (emu *Emulator) Dump(w io.Writer) (err error) {
	return dump.Write(w, &emu.Cpu.Memory)
}

// DumpFile writes the memory dump to a new file at path.
func (emu *Emulator) DumpFile(path string) (err error) {
	return dump.WriteFile(path, &emu.Cpu.Memory)
}

// Report writes the register report to w.
func (emu *Emulator) Report(w io.Writer) (err error) {
	return dump.Registers(w, emu.Cpu)
}
