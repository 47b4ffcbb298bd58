// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory // Processor storage.

	Pc    uint16 // Program counter, a 9-bit code offset.
	Ticks int    // Retired instructions since reset.

	halted bool
}

// NewCpu creates a new CPU with cleared memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Reset the CPU execution state.
// - Sets PC to 0.
// - Zeros the tick counter.
// - Leaves the halted state.
//
// Memory and registers are not touched, so a loaded program can be rerun.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.halted = false
}

// Halted returns true once a HLT instruction has retired.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %03d\n", "pc", cpu.Pc)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04X (%d)\n", fmt.Sprintf("r%d", n), uint16(val), val)
	}

	return
}

// FetchCode fetches the instruction at PC, and advances PC past it.
func (cpu *Cpu) FetchCode() (code Code) {
	code = cpu.Code[cpu.Pc/2]
	cpu.Pc = (cpu.Pc + 2) & OFFSET_MASK

	return
}

// Tick executes a single fetch-decode-execute cycle.
// If the instruction faults, PC is restored and nothing retires.
func (cpu *Cpu) Tick() (err error) {
	if cpu.halted {
		return
	}

	pc := cpu.Pc
	code := cpu.FetchCode()

	if cpu.Verbose {
		log.Printf("%03d: %v", pc, code)
	}

	err = cpu.Execute(code)
	if err != nil {
		cpu.Pc = pc
		return
	}

	cpu.Ticks++

	return
}

// Run ticks the CPU until HLT retires.
//
// If budget is positive, at most budget instructions are executed before
// ErrBudget is returned. With a zero budget a program that never reaches
// HLT runs until ctx is cancelled.
func (cpu *Cpu) Run(ctx context.Context, budget int) (err error) {
	for executed := 0; !cpu.halted; executed++ {
		if budget > 0 && executed >= budget {
			err = ErrBudget
			return
		}

		select {
		case <-ctx.Done():
			err = errors.Join(ErrCancelled, ctx.Err())
			return
		default:
		}

		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction. PC must already point
// past the instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = &ErrOpcode{Code: code, Err: err}
		}
	}()

	op, a, b, c := code.Decode()
	r := &cpu.Register

	switch op {
	case ADD:
		r[a] = r[b] + r[c]
	case ADDI:
		r[a] = r[b] + code.Imm4()
	case SUB:
		r[a] = r[b] - r[c]
	case SUBI:
		r[a] = r[b] - code.Imm4()
	case MUL:
		r[a] = r[b] * r[c]
	case MULI:
		r[a] = r[b] * code.Imm4()
	case LD:
		var value int16
		value, err = cpu.ReadWord(int(r[b]) + int(r[c]) - DATA_BASE)
		if err != nil {
			return
		}
		r[a] = value
	case SD:
		err = cpu.WriteWord(int(r[a])+int(r[b])-DATA_BASE, r[c])
	case JMP:
		err = cpu.branch(code.Offset8())
	case BEQZ:
		if r[a] == 0 {
			err = cpu.branch(code.Offset8())
		}
	case HLT:
		cpu.halted = true
	default:
		// Reserved opcodes retire without changing any state.
		if cpu.Verbose {
			log.Printf("cpu: reserved %v skipped", op)
		}
	}

	return
}

// branch moves PC by an offset relative to the branch instruction itself.
// PC already points past the branch, hence the -2.
func (cpu *Cpu) branch(offset int16) (err error) {
	target := (int(cpu.Pc) + int(offset) - 2) & OFFSET_MASK
	if target%2 != 0 {
		err = ErrPcAlign
		return
	}

	cpu.Pc = uint16(target)
	return
}
