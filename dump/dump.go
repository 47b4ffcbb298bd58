// Package dump writes the final processor memory as text.
//
// Every logical address 0..1023 produces one line:
//
//	0000 : 0001 0000
//
// Code addresses show the instruction word a nibble pair at a time
// (opcode/op1 at the even address, op2/op3 at the odd one), data addresses
// show the high and low nibble of the byte.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/ezrec/isa16/cpu"
	"github.com/ezrec/isa16/internal"
)

// Line is a single dump record.
type Line struct {
	Address int   // Logical address.
	High    uint8 // Upper nibble shown.
	Low     uint8 // Lower nibble shown.
}

// String formats the line, without a newline.
func (ln Line) String() string {
	return fmt.Sprintf("%04d : %04b %04b", ln.Address, ln.High&0xf, ln.Low&0xf)
}

// codeLines yields two lines per instruction slot.
func codeLines(mem *cpu.Memory) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for slot, code := range mem.Instructions() {
			op, op1, op2, op3 := code.Decode()
			if !yield(Line{Address: slot * 2, High: uint8(op), Low: uint8(op1)}) {
				return
			}
			if !yield(Line{Address: slot*2 + 1, High: uint8(op2), Low: uint8(op3)}) {
				return
			}
		}
	}
}

// dataLines yields one line per data byte.
func dataLines(mem *cpu.Memory) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for index, value := range mem.Bytes() {
			if !yield(Line{Address: cpu.DATA_BASE + index, High: value >> 4, Low: value & 0xf}) {
				return
			}
		}
	}
}

// Lines returns an iterator over all dump lines, in address order.
func Lines(mem *cpu.Memory) iter.Seq[Line] {
	return internal.IterSeqConcat(codeLines(mem), dataLines(mem))
}

// Write the dump of mem to w.
func Write(w io.Writer, mem *cpu.Memory) (err error) {
	bw := bufio.NewWriter(w)

	for line := range Lines(mem) {
		_, err = fmt.Fprintln(bw, line.String())
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// WriteFile writes the dump of mem to a new file at path.
func WriteFile(path string, mem *cpu.Memory) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = Write(ouf, mem)
	return
}
