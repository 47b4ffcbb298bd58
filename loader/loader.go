// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package loader reads the isa16 input format into processor memory.
//
// The input is a whitespace separated list of integers in three sections:
//
//	r0 r1 ... r15                  ; 16 initial register values
//	<address> <value> ... -1 -1    ; data words at logical addresses 512..1023
//	<op> <op1> <op2> <op3> ... -1  ; instructions, stored from address 0
//
// Text from ';' or '#' to the end of a line is ignored. Numbers may use Go
// literal prefixes (0x, 0o, 0b), and $(...) is evaluated as an integer
// expression. Expressions may not contain whitespace.
package loader

import (
	"bufio"
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/isa16/cpu"
)

// SENTINEL ends the data and instruction sections.
const SENTINEL = -1

// Predefined expression constants.
var sysDefine = map[string]int{
	"DATA_BASE": cpu.DATA_BASE,
	"DATA_SIZE": cpu.DATA_SIZE,
	"CODE_SIZE": cpu.CODE_SIZE,
}

func init() {
	for _, op := range cpu.Opcodes {
		sysDefine[op.String()] = int(op)
	}
}

// Loader parses input files.
type Loader struct {
	Verbose bool           // If set, verbosely logs the loaded values.
	Define  map[string]int // Additional expression constants.

	Program *cpu.Program // If set, receives the listing of loaded instructions.
}

// Load reads the input from r into mem, with a default Loader.
func Load(r io.Reader, mem *cpu.Memory) (err error) {
	return (&Loader{}).Load(r, mem)
}

// LoadFile reads the input file at path into mem, with a default Loader.
func LoadFile(path string, mem *cpu.Memory) (err error) {
	return (&Loader{}).LoadFile(path, mem)
}

// LoadFile reads the input file at path into mem.
func (ld *Loader) LoadFile(path string, mem *cpu.Memory) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = ld.Load(inf, mem)
	return
}

// Load reads the input from r into mem.
func (ld *Loader) Load(r io.Reader, mem *cpu.Memory) (err error) {
	sc := newScanner(r)

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: sc.lineNo, Text: sc.text, Err: err}
		}
	}()

	// Registers
	for n := range cpu.REGISTER_COUNT {
		var value int16
		value, err = ld.nextWord(sc)
		if err != nil {
			return
		}
		mem.SetRegister(n, value)
		if ld.Verbose {
			log.Printf("loader: r%d = %d", n, value)
		}
	}

	// Data
	for {
		var logical int
		logical, err = ld.nextValue(sc)
		if err != nil {
			return
		}

		var raw int
		raw, err = ld.nextValue(sc)
		if err != nil {
			return
		}

		if logical == SENTINEL {
			break
		}

		var value int16
		value, err = toWord(raw)
		if err != nil {
			return
		}

		var addr cpu.Address
		addr, err = cpu.LogicalAddress(logical)
		if err != nil || addr.Segment() != cpu.SEGMENT_DATA {
			err = errors.Join(ErrDataAddress, err)
			return
		}

		err = mem.StoreData(addr, value)
		if err != nil {
			return
		}
		if ld.Verbose {
			log.Printf("loader: [%d] = %d", addr.Logical(), value)
		}
	}

	// Instructions
	for offset := 0; ; offset += 2 {
		var fields [4]int
		var lineNo int
		for n := range fields {
			fields[n], err = ld.nextValue(sc)
			if err != nil {
				return
			}
			if n == 0 {
				if fields[0] == SENTINEL {
					// Anything after the final sentinel is ignored.
					return
				}
				lineNo = sc.lineNo
			}
		}

		if offset >= cpu.CODE_SIZE {
			err = ErrProgramFull
			return
		}

		code := cpu.MakeCode(cpu.Opcode(fields[0]&0xf), fields[1], fields[2], fields[3])
		err = mem.LoadInstruction(cpu.MakeAddress(cpu.SEGMENT_CODE, offset), code)
		if err != nil {
			return
		}
		if ld.Program != nil {
			ld.Program.Append(lineNo, offset, code)
		}
		if ld.Verbose {
			log.Printf("loader: %03d: %v", offset, code)
			if !code.Opcode().Valid() {
				log.Printf("loader: %03d: reserved opcode, executes as a no-op", offset)
			}
		}
	}
}

// nextValue parses the next token as an integer.
func (ld *Loader) nextValue(sc *scanner) (value int, err error) {
	word, err := sc.next()
	if err != nil {
		return
	}

	return ld.valueOf(word)
}

// nextWord parses the next token as a 16-bit value. Both signed and unsigned
// 16-bit ranges are accepted.
func (ld *Loader) nextWord(sc *scanner) (word int16, err error) {
	value, err := ld.nextValue(sc)
	if err != nil {
		return
	}

	return toWord(value)
}

// toWord converts an integer to a 16-bit value.
func toWord(value int) (word int16, err error) {
	if value < -0x8000 || value > 0xffff {
		err = ErrValueRange
		return
	}

	word = int16(uint16(value))
	return
}

// valueOf returns the value of a number or $(...) expression.
func (ld *Loader) valueOf(word string) (value int, err error) {
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return ld.parenEval(word[2 : len(word)-1])
	}

	// Decimal first, so that "08" is eight rather than a bad octal.
	v64, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		v64, err = strconv.ParseInt(word, 0, 32)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does load-time $(...) evaluations.
func (ld *Loader) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "loader"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range sysDefine {
		pred[key] = starlark.MakeInt(val)
	}
	for key, val := range ld.Define {
		pred[key] = starlark.MakeInt(val)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// scanner splits the input into words, dropping comments.
type scanner struct {
	lines  *bufio.Scanner
	lineNo int
	text   string
	words  []string
}

func newScanner(r io.Reader) *scanner {
	return &scanner{lines: bufio.NewScanner(r)}
}

// next returns the next word, or ErrTruncated at the end of input.
func (sc *scanner) next() (word string, err error) {
	for len(sc.words) == 0 {
		if !sc.lines.Scan() {
			err = sc.lines.Err()
			if err == nil {
				err = ErrTruncated
			}
			return
		}
		sc.lineNo++
		sc.text = sc.lines.Text()
		line := sc.text
		if n := strings.IndexAny(line, ";#"); n >= 0 {
			line = line[:n]
		}
		sc.words = strings.Fields(line)
	}

	word = sc.words[0]
	sc.words = sc.words[1:]
	return
}
