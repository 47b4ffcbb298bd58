package cpu

import (
	"iter"
)

// Source is a loaded instruction with its input location.
type Source struct {
	LineNo int  // Input line of the instruction record.
	Pc     int  // Code offset the instruction was loaded at.
	Code   Code // Instruction word.
}

// Program is the listing of a loaded program.
type Program struct {
	Sources []Source
}

// Debug is a listing lookup result; Source is nil when nothing was loaded
// at the offset.
type Debug struct {
	*Source
}

// Debug returns the listing entry at a code offset, if any.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, src := range prog.Sources {
		if int(pc) == src.Pc {
			dbg = Debug{Source: &prog.Sources[n]}
			break
		}
	}

	return
}

// LineNo returns the input line for a code offset, or 0 if unknown.
func (prog *Program) LineNo(pc uint16) int {
	dbg := prog.Debug(pc)
	if dbg.Source == nil {
		return 0
	}
	return dbg.LineNo
}

// Append adds an instruction to the listing.
func (prog *Program) Append(lineNo int, pc int, code Code) {
	prog.Sources = append(prog.Sources, Source{LineNo: lineNo, Pc: pc, Code: code})
}

// Codes returns an iterator over the listed instructions, by code offset.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(pc uint16, code Code) bool) {
		for _, src := range prog.Sources {
			if !yield(uint16(src.Pc), src.Code) {
				return
			}
		}
	}
}
