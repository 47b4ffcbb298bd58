package cpu

import (
	"errors"

	"github.com/ezrec/isa16/translate"
)

var f = translate.From

var (
	// Load errors
	ErrAddressRange     = errors.New(f("address out of range"))
	ErrSegment          = errors.New(f("wrong segment"))
	ErrInstructionAlign = errors.New(f("instruction address not word aligned"))

	// Cpu errors
	ErrDataRange = errors.New(f("data access out of range"))
	ErrPcAlign   = errors.New(f("pc not word aligned"))
	ErrBudget    = errors.New(f("instruction budget exhausted"))
	ErrCancelled = errors.New(f("run cancelled"))
)

// ErrOpcode wraps a runtime error with the instruction that raised it.
type ErrOpcode struct {
	Code Code
	Err  error
}

func (eo *ErrOpcode) Error() string {
	return f("opcode 0x%04x (%v): %v", uint16(eo.Code), eo.Code.String(), eo.Err)
}

func (eo *ErrOpcode) Unwrap() error {
	return eo.Err
}
