package loader

import (
	"errors"

	"github.com/ezrec/isa16/translate"
)

var f = translate.From

var (
	ErrTruncated   = errors.New(f("input truncated"))
	ErrDataAddress = errors.New(f("not a data address"))
	ErrValueRange  = errors.New(f("value out of 16-bit range"))
	ErrProgramFull = errors.New(f("instruction memory full"))
)

// ErrSyntax indicates the location of a load error.
type ErrSyntax struct {
	LineNo int
	Text   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Text, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
