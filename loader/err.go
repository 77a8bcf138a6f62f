package loader

import (
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrLoad indicates the program that failed to load.
type ErrLoad struct {
	Name string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

// ErrProgramByte is a binary literal that does not fit in a byte.
type ErrProgramByte struct {
	LineNo int
	Text   string
}

func (err *ErrProgramByte) Error() string {
	return f("line %d '%v' is not a byte", err.LineNo, err.Text)
}
