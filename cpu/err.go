package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOutOfRange         = errors.New(f("out of range"))
	ErrAluUnsupported     = errors.New(f("unsupported alu operation"))
	ErrIllegalInstruction = errors.New(f("illegal instruction"))
	ErrHalted             = errors.New(f("halted"))
	ErrChannelInvalid     = errors.New(f("channel invalid"))
	ErrProgramSize        = errors.New(f("program exceeds memory"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrAddress is a memory address outside of the addressable range.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%02x out of range", int(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrOutOfRange
}

// ErrRegister is a register index outside of the register file.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register %d out of range", int(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrOutOfRange
}

// ErrAluOp is an ALU operation identifier the ALU does not implement.
type ErrAluOp CodeAluOp

func (eo ErrAluOp) Error() string {
	return f("alu operation 0x%x unsupported", int(eo))
}

func (eo ErrAluOp) Is(err error) bool {
	return err == ErrAluUnsupported
}

// ErrInstruction locates a failure at the instruction that caused it.
type ErrInstruction struct {
	Pc   int
	Code Code
	Err  error
}

func (err *ErrInstruction) Error() string {
	return f("pc 0x%02x %v: %v", err.Pc, err.Code.String(), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' does not fit in a byte", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
