package cpu

import (
	"errors"

	"github.com/ezrec/riscy/translate"
)

var f = translate.From

var (
	// Error categories
	ErrToken   = errors.New(f("syntax error"))
	ErrLabel   = errors.New(f("label error"))
	ErrOperand = errors.New(f("operand error"))

	// Syntax errors
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrDirectiveInvalid = errors.New(f("directive invalid"))

	// Label errors
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrLabelOrphan    = errors.New(f("label without instruction"))
	ErrLabelIndented  = errors.New(f("label indented"))

	// Operand errors
	ErrOperandInvalid  = errors.New(f("operand invalid"))
	ErrOperandCount    = errors.New(f("operand count"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrFillMissing     = errors.New(f(".fill value missing"))

	// Cpu errors
	ErrHalted        = errors.New(f("cpu halted"))
	ErrOpcodeRuntime = errors.New(f("opcode not executable"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Unwrap() error {
	return ErrLabel
}

type ErrTokenUnknown string

func (et ErrTokenUnknown) Error() string {
	return f("token '%v' unknown", string(et))
}

func (et ErrTokenUnknown) Unwrap() error {
	return ErrToken
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrOperand
}

type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
}

func (err *ErrExpression) Unwrap() []error {
	return []error{ErrOperand, err.Err}
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax locates an assembler error in the source.
type ErrSyntax struct {
	LineNo int    // 1-based source line.
	Line   string // Source text of the line.
	Token  string // Offending token, if any.
	Err    error
}

func (err *ErrSyntax) Error() string {
	if len(err.Token) != 0 {
		return f("line %d '%v' at '%v' %v", err.LineNo, err.Line, err.Token, err.Err)
	}
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
