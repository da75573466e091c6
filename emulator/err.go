package emulator

import (
	"errors"

	"github.com/ezrec/riscy/translate"
)

var f = translate.From

var (
	ErrImageMissing = errors.New(f("no program image"))
	ErrTickLimit    = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int    // Source line, or 0 if unknown.
	Pc     uint16 // Address of the failing instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%04x %v", err.Pc, err.Err)
	}
	return f("line %d pc 0x%04x %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
