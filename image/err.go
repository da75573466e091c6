package image

import (
	"errors"

	"github.com/ezrec/riscy/translate"
)

var f = translate.From

var (
	// Layout errors
	ErrImageEmpty     = errors.New(f("image empty"))
	ErrImageTruncated = errors.New(f("image truncated"))
	ErrImageTrailing  = errors.New(f("image has trailing words"))
	ErrImageTooLarge  = errors.New(f("image exceeds address space"))

	// File format errors
	ErrFormatUnknown = errors.New(f("image format unknown"))
	ErrFormatMagic   = errors.New(f("image container not recognized"))
)

// ErrWord reports a line of a text image that does not hold a word.
type ErrWord struct {
	LineNo int
	Line   string
}

func (err *ErrWord) Error() string {
	return f("line %d '%v' is not an image word", err.LineNo, err.Line)
}
