package cpu

import (
	"iter"

	"github.com/ezrec/riscy/image"
)

// Program is the output of the assembler: both segments, the source line
// of every emitted word, and the symbol table.
type Program struct {
	Data     []uint16    // Data segment.
	Text     []Code      // Text segment.
	DataLine []Line      // Source line of each data word.
	TextLine []Line      // Source line of each text word.
	Symbols  SymbolTable // Labels and their addresses.
}

// Image returns the loadable program image.
func (prog *Program) Image() (img *image.Image, err error) {
	text := make([]uint16, len(prog.Text))
	for n, code := range prog.Text {
		text[n] = uint16(code)
	}

	data := make([]uint16, len(prog.Data))
	copy(data, prog.Data)

	return image.New(data, text)
}

// textStart is the load address of the first instruction.
func (prog *Program) textStart() int {
	return image.DATA_START + len(prog.Data) + 1
}

// Debug returns the source line of the word loaded at a memory address.
func (prog *Program) Debug(address uint16) (line Line, ok bool) {
	addr := int(address)

	if index := addr - image.DATA_START; index >= 0 && index < len(prog.DataLine) {
		return prog.DataLine[index], true
	}

	if index := addr - prog.textStart(); index >= 0 && index < len(prog.TextLine) {
		return prog.TextLine[index], true
	}

	return
}

// Codes iterates over the instructions by load address.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(address uint16, code Code) bool) {
		start := uint16(prog.textStart())
		for n, code := range prog.Text {
			if !yield(start+uint16(n), code) {
				return
			}
		}
	}
}
