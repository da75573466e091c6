// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/ezrec/riscy/config"
	"github.com/ezrec/riscy/image"
)

var log = commonlog.GetLogger("riscy.cpu")

// Assembler is a two pass assembler for the riscy instruction set.
type Assembler struct {
	Config config.Config // Verbose logging and label addressing mode.
}

// statement is a tokenized source line.
type statement struct {
	Line
	label  *Token  // Label defined on the line, if any.
	tokens []Token // Tokens following the label.
}

// isData reports if the statement emits a data word.
func (stmt *statement) isData() bool {
	return len(stmt.tokens) != 0 &&
		stmt.tokens[0].Kind == TOKEN_DIRECTIVE &&
		stmt.tokens[0].Name == "fill"
}

// assembly is the state of one assembler invocation.
type assembly struct {
	*Assembler
	symbols  SymbolTable
	program  *Program
	dataSize int
}

// Assemble assembles cleaned source lines, numbered from 1.
func (asm *Assembler) Assemble(lines []string) (prog *Program, err error) {
	source := make([]Line, len(lines))
	for n, text := range lines {
		source[n] = Line{LineNo: n + 1, Text: text}
	}

	return asm.AssembleLines(source)
}

// Parse cleans and assembles source text.
func (asm *Assembler) Parse(r io.Reader) (prog *Program, err error) {
	lines, err := Clean(r)
	if err != nil {
		return
	}

	return asm.AssembleLines(lines)
}

// AssembleLines assembles cleaned source lines. The first error aborts the
// assembly, and is always an *ErrSyntax.
func (asm *Assembler) AssembleLines(lines []Line) (prog *Program, err error) {
	state := &assembly{
		Assembler: asm,
		symbols:   SymbolTable{},
		program:   &Program{},
	}

	stmts, err := state.pass1(lines)
	if err != nil {
		return
	}

	err = state.pass2(stmts)
	if err != nil {
		return
	}

	prog = state.program
	prog.Symbols = state.symbols

	if asm.Config.Verbose {
		log.Infof("assembled %d data, %d text, %d labels",
			len(prog.Data), len(prog.Text), prog.Symbols.Len())
	}

	return
}

// labelAddress is the address of the label on a statement.
func (state *assembly) labelAddress(index, dataIndex, textIndex int, stmt *statement) uint16 {
	if state.Config.Labels != config.LABELS_IMAGE {
		return uint16(index)
	}

	if stmt.isData() {
		return uint16(image.DATA_START + dataIndex)
	}

	return state.textAddress(textIndex)
}

// textAddress is the load address of an instruction.
func (state *assembly) textAddress(textIndex int) uint16 {
	return uint16(image.DATA_START + state.dataSize + 1 + textIndex)
}

// pass1 tokenizes every line, and collects the labels.
func (state *assembly) pass1(lines []Line) (stmts []statement, err error) {
	stmts = make([]statement, len(lines))

	for n, line := range lines {
		stmt := &stmts[n]
		stmt.Line = line
		stmt.tokens = Tokenize(line.Text)
		if len(stmt.tokens) != 0 && strings.HasSuffix(stmt.tokens[0].Text, ":") {
			stmt.label = &stmt.tokens[0]
			stmt.tokens = stmt.tokens[1:]
		}
		if stmt.isData() {
			state.dataSize++
		}
	}

	dataIndex, textIndex := 0, 0
	for n := range stmts {
		stmt := &stmts[n]

		if stmt.label != nil {
			err = state.define(n, dataIndex, textIndex, stmt)
			if err != nil {
				err = &ErrSyntax{LineNo: stmt.LineNo, Line: stmt.Text, Token: stmt.label.Text, Err: err}
				return
			}
		}

		if stmt.isData() {
			dataIndex++
		} else {
			textIndex++
		}
	}

	return
}

// define checks and inserts the label of a statement.
func (state *assembly) define(index, dataIndex, textIndex int, stmt *statement) (err error) {
	switch {
	case stmt.label.Kind != TOKEN_LABEL:
		err = ErrTokenUnknown(stmt.label.Text)
		return
	case stmt.Text[0] == ' ' || stmt.Text[0] == '\t':
		err = errors.Join(ErrLabel, ErrLabelIndented)
		return
	case len(stmt.tokens) == 0:
		err = errors.Join(ErrLabel, ErrLabelOrphan)
		return
	}

	address := state.labelAddress(index, dataIndex, textIndex, stmt)
	err = state.symbols.Insert(stmt.label.Name, address)
	if err != nil {
		err = errors.Join(ErrLabel, err)
		return
	}

	if state.Config.Verbose {
		log.Debugf("label %v = 0x%04x", stmt.label.Name, address)
	}

	return
}

// resolve replaces a label reference or expression operand by its value.
func (state *assembly) resolve(token Token, lineNo int) (resolved Token, err error) {
	resolved = token

	switch token.Kind {
	case TOKEN_SYMBOL:
		var address uint16
		address, err = state.symbols.Lookup(token.Name)
		if err != nil {
			err = errors.Join(ErrTokenUnknown(token.Text), err)
			return
		}
		resolved.Kind = TOKEN_IMMEDIATE
		resolved.Value = int64(address)
	case TOKEN_EXPRESSION:
		var value int64
		value, err = evalExpression(token.Name, state.symbols, lineNo)
		if err != nil {
			return
		}
		resolved.Kind = TOKEN_IMMEDIATE
		resolved.Value = value
	case TOKEN_REGISTER, TOKEN_IMMEDIATE, TOKEN_DIRECTIVE:
	default:
		err = ErrTokenUnknown(token.Text)
	}

	return
}

// pass2 resolves operands, and encodes the data and text segments.
func (state *assembly) pass2(stmts []statement) (err error) {
	prog := state.program

	for n := range stmts {
		stmt := &stmts[n]

		var bad string
		bad, err = state.emit(stmt)
		if err != nil {
			err = &ErrSyntax{LineNo: stmt.LineNo, Line: stmt.Text, Token: bad, Err: err}
			return
		}
	}

	if state.Config.Verbose {
		for address, code := range prog.Codes() {
			log.Debugf("0x%04x: %#v", address, code)
		}
	}

	return
}

// emit encodes a single statement, returning the offending token on error.
func (state *assembly) emit(stmt *statement) (bad string, err error) {
	prog := state.program

	if len(stmt.tokens) == 0 {
		err = errors.Join(ErrToken, ErrOpcodeInvalid)
		return
	}

	first := stmt.tokens[0]
	operands := stmt.tokens[1:]

	switch first.Kind {
	case TOKEN_DIRECTIVE:
		if !stmt.isData() {
			bad = first.Text
			err = errors.Join(ErrToken, ErrDirectiveInvalid)
			return
		}
		switch {
		case len(operands) == 0:
			bad = first.Text
			err = errors.Join(ErrOperand, ErrFillMissing)
			return
		case len(operands) > 1:
			bad = operands[1].Text
			err = errors.Join(ErrOperand, ErrOperandInvalid, ErrOperandCount)
			return
		}
		if operands[0].Kind == TOKEN_INVALID {
			bad = operands[0].Text
			err = errors.Join(ErrOperandInvalid, ErrParseNumber(operands[0].Text))
			return
		}
		var value Token
		value, err = state.resolve(operands[0], stmt.LineNo)
		if err == nil && value.Kind != TOKEN_IMMEDIATE {
			err = errors.Join(ErrOperandInvalid, ErrParseNumber(value.Text))
		}
		if err != nil {
			bad = operands[0].Text
			return
		}
		prog.Data = append(prog.Data, uint16(value.Value))
		prog.DataLine = append(prog.DataLine, stmt.Line)
	case TOKEN_MNEMONIC:
		op := first.Opcode
		resolved := make([]Token, len(operands))
		for n, operand := range operands {
			resolved[n], err = state.resolve(operand, stmt.LineNo)
			if err != nil {
				bad = operand.Text
				return
			}
		}
		if op == OP_BEQ && len(resolved) == 3 &&
			operands[2].Kind == TOKEN_SYMBOL &&
			state.Config.Labels == config.LABELS_IMAGE {
			self := state.textAddress(len(prog.Text))
			resolved[2].Value = int64(int16(uint16(resolved[2].Value) - (self + 1)))
		}
		var code Code
		code, bad, err = encodeTokens(op, resolved)
		if err != nil {
			return
		}
		prog.Text = append(prog.Text, code)
		prog.TextLine = append(prog.TextLine, stmt.Line)
	default:
		bad = first.Text
		err = errors.Join(ErrToken, ErrOpcodeInvalid)
	}

	return
}
