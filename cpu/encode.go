package cpu

import (
	"errors"
)

// Encode assembles a single instruction from its mnemonic and operand text.
// Labels are not resolved; operands must be registers or immediates.
func Encode(mnemonic string, operands ...string) (code Code, err error) {
	token := ParseToken(mnemonic)
	if token.Kind != TOKEN_MNEMONIC {
		err = errors.Join(ErrToken, ErrOpcodeInvalid)
		return
	}

	tokens := make([]Token, len(operands))
	for n, operand := range operands {
		tokens[n] = ParseToken(operand)
	}

	code, _, err = encodeTokens(token.Opcode, tokens)
	return
}

// encodeTokens encodes an instruction from resolved operand tokens. On
// error, the offending operand text is returned.
func encodeTokens(op Opcode, operands []Token) (code Code, bad string, err error) {
	if len(operands) != op.Operands() {
		if len(operands) > op.Operands() {
			bad = operands[op.Operands()].Text
		}
		err = errors.Join(ErrOperand, ErrOperandInvalid, ErrOperandCount)
		return
	}

	reg := func(n int) (value int) {
		if err != nil {
			return
		}
		token := operands[n]
		if token.Kind != TOKEN_REGISTER {
			bad = token.Text
			err = errors.Join(ErrOperand, ErrOperandInvalid, ErrRegisterInvalid)
			return
		}
		return int(token.Value)
	}

	imm := func(n int) (value int) {
		if err != nil {
			return
		}
		token := operands[n]
		if token.Kind != TOKEN_IMMEDIATE {
			bad = token.Text
			err = errors.Join(ErrOperandInvalid, ErrParseNumber(token.Text))
			return
		}
		return int(token.Value)
	}

	switch op.Format() {
	case FORMAT_RRR:
		code = MakeCodeRRR(op, reg(0), reg(1), reg(2))
	case FORMAT_RRI:
		code = MakeCodeRRI(op, reg(0), reg(1), imm(2))
	case FORMAT_RI:
		code = MakeCodeRI(op, reg(0), imm(1))
	case FORMAT_JALR:
		code = MakeCodeJalr(reg(0), reg(1))
	}

	if err != nil {
		code = 0
	}

	return
}
