package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text  string
		kind  TokenKind
		name  string
		value int64
	}{
		{"loop:", TOKEN_LABEL, "loop", 0},
		{"add:", TOKEN_INVALID, "", 0},
		{"r1:", TOKEN_INVALID, "", 0},
		{":", TOKEN_INVALID, "", 0},
		{".fill", TOKEN_DIRECTIVE, "fill", 0},
		{".", TOKEN_INVALID, "", 0},
		{"beq", TOKEN_MNEMONIC, "", 0},
		{"BEQ", TOKEN_SYMBOL, "BEQ", 0},
		{"r0", TOKEN_REGISTER, "", 0},
		{"r7", TOKEN_REGISTER, "", 7},
		{"r8", TOKEN_SYMBOL, "r8", 0},
		{"10", TOKEN_IMMEDIATE, "", 10},
		{"08", TOKEN_IMMEDIATE, "", 8},
		{"-5", TOKEN_IMMEDIATE, "", -5},
		{"+7", TOKEN_IMMEDIATE, "", 7},
		{"0x1F", TOKEN_IMMEDIATE, "", 31},
		{"0b101", TOKEN_IMMEDIATE, "", 5},
		{"0xffffffffffffffff", TOKEN_IMMEDIATE, "", -1},
		{"18446744073709551617", TOKEN_IMMEDIATE, "", 1},
		{"-18446744073709551617", TOKEN_IMMEDIATE, "", -1},
		{"0x123456789abcdef0123", TOKEN_IMMEDIATE, "", 0x456789abcdef0123},
		{"99999999999999999999z", TOKEN_INVALID, "", 0},
		{"0x_1", TOKEN_INVALID, "", 0},
		{"0b1" + strings.Repeat("0", 64) + "11", TOKEN_IMMEDIATE, "", 3},
		{"0X10", TOKEN_INVALID, "", 0},
		{"-0x10", TOKEN_INVALID, "", 0},
		{"0x", TOKEN_INVALID, "", 0},
		{"0b2", TOKEN_INVALID, "", 0},
		{"-", TOKEN_INVALID, "", 0},
		{"12ab", TOKEN_INVALID, "", 0},
		{"_end.1", TOKEN_SYMBOL, "_end.1", 0},
		{"$(1 + 2)", TOKEN_EXPRESSION, "1 + 2", 0},
		{"$()", TOKEN_INVALID, "", 0},
		{"$(1", TOKEN_INVALID, "", 0},
	}

	for _, entry := range table {
		token := ParseToken(entry.text)
		assert.Equal(entry.text, token.Text)
		assert.Equal(entry.kind, token.Kind, entry.text)
		assert.Equal(entry.name, token.Name, entry.text)
		assert.Equal(entry.value, token.Value, entry.text)
	}

	assert.Equal(OP_BEQ, ParseToken("beq").Opcode)
	assert.Equal("expression", TOKEN_EXPRESSION.String())
	assert.Equal("TokenKind(9)", TokenKind(9).String())
}

func TestTokenize(t *testing.T) {
	assert := assert.New(t)

	tokens := Tokenize("loop:\tbeq r1,r2,  $(end - max(1, 2)), extra")
	kinds := []TokenKind{}
	texts := []string{}
	for _, token := range tokens {
		kinds = append(kinds, token.Kind)
		texts = append(texts, token.Text)
	}

	assert.Equal([]TokenKind{TOKEN_LABEL, TOKEN_MNEMONIC, TOKEN_REGISTER, TOKEN_REGISTER, TOKEN_EXPRESSION, TOKEN_SYMBOL}, kinds)
	assert.Equal([]string{"loop:", "beq", "r1", "r2", "$(end - max(1, 2))", "extra"}, texts)
	assert.Equal("end - max(1, 2)", tokens[4].Name)

	assert.Empty(Tokenize(" ,\t, "))

	tokens = Tokenize("addi r1, r0, $(1 + (2")
	assert.Equal(4, len(tokens))
	assert.Equal("$(1 + (2", tokens[3].Text)
	assert.Equal(TOKEN_INVALID, tokens[3].Kind)
}
