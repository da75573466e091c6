package cpu

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

var wordMask = new(big.Int).SetUint64(math.MaxUint64)

// TokenKind classifies an assembler token.
type TokenKind int

const (
	TOKEN_INVALID    = TokenKind(0) // invalid
	TOKEN_LABEL      = TokenKind(1) // label
	TOKEN_MNEMONIC   = TokenKind(2) // mnemonic
	TOKEN_REGISTER   = TokenKind(3) // register
	TOKEN_IMMEDIATE  = TokenKind(4) // immediate
	TOKEN_DIRECTIVE  = TokenKind(5) // directive
	TOKEN_SYMBOL     = TokenKind(6) // symbol
	TOKEN_EXPRESSION = TokenKind(7) // expression
)

var tokenKindName = [...]string{"invalid", "label", "mnemonic", "register", "immediate", "directive", "symbol", "expression"}

func (kind TokenKind) String() string {
	if kind < 0 || int(kind) >= len(tokenKindName) {
		return "TokenKind(" + strconv.Itoa(int(kind)) + ")"
	}
	return tokenKindName[kind]
}

// Token is a classified assembler token.
type Token struct {
	Kind   TokenKind
	Text   string // Source text of the token.
	Name   string // Label, symbol or directive name; expression body.
	Value  int64  // Register number or immediate value.
	Opcode Opcode // Mnemonic opcode.
}

// ParseToken classifies a single token.
func ParseToken(text string) (token Token) {
	token = Token{Kind: TOKEN_INVALID, Text: text}

	if len(text) == 0 {
		return
	}

	if name, ok := strings.CutSuffix(text, ":"); ok {
		if isSymbol(name) {
			token.Kind = TOKEN_LABEL
			token.Name = name
		}
		return
	}

	if name, ok := strings.CutPrefix(text, "."); ok {
		if isIdentifier(name) {
			token.Kind = TOKEN_DIRECTIVE
			token.Name = name
		}
		return
	}

	if body, ok := strings.CutPrefix(text, "$("); ok {
		if body, ok = strings.CutSuffix(body, ")"); ok && len(strings.TrimSpace(body)) != 0 {
			token.Kind = TOKEN_EXPRESSION
			token.Name = body
		}
		return
	}

	if op, ok := mnemonicMap[text]; ok {
		token.Kind = TOKEN_MNEMONIC
		token.Opcode = op
		return
	}

	if reg, ok := parseRegister(text); ok {
		token.Kind = TOKEN_REGISTER
		token.Value = int64(reg)
		return
	}

	if value, ok := parseNumber(text); ok {
		token.Kind = TOKEN_IMMEDIATE
		token.Value = value
		return
	}

	if isSymbol(text) {
		token.Kind = TOKEN_SYMBOL
		token.Name = text
	}

	return
}

// Tokenize splits a line into classified tokens. Tokens are separated by
// whitespace and commas; a $(...) expression is a single token.
func Tokenize(line string) (tokens []Token) {
	for _, field := range splitFields(line) {
		tokens = append(tokens, ParseToken(field))
	}
	return
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == ',' || c == '\r' || c == '\n'
}

// splitFields splits a line on separators outside of $(...) groups.
func splitFields(line string) (fields []string) {
	start := -1
	depth := 0

	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case depth > 0:
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
			continue
		case c == '$' && n+1 < len(line) && line[n+1] == '(':
			if start < 0 {
				start = n
			}
			depth = 1
			n++
			continue
		case isSeparator(c):
			if start >= 0 {
				fields = append(fields, line[start:n])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = n
		}
	}

	if start >= 0 {
		fields = append(fields, line[start:])
	}

	return
}

func isIdentifier(text string) bool {
	if len(text) == 0 {
		return false
	}
	for n := 0; n < len(text); n++ {
		c := text[n]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case n > 0 && (c >= '0' && c <= '9' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// isSymbol reports if text can name a label: an identifier that is neither
// a mnemonic nor a register.
func isSymbol(text string) bool {
	if !isIdentifier(text) {
		return false
	}
	if _, ok := mnemonicMap[text]; ok {
		return false
	}
	if _, ok := parseRegister(text); ok {
		return false
	}
	return true
}

// parseRegister parses r0 through r7.
func parseRegister(text string) (reg int, ok bool) {
	if len(text) != 2 || text[0] != 'r' || text[1] < '0' || text[1] > '7' {
		return
	}
	return int(text[1] - '0'), true
}

// parseNumber parses a signed decimal, 0x hexadecimal or 0b binary literal.
// Values wrap modulo 2^64; callers truncate to their field width.
func parseNumber(text string) (value int64, ok bool) {
	base := 10
	digits := text
	negative := false

	switch {
	case strings.HasPrefix(text, "0x"):
		base = 16
		digits = text[2:]
	case strings.HasPrefix(text, "0b"):
		base = 2
		digits = text[2:]
	case strings.HasPrefix(text, "-"):
		negative = true
		digits = text[1:]
	case strings.HasPrefix(text, "+"):
		digits = text[1:]
	}

	if len(digits) == 0 {
		return
	}

	u64, err := strconv.ParseUint(digits, base, 64)
	if errors.Is(err, strconv.ErrRange) {
		// Wider than 64 bits; keep the low bits.
		wide, valid := new(big.Int).SetString(digits, base)
		if !valid {
			return
		}
		u64 = wide.And(wide, wordMask).Uint64()
		err = nil
	}
	if err != nil {
		return
	}

	value = int64(u64)
	if negative {
		value = -value
	}

	return value, true
}
