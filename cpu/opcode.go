package cpu

import (
	"fmt"
	"strconv"
)

// Opcode is the 3-bit operation code of an instruction.
type Opcode int

const (
	OP_ADD  = Opcode(0) // add
	OP_ADDI = Opcode(1) // addi
	OP_NAND = Opcode(2) // nand
	OP_LUI  = Opcode(3) // lui
	OP_SW   = Opcode(4) // sw
	OP_LW   = Opcode(5) // lw
	OP_BEQ  = Opcode(6) // beq
	OP_JALR = Opcode(7) // jalr
)

var opcodeName = [...]string{"add", "addi", "nand", "lui", "sw", "lw", "beq", "jalr"}

// mnemonicMap maps assembler mnemonics to opcodes.
var mnemonicMap = map[string]Opcode{
	"add":  OP_ADD,
	"addi": OP_ADDI,
	"nand": OP_NAND,
	"lui":  OP_LUI,
	"sw":   OP_SW,
	"lw":   OP_LW,
	"beq":  OP_BEQ,
	"jalr": OP_JALR,
}

func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeName) {
		return "Opcode(" + strconv.Itoa(int(op)) + ")"
	}
	return opcodeName[op]
}

// Format is the field layout family of an opcode.
type Format int

const (
	FORMAT_RRR  = Format(0) // regA, regB, regC
	FORMAT_RRI  = Format(1) // regA, regB, simm
	FORMAT_RI   = Format(2) // regA, uimm
	FORMAT_JALR = Format(3) // regA, regB
)

// Format returns the field layout of the opcode.
func (op Opcode) Format() Format {
	switch op {
	case OP_ADD, OP_NAND:
		return FORMAT_RRR
	case OP_LUI:
		return FORMAT_RI
	case OP_JALR:
		return FORMAT_JALR
	default:
		return FORMAT_RRI
	}
}

// Operands returns the number of assembler operands of the opcode.
func (op Opcode) Operands() int {
	switch op.Format() {
	case FORMAT_RI, FORMAT_JALR:
		return 2
	default:
		return 3
	}
}

// Field masks and shifts.
const (
	OPCODE_SHIFT = 13
	REG_A_SHIFT  = 10
	REG_B_SHIFT  = 7

	REG_MASK  = 0x7
	SIMM_MASK = 0x7f
	UIMM_MASK = 0x3ff

	SIMM_MIN = -64
	SIMM_MAX = 63
	UIMM_MAX = 1023
)

// Code is a single instruction word.
type Code uint16

// Fields holds every field of an instruction word, whether or not the
// opcode uses it.
type Fields struct {
	Opcode Opcode
	RegA   int
	RegB   int
	RegC   int
	Simm   int // Sign extended 7-bit immediate.
	Uimm   int // Unsigned 10-bit immediate.
}

func makeCode(op Opcode, a, b int) Code {
	return Code((uint16(op) << OPCODE_SHIFT) |
		(uint16(a&REG_MASK) << REG_A_SHIFT) |
		(uint16(b&REG_MASK) << REG_B_SHIFT))
}

// MakeCodeRRR creates an add or nand instruction.
func MakeCodeRRR(op Opcode, a, b, c int) Code {
	return makeCode(op, a, b) | Code(c&REG_MASK)
}

// MakeCodeRRI creates an addi, sw, lw or beq instruction. The immediate is
// truncated to its 7-bit two's complement field.
func MakeCodeRRI(op Opcode, a, b int, simm int) Code {
	return makeCode(op, a, b) | Code(simm&SIMM_MASK)
}

// MakeCodeRI creates a lui instruction. The immediate is truncated to its
// 10-bit field.
func MakeCodeRI(op Opcode, a int, uimm int) Code {
	return makeCode(op, a, 0) | Code(uimm&UIMM_MASK)
}

// MakeCodeJalr creates a jalr instruction.
func MakeCodeJalr(a, b int) Code {
	return makeCode(OP_JALR, a, b)
}

// SignExtend7 widens a 7-bit two's complement field.
func SignExtend7(field int) int {
	field &= SIMM_MASK
	if field > SIMM_MAX {
		field -= 128
	}
	return field
}

// Opcode returns the operation code of the instruction word.
func (code Code) Opcode() Opcode {
	return Opcode((uint16(code) >> OPCODE_SHIFT) & REG_MASK)
}

// Decode extracts every field of the instruction word.
func (code Code) Decode() Fields {
	word := uint16(code)
	return Fields{
		Opcode: code.Opcode(),
		RegA:   int((word >> REG_A_SHIFT) & REG_MASK),
		RegB:   int((word >> REG_B_SHIFT) & REG_MASK),
		RegC:   int(word & REG_MASK),
		Simm:   SignExtend7(int(word)),
		Uimm:   int(word & UIMM_MASK),
	}
}

// Operands returns the assembler operands of the instruction, in order.
func (code Code) Operands() (operands []string) {
	fields := code.Decode()

	reg := func(n int) string { return "r" + strconv.Itoa(n) }

	switch fields.Opcode.Format() {
	case FORMAT_RRR:
		operands = []string{reg(fields.RegA), reg(fields.RegB), reg(fields.RegC)}
	case FORMAT_RRI:
		operands = []string{reg(fields.RegA), reg(fields.RegB), strconv.Itoa(fields.Simm)}
	case FORMAT_RI:
		operands = []string{reg(fields.RegA), strconv.Itoa(fields.Uimm)}
	case FORMAT_JALR:
		operands = []string{reg(fields.RegA), reg(fields.RegB)}
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	out = code.Opcode().String()
	for n, operand := range code.Operands() {
		if n == 0 {
			out += " " + operand
		} else {
			out += ", " + operand
		}
	}

	return
}

// GoString returns the instruction word in hex with its disassembly.
func (code Code) GoString() string {
	return fmt.Sprintf("0x%04x (%v)", uint16(code), code.String())
}
