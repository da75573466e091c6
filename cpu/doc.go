// Package cpu implements the RiSCy processor and its assembler.
//
// The processor has eight 16-bit registers (r0-r7, where r0 always reads as
// zero), a program counter, and a single 65536-word memory shared by data
// and instructions. Every instruction is one 16-bit word holding a 3-bit
// opcode in its upper bits:
//
//	RRR  add, nand          opcode(3) regA(3) regB(3) unused(4) regC(3)
//	RRI  addi, sw, lw, beq  opcode(3) regA(3) regB(3) simm(7)
//	RI   lui                opcode(3) regA(3) uimm(10)
//	     jalr               opcode(3) regA(3) regB(3) unused(7)
//
// The assembler is a two pass assembler. The first pass assigns addresses to
// labels, the second resolves operands and encodes instructions and .fill
// data into a program image.
package cpu
