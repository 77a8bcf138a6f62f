// Package cpu implements the LS-8 microprocessor and its assembler.
//
// The CPU consists of 256 bytes of memory, eight 8-bit general-purpose
// registers (R0-R7, with R7 reserved as the stack pointer), a program
// counter (PC), an ALU, and a flags register (FL) holding the outcome of
// the most recent comparison.
//
// Each instruction is a single opcode byte followed by zero, one, or two
// operand bytes. The opcode packs its operand count in bits 7-6, an ALU
// marker in bit 5, a PC-setting marker in bit 4, and an operation
// identifier in bits 3-0.
//
// The assembler provides a small assembly language for the LS-8
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
