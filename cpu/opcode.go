package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is an instruction opcode byte, encoded as AABCDDDD:
//   - AA: number of operand bytes following the opcode.
//   - B: the instruction is executed by the ALU.
//   - C: the instruction sets the PC directly.
//   - DDDD: operation identifier.
type CodeOp byte

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_HLT  = CodeOp(0b00000001) // HLT
	OP_LDI  = CodeOp(0b10000010) // LDI
	OP_PRN  = CodeOp(0b01000111) // PRN
	OP_ADD  = CodeOp(0b10100000) // ADD
	OP_MUL  = CodeOp(0b10100010) // MUL
	OP_CMP  = CodeOp(0b10100111) // CMP
	OP_PUSH = CodeOp(0b01000101) // PUSH
	OP_POP  = CodeOp(0b01000110) // POP
	OP_CALL = CodeOp(0b01010000) // CALL
	OP_RET  = CodeOp(0b00010001) // RET
	OP_JMP  = CodeOp(0b01010100) // JMP
	OP_JEQ  = CodeOp(0b01010101) // JEQ
	OP_JNE  = CodeOp(0b01010110) // JNE
)

// opByName maps mnemonics back to opcodes.
var opByName map[string]CodeOp

func init() {
	opByName = make(map[string]CodeOp)
	for n := range MEMORY_SIZE {
		op := CodeOp(n)
		name := op.String()
		if !strings.HasPrefix(name, "CodeOp(") {
			opByName[name] = op
		}
	}
}

// LookupOp returns the opcode for a mnemonic, ignoring case.
func LookupOp(mnemonic string) (op CodeOp, ok bool) {
	op, ok = opByName[strings.ToUpper(mnemonic)]
	return
}

// Operands returns the number of operand bytes that follow the opcode.
func (op CodeOp) Operands() int {
	return int(op >> 6)
}

// IsAlu returns true if the opcode is executed by the ALU.
func (op CodeOp) IsAlu() bool {
	return (op & 0b0010_0000) != 0
}

// SetsPc returns true if the opcode assigns the PC itself.
func (op CodeOp) SetsPc() bool {
	return (op & 0b0001_0000) != 0
}

// Id returns the operation identifier nibble.
func (op CodeOp) Id() int {
	return int(op & 0xf)
}

// AluOp returns the ALU operation of an ALU opcode.
func (op CodeOp) AluOp() CodeAluOp {
	return CodeAluOp(op.Id())
}

// Known returns true if the opcode is one of the LS-8 mnemonics.
func (op CodeOp) Known() bool {
	_, ok := opByName[op.String()]
	return ok
}

// Code is a single decoded instruction with its operand bytes.
type Code struct {
	Op       CodeOp
	Operands []byte
}

// MakeCode creates an instruction from an opcode and its operands.
func MakeCode(op CodeOp, operands ...byte) Code {
	return Code{Op: op, Operands: operands}
}

// A returns the first operand, or 0 if there is none.
func (code Code) A() byte {
	if len(code.Operands) < 1 {
		return 0
	}
	return code.Operands[0]
}

// B returns the second operand, or 0 if there is none.
func (code Code) B() byte {
	if len(code.Operands) < 2 {
		return 0
	}
	return code.Operands[1]
}

// Bytes returns the memory image of the instruction.
func (code Code) Bytes() []byte {
	return append([]byte{byte(code.Op)}, code.Operands...)
}

// String returns the instruction with its operands in hex.
// Unknown opcodes are shown by value.
func (code Code) String() string {
	var sb strings.Builder
	if code.Op.Known() {
		sb.WriteString(code.Op.String())
	} else {
		fmt.Fprintf(&sb, "0x%02X", byte(code.Op))
	}
	for _, operand := range code.Operands {
		fmt.Fprintf(&sb, " 0x%02X", operand)
	}
	return sb.String()
}
