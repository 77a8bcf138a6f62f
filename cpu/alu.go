package cpu

// CodeAluOp is an ALU operation identifier, the low nibble of an ALU opcode.
type CodeAluOp int

//go:generate go tool stringer -linecomment -type=CodeAluOp
const (
	ALU_OP_ADD = CodeAluOp(0x0) // add
	ALU_OP_MUL = CodeAluOp(0x2) // mul
	ALU_OP_CMP = CodeAluOp(0x7) // cmp
)

// Flag register bits, FL = 00000LGE.
const (
	FL_EQ = byte(1 << 0) // Equal.
	FL_GT = byte(1 << 1) // Greater than.
	FL_LT = byte(1 << 2) // Less than.
)

// Alu applies op to a and b.
// ADD and MUL produce a result modulo 256 and leave flags zero.
// CMP produces no result; flags has exactly one of FL_LT, FL_GT, FL_EQ set.
func Alu(op CodeAluOp, a, b byte) (result byte, flags byte, err error) {
	switch op {
	case ALU_OP_ADD:
		result = a + b
	case ALU_OP_MUL:
		result = a * b
	case ALU_OP_CMP:
		switch {
		case a == b:
			flags = FL_EQ
		case a > b:
			flags = FL_GT
		default:
			flags = FL_LT
		}
	default:
		err = ErrAluOp(op)
	}

	return
}
