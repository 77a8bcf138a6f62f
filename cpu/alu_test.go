package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlu_AddMul(t *testing.T) {
	assert := assert.New(t)

	for a := range 256 {
		for b := range 256 {
			result, flags, err := Alu(ALU_OP_ADD, byte(a), byte(b))
			if !assert.NoError(err) {
				return
			}
			if result != byte((a+b)%256) || flags != 0 {
				assert.Failf("add", "%d + %d = %d, flags %b", a, b, result, flags)
				return
			}

			result, flags, err = Alu(ALU_OP_MUL, byte(a), byte(b))
			if !assert.NoError(err) {
				return
			}
			if result != byte((a*b)%256) || flags != 0 {
				assert.Failf("mul", "%d * %d = %d, flags %b", a, b, result, flags)
				return
			}
		}
	}
}

func TestAlu_Cmp(t *testing.T) {
	assert := assert.New(t)

	for a := range 256 {
		for b := range 256 {
			_, flags, err := Alu(ALU_OP_CMP, byte(a), byte(b))
			if !assert.NoError(err) {
				return
			}

			var expected byte
			switch {
			case a < b:
				expected = FL_LT
			case a > b:
				expected = FL_GT
			default:
				expected = FL_EQ
			}
			if flags != expected {
				assert.Failf("cmp", "cmp %d %d: flags %03b, expected %03b", a, b, flags, expected)
				return
			}
		}
	}
}

func TestAlu_Unsupported(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []CodeAluOp{1, 3, 8, 0xf, -1} {
		_, _, err := Alu(op, 1, 2)
		assert.ErrorIs(err, ErrAluUnsupported, op.String())
		assert.Equal(ErrAluOp(op), err)
	}
}

func TestAluOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add", ALU_OP_ADD.String())
	assert.Equal("mul", ALU_OP_MUL.String())
	assert.Equal("cmp", ALU_OP_CMP.String())
	assert.Equal("CodeAluOp(5)", CodeAluOp(5).String())
}
