package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

// runProgram loads a program into a fresh CPU and runs it until it halts
// or fails.
func runProgram(program []byte) (cpu *Cpu, output *io.Temp, err error) {
	output = &io.Temp{}

	cpu = NewCpu()
	cpu.Output = output

	err = cpu.Load(program)
	if err != nil {
		return
	}

	err = cpu.Run()
	return
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(0, cpu.Pc)
	assert.Equal(byte(0), cpu.Fl)
	assert.False(cpu.Halted)
	assert.Equal(RegisterFile{0, 0, 0, 0, 0, 0, 0, STACK_TOP}, cpu.Register)

	output := &io.Temp{Data: []byte{1}}
	cpu.Output = output
	cpu.Pc = 9
	cpu.Fl = FL_EQ
	cpu.Halted = true
	cpu.Ticks = 3
	cpu.Register[2] = 7
	cpu.Memory.Data[4] = 4

	cpu.Reset()
	assert.Equal(0, cpu.Pc)
	assert.Equal(byte(0), cpu.Fl)
	assert.False(cpu.Halted)
	assert.Equal(0, cpu.Ticks)
	assert.Equal(byte(0), cpu.Register[2])
	assert.Equal(byte(0), cpu.Memory.Data[4])
	assert.Empty(output.Data)
}

func TestCpu_Mul(t *testing.T) {
	assert := assert.New(t)

	program := []byte{
		0x82, 0, 8, // LDI R0,8
		0x82, 1, 9, // LDI R1,9
		0xa2, 0, 1, // MUL R0,R1
		0x47, 0, // PRN R0
		0x01, // HLT
	}

	cpu, output, err := runProgram(program)
	assert.NoError(err)
	assert.True(cpu.Halted)
	assert.Equal([]byte{72}, output.Data)
	assert.Equal(11, cpu.Pc)
	assert.Equal(5, cpu.Ticks)
}

func TestCpu_AddWraps(t *testing.T) {
	assert := assert.New(t)

	program := []byte{
		0x82, 0, 200, // LDI R0,200
		0x82, 1, 100, // LDI R1,100
		0xa0, 0, 1, // ADD R0,R1
		0x47, 0, // PRN R0
		0x01, // HLT
	}

	_, output, err := runProgram(program)
	assert.NoError(err)
	assert.Equal([]byte{44}, output.Data)
}

func TestCpu_Cmp(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		a, b byte
		fl   byte
	}){
		{"lt", 3, 5, FL_LT},
		{"gt", 5, 3, FL_GT},
		{"eq", 4, 4, FL_EQ},
	}

	for _, entry := range table {
		program := []byte{
			0x82, 0, entry.a, // LDI R0,a
			0x82, 1, entry.b, // LDI R1,b
			0xa7, 0, 1, // CMP R0,R1
			0x01, // HLT
		}

		cpu, _, err := runProgram(program)
		assert.NoError(err, entry.name)
		assert.Equal(entry.fl, cpu.Fl, entry.name)
		assert.Equal(entry.a, cpu.Register[0], entry.name)
		assert.Equal(entry.b, cpu.Register[1], entry.name)
	}
}

func TestCpu_Branch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		jump   CodeOp
		a, b   byte
		output []byte
	}){
		{"jeq_taken", OP_JEQ, 5, 5, nil},
		{"jeq_not_taken", OP_JEQ, 5, 6, []byte{5}},
		{"jne_taken", OP_JNE, 5, 6, nil},
		{"jne_not_taken", OP_JNE, 5, 5, []byte{5}},
	}

	for _, entry := range table {
		program := []byte{
			0x82, 0, entry.a, // LDI R0,a
			0x82, 1, entry.b, // LDI R1,b
			0x82, 2, 16, // LDI R2,16
			0xa7, 0, 1, // CMP R0,R1
			byte(entry.jump), 2, // JEQ/JNE R2
			0x47, 0, // PRN R0
			0x01, // 16: HLT
		}

		cpu, output, err := runProgram(program)
		assert.NoError(err, entry.name)
		assert.True(cpu.Halted, entry.name)
		assert.Equal(16, cpu.Pc, entry.name)
		assert.Equal(entry.output, []byte(output.Data), entry.name)
	}
}

func TestCpu_Jmp(t *testing.T) {
	assert := assert.New(t)

	program := []byte{
		0x82, 0, 1, // LDI R0,1
		0x82, 1, 10, // LDI R1,10
		0x54, 1, // JMP R1
		0x47, 0, // PRN R0
		0x47, 1, // 10: PRN R1
		0x01, // HLT
	}

	_, output, err := runProgram(program)
	assert.NoError(err)
	assert.Equal([]byte{10}, output.Data)
}

func TestCpu_CallRet(t *testing.T) {
	assert := assert.New(t)

	program := []byte{
		0x82, 0, 42, // LDI R0,42
		0x82, 1, 9, // LDI R1,9
		0x50, 1, // CALL R1
		0x01, // 8: HLT
		0x47, 0, // 9: PRN R0
		0x11, // RET
	}

	cpu, output, err := runProgram(program)
	assert.NoError(err)
	assert.Equal([]byte{42}, output.Data)
	assert.True(cpu.Halted)
	assert.Equal(8, cpu.Pc)
	assert.Equal(byte(STACK_TOP), cpu.Sp())
	assert.Equal(byte(8), cpu.Memory.Data[STACK_TOP-1])
}

func TestCpu_CallRetReturns(t *testing.T) {
	assert := assert.New(t)

	for target := 2; target < STACK_TOP-1; target++ {
		cpu := NewCpu()
		cpu.Register[0] = byte(target)
		assert.NoError(cpu.Load([]byte{byte(OP_CALL), 0}))
		cpu.Memory.Data[target] = byte(OP_RET)

		err := cpu.Tick()
		assert.NoError(err)
		assert.Equal(target, cpu.Pc)
		assert.Equal(byte(STACK_TOP-1), cpu.Sp())

		err = cpu.Tick()
		assert.NoError(err)
		if cpu.Pc != 2 || cpu.Sp() != STACK_TOP {
			assert.Failf("call/ret", "target 0x%02x: pc 0x%02x sp 0x%02x", target, cpu.Pc, cpu.Sp())
			return
		}
	}
}

func TestCpu_CallReturnAddressOutOfRange(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 0xfe
	cpu.Memory.Data[0xfe] = byte(OP_CALL)

	err := cpu.Tick()
	assert.ErrorIs(err, ErrOutOfRange)
	assert.Equal(byte(STACK_TOP), cpu.Sp())
}

func TestCpu_PushPopProgram(t *testing.T) {
	assert := assert.New(t)

	program := []byte{
		0x82, 0, 1, // LDI R0,1
		0x82, 1, 2, // LDI R1,2
		0x45, 0, // PUSH R0
		0x45, 1, // PUSH R1
		0x46, 0, // POP R0
		0x46, 1, // POP R1
		0x47, 0, // PRN R0
		0x47, 1, // PRN R1
		0x01, // HLT
	}

	cpu, output, err := runProgram(program)
	assert.NoError(err)
	assert.Equal([]byte{2, 1}, output.Data)
	assert.Equal(byte(STACK_TOP), cpu.Sp())
}

func TestCpu_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []byte
		pc      int
		err     error
	}){
		{"zero_opcode", []byte{0x00}, 0, ErrIllegalInstruction},
		{"unknown_opcode", []byte{0x82, 0, 1, 0x48, 0}, 3, ErrIllegalInstruction},
		{"three_operands", []byte{0xc2, 0, 0, 0}, 0, ErrIllegalInstruction},
		{"alu_one_operand", []byte{0x67, 0}, 0, ErrIllegalInstruction},
		{"alu_unsupported", []byte{0xa1, 0, 1}, 0, ErrAluUnsupported},
		{"ldi_register", []byte{0x82, 8, 1}, 0, ErrOutOfRange},
		{"prn_register", []byte{0x47, 9}, 0, ErrOutOfRange},
		{"add_register", []byte{0xa0, 0, 8}, 0, ErrOutOfRange},
		{"push_register", []byte{0x45, 8}, 0, ErrOutOfRange},
		{"jmp_register", []byte{0x54, 0xff}, 0, ErrOutOfRange},
		{"run_off_end", []byte{0x82, 0, 1}, 3, ErrIllegalInstruction},
	}

	for _, entry := range table {
		cpu, _, err := runProgram(entry.program)
		assert.ErrorIs(err, entry.err, entry.name)

		var inst *ErrInstruction
		if assert.ErrorAs(err, &inst, entry.name) {
			assert.Equal(entry.pc, inst.Pc, entry.name)
			assert.Equal(CodeOp(cpu.Memory.Data[entry.pc]), inst.Code.Op, entry.name)
		}
		assert.Equal(entry.pc, cpu.Pc, entry.name)
		assert.False(cpu.Halted, entry.name)
	}
}

func TestCpu_StackRegisterErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
	}){
		{"pop", MakeCode(OP_POP, 9)},
		{"call", MakeCode(OP_CALL, 9)},
		{"push", MakeCode(OP_PUSH, 8)},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Memory.Data[STACK_TOP] = 0x5a
		prior := *cpu

		err := cpu.Execute(entry.code)
		assert.ErrorIs(err, ErrOutOfRange, entry.name)
		assert.Equal(ErrRegister(entry.code.A()), errors.Unwrap(err), entry.name)
		assert.Equal(prior.Register, cpu.Register, entry.name)
		assert.Equal(prior.Memory, cpu.Memory, entry.name)
		assert.Equal(0, cpu.Pc, entry.name)
	}
}

func TestCpu_StackBounds(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []byte
		sp      byte
		address int
	}){
		{"underflow", []byte{0x82, 7, 0xff, 0x46, 0, 0x01}, 0xff, MEMORY_SIZE},
		{"overflow", []byte{0x82, 7, 0x00, 0x45, 0, 0x01}, 0x00, -1},
		{"ret_underflow", []byte{0x82, 7, 0xff, 0x11}, 0xff, MEMORY_SIZE},
		{"call_overflow", []byte{0x82, 7, 0x00, 0x50, 0}, 0x00, -1},
	}

	for _, entry := range table {
		cpu, _, err := runProgram(entry.program)
		assert.ErrorIs(err, ErrOutOfRange, entry.name)
		assert.Equal(ErrAddress(entry.address), errors.Unwrap(err), entry.name)
		assert.Equal(3, cpu.Pc, entry.name)
		assert.Equal(entry.sp, cpu.Sp(), entry.name)
		assert.False(cpu.Halted, entry.name)
	}
}

func TestCpu_FetchOutOfRange(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 0xff
	cpu.Memory.Data[0xff] = byte(OP_LDI)

	err := cpu.Tick()
	assert.ErrorIs(err, ErrOutOfRange)
	assert.Equal(ErrAddress(0x100), errors.Unwrap(err))

	// Short instructions at the top of memory need no operand bytes.
	cpu.Memory.Data[0xff] = byte(OP_HLT)
	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)

	cpu.Pc = MEMORY_SIZE
	cpu.Halted = false
	err = cpu.Tick()
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestCpu_Halted(t *testing.T) {
	assert := assert.New(t)

	cpu, _, err := runProgram([]byte{0x01})
	assert.NoError(err)
	assert.True(cpu.Halted)
	assert.Equal(0, cpu.Pc)

	err = cpu.Tick()
	assert.Equal(ErrHalted, err)
}

func TestCpu_NoOutput(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]byte{0x47, 0, 0x01}))

	err := cpu.Run()
	assert.ErrorIs(err, ErrChannelInvalid)
}

func TestCpu_Trace(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]byte{0x82, 0, 8}))
	assert.Equal("TRACE: 00 | 82 00 08 | 00 00 00 00 00 00 00 F4", cpu.Trace())

	cpu.Pc = 0xff
	cpu.Memory.Data[0xff] = 0x01
	assert.Equal("TRACE: FF | 01 00 00 | 00 00 00 00 00 00 00 F4", cpu.Trace())
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[3] = 0xab

	text := cpu.String()
	assert.Contains(text, "   pc: 00\n")
	assert.Contains(text, "   r3: AB\n")
	assert.Contains(text, "   r7: F4\n")
	assert.Contains(text, "stack: --\n")
	assert.Contains(text, "state: running\n")
}

func TestCpu_Defines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}

	assert.Equal("0xf4", defines["STACK_TOP"])
	assert.Equal("0x100", defines["MEMORY_SIZE"])
	assert.Equal("7", defines["REG_SP"])
}
