package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%#x", MEMORY_SIZE),
	"STACK_TOP":   fmt.Sprintf("%#x", STACK_TOP),
	"REG_SP":      fmt.Sprintf("%v", REG_SP),
	"FL_EQ":       fmt.Sprintf("%#x", FL_EQ),
	"FL_GT":       fmt.Sprintf("%#x", FL_GT),
	"FL_LT":       fmt.Sprintf("%#x", FL_LT),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory       // RAM.
	Register RegisterFile // Register bank, R7 is the stack pointer.
	Pc       int          // Address of the next instruction.
	Fl       byte         // Flags from the last comparison.
	Halted   bool         // Set once HLT has executed.

	Ticks int // Instructions executed.

	Output Channel // Receives the values printed by PRN.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory, registers and flags.
// - Points the stack pointer at STACK_TOP.
// - Sets the PC to 0 and leaves the halted state.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = STACK_TOP
	cpu.Pc = 0
	cpu.Fl = 0
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load writes a program image into memory starting at address 0.
func (cpu *Cpu) Load(program []byte) (err error) {
	err = cpu.Memory.Load(program)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}

	return
}

// Trace returns a single line with the PC, the three bytes at the PC,
// and all of the registers.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	// Bytes beyond the end of memory trace as zero.
	peek := func(address int) byte {
		value, _ := cpu.Memory.Read(address)
		return value
	}

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |", cpu.Pc, peek(cpu.Pc), peek(cpu.Pc+1), peek(cpu.Pc+2))
	for _, reg := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", reg)
	}

	return sb.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack",
		"state",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = fmt.Sprintf("%08b", cpu.Fl)
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		case "stack":
			val, ok := cpu.Peek()
			if ok {
				strval = fmt.Sprintf("%02X", val)
			} else {
				strval = "--"
			}
		case "state":
			strval = "running"
			if cpu.Halted {
				strval = "halted"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// FetchCode fetches the instruction at the PC along with the operand
// bytes its opcode declares.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	opcode, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code.Op = CodeOp(opcode)
	code.Operands = make([]byte, code.Op.Operands())
	for n := range code.Operands {
		code.Operands[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	code, err := cpu.FetchCode()
	if err != nil {
		err = &ErrInstruction{Pc: cpu.Pc, Code: code, Err: err}
		return
	}

	err = cpu.Execute(code)

	return
}

// Run ticks the CPU until it halts or an instruction fails.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction at the PC.
func (cpu *Cpu) Execute(code Code) (err error) {
	pc := cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrInstruction{Pc: pc, Code: code, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("%v ; %v", cpu.Trace(), code)
	}

	if len(code.Operands) != code.Op.Operands() {
		err = ErrIllegalInstruction
		return
	}

	next_pc := pc + 1 + len(code.Operands)
	a := int(code.A())
	b := int(code.B())

	if code.Op.IsAlu() {
		if len(code.Operands) != 2 {
			err = ErrIllegalInstruction
			return
		}
		err = cpu.doAlu(code.Op.AluOp(), a, b)
		if err != nil {
			return
		}
		cpu.Pc = next_pc
		cpu.Ticks++
		return
	}

	var value byte

	switch code.Op {
	case OP_HLT:
		cpu.Halted = true
		next_pc = pc
	case OP_LDI:
		err = cpu.Register.Set(a, code.B())
	case OP_PRN:
		value, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		if cpu.Output == nil {
			err = ErrChannelInvalid
			return
		}
		err = cpu.Output.Send(value)
	case OP_PUSH:
		value, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		err = cpu.push(value)
	case OP_POP:
		_, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		value, err = cpu.pop()
		if err != nil {
			return
		}
		err = cpu.Register.Set(a, value)
	case OP_CALL:
		if next_pc >= MEMORY_SIZE {
			err = ErrAddress(next_pc)
			return
		}
		_, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		// The target is read after the push, so CALL R7 jumps to the new SP.
		err = cpu.push(byte(next_pc))
		if err != nil {
			return
		}
		value, err = cpu.Register.Get(a)
		next_pc = int(value)
	case OP_RET:
		value, err = cpu.pop()
		next_pc = int(value)
	case OP_JMP:
		value, err = cpu.Register.Get(a)
		next_pc = int(value)
	case OP_JEQ, OP_JNE:
		value, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		equal := (cpu.Fl & FL_EQ) != 0
		if equal == (code.Op == OP_JEQ) {
			next_pc = int(value)
		}
	default:
		err = ErrIllegalInstruction
	}

	if err != nil {
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// doAlu runs an ALU operation on registers a and b. CMP updates the
// flags, every other operation stores its result in register a.
func (cpu *Cpu) doAlu(op CodeAluOp, a, b int) (err error) {
	va, err := cpu.Register.Get(a)
	if err != nil {
		return
	}
	vb, err := cpu.Register.Get(b)
	if err != nil {
		return
	}

	result, flags, err := Alu(op, va, vb)
	if err != nil {
		return
	}

	if op == ALU_OP_CMP {
		cpu.Fl = flags
		return
	}

	return cpu.Register.Set(a, result)
}
