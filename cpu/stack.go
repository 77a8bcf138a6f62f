package cpu

// Sp returns the stack pointer register.
func (cpu *Cpu) Sp() byte {
	return cpu.Register[REG_SP]
}

// push decrements the stack pointer and stores value at the new top.
// Pushing with the stack pointer at address 0 is out of range.
func (cpu *Cpu) push(value byte) (err error) {
	sp := int(cpu.Register[REG_SP]) - 1
	err = cpu.Memory.Write(sp, value)
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = byte(sp)
	return
}

// pop reads the top of the stack and increments the stack pointer.
// Popping with the stack pointer at the last address is out of range,
// as the incremented stack pointer would leave memory.
func (cpu *Cpu) pop() (value byte, err error) {
	sp := int(cpu.Register[REG_SP])
	if sp+1 >= MEMORY_SIZE {
		err = ErrAddress(sp + 1)
		return
	}

	value, err = cpu.Memory.Read(sp)
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = byte(sp + 1)
	return
}

// Peek returns the top of the stack without popping it.
// ok is false when the stack pointer is at its reset position.
func (cpu *Cpu) Peek() (value byte, ok bool) {
	sp := cpu.Sp()
	if sp == STACK_TOP {
		return
	}

	return cpu.Memory.Data[sp], true
}
