package cpu

const (
	MEMORY_SIZE    = 256 // Bytes of addressable memory.
	REGISTER_COUNT = 8   // General purpose registers.
	REG_SP         = 7   // Register holding the stack pointer.
	STACK_TOP      = 0xf4
)

// Memory is the LS-8 byte addressable RAM.
type Memory struct {
	Data [MEMORY_SIZE]byte
}

// Read returns the byte at address.
func (mem *Memory) Read(address int) (value byte, err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrAddress(address)
		return
	}

	value = mem.Data[address]
	return
}

// Write stores value at address.
func (mem *Memory) Write(address int, value byte) (err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrAddress(address)
		return
	}

	mem.Data[address] = value
	return
}

// Load copies data into memory starting at address 0.
func (mem *Memory) Load(data []byte) (err error) {
	if len(data) > len(mem.Data) {
		err = ErrProgramSize
		return
	}

	copy(mem.Data[:], data)
	return
}

// Reset zeroes all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}

// RegisterFile is the bank of general purpose registers.
type RegisterFile [REGISTER_COUNT]byte

// Get returns the value of register index.
func (rf *RegisterFile) Get(index int) (value byte, err error) {
	if index < 0 || index >= len(rf) {
		err = ErrRegister(index)
		return
	}

	value = rf[index]
	return
}

// Set stores value in register index.
func (rf *RegisterFile) Set(index int, value byte) (err error) {
	if index < 0 || index >= len(rf) {
		err = ErrRegister(index)
		return
	}

	rf[index] = value
	return
}
