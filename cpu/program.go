package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode is a line of assembled code with its source location and the
// bytes it generates.
type Opcode struct {
	LineNo int      // Source line number.
	Pc     int      // Address of the first generated byte.
	Words  []string // Source words, after equate expansion.
	Bytes  []byte   // Generated bytes.

	// Links maps an index in Bytes to the label whose address
	// is stored there when the program is linked.
	Links map[int]string
}

// Program is an assembled or loaded LS-8 program.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode that generated the byte at pc, and the
// index of that byte within the opcode.
func (prog *Program) Debug(pc int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if pc >= op.Pc && pc < op.Pc+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  pc - op.Pc,
			}
			break
		}
	}

	return
}

// Codes iterates over every byte of the program with its address.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(pc int, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(op.Pc+n, value) {
					return
				}
			}
		}
	}
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (bins []byte) {
	for pc, value := range prog.Codes() {
		for len(bins) <= pc {
			bins = append(bins, 0)
		}
		bins[pc] = value
	}

	return
}

// Text returns the program in the loader's text format: one binary
// literal per line, with the source words of each opcode as a comment.
func (prog *Program) Text() string {
	var sb strings.Builder

	for _, op := range prog.Opcodes {
		for n, value := range op.Bytes {
			fmt.Fprintf(&sb, "%08b", value)
			if n == 0 && len(op.Words) > 0 {
				fmt.Fprintf(&sb, " # %v", strings.Join(op.Words, " "))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
