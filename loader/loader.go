// Package loader reads LS-8 programs in their binary text format.
//
// Each non-blank line holds a single byte written as a base-2 literal,
// optionally followed by a '#' comment. Blank and comment-only lines
// are ignored. Bytes are placed in memory in order, starting at
// address 0.
package loader

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ezrec/ls8/cpu"
)

// File is the top-level grammar node.
type File struct {
	Lines []*Line `parser:"@@*"`
}

// Line is a single input line, with or without a value.
type Line struct {
	Pos   lexer.Position
	Value *string `parser:"@Binary? EOL"`
}

var binaryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Binary", Pattern: `[01]+`},
})

// Parser is the binary text parser.
var Parser = participle.MustBuild[File](
	participle.Lexer(binaryLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse reads a program from input. The name is used in error messages.
func Parse(name string, input io.Reader) (prog *cpu.Program, err error) {
	defer func() {
		if err != nil {
			err = &ErrLoad{Name: name, Err: err}
		}
	}()

	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	file, err := Parser.ParseString(name, text)
	if err != nil {
		return
	}

	prog = &cpu.Program{}
	for _, line := range file.Lines {
		if line.Value == nil {
			continue
		}

		var value uint64
		value, err = strconv.ParseUint(*line.Value, 2, 8)
		if err != nil {
			err = &ErrProgramByte{LineNo: line.Pos.Line, Text: *line.Value}
			prog = nil
			return
		}

		pc := len(prog.Opcodes)
		if pc >= cpu.MEMORY_SIZE {
			err = cpu.ErrProgramSize
			prog = nil
			return
		}

		prog.Opcodes = append(prog.Opcodes, cpu.Opcode{
			LineNo: line.Pos.Line,
			Pc:     pc,
			Words:  []string{*line.Value},
			Bytes:  []byte{byte(value)},
		})
	}

	return
}

// LoadFile reads a program from the named file.
func LoadFile(path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return Parse(path, inf)
}
