package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
)

// Tape writes every printed value to an io.Writer as a decimal number
// followed by a newline.
type Tape struct {
	Output io.Writer

	written int
}

var _ Channel = (*Tape)(nil)

// Defines returns an iter of defines for the channel.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind is not possible on a tape; it only clears the write counter.
func (tc *Tape) Rewind() {
	tc.written = 0
}

// Written returns the number of values sent since the last rewind.
func (tc *Tape) Written() int {
	return tc.written
}

// Send writes the decimal value of the byte and a newline.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelOutput
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.written++

	return
}
