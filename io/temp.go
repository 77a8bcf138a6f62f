package io

import (
	"fmt"
	"iter"
	"maps"
)

// Temp captures printed values in memory, up to Capacity values.
// A zero Capacity is unbounded. Callers embedding a cpu.Cpu install a
// Temp as its Output to inspect what a program printed.
type Temp struct {
	Capacity int
	Data     []byte
}

var _ Channel = (*Temp)(nil)

// Defines returns an iter of defines for the channel.
func (tc *Temp) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TEMP_CAPACITY": fmt.Sprintf("%v", tc.Capacity),
	})
}

// Rewind discards all captured values.
func (tc *Temp) Rewind() {
	tc.Data = tc.Data[:0]
}

// Send appends a value to the buffer.
func (tc *Temp) Send(value byte) (err error) {
	if tc.Capacity > 0 && len(tc.Data) >= tc.Capacity {
		err = ErrChannelFull
		return
	}

	tc.Data = append(tc.Data, value)

	return
}
