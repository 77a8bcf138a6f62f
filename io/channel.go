// Package io provides the output channels for the LS-8 emulator.
// A channel receives every value the running program prints, one
// byte at a time, and renders it to its backing store: a text stream
// (Tape) or an in-memory buffer (Temp).
package io

// Channel defines the interface for all output channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send emits a single printed value to the channel.
	Send(value byte) error
}
