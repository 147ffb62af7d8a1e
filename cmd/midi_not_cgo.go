//go:build !cgo

package cmd

import "errors"

// with no cgo, we cannot use MIDI, so return a null context
func NewMIDIContext() MIDIContext {
	return NullMIDIContext{}
}

type NullMIDIContext struct{}

func (NullMIDIContext) InputNames() []string { return nil }
func (NullMIDIContext) Open(prefix string, handler func(key int, on bool)) error {
	return errors.New("MIDI input requires a cgo build")
}
func (NullMIDIContext) Close() {}
