//go:build cgo

package cmd

import (
	"github.com/besynth/harmonium/gomidi"
)

func NewMIDIContext() MIDIContext {
	return gomidi.NewContext()
}
