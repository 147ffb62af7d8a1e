//go:build cgo

// Package gomidi adapts gitlab.com/gomidi MIDI input so a generated
// harmonium can be auditioned from a hardware keyboard. Requires cgo.
package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type Context struct {
	driver *rtmididrv.Driver
	in     drivers.In
	stop   func()
}

// NewContext opens the MIDI driver. A nil driver just means no MIDI is
// available; InputNames will be empty and Open will fail.
func NewContext() *Context {
	c := &Context{}
	c.driver, _ = rtmididrv.New()
	return c
}

func (c *Context) InputNames() []string {
	if c.driver == nil {
		return nil
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// Open connects to the first input whose name starts with prefix (any input
// when prefix is empty) and forwards note on/off events to handler.
func (c *Context) Open(prefix string, handler func(key int, on bool)) error {
	if c.driver == nil {
		return errors.New("no MIDI driver available")
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return fmt.Errorf("listing MIDI inputs failed: %w", err)
	}
	for _, in := range ins {
		if !strings.HasPrefix(in.String(), prefix) {
			continue
		}
		if err := in.Open(); err != nil {
			return fmt.Errorf("opening MIDI input %v failed: %w", in, err)
		}
		c.in = in
		c.stop, err = midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteOn(&channel, &key, &velocity):
				handler(int(key), velocity > 0)
			case msg.GetNoteOff(&channel, &key, &velocity):
				handler(int(key), false)
			}
		})
		if err != nil {
			in.Close()
			c.in = nil
			return fmt.Errorf("listening to MIDI input %v failed: %w", in, err)
		}
		return nil
	}
	return fmt.Errorf("no MIDI input matching prefix %q", prefix)
}

func (c *Context) Close() {
	if c.stop != nil {
		c.stop()
	}
	if c.in != nil && c.in.IsOpen() {
		c.in.Close()
	}
	if c.driver != nil {
		c.driver.Close()
	}
}
