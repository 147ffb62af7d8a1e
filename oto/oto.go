// Package oto adapts github.com/ebitengine/oto/v3 to the harmonium
// AudioContext/AudioSink interfaces, for auditioning rendered notes.
package oto

import (
	"fmt"
	"io"

	"github.com/besynth/harmonium"
	"github.com/ebitengine/oto/v3"
)

type (
	Context struct {
		ctx *oto.Context
	}

	Output struct {
		player *oto.Player
		pw     *io.PipeWriter
		tmp    []byte
	}
)

// NewContext opens the OS audio device for 16-bit mono playback at the given
// sample rate and blocks until it is ready.
func NewContext(sampleRate int) (*Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx}, nil
}

// Output returns a sink that plays whatever is written to it. oto/v3 players
// pull from a reader, so the sink pushes through a pipe.
func (c *Context) Output() harmonium.AudioSink {
	pr, pw := io.Pipe()
	player := c.ctx.NewPlayer(pr)
	player.Play()
	return &Output{player: player, pw: pw}
}

func (c *Context) Close() error {
	return nil // oto contexts cannot be closed; the process owns the device
}

func (o *Output) WriteAudio(buffer []int16) error {
	o.tmp = Int16BufferToLE(buffer, o.tmp[:0])
	if _, err := o.pw.Write(o.tmp); err != nil {
		return fmt.Errorf("cannot write to player: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	o.pw.Close()
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
