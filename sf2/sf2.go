// Package sf2 packages rendered PCM notes into SoundFont 2 containers. The
// writer emits a single-instrument, single-preset sfbk file whose zone table
// maps one key range to each sample; the layout follows the SoundFont 2.01
// specification bit-exactly, since third-party players depend on it.
package sf2

import "fmt"

// LoopMode selects the loop-point policy the packager attaches to samples.
// Always in lowercase; "" should be treated as sustain.
type LoopMode string

const (
	// LoopNone marks samples as one-shot.
	LoopNone LoopMode = "none"
	// LoopWhole loops the entire buffer.
	LoopWhole LoopMode = "whole"
	// LoopSustain loops the sustain plateau between the end of the decay and
	// the start of the release.
	LoopSustain LoopMode = "sustain"
)

type (
	// Sample is one packaged note: PCM data plus the playback metadata the
	// container's sample header stores. Loop points are sample-point indices
	// into Data.
	Sample struct {
		Name            string
		Data            []int16
		SampleRate      int
		RootKey         int
		PitchCorrection int // cents, stored in an int8 field
		LoopStart       int
		LoopEnd         int
		Looped          bool
	}

	// Zone binds an inclusive MIDI key range to one sample. Zones of one
	// container must not overlap.
	Zone struct {
		KeyLow  int
		KeyHigh int
		Sample  Sample
	}

	// KeyRange is a zone's key span as recovered from a container.
	KeyRange struct {
		Low  int
		High int
	}

	// ZoneInfo is the decoded form of one zone-table entry, offsets in
	// sample points into the smpl chunk.
	ZoneInfo struct {
		Keys        KeyRange
		RootKey     int
		SampleStart uint32
		SampleEnd   uint32
		LoopStart   uint32
		LoopEnd     uint32
		Looped      bool
	}
)

// EmptyBufferError reports an attempt to package a zero-length sample
// buffer.
type EmptyBufferError struct {
	Key int
}

func (e *EmptyBufferError) Error() string {
	return fmt.Sprintf("sample for key %v has an empty buffer", e.Key)
}

// EmptyContainerError reports a compile call with no zones.
type EmptyContainerError struct{}

func (e *EmptyContainerError) Error() string {
	return "container has no zones"
}

// DuplicateKeyRangeError reports two zones claiming overlapping key ranges.
type DuplicateKeyRangeError struct {
	First  KeyRange
	Second KeyRange
}

func (e *DuplicateKeyRangeError) Error() string {
	return fmt.Sprintf("zone key ranges %v-%v and %v-%v overlap",
		e.First.Low, e.First.High, e.Second.Low, e.Second.High)
}

// OversizeContainerError reports sample data that would exceed the 32-bit
// offsets of the container format.
type OversizeContainerError struct {
	Bytes uint64
	Limit uint64
}

func (e *OversizeContainerError) Error() string {
	return fmt.Sprintf("sample data of %v bytes exceeds the format limit of %v bytes", e.Bytes, e.Limit)
}
