package sf2

import "fmt"

// SampleInput is a rendered note handed to the packager: mono 16-bit PCM
// plus the key and frequency it was rendered for. SustainStart/SustainEnd
// bound the sustain plateau in sample points; they are only consulted for
// LoopSustain.
type SampleInput struct {
	Key          int
	Frequency    float64
	SampleRate   int
	Data         []int16
	SustainStart int
	SustainEnd   int
}

// Package attaches loop-point and root-key metadata to a rendered note. The
// tuning is baked into the per-key sample data, so the root key is the
// source key and the pitch correction is zero; a player rendering the zone's
// key at its root key reproduces the sample, and with it the tuning,
// untouched. Fails with EmptyBufferError on a zero-length buffer.
func Package(in SampleInput, mode LoopMode) (Sample, error) {
	if len(in.Data) == 0 {
		return Sample{}, &EmptyBufferError{Key: in.Key}
	}
	if in.Key < 0 || in.Key > 127 {
		return Sample{}, fmt.Errorf("key %v out of MIDI range 0..127", in.Key)
	}
	s := Sample{
		Name:       fmt.Sprintf("key%03d", in.Key),
		Data:       in.Data,
		SampleRate: in.SampleRate,
		RootKey:    in.Key,
	}
	switch mode {
	case LoopNone:
	case LoopWhole:
		s.Looped = true
		s.LoopEnd = len(in.Data)
	case LoopSustain, "":
		start, end := in.SustainStart, in.SustainEnd
		if start < 0 {
			start = 0
		}
		if end > len(in.Data) {
			end = len(in.Data)
		}
		if end <= start { // no sustain plateau to loop; fall back to the whole buffer
			start, end = 0, len(in.Data)
		}
		s.Looped = true
		s.LoopStart = start
		s.LoopEnd = end
	default:
		return Sample{}, fmt.Errorf("unknown loop mode %q", mode)
	}
	return s, nil
}
