package synth

import "github.com/besynth/harmonium"

// segments is the ADSR envelope resolved to sample counts for one note. The
// gate (note duration) covers attack + decay + hold; the release tail
// extends the buffer past the gate. When the gate is shorter than attack +
// decay, those segments are truncated at the gate and the release starts
// from whatever level was reached, so no segment ever has negative length.
type segments struct {
	attack  int
	decay   int
	hold    int
	release int

	// nominal segment lengths before gate truncation; the ramp slopes are
	// computed against these.
	attackFull int
	decayFull  int

	sustain float32
}

func envelopeSegments(env harmonium.EnvelopeParams, duration float64, rate int) segments {
	s := segments{
		attackFull: int(env.Attack * float64(rate)),
		decayFull:  int(env.Decay * float64(rate)),
		release:    int(env.Release * float64(rate)),
		sustain:    float32(env.Sustain),
	}
	gate := int(duration * float64(rate))
	if gate < 1 {
		gate = 1
	}
	s.attack = s.attackFull
	s.decay = s.decayFull
	s.hold = gate - s.attack - s.decay
	if s.hold < 0 {
		if gate < s.attack {
			s.attack, s.decay = gate, 0
		} else {
			s.decay = gate - s.attack
		}
		s.hold = 0
	}
	return s
}

func (s segments) total() int {
	return s.attack + s.decay + s.hold + s.release
}

// sustainRegion returns the sample index bounds of the hold plateau, both
// zero when the note was too short to reach it.
func (s segments) sustainRegion() (start, end int) {
	if s.hold == 0 {
		return 0, 0
	}
	return s.attack + s.decay, s.attack + s.decay + s.hold
}

// curve fills env, which must be total() long, with the per-sample amplitude
// multiplier.
func (s segments) curve(env []float32) {
	i := 0
	level := float32(0)
	for a := 0; a < s.attack; a++ {
		level = float32(a+1) / float32(s.attackFull)
		env[i] = level
		i++
	}
	for d := 0; d < s.decay; d++ {
		level = 1 - (1-s.sustain)*float32(d+1)/float32(s.decayFull)
		env[i] = level
		i++
	}
	for h := 0; h < s.hold; h++ {
		level = s.sustain
		env[i] = level
		i++
	}
	peak := level
	for r := 0; r < s.release; r++ {
		env[i] = peak * (1 - float32(r+1)/float32(s.release))
		i++
	}
}
