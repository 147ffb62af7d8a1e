package synth

import (
	"math"

	"github.com/besynth/harmonium"
)

// oscillate fills buf with the raw waveform at the given fundamental. The
// phase accumulator runs in float64 cycles; when the LFO targets pitch, the
// per-sample phase increment is modulated (vibrato), so the pitch wobble is
// baked into the waveform before envelope and filter.
func (c *Chain) oscillate(buf []float32, frequency float64) {
	rate := float64(c.format.SampleRate)
	nyquist := c.format.Nyquist()
	osc := c.timbre.Oscillator

	// Partials above Nyquist are dropped rather than allowed to alias.
	var harmonics []harmonium.Harmonic
	var ampSum float64
	if osc.Wave == harmonium.WaveHarmonic || osc.Wave == "" {
		for _, h := range osc.Harmonics {
			if frequency*h.Multiple < nyquist {
				harmonics = append(harmonics, h)
				ampSum += math.Abs(h.Amplitude)
			}
		}
		if ampSum == 0 {
			return
		}
	}

	lfo := c.timbre.LFO
	vibrato := lfo.Target == harmonium.LFOPitch && lfo.Rate > 0 && lfo.Depth > 0
	baseInc := frequency / rate
	lfoW := 2 * math.Pi * lfo.Rate / rate

	phase := osc.Phase
	for i := range buf {
		frac := phase - math.Floor(phase)
		switch osc.Wave {
		case harmonium.WaveSine:
			buf[i] = float32(math.Sin(2 * math.Pi * frac))
		case harmonium.WaveTriangle:
			buf[i] = float32(1 - 4*math.Abs(frac-0.5))
		case harmonium.WavePulse:
			if frac < 0.5 {
				buf[i] = 1
			} else {
				buf[i] = -1
			}
		default: // harmonic
			var v float64
			for _, h := range harmonics {
				v += h.Amplitude * math.Sin(2*math.Pi*frac*h.Multiple)
			}
			buf[i] = float32(v / ampSum)
		}
		inc := baseInc
		if vibrato {
			// depth is the peak deviation in semitones
			inc = baseInc * math.Exp2(lfo.Depth*math.Sin(lfoW*float64(i))/12)
		}
		phase += inc
	}
}
