// Package synth renders single harmonium notes: an additive oscillator
// shaped by an ADSR envelope, smoothed by a low-pass biquad and optionally
// modulated by a slow LFO. Rendering is a pure function of the note, the
// duration and the fixed timbre/format configuration.
package synth

import (
	"math"

	"github.com/besynth/harmonium"
	"github.com/viterin/vek/vek32"
)

type (
	// Chain is the oscillator -> envelope -> filter -> LFO chain for one
	// fixed timbre and format. Renders are stateless; one Chain may be used
	// from multiple goroutines.
	Chain struct {
		timbre harmonium.Timbre
		format harmonium.SampleFormat
	}

	// Synther builds Chains. It implements harmonium.Synther.
	Synther struct{}
)

func (s Synther) Name() string { return "Chain" }

// Synth validates the timbre and format and returns a renderer for them.
func (s Synther) Synth(timbre harmonium.Timbre, format harmonium.SampleFormat) (harmonium.Renderer, error) {
	c := &Chain{timbre: timbre.Copy(), format: format}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chain) validate() error {
	f, t := c.format, &c.timbre
	if f.SampleRate <= 0 {
		return paramErr(0, 0, "sample rate must be positive")
	}
	if f.BitDepth != 16 {
		return paramErr(0, 0, "only 16-bit output is supported")
	}
	if f.Channels != 1 {
		return paramErr(0, 0, "only mono output is supported")
	}
	switch t.Oscillator.Wave {
	case harmonium.WaveSine, harmonium.WaveTriangle, harmonium.WavePulse:
	case harmonium.WaveHarmonic, "":
		if len(t.Oscillator.Harmonics) == 0 {
			t.Oscillator.Harmonics = harmonium.DefaultHarmonics
		}
		for _, h := range t.Oscillator.Harmonics {
			if h.Multiple <= 0 {
				return paramErr(0, 0, "harmonic multiples must be positive")
			}
		}
	default:
		return paramErr(0, 0, "unknown waveform kind "+string(t.Oscillator.Wave))
	}
	e := t.Envelope
	if e.Attack < 0 || e.Decay < 0 || e.Release < 0 {
		return paramErr(0, 0, "envelope durations must be non-negative")
	}
	if e.Sustain < 0 || e.Sustain > 1 {
		return paramErr(0, 0, "envelope sustain level must be in 0..1")
	}
	if t.Filter.Cutoff <= 0 || t.Filter.Cutoff >= f.Nyquist() {
		return paramErr(0, 0, "filter cutoff must be in (0, Nyquist)")
	}
	if t.Filter.Resonance <= 0 {
		return paramErr(0, 0, "filter resonance must be positive")
	}
	l := t.LFO
	if l.Rate < 0 || l.Depth < 0 {
		return paramErr(0, 0, "lfo rate and depth must be non-negative")
	}
	switch l.Target {
	case harmonium.LFOAmplitude, harmonium.LFOPitch, "":
	default:
		return paramErr(0, 0, "unknown lfo target "+string(l.Target))
	}
	return nil
}

// Render synthesizes one note. The buffer covers the full envelope: the note
// is gated for durationSeconds, then the release tail follows.
func (c *Chain) Render(kf harmonium.KeyFrequency, duration float64) (harmonium.RenderedSample, error) {
	if duration <= 0 {
		return harmonium.RenderedSample{}, paramErr(kf.Frequency, duration, "duration must be positive")
	}
	if kf.Frequency <= 0 || kf.Frequency >= c.format.Nyquist() {
		return harmonium.RenderedSample{}, paramErr(kf.Frequency, duration, "frequency must be in (0, Nyquist)")
	}

	seg := envelopeSegments(c.timbre.Envelope, duration, c.format.SampleRate)
	buf := make([]float32, seg.total())

	c.oscillate(buf, kf.Frequency)

	env := make([]float32, len(buf))
	seg.curve(env)
	vek32.Mul_Inplace(buf, env)

	bq := lowpass(c.timbre.Filter.Cutoff, c.timbre.Filter.Resonance, c.format.SampleRate)
	bq.process(buf)

	if lfo := c.timbre.LFO; lfo.Target != harmonium.LFOPitch && lfo.Rate > 0 && lfo.Depth > 0 {
		applyTremolo(buf, c.format.SampleRate, lfo)
	}

	if c.timbre.Normalize {
		normalize(buf)
	}

	sample := harmonium.RenderedSample{
		Key:       kf.Key,
		Frequency: kf.Frequency,
		Format:    c.format,
		Data:      quantize(buf),
	}
	sample.SustainStart, sample.SustainEnd = seg.sustainRegion()
	return sample, nil
}

// applyTremolo modulates the amplitude of the filtered signal with a slow
// sine.
func applyTremolo(buf []float32, rate int, p harmonium.LFOParams) {
	w := 2 * math.Pi * p.Rate / float64(rate)
	for i := range buf {
		buf[i] *= float32(1 + p.Depth*math.Sin(w*float64(i)))
	}
}

// normalize scales the buffer to unit peak. Silent buffers are left alone.
func normalize(buf []float32) {
	tmp := make([]float32, len(buf))
	vek32.Abs_Into(tmp, buf)
	if peak := vek32.Max(tmp); peak > 0 {
		vek32.DivNumber_Inplace(buf, peak)
	}
}

// quantize converts to 16-bit PCM, rounding to nearest and clamping (never
// wrapping) on overflow.
func quantize(buf []float32) []int16 {
	out := make([]int16, len(buf))
	for i, v := range buf {
		s := math.Round(float64(v) * math.MaxInt16)
		if s > math.MaxInt16 {
			s = math.MaxInt16
		} else if s < math.MinInt16 {
			s = math.MinInt16
		}
		out[i] = int16(s)
	}
	return out
}

func paramErr(freq, duration float64, reason string) error {
	return &harmonium.InvalidRenderParamsError{Frequency: freq, Duration: duration, Reason: reason}
}
