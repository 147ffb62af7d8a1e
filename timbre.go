package harmonium

// Waveform is the oscillator waveform kind. Always in lowercase; "" should
// be treated as harmonic, the reed-like default.
type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveHarmonic Waveform = "harmonic"
	WaveTriangle Waveform = "triangle"
	WavePulse    Waveform = "pulse"
)

// LFOTarget selects what the low-frequency oscillator modulates.
type LFOTarget string

const (
	LFOAmplitude LFOTarget = "amplitude" // tremolo
	LFOPitch     LFOTarget = "pitch"     // vibrato
)

type (
	// Harmonic is one partial of the harmonic oscillator: an integer-ish
	// multiple of the fundamental and its relative amplitude.
	Harmonic struct {
		Multiple  float64 `yaml:"multiple"`
		Amplitude float64 `yaml:"amplitude"`
	}

	// OscillatorParams selects the waveform and, for WaveHarmonic, the
	// partials summed into the tone. Phase is the initial phase in cycles,
	// [0,1).
	OscillatorParams struct {
		Wave      Waveform   `yaml:"wave"`
		Phase     float64    `yaml:"phase,omitempty"`
		Harmonics []Harmonic `yaml:"harmonics,flow,omitempty"`
	}

	// EnvelopeParams is a four-segment ADSR envelope. Attack, Decay and
	// Release are durations in seconds; Sustain is the plateau level in
	// [0,1]. The sustain plateau lasts for whatever remains of the note
	// duration after attack and decay.
	EnvelopeParams struct {
		Attack  float64 `yaml:"attack"`
		Decay   float64 `yaml:"decay"`
		Sustain float64 `yaml:"sustain"`
		Release float64 `yaml:"release"`
	}

	// FilterParams is the per-instrument low-pass: cutoff in Hz and the
	// dimensionless resonance (Q) of the biquad.
	FilterParams struct {
		Cutoff    float64 `yaml:"cutoff"`
		Resonance float64 `yaml:"resonance"`
	}

	// LFOParams modulates either amplitude (tremolo) or pitch (vibrato) of a
	// note. Rate is in Hz. Depth is normalized: for amplitude it is the
	// modulation index in [0,1], for pitch it is the peak deviation in
	// semitones. Rate or Depth of zero disables the LFO.
	LFOParams struct {
		Rate   float64   `yaml:"rate"`
		Depth  float64   `yaml:"depth"`
		Target LFOTarget `yaml:"target"`
	}

	// Timbre is the full fixed parameter set of the instrument's voice. One
	// Timbre is shared by every note of a generation run.
	Timbre struct {
		Oscillator OscillatorParams `yaml:"oscillator"`
		Envelope   EnvelopeParams   `yaml:"envelope"`
		Filter     FilterParams     `yaml:"filter"`
		LFO        LFOParams        `yaml:"lfo"`

		// Normalize scales each rendered note to peak amplitude before
		// quantization, like the original instrument did.
		Normalize bool `yaml:"normalize"`
	}
)

// DefaultHarmonics are the partial weights of the reed harmonium tone.
var DefaultHarmonics = []Harmonic{
	{Multiple: 1, Amplitude: 1.0},
	{Multiple: 2, Amplitude: 0.6},
	{Multiple: 3, Amplitude: 0.4},
	{Multiple: 4, Amplitude: 0.3},
	{Multiple: 5, Amplitude: 0.2},
}

// DefaultTimbre returns the harmonium voice: additive reed partials, a soft
// 5 kHz low-pass, a slow attack/release envelope and a light tremolo.
func DefaultTimbre() Timbre {
	return Timbre{
		Oscillator: OscillatorParams{Wave: WaveHarmonic, Harmonics: DefaultHarmonics},
		Envelope:   EnvelopeParams{Attack: 0.1, Decay: 0.1, Sustain: 0.7, Release: 0.3},
		Filter:     FilterParams{Cutoff: 5000, Resonance: 0.7071},
		LFO:        LFOParams{Rate: 5, Depth: 0.1, Target: LFOAmplitude},
		Normalize:  true,
	}
}

// Copy makes a deep copy of a Timbre.
func (t *Timbre) Copy() Timbre {
	harmonics := make([]Harmonic, len(t.Oscillator.Harmonics))
	copy(harmonics, t.Oscillator.Harmonics)
	ret := *t
	ret.Oscillator.Harmonics = harmonics
	return ret
}
