package harmonium

type (
	// SampleFormat is the digital audio format every note of a generation
	// run is rendered at. It is threaded explicitly through the pipeline;
	// there is no process-wide format state.
	SampleFormat struct {
		SampleRate int `yaml:"samplerate"`
		BitDepth   int `yaml:"bitdepth"`
		Channels   int `yaml:"channels"`
	}

	// RenderedSample is one finished note: quantized PCM tagged with the key
	// and frequency it was rendered for. Treat it as immutable once
	// produced.
	RenderedSample struct {
		Key       int
		Frequency float64
		Format    SampleFormat
		Data      []int16

		// SustainStart and SustainEnd bound the steady sustain plateau in
		// sample indices, as a loop-point hint for packaging; both are zero
		// when the note has no plateau.
		SustainStart int
		SustainEnd   int
	}

	// Renderer renders a single (key, frequency) pair into a finite buffer.
	// Implementations must be pure: identical arguments yield bit-identical
	// buffers, and concurrent calls must not share output state.
	Renderer interface {
		Render(kf KeyFrequency, duration float64) (RenderedSample, error)
	}

	// Synther builds a Renderer for a fixed timbre and format, validating
	// both up front.
	Synther interface {
		Synth(timbre Timbre, format SampleFormat) (Renderer, error)
	}

	// AudioSink is where playback collaborators write PCM.
	AudioSink interface {
		WriteAudio(buffer []int16) error
		Close() error
	}

	// AudioContext is a factory of AudioSinks, usually backed by an OS audio
	// device.
	AudioContext interface {
		Output() AudioSink
		Close() error
	}
)

// DefaultFormat is 16-bit mono at 44.1 kHz, the format the SoundFont
// container stores.
var DefaultFormat = SampleFormat{SampleRate: 44100, BitDepth: 16, Channels: 1}

// Nyquist returns half the sample rate, the highest representable frequency.
func (f SampleFormat) Nyquist() float64 {
	return float64(f.SampleRate) / 2
}

// Duration returns the length of the sample in seconds.
func (s *RenderedSample) Duration() float64 {
	if s.Format.SampleRate == 0 {
		return 0
	}
	return float64(len(s.Data)) / float64(s.Format.SampleRate)
}
