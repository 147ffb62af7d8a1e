package harmonium

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/besynth/harmonium/sf2"
)

type (
	// Request is one full instrument generation: which keys to render, how
	// they are tuned, what they sound like, and how the container is
	// labeled. The zero values of Timbre/Format/Duration/Keys fall back to
	// the harmonium defaults.
	Request struct {
		Name     string       `yaml:"name"`
		Tuning   TuningSpec   `yaml:"tuning"`
		Keys     KeyRange     `yaml:"keys"`
		Timbre   Timbre       `yaml:"timbre"`
		Format   SampleFormat `yaml:"format"`
		Duration float64      `yaml:"duration"`
		Loop     sf2.LoopMode `yaml:"loop"`

		// Parallelism caps the render worker pool; 0 means GOMAXPROCS.
		Parallelism int `yaml:"parallelism,omitempty"`
	}

	// Diagnostics summarizes a finished generation for display by the
	// caller.
	Diagnostics struct {
		Zones       int
		SampleBytes int
		TotalBytes  int
		Warnings    []string
	}
)

// DefaultRequest returns a ready-to-generate harmonium: western tuning at
// A440, the default key range and timbre, two-second notes.
func DefaultRequest() Request {
	return Request{
		Name:     "Harmonium",
		Tuning:   TuningSpec{BaseKey: 69, BaseFreq: 440, Kind: Western12TET},
		Keys:     DefaultKeys,
		Timbre:   DefaultTimbre(),
		Format:   DefaultFormat,
		Duration: 2.0,
		Loop:     sf2.LoopSustain,
	}
}

// Generate renders every key of the request with the given synther and
// compiles the samples into one SoundFont container, returned as bytes. The
// whole request is all-or-nothing: if any note fails to render, no container
// is produced.
func Generate(synther Synther, req Request) ([]byte, Diagnostics, error) {
	var diag Diagnostics
	table, err := req.Tuning.FrequencyTable(req.Keys)
	if err != nil {
		return nil, diag, err
	}
	renderer, err := synther.Synth(req.Timbre, req.Format)
	if err != nil {
		return nil, diag, err
	}

	// Per-key renders are independent, so fan out across a bounded pool.
	// Results land in a slice indexed by key order; compilation must not
	// start before the pool has joined.
	samples := make([]RenderedSample, len(table))
	var g errgroup.Group
	workers := req.Parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, kf := range table {
		g.Go(func() error {
			sample, err := renderer.Render(kf, req.Duration)
			if err != nil {
				return fmt.Errorf("rendering key %v (%g Hz): %w", kf.Key, kf.Frequency, err)
			}
			samples[i] = sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, diag, err
	}

	zones := make([]sf2.Zone, len(samples))
	for i, s := range samples {
		packaged, err := sf2.Package(sf2.SampleInput{
			Key:          s.Key,
			Frequency:    s.Frequency,
			SampleRate:   s.Format.SampleRate,
			Data:         s.Data,
			SustainStart: s.SustainStart,
			SustainEnd:   s.SustainEnd,
		}, req.Loop)
		if err != nil {
			return nil, diag, fmt.Errorf("packaging key %v: %w", s.Key, err)
		}
		zones[i] = sf2.Zone{KeyLow: s.Key, KeyHigh: s.Key, Sample: packaged}
		diag.SampleBytes += 2 * len(s.Data)
		if req.Loop == sf2.LoopSustain && s.SustainEnd <= s.SustainStart {
			diag.Warnings = append(diag.Warnings,
				fmt.Sprintf("key %v: note too short for a sustain loop, looping the whole buffer", s.Key))
		}
	}

	name := req.Name
	if name == "" {
		name = "Harmonium"
	}
	container, err := sf2.Compile(name, zones)
	if err != nil {
		return nil, diag, err
	}
	diag.Zones = len(zones)
	diag.TotalBytes = len(container)
	return container, diag, nil
}
