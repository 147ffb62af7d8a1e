package harmonium

import (
	"iter"
	"math"
)

// TuningKind selects how key numbers are mapped to frequencies. Always in
// lowercase, "" should be treated as western.
type TuningKind string

const (
	Western12TET TuningKind = "western"
	Hindustani   TuningKind = "hindustani"
)

type (
	// TuningSpec defines the tuning of the whole instrument: a reference key
	// and its frequency, plus the tuning system used to derive every other
	// key from them. For Hindustani tunings, Ratios is the just-intonation
	// ratio table walked upwards from the base key, one entry per key; an
	// empty table means the default 12-degree shruti selection.
	TuningSpec struct {
		BaseKey  int        `yaml:"basekey"`
		BaseFreq float64    `yaml:"basefreq"`
		Kind     TuningKind `yaml:"kind"`
		Ratios   []float64  `yaml:"ratios,flow,omitempty"`
	}

	// KeyRange is an inclusive range of MIDI key numbers.
	KeyRange struct {
		Low  int `yaml:"low"`
		High int `yaml:"high"`
	}

	// KeyFrequency is one key of the instrument and the frequency it should
	// sound at. Produced by TuningSpec.Frequencies, consumed by a Renderer.
	KeyFrequency struct {
		Key       int
		Frequency float64
	}
)

// DefaultKeys is the key range the original harmonium covers, roughly the
// 3.5 octaves of a portable reed instrument.
var DefaultKeys = KeyRange{Low: 48, High: 89}

// Count returns the number of keys in the range, or 0 if the range is
// inverted.
func (r KeyRange) Count() int {
	if r.High < r.Low {
		return 0
	}
	return r.High - r.Low + 1
}

// Contains reports whether key falls within the range.
func (r KeyRange) Contains(key int) bool {
	return key >= r.Low && key <= r.High
}

// Copy makes a deep copy of a TuningSpec.
func (t *TuningSpec) Copy() TuningSpec {
	ratios := make([]float64, len(t.Ratios))
	copy(ratios, t.Ratios)
	return TuningSpec{BaseKey: t.BaseKey, BaseFreq: t.BaseFreq, Kind: t.Kind, Ratios: ratios}
}

// ratioTable returns the ratio table in effect: the explicit one if given,
// the default shruti selection for Hindustani otherwise. Western tunings use
// no table.
func (t *TuningSpec) ratioTable() []float64 {
	if len(t.Ratios) > 0 {
		return t.Ratios
	}
	return DefaultShrutiRatios
}

// Validate checks the spec against the tuning invariants: positive base
// frequency, base key on the MIDI keyboard, and a positive, non-decreasing
// ratio table when one is in effect.
func (t *TuningSpec) Validate() error {
	if t.BaseFreq <= 0 {
		return &InvalidTuningSpecError{Field: "basefreq", Value: t.BaseFreq, Reason: "base frequency must be positive"}
	}
	if t.BaseKey < 0 || t.BaseKey > 127 {
		return &InvalidTuningSpecError{Field: "basekey", Value: t.BaseKey, Reason: "base key must be in 0..127"}
	}
	switch t.Kind {
	case Western12TET, "":
	case Hindustani:
		ratios := t.ratioTable()
		if len(ratios) == 0 {
			return &InvalidTuningSpecError{Field: "ratios", Value: ratios, Reason: "hindustani tuning needs a non-empty ratio table"}
		}
		for i, r := range ratios {
			if r <= 0 {
				return &InvalidTuningSpecError{Field: "ratios", Value: r, Reason: "ratios must be positive"}
			}
			if i > 0 && r < ratios[i-1] {
				return &InvalidTuningSpecError{Field: "ratios", Value: r, Reason: "ratios must be non-decreasing within the octave"}
			}
		}
	default:
		return &InvalidTuningSpecError{Field: "kind", Value: t.Kind, Reason: "unknown tuning kind"}
	}
	return nil
}

// Frequency returns the frequency of a single key under this tuning. The
// spec is assumed valid; call Validate first.
func (t *TuningSpec) Frequency(key int) float64 {
	diff := key - t.BaseKey
	switch t.Kind {
	case Hindustani:
		ratios := t.ratioTable()
		degree := floorMod(diff, len(ratios))
		octave := floorDiv(diff, len(ratios))
		return t.BaseFreq * ratios[degree] * math.Exp2(float64(octave))
	default:
		return t.BaseFreq * math.Exp2(float64(diff)/12)
	}
}

// Frequencies returns a finite, restartable sequence of (key, frequency)
// pairs covering keys in ascending order. The sequence is a pure function of
// the spec; iterating it twice yields identical pairs.
func (t *TuningSpec) Frequencies(keys KeyRange) (iter.Seq[KeyFrequency], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if keys.Count() == 0 {
		return nil, &InvalidTuningSpecError{Field: "keys", Value: keys, Reason: "key range is empty or inverted"}
	}
	if keys.Low < 0 || keys.High > 127 {
		return nil, &InvalidTuningSpecError{Field: "keys", Value: keys, Reason: "key range must be within 0..127"}
	}
	spec := t.Copy()
	return func(yield func(KeyFrequency) bool) {
		for key := keys.Low; key <= keys.High; key++ {
			if !yield(KeyFrequency{Key: key, Frequency: spec.Frequency(key)}) {
				return
			}
		}
	}, nil
}

// FrequencyTable collects the Frequencies sequence into a slice.
func (t *TuningSpec) FrequencyTable(keys KeyRange) ([]KeyFrequency, error) {
	seq, err := t.Frequencies(keys)
	if err != nil {
		return nil, err
	}
	table := make([]KeyFrequency, 0, keys.Count())
	for kf := range seq {
		table = append(table, kf)
	}
	return table, nil
}

// floorDiv is integer division rounding towards negative infinity, so that
// keys below the base key land in the octave below.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (a < 0) != (b < 0) {
		m += b
	}
	return m
}
