package harmonium_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/besynth/harmonium"
)

const freqTolerance = 1e-9

func TestWesternFrequencies(t *testing.T) {
	spec := harmonium.TuningSpec{BaseKey: 69, BaseFreq: 440, Kind: harmonium.Western12TET}
	table, err := spec.FrequencyTable(harmonium.DefaultKeys)
	if err != nil {
		t.Fatalf("FrequencyTable failed: %v", err)
	}
	if len(table) != 42 {
		t.Fatalf("expected 42 keys, got %v", len(table))
	}
	expected := map[int]float64{57: 220, 69: 440, 81: 880}
	for _, kf := range table {
		if want, ok := expected[kf.Key]; ok && math.Abs(kf.Frequency-want) > freqTolerance {
			t.Errorf("key %v: expected %v Hz, got %v Hz", kf.Key, want, kf.Frequency)
		}
	}
	for i := 1; i < len(table); i++ {
		if table[i].Frequency <= table[i-1].Frequency {
			t.Fatalf("frequencies not strictly increasing at key %v", table[i].Key)
		}
		if table[i].Key != table[i-1].Key+1 {
			t.Fatalf("keys not contiguous at index %v", i)
		}
	}
}

func TestWesternSemitoneRatio(t *testing.T) {
	spec := harmonium.TuningSpec{BaseKey: 69, BaseFreq: 440}
	semitone := math.Exp2(1.0 / 12)
	for key := 48; key < 89; key++ {
		ratio := spec.Frequency(key+1) / spec.Frequency(key)
		if math.Abs(ratio-semitone) > freqTolerance {
			t.Fatalf("key %v->%v ratio %v, expected %v", key, key+1, ratio, semitone)
		}
	}
}

func TestHindustaniOctaveDoubling(t *testing.T) {
	spec := harmonium.TuningSpec{BaseKey: 60, BaseFreq: 261.63, Kind: harmonium.Hindustani}
	for key := 48; key <= 77; key++ {
		up := spec.Frequency(key + 12)
		if math.Abs(up-2*spec.Frequency(key)) > freqTolerance {
			t.Fatalf("key %v: octave above should double the frequency, got %v and %v",
				key, spec.Frequency(key), up)
		}
	}
	if f := spec.Frequency(60); math.Abs(f-261.63) > freqTolerance {
		t.Fatalf("base key should sound at the base frequency, got %v", f)
	}
}

func TestHindustaniBelowBaseKey(t *testing.T) {
	spec := harmonium.TuningSpec{BaseKey: 60, BaseFreq: 240, Kind: harmonium.Hindustani}
	// One key below the base is the highest degree of the octave below.
	ratios := harmonium.DefaultShrutiRatios
	want := 240 * ratios[len(ratios)-1] / 2
	if f := spec.Frequency(59); math.Abs(f-want) > freqTolerance {
		t.Fatalf("key 59: expected %v Hz, got %v Hz", want, f)
	}
}

func TestHindustaniCustomRatios(t *testing.T) {
	spec := harmonium.TuningSpec{
		BaseKey:  60,
		BaseFreq: 100,
		Kind:     harmonium.Hindustani,
		Ratios:   []float64{1, 1.5},
	}
	cases := []struct {
		key  int
		want float64
	}{
		{60, 100}, {61, 150}, {62, 200}, {63, 300}, {59, 75}, {58, 50},
	}
	for _, c := range cases {
		if f := spec.Frequency(c.key); math.Abs(f-c.want) > freqTolerance {
			t.Errorf("key %v: expected %v Hz, got %v Hz", c.key, c.want, f)
		}
	}
}

func TestFrequenciesRestartable(t *testing.T) {
	spec := harmonium.TuningSpec{BaseKey: 60, BaseFreq: 261.63, Kind: harmonium.Hindustani}
	seq, err := spec.Frequencies(harmonium.KeyRange{Low: 55, High: 70})
	if err != nil {
		t.Fatalf("Frequencies failed: %v", err)
	}
	var first, second []harmonium.KeyFrequency
	for kf := range seq {
		first = append(first, kf)
	}
	for kf := range seq {
		second = append(second, kf)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two iterations of the same sequence differ")
	}
}

func TestFrequenciesImmutableSpec(t *testing.T) {
	ratios := []float64{1, 1.5}
	spec := harmonium.TuningSpec{BaseKey: 60, BaseFreq: 100, Kind: harmonium.Hindustani, Ratios: ratios}
	seq, err := spec.Frequencies(harmonium.KeyRange{Low: 60, High: 61})
	if err != nil {
		t.Fatalf("Frequencies failed: %v", err)
	}
	ratios[1] = 7 // mutating the caller's slice must not affect the sequence
	for kf := range seq {
		if kf.Key == 61 && math.Abs(kf.Frequency-150) > freqTolerance {
			t.Fatalf("key 61: expected 150 Hz, got %v Hz", kf.Frequency)
		}
	}
}

func TestTuningSpecValidation(t *testing.T) {
	cases := []struct {
		name string
		spec harmonium.TuningSpec
	}{
		{"zero base frequency", harmonium.TuningSpec{BaseKey: 69}},
		{"negative base frequency", harmonium.TuningSpec{BaseKey: 69, BaseFreq: -440}},
		{"base key too high", harmonium.TuningSpec{BaseKey: 128, BaseFreq: 440}},
		{"base key negative", harmonium.TuningSpec{BaseKey: -1, BaseFreq: 440}},
		{"unknown kind", harmonium.TuningSpec{BaseKey: 69, BaseFreq: 440, Kind: "pythagorean"}},
		{"non-positive ratio", harmonium.TuningSpec{BaseKey: 60, BaseFreq: 440, Kind: harmonium.Hindustani, Ratios: []float64{1, 0}}},
		{"decreasing ratios", harmonium.TuningSpec{BaseKey: 60, BaseFreq: 440, Kind: harmonium.Hindustani, Ratios: []float64{1, 1.5, 1.2}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.spec.Validate()
			if err == nil {
				t.Fatalf("Validate should have failed")
			}
			var specErr *harmonium.InvalidTuningSpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("expected InvalidTuningSpecError, got %T: %v", err, err)
			}
		})
	}
}

func TestFrequenciesBadRange(t *testing.T) {
	spec := harmonium.TuningSpec{BaseKey: 69, BaseFreq: 440}
	for _, keys := range []harmonium.KeyRange{
		{Low: 89, High: 48},
		{Low: -1, High: 60},
		{Low: 60, High: 128},
	} {
		if _, err := spec.Frequencies(keys); err == nil {
			t.Fatalf("range %v-%v should have been rejected", keys.Low, keys.High)
		}
	}
}

func TestShrutiTable(t *testing.T) {
	if len(harmonium.ShrutiSequence) != 22 {
		t.Fatalf("expected 22 shrutis, got %v", len(harmonium.ShrutiSequence))
	}
	ratios := harmonium.RatiosOf(harmonium.ShrutiSequence)
	if len(ratios) != 22 {
		t.Fatalf("expected 22 ratios, got %v", len(ratios))
	}
	if ratios[0] != 1 {
		t.Fatalf("Sa should have ratio 1, got %v", ratios[0])
	}
	for i := 1; i < len(ratios); i++ {
		if ratios[i] <= ratios[i-1] {
			t.Fatalf("shruti %v ratio %v not above its predecessor %v",
				harmonium.ShrutiSequence[i], ratios[i], ratios[i-1])
		}
		if ratios[i] >= 2 {
			t.Fatalf("shruti %v ratio %v outside the octave", harmonium.ShrutiSequence[i], ratios[i])
		}
	}
	if len(harmonium.DefaultShrutiRatios) != 12 {
		t.Fatalf("default selection should span 12 keys, got %v", len(harmonium.DefaultShrutiRatios))
	}
}

func TestKeyRange(t *testing.T) {
	r := harmonium.KeyRange{Low: 48, High: 89}
	if r.Count() != 42 {
		t.Fatalf("expected 42 keys, got %v", r.Count())
	}
	if !r.Contains(48) || !r.Contains(89) || r.Contains(47) || r.Contains(90) {
		t.Fatalf("Contains disagrees with the inclusive bounds")
	}
	if (harmonium.KeyRange{Low: 50, High: 40}).Count() != 0 {
		t.Fatalf("inverted range should have zero keys")
	}
}
