package sf2_test

import (
	"errors"
	"testing"

	"github.com/besynth/harmonium/sf2"
)

func testInput(key int, n int) sf2.SampleInput {
	data := make([]int16, n)
	for i := range data {
		data[i] = int16(i%200 - 100)
	}
	return sf2.SampleInput{
		Key:          key,
		Frequency:    440,
		SampleRate:   44100,
		Data:         data,
		SustainStart: n / 4,
		SustainEnd:   n / 2,
	}
}

func TestPackage(t *testing.T) {
	in := testInput(69, 1000)
	s, err := sf2.Package(in, sf2.LoopSustain)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if s.RootKey != 69 {
		t.Fatalf("expected root key 69, got %v", s.RootKey)
	}
	if s.PitchCorrection != 0 {
		t.Fatalf("expected zero pitch correction, got %v", s.PitchCorrection)
	}
	if !s.Looped || s.LoopStart != 250 || s.LoopEnd != 500 {
		t.Fatalf("expected sustain loop 250-500, got %v-%v (looped %v)", s.LoopStart, s.LoopEnd, s.Looped)
	}
	if s.Name != "key069" {
		t.Fatalf("expected sample name key069, got %q", s.Name)
	}
}

func TestPackageLoopModes(t *testing.T) {
	in := testInput(60, 1000)
	s, err := sf2.Package(in, sf2.LoopNone)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if s.Looped {
		t.Fatalf("one-shot sample should not loop")
	}
	s, err = sf2.Package(in, sf2.LoopWhole)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if !s.Looped || s.LoopStart != 0 || s.LoopEnd != 1000 {
		t.Fatalf("expected whole-buffer loop 0-1000, got %v-%v", s.LoopStart, s.LoopEnd)
	}
	// "" means sustain
	s, err = sf2.Package(in, "")
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if !s.Looped || s.LoopStart != 250 || s.LoopEnd != 500 {
		t.Fatalf("expected sustain loop 250-500, got %v-%v", s.LoopStart, s.LoopEnd)
	}
	if _, err := sf2.Package(in, "pingpong"); err == nil {
		t.Fatalf("unknown loop mode should have been rejected")
	}
}

func TestPackageSustainFallback(t *testing.T) {
	in := testInput(60, 1000)
	in.SustainStart, in.SustainEnd = 0, 0 // note too short for a plateau
	s, err := sf2.Package(in, sf2.LoopSustain)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if !s.Looped || s.LoopStart != 0 || s.LoopEnd != 1000 {
		t.Fatalf("expected whole-buffer fallback loop, got %v-%v", s.LoopStart, s.LoopEnd)
	}
}

func TestPackageEmptyBuffer(t *testing.T) {
	_, err := sf2.Package(sf2.SampleInput{Key: 64, SampleRate: 44100}, sf2.LoopSustain)
	if err == nil {
		t.Fatalf("Package should have failed")
	}
	var bufErr *sf2.EmptyBufferError
	if !errors.As(err, &bufErr) {
		t.Fatalf("expected EmptyBufferError, got %T: %v", err, err)
	}
	if bufErr.Key != 64 {
		t.Fatalf("error should carry the key, got %v", bufErr.Key)
	}
}

func TestPackageBadKey(t *testing.T) {
	for _, key := range []int{-1, 128} {
		if _, err := sf2.Package(testInput(key, 100), sf2.LoopNone); err == nil {
			t.Errorf("key %v should have been rejected", key)
		}
	}
}
