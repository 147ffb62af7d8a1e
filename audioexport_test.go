package harmonium_test

import (
	"encoding/binary"
	"testing"

	"github.com/besynth/harmonium"
)

func TestWav(t *testing.T) {
	sample := harmonium.RenderedSample{
		Key:    60,
		Format: harmonium.DefaultFormat,
		Data:   []int16{0, 100, -100, 32767},
	}
	data, err := harmonium.Wav(sample)
	if err != nil {
		t.Fatalf("Wav failed: %v", err)
	}
	if len(data) != 44+2*len(sample.Data) {
		t.Fatalf("expected %v bytes, got %v", 44+2*len(sample.Data), len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("bad RIFF header")
	}
	if string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		t.Fatalf("bad chunk layout")
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 44100 {
		t.Fatalf("expected sample rate 44100, got %v", rate)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 16 {
		t.Fatalf("expected 16 bits per sample, got %v", bits)
	}
	if size := binary.LittleEndian.Uint32(data[40:44]); size != uint32(2*len(sample.Data)) {
		t.Fatalf("expected data size %v, got %v", 2*len(sample.Data), size)
	}
	if v := int16(binary.LittleEndian.Uint16(data[46:48])); v != 100 {
		t.Fatalf("expected second sample 100, got %v", v)
	}
}

func TestWavEmpty(t *testing.T) {
	if _, err := harmonium.Wav(harmonium.RenderedSample{Key: 60, Format: harmonium.DefaultFormat}); err == nil {
		t.Fatalf("empty sample should have been rejected")
	}
}
