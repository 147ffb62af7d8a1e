package sf2_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/besynth/harmonium/sf2"
)

func testZone(keyLow, keyHigh, n int) sf2.Zone {
	in := testInput(keyLow, n)
	s, err := sf2.Package(in, sf2.LoopSustain)
	if err != nil {
		panic(err)
	}
	return sf2.Zone{KeyLow: keyLow, KeyHigh: keyHigh, Sample: s}
}

func TestCompile(t *testing.T) {
	zones := []sf2.Zone{
		testZone(60, 60, 1000),
		testZone(61, 61, 2000),
		testZone(62, 64, 500),
	}
	data, err := sf2.Compile("Test Bank", zones)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "sfbk" {
		t.Fatalf("bad container header")
	}
	if size := binary.LittleEndian.Uint32(data[4:8]); int(size)+8 != len(data) {
		t.Fatalf("RIFF size %v disagrees with the file length %v", size, len(data))
	}
	decoded, err := sf2.ReadZones(data)
	if err != nil {
		t.Fatalf("ReadZones failed: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 zones, got %v", len(decoded))
	}
	lengths := []uint32{1000, 2000, 500}
	var expectStart uint32
	for i, z := range decoded {
		if z.Keys.Low != zones[i].KeyLow || z.Keys.High != zones[i].KeyHigh {
			t.Fatalf("zone %v covers keys %v-%v, expected %v-%v",
				i, z.Keys.Low, z.Keys.High, zones[i].KeyLow, zones[i].KeyHigh)
		}
		if z.SampleStart != expectStart {
			t.Fatalf("zone %v starts at %v, expected %v", i, z.SampleStart, expectStart)
		}
		if z.SampleEnd != z.SampleStart+lengths[i] {
			t.Fatalf("zone %v ends at %v, expected %v", i, z.SampleEnd, z.SampleStart+lengths[i])
		}
		if z.LoopStart != z.SampleStart+lengths[i]/4 || z.LoopEnd != z.SampleStart+lengths[i]/2 {
			t.Fatalf("zone %v loop points %v-%v not offset into the chunk", i, z.LoopStart, z.LoopEnd)
		}
		if !z.Looped {
			t.Fatalf("zone %v lost its loop flag", i)
		}
		if z.RootKey != zones[i].Sample.RootKey {
			t.Fatalf("zone %v root key %v, expected %v", i, z.RootKey, zones[i].Sample.RootKey)
		}
		// 46 zero points of interpolator headroom follow each sample
		expectStart = z.SampleEnd + 46
	}
}

func TestCompileSortsZones(t *testing.T) {
	zones := []sf2.Zone{
		testZone(70, 70, 100),
		testZone(60, 60, 100),
	}
	data, err := sf2.Compile("Test Bank", zones)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	decoded, err := sf2.ReadZones(data)
	if err != nil {
		t.Fatalf("ReadZones failed: %v", err)
	}
	if decoded[0].Keys.Low != 60 || decoded[1].Keys.Low != 70 {
		t.Fatalf("zones not in key order: %v, %v", decoded[0].Keys, decoded[1].Keys)
	}
}

func TestCompileDeterministic(t *testing.T) {
	zones := []sf2.Zone{testZone(60, 60, 1000), testZone(61, 61, 1000)}
	first, err := sf2.Compile("Test Bank", zones)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	second, err := sf2.Compile("Test Bank", zones)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("two compilations of the same zones differ")
	}
}

func TestCompileEmpty(t *testing.T) {
	_, err := sf2.Compile("Test Bank", nil)
	if err == nil {
		t.Fatalf("Compile should have failed")
	}
	var emptyErr *sf2.EmptyContainerError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyContainerError, got %T: %v", err, err)
	}
}

func TestCompileOverlap(t *testing.T) {
	cases := [][]sf2.Zone{
		{testZone(60, 65, 100), testZone(65, 70, 100)},
		{testZone(60, 60, 100), testZone(60, 60, 100)},
		{testZone(60, 89, 100), testZone(70, 75, 100)},
	}
	for i, zones := range cases {
		data, err := sf2.Compile("Test Bank", zones)
		if err == nil {
			t.Fatalf("case %v: Compile should have failed", i)
		}
		var dupErr *sf2.DuplicateKeyRangeError
		if !errors.As(err, &dupErr) {
			t.Fatalf("case %v: expected DuplicateKeyRangeError, got %T: %v", i, err, err)
		}
		if data != nil {
			t.Fatalf("case %v: failed compilation must not produce bytes", i)
		}
	}
}

func TestCompileInvalidRange(t *testing.T) {
	zones := []sf2.Zone{testZone(65, 60, 100)}
	if _, err := sf2.Compile("Test Bank", zones); err == nil {
		t.Fatalf("inverted key range should have been rejected")
	}
}

func TestCompileEmptyZoneBuffer(t *testing.T) {
	zones := []sf2.Zone{{KeyLow: 60, KeyHigh: 60, Sample: sf2.Sample{Name: "empty", SampleRate: 44100}}}
	_, err := sf2.Compile("Test Bank", zones)
	if err == nil {
		t.Fatalf("Compile should have failed")
	}
	var bufErr *sf2.EmptyBufferError
	if !errors.As(err, &bufErr) {
		t.Fatalf("expected EmptyBufferError, got %T: %v", err, err)
	}
}

func TestCompileInfoChunks(t *testing.T) {
	data, err := sf2.Compile("My Harmonium", []sf2.Zone{testZone(60, 60, 100)})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !bytes.Contains(data, []byte("My Harmonium")) {
		t.Fatalf("bank name missing from the INFO list")
	}
	if !bytes.Contains(data, []byte("EMU8000")) {
		t.Fatalf("target engine missing from the INFO list")
	}
}

func TestReadZonesRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("not a soundfont at all"),
		[]byte("RIFF\x00\x00\x00\x00sfbk"),
	} {
		if _, err := sf2.ReadZones(data); err == nil {
			t.Errorf("garbage input should have been rejected")
		}
	}
}
