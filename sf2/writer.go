package sf2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// SoundFont 2.01 generator operators used by the writer. Only the handful a
// one-sample-per-zone instrument needs.
const (
	genInstrument        = 41
	genKeyRange          = 43
	genSampleID          = 53
	genSampleModes       = 54
	genOverridingRootKey = 58
)

const (
	sampleTypeMono = 1

	// The format requires at least 46 zero sample points after each sample
	// for interpolator headroom.
	padPoints = 46

	// smpl chunk byte size must fit a uint32 chunk size field.
	maxSampleBytes = math.MaxUint32
)

// sampleOffsets is one row of the offset table: absolute sample-point
// positions of a zone's data within the smpl chunk. Built in the same pass
// that concatenates the sample data, never before.
type sampleOffsets struct {
	start     uint32
	end       uint32
	loopStart uint32
	loopEnd   uint32
}

// Compile assembles the zones into a complete SoundFont 2 file: an INFO
// list, one smpl chunk with all sample data laid out contiguously in
// ascending key order, and the preset/instrument/sample header tables
// referencing it. The result is fully in-memory; persisting it is the
// caller's concern.
func Compile(name string, zones []Zone) ([]byte, error) {
	if len(zones) == 0 {
		return nil, &EmptyContainerError{}
	}
	sorted := make([]Zone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].KeyLow < sorted[j].KeyLow })
	if err := validateZones(sorted); err != nil {
		return nil, err
	}
	var points uint64
	for _, z := range sorted {
		points += uint64(len(z.Sample.Data)) + padPoints
	}
	if err := checkAddressable(points); err != nil {
		return nil, err
	}

	// Concatenate sample data and build the offset table in the same pass.
	smpl := new(bytes.Buffer)
	offsets := make([]sampleOffsets, len(sorted))
	var pos uint32
	for i, z := range sorted {
		s := z.Sample
		start := pos
		binary.Write(smpl, binary.LittleEndian, s.Data)
		smpl.Write(make([]byte, padPoints*2))
		end := start + uint32(len(s.Data))
		o := sampleOffsets{start: start, end: end, loopStart: start, loopEnd: end}
		if s.Looped {
			o.loopStart = start + uint32(s.LoopStart)
			o.loopEnd = start + uint32(s.LoopEnd)
		}
		offsets[i] = o
		pos = end + padPoints
	}

	pdta := buildHydra(name, sorted, offsets)

	body := new(bytes.Buffer)
	body.WriteString("sfbk")
	writeList(body, "INFO", buildInfo(name))
	writeList(body, "sdta", chunk("smpl", smpl.Bytes()))
	writeList(body, "pdta", pdta)

	out := new(bytes.Buffer)
	writeChunk(out, "RIFF", body.Bytes())
	return out.Bytes(), nil
}

func validateZones(sorted []Zone) error {
	for i, z := range sorted {
		if z.KeyLow > z.KeyHigh || z.KeyLow < 0 || z.KeyHigh > 127 {
			return fmt.Errorf("zone key range %v-%v is invalid", z.KeyLow, z.KeyHigh)
		}
		if len(z.Sample.Data) == 0 {
			return &EmptyBufferError{Key: z.KeyLow}
		}
		if i > 0 && z.KeyLow <= sorted[i-1].KeyHigh {
			return &DuplicateKeyRangeError{
				First:  KeyRange{Low: sorted[i-1].KeyLow, High: sorted[i-1].KeyHigh},
				Second: KeyRange{Low: z.KeyLow, High: z.KeyHigh},
			}
		}
	}
	return nil
}

func checkAddressable(points uint64) error {
	if bytes := points * 2; bytes > maxSampleBytes {
		return &OversizeContainerError{Bytes: bytes, Limit: maxSampleBytes}
	}
	return nil
}

// buildInfo writes the mandatory INFO subchunks: format version, target
// engine and bank name.
func buildInfo(name string) []byte {
	buf := new(bytes.Buffer)
	ifil := new(bytes.Buffer)
	binary.Write(ifil, binary.LittleEndian, uint16(2)) // wMajor
	binary.Write(ifil, binary.LittleEndian, uint16(1)) // wMinor
	writeChunk(buf, "ifil", ifil.Bytes())
	writeChunk(buf, "isng", zstr("EMU8000"))
	writeChunk(buf, "INAM", zstr(name))
	writeChunk(buf, "ISFT", zstr("besynth harmonium"))
	return buf.Bytes()
}

// zstr renders a string as the zero-terminated byte sequence the INFO
// subchunks require.
func zstr(s string) []byte {
	return append([]byte(s), 0)
}

// buildHydra writes the nine pdta subchunks ("the hydra"): one preset whose
// single zone selects one instrument, whose zones map the key ranges to the
// sample headers. Every table carries the terminal record the format
// requires.
func buildHydra(name string, sorted []Zone, offsets []sampleOffsets) []byte {
	n := len(sorted)

	phdr := new(bytes.Buffer)
	writePresetHeader(phdr, name, 0, 0)
	writePresetHeader(phdr, "EOP", 0, 1)

	pbag := new(bytes.Buffer)
	writeBag(pbag, 0, 0)
	writeBag(pbag, 1, 0)

	pmod := new(bytes.Buffer)
	pmod.Write(make([]byte, 10)) // terminal modulator only

	pgen := new(bytes.Buffer)
	writeGenerator(pgen, genInstrument, 0)
	pgen.Write(make([]byte, 4)) // terminal generator

	inst := new(bytes.Buffer)
	writeInstHeader(inst, name, 0)
	writeInstHeader(inst, "EOI", uint16(n))

	const gensPerZone = 4
	ibag := new(bytes.Buffer)
	for i := 0; i <= n; i++ {
		writeBag(ibag, uint16(i*gensPerZone), 0)
	}

	imod := new(bytes.Buffer)
	imod.Write(make([]byte, 10))

	igen := new(bytes.Buffer)
	for i, z := range sorted {
		// keyRange must be the first generator of a zone and sampleID the
		// last one.
		writeKeyRange(igen, byte(z.KeyLow), byte(z.KeyHigh))
		modes := uint16(0)
		if z.Sample.Looped {
			modes = 1 // loop continuously
		}
		writeGenerator(igen, genSampleModes, modes)
		writeGenerator(igen, genOverridingRootKey, uint16(z.Sample.RootKey))
		writeGenerator(igen, genSampleID, uint16(i))
	}
	igen.Write(make([]byte, 4))

	shdr := new(bytes.Buffer)
	for i, z := range sorted {
		writeSampleHeader(shdr, z.Sample, offsets[i])
	}
	writeSampleHeader(shdr, Sample{Name: "EOS"}, sampleOffsets{})

	buf := new(bytes.Buffer)
	writeChunk(buf, "phdr", phdr.Bytes())
	writeChunk(buf, "pbag", pbag.Bytes())
	writeChunk(buf, "pmod", pmod.Bytes())
	writeChunk(buf, "pgen", pgen.Bytes())
	writeChunk(buf, "inst", inst.Bytes())
	writeChunk(buf, "ibag", ibag.Bytes())
	writeChunk(buf, "imod", imod.Bytes())
	writeChunk(buf, "igen", igen.Bytes())
	writeChunk(buf, "shdr", shdr.Bytes())
	return buf.Bytes()
}

func writePresetHeader(buf *bytes.Buffer, name string, preset, bagNdx uint16) {
	writeFixedName(buf, name)
	binary.Write(buf, binary.LittleEndian, preset)
	binary.Write(buf, binary.LittleEndian, uint16(0)) // wBank
	binary.Write(buf, binary.LittleEndian, bagNdx)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // dwLibrary
	binary.Write(buf, binary.LittleEndian, uint32(0)) // dwGenre
	binary.Write(buf, binary.LittleEndian, uint32(0)) // dwMorphology
}

func writeInstHeader(buf *bytes.Buffer, name string, bagNdx uint16) {
	writeFixedName(buf, name)
	binary.Write(buf, binary.LittleEndian, bagNdx)
}

func writeBag(buf *bytes.Buffer, genNdx, modNdx uint16) {
	binary.Write(buf, binary.LittleEndian, genNdx)
	binary.Write(buf, binary.LittleEndian, modNdx)
}

func writeGenerator(buf *bytes.Buffer, oper, amount uint16) {
	binary.Write(buf, binary.LittleEndian, oper)
	binary.Write(buf, binary.LittleEndian, amount)
}

func writeKeyRange(buf *bytes.Buffer, lo, hi byte) {
	binary.Write(buf, binary.LittleEndian, uint16(genKeyRange))
	buf.WriteByte(lo)
	buf.WriteByte(hi)
}

func writeSampleHeader(buf *bytes.Buffer, s Sample, o sampleOffsets) {
	writeFixedName(buf, s.Name)
	binary.Write(buf, binary.LittleEndian, o.start)
	binary.Write(buf, binary.LittleEndian, o.end)
	binary.Write(buf, binary.LittleEndian, o.loopStart)
	binary.Write(buf, binary.LittleEndian, o.loopEnd)
	binary.Write(buf, binary.LittleEndian, uint32(s.SampleRate))
	buf.WriteByte(byte(s.RootKey))                                 // byOriginalPitch
	buf.WriteByte(byte(int8(s.PitchCorrection)))                   // chPitchCorrection
	binary.Write(buf, binary.LittleEndian, uint16(0))              // wSampleLink
	binary.Write(buf, binary.LittleEndian, uint16(sampleTypeMono)) // sfSampleType
}

// writeChunk writes one RIFF chunk, padding the data to an even length.
func writeChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
}

// writeList writes a LIST chunk holding the given subchunk bytes.
func writeList(buf *bytes.Buffer, listType string, data []byte) {
	inner := make([]byte, 0, len(data)+4)
	inner = append(inner, listType...)
	inner = append(inner, data...)
	writeChunk(buf, "LIST", inner)
}

// chunk renders a single chunk to bytes, for nesting inside a LIST.
func chunk(id string, data []byte) []byte {
	buf := new(bytes.Buffer)
	writeChunk(buf, id, data)
	return buf.Bytes()
}

// writeFixedName writes the 20-byte, zero-terminated name field used by the
// preset, instrument and sample headers.
func writeFixedName(buf *bytes.Buffer, name string) {
	var field [20]byte
	copy(field[:19], name)
	buf.Write(field[:])
}
