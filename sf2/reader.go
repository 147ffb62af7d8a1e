package sf2

import (
	"encoding/binary"
	"fmt"
)

// ReadZones decodes the zone table of a compiled container: one ZoneInfo per
// instrument zone, in table order, with sample offsets resolved against the
// sample headers. It reads just enough of the file to verify what Compile
// wrote; it is a validation aid, not an editor.
func ReadZones(data []byte) ([]ZoneInfo, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "sfbk" {
		return nil, fmt.Errorf("not a SoundFont file: bad RIFF header")
	}
	riffSize := binary.LittleEndian.Uint32(data[4:8])
	if riffSize < 4 || uint64(riffSize)+8 > uint64(len(data)) {
		return nil, fmt.Errorf("truncated file: RIFF size %v exceeds %v bytes", riffSize, len(data))
	}
	pdta, err := findList(data[12:8+riffSize], "pdta")
	if err != nil {
		return nil, err
	}
	chunks, err := splitChunks(pdta)
	if err != nil {
		return nil, err
	}
	for _, id := range []string{"inst", "ibag", "igen", "shdr"} {
		if chunks[id] == nil {
			return nil, fmt.Errorf("missing %v chunk", id)
		}
	}
	return decodeZones(chunks["inst"], chunks["ibag"], chunks["igen"], chunks["shdr"])
}

// findList walks top-level chunks looking for a LIST of the given type and
// returns its subchunk bytes.
func findList(data []byte, listType string) ([]byte, error) {
	for len(data) >= 8 {
		id := string(data[0:4])
		size := binary.LittleEndian.Uint32(data[4:8])
		if uint64(8+size) > uint64(len(data)) {
			return nil, fmt.Errorf("truncated %v chunk", id)
		}
		body := data[8 : 8+size]
		if id == "LIST" && len(body) >= 4 && string(body[0:4]) == listType {
			return body[4:], nil
		}
		advance := 8 + size
		if size%2 == 1 {
			advance++
		}
		data = data[advance:]
	}
	return nil, fmt.Errorf("no %v list found", listType)
}

func splitChunks(data []byte) (map[string][]byte, error) {
	chunks := map[string][]byte{}
	for len(data) >= 8 {
		id := string(data[0:4])
		size := binary.LittleEndian.Uint32(data[4:8])
		if uint64(8+size) > uint64(len(data)) {
			return nil, fmt.Errorf("truncated %v chunk", id)
		}
		chunks[id] = data[8 : 8+size]
		advance := 8 + size
		if size%2 == 1 {
			advance++
		}
		data = data[advance:]
	}
	return chunks, nil
}

func decodeZones(inst, ibag, igen, shdr []byte) ([]ZoneInfo, error) {
	const instSize, bagSize, genSize, shdrSize = 22, 4, 4, 46
	if len(inst) < 2*instSize {
		return nil, fmt.Errorf("inst chunk too short for one instrument")
	}
	firstBag := int(binary.LittleEndian.Uint16(inst[20:22]))
	lastBag := int(binary.LittleEndian.Uint16(inst[instSize+20 : instSize+22]))
	if lastBag < firstBag || (lastBag+1)*bagSize > len(ibag) {
		return nil, fmt.Errorf("instrument bag indices %v..%v out of range", firstBag, lastBag)
	}
	numSamples := len(shdr)/shdrSize - 1 // excluding the terminal record
	zones := make([]ZoneInfo, 0, lastBag-firstBag)
	for bag := firstBag; bag < lastBag; bag++ {
		genStart := int(binary.LittleEndian.Uint16(ibag[bag*bagSize:]))
		genEnd := int(binary.LittleEndian.Uint16(ibag[(bag+1)*bagSize:]))
		if genEnd < genStart || genEnd*genSize > len(igen) {
			return nil, fmt.Errorf("zone %v generator indices %v..%v out of range", bag, genStart, genEnd)
		}
		var z ZoneInfo
		z.RootKey = -1
		sampleID := -1
		for g := genStart; g < genEnd; g++ {
			rec := igen[g*genSize : (g+1)*genSize]
			oper := binary.LittleEndian.Uint16(rec[0:2])
			switch oper {
			case genKeyRange:
				z.Keys = KeyRange{Low: int(rec[2]), High: int(rec[3])}
			case genOverridingRootKey:
				z.RootKey = int(binary.LittleEndian.Uint16(rec[2:4]))
			case genSampleModes:
				z.Looped = binary.LittleEndian.Uint16(rec[2:4])&1 == 1
			case genSampleID:
				sampleID = int(binary.LittleEndian.Uint16(rec[2:4]))
			}
		}
		if sampleID < 0 || sampleID >= numSamples {
			return nil, fmt.Errorf("zone %v references sample %v of %v", bag, sampleID, numSamples)
		}
		rec := shdr[sampleID*shdrSize : (sampleID+1)*shdrSize]
		z.SampleStart = binary.LittleEndian.Uint32(rec[20:24])
		z.SampleEnd = binary.LittleEndian.Uint32(rec[24:28])
		z.LoopStart = binary.LittleEndian.Uint32(rec[28:32])
		z.LoopEnd = binary.LittleEndian.Uint32(rec[32:36])
		if z.RootKey < 0 {
			z.RootKey = int(rec[40]) // byOriginalPitch
		}
		zones = append(zones, z)
	}
	return zones, nil
}
