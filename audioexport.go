package harmonium

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wav encodes a rendered sample as a 16-bit PCM mono WAV file. Useful for
// auditioning single notes outside the container.
func Wav(sample RenderedSample) ([]byte, error) {
	if len(sample.Data) == 0 {
		return nil, fmt.Errorf("Wav failed: sample for key %v has no data", sample.Key)
	}
	buf := new(bytes.Buffer)
	wavHeader(len(sample.Data), sample.Format, buf)
	if err := binary.Write(buf, binary.LittleEndian, sample.Data); err != nil {
		return nil, fmt.Errorf("Wav failed: %v", err)
	}
	return buf.Bytes(), nil
}

// wavHeader writes a PCM wave header for numSamples of 16-bit audio into the
// bytes.Buffer.
func wavHeader(numSamples int, format SampleFormat, buf *bytes.Buffer) {
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	numChannels := format.Channels
	if numChannels == 0 {
		numChannels = 1
	}
	const bytesPerSample = 2
	dataSize := bytesPerSample * numSamples
	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate*numChannels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(numChannels*bytesPerSample))                   // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(8*bytesPerSample))                             // bits per sample
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
}
