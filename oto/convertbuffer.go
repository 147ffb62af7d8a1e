package oto

// Int16BufferToLE appends the little-endian byte form of buf to dst,
// reusing dst's capacity.
func Int16BufferToLE(buf []int16, dst []byte) []byte {
	for _, v := range buf {
		dst = append(dst, byte(v), byte(v>>8))
	}
	return dst
}
