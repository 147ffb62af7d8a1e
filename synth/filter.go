package synth

import "math"

// biquad is a direct form II transposed low-pass, coefficients from the RBJ
// audio EQ cookbook.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

func lowpass(cutoff, q float64, rate int) biquad {
	omega := 2 * math.Pi * cutoff / float64(rate)
	alpha := math.Sin(omega) / (2 * q)
	cosw := math.Cos(omega)
	a0 := 1 + alpha
	return biquad{
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(buf []float32) {
	for i, x := range buf {
		in := float64(x)
		out := f.b0*in + f.z1
		f.z1 = f.b1*in - f.a1*out + f.z2
		f.z2 = f.b2*in - f.a2*out
		buf[i] = float32(out)
	}
}
