package harmonium

// Shruti names one of the 22 microtonal steps of Hindustani classical
// theory. The two-letter codes follow the common shorthand: lowercase for
// komal variants, uppercase for shuddha/teevra.
type Shruti string

const (
	ShrutiS  Shruti = "S"
	ShrutiR1 Shruti = "r1"
	ShrutiR2 Shruti = "r2"
	ShrutiR3 Shruti = "R1"
	ShrutiR4 Shruti = "R2"
	ShrutiG1 Shruti = "g1"
	ShrutiG2 Shruti = "g2"
	ShrutiG3 Shruti = "G1"
	ShrutiG4 Shruti = "G2"
	ShrutiM1 Shruti = "M1"
	ShrutiM2 Shruti = "M2"
	ShrutiM3 Shruti = "m1"
	ShrutiM4 Shruti = "m2"
	ShrutiP  Shruti = "P"
	ShrutiD1 Shruti = "d1"
	ShrutiD2 Shruti = "d2"
	ShrutiD3 Shruti = "D1"
	ShrutiD4 Shruti = "D2"
	ShrutiN1 Shruti = "n1"
	ShrutiN2 Shruti = "n2"
	ShrutiN3 Shruti = "N1"
	ShrutiN4 Shruti = "N2"
)

// ShrutiRatios maps each of the 22 shrutis to its just-intonation frequency
// ratio relative to the tonic (Sa).
var ShrutiRatios = map[Shruti]float64{
	ShrutiS:  1,
	ShrutiR1: 256.0 / 243.0,
	ShrutiR2: 16.0 / 15.0,
	ShrutiR3: 10.0 / 9.0,
	ShrutiR4: 9.0 / 8.0,
	ShrutiG1: 32.0 / 27.0,
	ShrutiG2: 6.0 / 5.0,
	ShrutiG3: 5.0 / 4.0,
	ShrutiG4: 81.0 / 64.0,
	ShrutiM1: 4.0 / 3.0,
	ShrutiM2: 27.0 / 20.0,
	ShrutiM3: 45.0 / 32.0,
	ShrutiM4: 729.0 / 512.0,
	ShrutiP:  3.0 / 2.0,
	ShrutiD1: 128.0 / 81.0,
	ShrutiD2: 8.0 / 5.0,
	ShrutiD3: 5.0 / 3.0,
	ShrutiD4: 27.0 / 16.0,
	ShrutiN1: 16.0 / 9.0,
	ShrutiN2: 9.0 / 5.0,
	ShrutiN3: 15.0 / 8.0,
	ShrutiN4: 243.0 / 128.0,
}

// ShrutiSequence lists all 22 shrutis in ascending pitch order within one
// octave.
var ShrutiSequence = []Shruti{
	ShrutiS,
	ShrutiR1, ShrutiR2, ShrutiR3, ShrutiR4,
	ShrutiG1, ShrutiG2, ShrutiG3, ShrutiG4,
	ShrutiM1, ShrutiM2, ShrutiM3, ShrutiM4,
	ShrutiP,
	ShrutiD1, ShrutiD2, ShrutiD3, ShrutiD4,
	ShrutiN1, ShrutiN2, ShrutiN3, ShrutiN4,
}

// DefaultShrutis is the 12-degree selection of shrutis used when a
// Hindustani tuning is requested without an explicit ratio table. One shruti
// per swara position, so the table lines up with the 12 keys of an octave.
var DefaultShrutis = []Shruti{
	ShrutiS,
	ShrutiR2, ShrutiR3,
	ShrutiG2, ShrutiG3,
	ShrutiM1, ShrutiM3,
	ShrutiP,
	ShrutiD2, ShrutiD3,
	ShrutiN2, ShrutiN3,
}

// DefaultShrutiRatios is the ratio table of DefaultShrutis.
var DefaultShrutiRatios = RatiosOf(DefaultShrutis)

// RatiosOf converts a shruti selection into a ratio table usable as
// TuningSpec.Ratios. Unknown shrutis are skipped.
func RatiosOf(shrutis []Shruti) []float64 {
	ratios := make([]float64, 0, len(shrutis))
	for _, s := range shrutis {
		if r, ok := ShrutiRatios[s]; ok {
			ratios = append(ratios, r)
		}
	}
	return ratios
}
