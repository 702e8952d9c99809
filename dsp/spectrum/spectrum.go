package spectrum

import (
	"github.com/cwbudde/algo-vecmath"
)

// Split unpacks complex bins into separate real and imaginary slices.
// re and im must be at least len(in) long.
func Split(re, im []float64, in []complex128) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation path for callers that already have real and
// imaginary parts in separate slices. All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	Split(re, im, in)
	vecmath.Magnitude(out, re, im)

	return out
}

// Scale multiplies every bin by the real gains in mask. len(mask) must be at
// least len(bins).
func Scale(bins []complex128, mask []float64) {
	for i := range bins {
		bins[i] *= complex(mask[i], 0)
	}
}
