package biquad

import (
	"math"
	"math/cmplx"
)

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
//
// For a first-order section the second pole is 0.
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// HasComplexPoles reports whether the denominator has a conjugate pole pair.
func (c *Coefficients) HasComplexPoles() bool {
	return discriminant(1, c.A1, c.A2) < 0
}

// discriminantTolerance is relative to the magnitude of the two terms.
// Below it a double pole is assumed.
const discriminantTolerance = 1e-12

func discriminant(a, b, c float64) float64 {
	d := b*b - 4*a*c
	if math.Abs(d) <= discriminantTolerance*(b*b+math.Abs(4*a*c)) {
		return 0
	}

	return d
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	sqrtDiscriminant := cmplx.Sqrt(complex(discriminant(a, b, c), 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
