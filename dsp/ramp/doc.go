// Package ramp provides sample-accurate parameter ramps used to move mix
// amounts and cutoff frequencies without zipper noise.
//
// Four interpolation modes are available. [Linear] and [Multiplicative]
// always take the configured number of samples regardless of distance.
// [FixedLinear] and [FixedMultiplicative] move at a constant rate and end
// exactly on the target.
package ramp
