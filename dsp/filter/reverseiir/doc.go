// Package reverseiir implements time-reversed IIR filters as finite cascades
// of power-of-two delays.
//
// A one-pole recursion 1/(1 - p z) run backwards in time is unbounded, but
// its truncated expansion factors as
//
//	(1 + p z)(1 + p^2 z^2)(1 + p^4 z^4) ... (1 + p^(2^N) z^(2^N))
//
// which becomes causal after a delay of 2^(N+1)-1 samples. [RealPole] and
// [ComplexPole] evaluate that product stage by stage. [FirstOrder] and
// [SecondOrder] add the reversed numerator so that the cascade realizes
// z^-L H(1/z) for a given biquad H. Feeding the result through the forward
// biquad yields a linear-phase response |H|^2 delayed by L samples.
package reverseiir
