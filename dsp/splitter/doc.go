// Package splitter implements the stereo splitting strategies.
//
// Every strategy turns one input into two complementary outputs:
//
//   - [LR] left/right, [MS] mid/side
//   - [LH] zero-latency low/high crossover on TPT state-variable filters
//   - [LHFIR] linear-phase low/high crossover built from reverse IIR filters
//   - [TS] transient/steady separation by spectral median masking
//   - [PS] peak/steady separation by short/long energy comparison
//
// With mix at 0 the two outputs sum to the input delayed by Latency()
// samples. Setters are safe to call from any goroutine; their values are
// picked up by PrepareBuffer, which the audio thread calls once at the
// start of every block. Process never allocates.
package splitter
