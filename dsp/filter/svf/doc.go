// Package svf provides topology-preserving-transform (TPT) state-variable
// filters for zero-latency crossovers.
//
// [TPT] is the second-order state-variable filter producing lowpass,
// bandpass and highpass outputs from one state update. [OnePole] is its
// first-order counterpart. Both stay stable when the cutoff is modulated
// every sample, so a splitter can glide its crossover frequency without
// zipper noise or blow-ups.
package svf
