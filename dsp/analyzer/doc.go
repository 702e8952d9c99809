// Package analyzer feeds processed audio to visualizers without blocking
// the audio thread.
//
// A [Sender] is written by the audio thread. It copies whatever fits into a
// single-producer ring and drops the rest. A [Transfer] runs on a
// non-audio goroutine, moves ready data into a multicast ring and lets any
// number of consumers read it at their own pace.
//
// Buffers are addressed as [branch][channel][]float64. The controller uses
// two branches (the two output pairs) of two channels each.
package analyzer
