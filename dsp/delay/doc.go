// Package delay provides whole-sample delay lines: a circular [Line] with a
// FIFO push, a run-time adjustable [Integer] delay and a per-channel
// [Multi] bank used for latency alignment.
package delay
