// Package controller runs one of the stereo splitting strategies on a
// stream and lets other goroutines retune it.
//
// A [Controller] owns one instance of every strategy and dispatches to the
// selected one with a switch. Setters may be called from any goroutine.
// Their effects are picked up at the start of the next Process call, so a
// block is always rendered with one consistent set of parameters.
//
// Latency changes are published through LatencySamples and delivered to
// the callback passed to Run, off the audio thread.
package controller
