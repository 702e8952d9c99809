package splitter

import (
	"github.com/cwbudde/algo-split/dsp/core"
)

// MS splits a stereo signal into mid (out1) and side (out2). Mid and side
// always sum to the input. Raising mix moves the side pair towards the plain
// stereo image.
type MS struct {
	mix mixer
}

// NewMS returns a mid/side splitter with mix 0.
func NewMS() *MS {
	// The ramp tracks the cross-channel coefficient 0.5 - mix.
	return &MS{mix: newMixer(0.5)}
}

// Prepare sets the sample rate of the mix ramp.
func (s *MS) Prepare(sampleRate float64) {
	s.mix.prepare(sampleRate)
}

// SetMix sets the crossfade amount in [0, 1].
func (s *MS) SetMix(v float64) {
	s.mix.set(core.Clamp(v, 0, 1))
}

// PrepareBuffer applies pending parameter changes.
func (s *MS) PrepareBuffer() {
	s.mix.update(sideCoefficient)
}

func sideCoefficient(mix float64) float64 { return 0.5 - mix }

// Reset completes any ramp in progress.
func (s *MS) Reset() {
	s.mix.settle()
}

// Latency is always 0.
func (s *MS) Latency() int { return 0 }

// Process splits n samples of in into mid (out1) and side (out2). The
// outputs must not alias in.
func (s *MS) Process(in, mid, side core.Stereo, n int) {
	l, r := in[0][:n], in[1][:n]
	sl, sr := side[0][:n], side[1][:n]

	if s.mix.ramp.IsSmoothing() {
		for i := range l {
			c := s.mix.ramp.Next()
			sl[i] = 0.5*l[i] - c*r[i]
			sr[i] = 0.5*r[i] - c*l[i]
		}
	} else {
		c := s.mix.ramp.Current()
		for i := range l {
			sl[i] = 0.5*l[i] - c*r[i]
			sr[i] = 0.5*r[i] - c*l[i]
		}
	}

	core.SubtractTo(mid[0], l, sl, n)
	core.SubtractTo(mid[1], r, sr, n)
}
