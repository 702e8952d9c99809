package splitter

import (
	"github.com/cwbudde/algo-split/dsp/core"
)

// LR splits a stereo signal into its left and right channels. With mix at 0
// out1 carries (L, 0) and out2 carries (0, R). Raising mix moves each side
// towards the other pair.
type LR struct {
	mix mixer
}

// NewLR returns a left/right splitter with mix 0.
func NewLR() *LR {
	return &LR{mix: newMixer(0)}
}

// Prepare sets the sample rate of the mix ramp.
func (s *LR) Prepare(sampleRate float64) {
	s.mix.prepare(sampleRate)
}

// SetMix sets the crossfade amount in [0, 1].
func (s *LR) SetMix(v float64) {
	s.mix.set(core.Clamp(v, 0, 1))
}

// PrepareBuffer applies pending parameter changes.
func (s *LR) PrepareBuffer() {
	s.mix.update(identity)
}

// Reset completes any ramp in progress.
func (s *LR) Reset() {
	s.mix.settle()
}

// Latency is always 0.
func (s *LR) Latency() int { return 0 }

// Process splits n samples of in into out1 and out2. The outputs must not
// alias in.
func (s *LR) Process(in, out1, out2 core.Stereo, n int) {
	l, r := in[0][:n], in[1][:n]
	l2, r2 := out2[0][:n], out2[1][:n]

	if s.mix.ramp.IsSmoothing() {
		for i := range l {
			m := s.mix.ramp.Next()
			l2[i] = l[i] * m
			r2[i] = r[i] * (1 - m)
		}
	} else {
		m := s.mix.ramp.Current()
		for i := range l {
			l2[i] = l[i] * m
			r2[i] = r[i] * (1 - m)
		}
	}

	core.SubtractTo(out1[0], l, l2, n)
	core.SubtractTo(out1[1], r, r2, n)
}
