package splitter

import (
	"fmt"

	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/delay"
	"github.com/cwbudde/algo-split/dsp/median"
	"github.com/cwbudde/algo-split/dsp/spectrum"
	"github.com/cwbudde/algo-split/dsp/stft"
)

const (
	freqMedianRadius = 2
	timeMedianFrames = 5
	// Frames between the newest analysis frame and the center of the time
	// median window.
	spectrumDelayFrames = timeMedianFrames / 2
	minPortionDenom     = 1e-8
)

// TSFFTSize returns the STFT frame size used at sampleRate.
func TSFFTSize(sampleRate float64) int {
	switch {
	case sampleRate <= 50000:
		return 1024
	case sampleRate <= 100000:
		return 2048
	default:
		return 4096
	}
}

// TSLatency returns the latency in samples of a TS splitter at sampleRate.
func TSLatency(sampleRate float64) int {
	size := TSFFTSize(sampleRate)
	return size + spectrumDelayFrames*size/4
}

// TS separates transients from the steady part of a mono signal.
//
// Each STFT frame is compared with its neighbours in two directions. A
// median across five bins tracks broadband (transient) energy and a median
// over five frames per bin tracks sustained (steady) energy. Their ratio
// becomes a soft mask that is held across frames and blended towards the
// frame mean. The transient output is the masked resynthesis. The steady
// output is the aligned input minus the transient output, so both always
// sum to the delayed input.
//
// All four parameters are normalized to [0, 1] and default to 0.5.
type TS struct {
	sampleRate float64

	balanceParam  core.Param
	strengthParam core.Param
	holdParam     core.Param
	smoothParam   core.Param

	balance  float64
	strength float64
	hold     float64
	smooth   float64

	stft     *stft.STFT
	align    *delay.Integer
	smoother *spectrum.MedianSmoother
	trackers []*median.Tracker

	re, im  []float64
	mag     []float64
	freqMed []float64
	mask    []float64
	blend   []float64
	lines   [spectrumDelayFrames + 1][]complex128
	linePos int
}

// NewTS returns a transient/steady splitter with all parameters at 0.5. It
// must be prepared before use.
func NewTS() *TS {
	s := &TS{}
	s.SetBalance(0.5)
	s.SetStrength(0.5)
	s.SetHold(0.5)
	s.SetSmooth(0.5)
	s.applyParams()

	return s
}

// Prepare sizes the STFT for sampleRate and allocates all frame buffers.
func (s *TS) Prepare(sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("splitter: sample rate must be > 0: %f", sampleRate)
	}

	size := TSFFTSize(sampleRate)

	st, err := stft.New(size, stft.HookFunc(s.processSpectrum))
	if err != nil {
		return fmt.Errorf("splitter: ts stft: %w", err)
	}

	latency := TSLatency(sampleRate)
	align, err := delay.NewInteger(latency)
	if err != nil {
		return fmt.Errorf("splitter: ts delay: %w", err)
	}
	align.SetDelay(latency)

	bins := st.NumBins()
	trackers := make([]*median.Tracker, bins)
	for k := range trackers {
		if trackers[k], err = median.New(timeMedianFrames); err != nil {
			return fmt.Errorf("splitter: ts median: %w", err)
		}
	}

	s.sampleRate = sampleRate
	s.stft = st
	s.align = align
	s.smoother = spectrum.NewMedianSmoother(freqMedianRadius)
	s.trackers = trackers
	s.re = make([]float64, bins)
	s.im = make([]float64, bins)
	s.mag = make([]float64, bins)
	s.freqMed = make([]float64, bins)
	s.mask = make([]float64, bins)
	s.blend = make([]float64, bins)
	for i := range s.lines {
		s.lines[i] = make([]complex128, bins)
	}
	s.linePos = 0

	return nil
}

// SetBalance shifts the decision towards transients (higher) or steady
// content (lower).
func (s *TS) SetBalance(v float64) {
	s.balanceParam.Set(core.Clamp(v, 0, 1))
}

// SetStrength sets the steepness of the transient/steady decision.
func (s *TS) SetStrength(v float64) {
	s.strengthParam.Set(core.Clamp(v, 0, 1))
}

// SetHold sets how long a transient mask lingers across frames.
func (s *TS) SetHold(v float64) {
	s.holdParam.Set(core.Clamp(v, 0, 1))
}

// SetSmooth sets how far each bin's mask is pulled towards the frame mean.
func (s *TS) SetSmooth(v float64) {
	s.smoothParam.Set(core.Clamp(v, 0, 1))
}

// Latency returns the delay of both outputs relative to the input, or 0
// before Prepare.
func (s *TS) Latency() int {
	if s.stft == nil {
		return 0
	}

	return TSLatency(s.sampleRate)
}

// PrepareBuffer applies pending parameter changes.
func (s *TS) PrepareBuffer() {
	s.applyParams()
}

func (s *TS) applyParams() {
	if v, ok := s.balanceParam.Take(); ok {
		s.balance = mathPow(16, v-0.75)
	}
	if v, ok := s.strengthParam.Take(); ok {
		s.strength = mathExp(4*v) - 1
	}
	if v, ok := s.holdParam.Take(); ok {
		s.hold = (32-mathPow(32, 1-v))/31*0.75 + 0.24
	}
	if v, ok := s.smoothParam.Take(); ok {
		s.smooth = v
	}
}

// Reset clears the STFT, the medians, the masks and the spectrum history.
func (s *TS) Reset() {
	if s.stft == nil {
		return
	}

	s.stft.Reset()
	s.align.Reset()
	for _, t := range s.trackers {
		t.Reset()
	}
	core.Zero(s.mask)
	for _, line := range s.lines {
		clear(line)
	}
	s.linePos = 0
}

// Process splits in into transient and steady. Both outputs must hold
// len(in) samples and must not alias in.
func (s *TS) Process(in, transient, steady []float64) {
	n := len(in)
	if n == 0 {
		return
	}
	if s.stft == nil {
		copy(steady, in)
		core.Zero(transient[:n])
		return
	}

	s.stft.ProcessBlockTo(transient[:n], in)
	s.align.ProcessBlockTo(steady[:n], in)
	core.SubtractTo(steady, steady, transient, n)
}

// processSpectrum runs once per STFT frame.
func (s *TS) processSpectrum(bins []complex128) {
	spectrum.Split(s.re, s.im, bins)
	spectrum.MagnitudeFromParts(s.mag, s.re, s.im)
	s.smoother.Process(s.freqMed, s.mag)

	for k, m := range s.mag {
		s.trackers[k].Insert(m)
		p := s.portion(s.freqMed[k], s.trackers[k].Median())
		s.mask[k] = max(s.mask[k]*s.hold, p)
	}

	// Swap the newest frame into the history and pull out the frame the
	// centered time median belongs to.
	copy(s.lines[s.linePos], bins)
	s.linePos = (s.linePos + 1) % len(s.lines)
	copy(bins, s.lines[s.linePos])

	var sum float64
	for _, m := range s.mask {
		sum += m
	}
	mean := sum / float64(len(s.mask))
	mean = core.Clamp((mean-0.5)*mathSqrt(s.strength), -0.5, 0.5) + 0.5

	for k, m := range s.mask {
		s.blend[k] = (mean-m)*s.smooth + m
	}
	spectrum.Scale(bins, s.blend)
}

func (s *TS) portion(freqMedian, timeMedian float64) float64 {
	t := freqMedian * s.balance
	tt := t * t
	ss := timeMedian * timeMedian
	p := tt / max(tt+ss, minPortionDenom)

	return core.Clamp((p-0.5)*s.strength, -0.5, 0.5) + 0.5
}
