package splitter

import (
	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/filter/design"
	"github.com/cwbudde/algo-split/dsp/filter/svf"
	"github.com/cwbudde/algo-split/dsp/ramp"
)

const (
	// DefaultCrossover is the initial low/high crossover frequency in Hz.
	DefaultCrossover = 1000.0
	// DefaultOrder is the initial low/high crossover order.
	DefaultOrder = 2

	minCrossover      = 10.0
	maxCrossoverRatio = 0.49
	freqRampSeconds   = 0.125
)

// ValidOrder reports whether order is a supported crossover order (1, 2 or 4).
func ValidOrder(order int) bool {
	return order == 1 || order == 2 || order == 4
}

func clampOrder(order int) int {
	switch {
	case order <= 1:
		return 1
	case order < 4:
		return 2
	default:
		return 4
	}
}

// LH is a zero-latency low/high crossover. Each branch is filtered twice so
// the two outputs are Linkwitz-Riley shaped and sum to an allpass:
//
//   - order 1: one-pole split, then one-pole low / inverted-high refilter
//   - order 2: TPT split at Q 1/sqrt(2), then one more TPT per branch
//   - order 4: TPT split at Q1, then Q1, Q2, Q2 per branch
//
// Cutoff changes glide at one octave per 125 ms.
type LH struct {
	sampleRate float64
	order      int

	freqParam  core.Param
	orderParam core.Param
	freq       *ramp.Ramp
	mix        mixer

	poles [3][2]svf.OnePole
	split [2]svf.TPT
	lows  [3][2]svf.TPT
	highs [3][2]svf.TPT
}

// NewLH returns a crossover at DefaultCrossover with DefaultOrder.
func NewLH() *LH {
	s := &LH{
		sampleRate: 48000,
		order:      DefaultOrder,
		freq:       ramp.New(ramp.FixedMultiplicative, DefaultCrossover),
		mix:        newMixer(0),
	}
	s.configure()

	return s
}

// Prepare sets the sample rate and resets the filter state.
func (s *LH) Prepare(sampleRate float64) {
	s.sampleRate = sampleRate
	s.freq.Prepare(sampleRate, freqRampSeconds)
	s.mix.prepare(sampleRate)
	s.configure()
	s.resetFilters()
}

// SetFrequency sets the crossover frequency in Hz.
func (s *LH) SetFrequency(hz float64) {
	s.freqParam.Set(hz)
}

// SetOrder sets the crossover order. Values are snapped to 1, 2 or 4.
func (s *LH) SetOrder(order int) {
	s.orderParam.Set(float64(order))
}

// SetMix sets the crossfade amount in [0, 1].
func (s *LH) SetMix(v float64) {
	s.mix.set(core.Clamp(v, 0, 1))
}

// Order returns the order in use.
func (s *LH) Order() int { return s.order }

// Frequency returns the current, possibly gliding, crossover frequency.
func (s *LH) Frequency() float64 { return s.freq.Current() }

// Latency is always 0.
func (s *LH) Latency() int { return 0 }

// PrepareBuffer applies pending parameter changes. An order change resets
// the filters of the new order.
func (s *LH) PrepareBuffer() {
	if v, ok := s.orderParam.Take(); ok {
		if order := clampOrder(int(v)); order != s.order {
			s.order = order
			s.configure()
			s.resetFilters()
		}
	}

	if v, ok := s.freqParam.Take(); ok {
		s.freq.SetTarget(s.clampFreq(v))
	}

	s.mix.update(identity)
}

// Reset clears the filter state and completes all ramps.
func (s *LH) Reset() {
	s.freq.SetCurrentAndTarget(s.freq.Target())
	s.mix.settle()
	s.configure()
	s.resetFilters()
}

func (s *LH) clampFreq(hz float64) float64 {
	return core.Clamp(hz, minCrossover, s.sampleRate*maxCrossoverRatio)
}

// configure sets Q and cutoff on the filters of the current order.
func (s *LH) configure() {
	switch s.order {
	case 2:
		for ch := range 2 {
			s.split[ch].SetQ(design.QButterworth2)
			s.lows[0][ch].SetQ(design.QButterworth2)
			s.highs[0][ch].SetQ(design.QButterworth2)
		}
	case 4:
		for ch := range 2 {
			s.split[ch].SetQ(design.QButterworth4a)
			s.lows[0][ch].SetQ(design.QButterworth4a)
			s.highs[0][ch].SetQ(design.QButterworth4a)
			for k := 1; k < 3; k++ {
				s.lows[k][ch].SetQ(design.QButterworth4b)
				s.highs[k][ch].SetQ(design.QButterworth4b)
			}
		}
	}

	s.setCutoff(s.freq.Current())
}

func (s *LH) setCutoff(hz float64) {
	switch s.order {
	case 1:
		for k := range s.poles {
			for ch := range 2 {
				s.poles[k][ch].SetCutoff(hz, s.sampleRate)
			}
		}
	case 2:
		for ch := range 2 {
			s.split[ch].SetCutoff(hz, s.sampleRate)
			s.lows[0][ch].SetCutoff(hz, s.sampleRate)
			s.highs[0][ch].SetCutoff(hz, s.sampleRate)
		}
	default:
		for ch := range 2 {
			s.split[ch].SetCutoff(hz, s.sampleRate)
			for k := range s.lows {
				s.lows[k][ch].SetCutoff(hz, s.sampleRate)
				s.highs[k][ch].SetCutoff(hz, s.sampleRate)
			}
		}
	}
}

func (s *LH) resetFilters() {
	for ch := range 2 {
		s.split[ch].Reset()
		for k := range 3 {
			s.poles[k][ch].Reset()
			s.lows[k][ch].Reset()
			s.highs[k][ch].Reset()
		}
	}
}

// Process splits n samples of in into low and high. The outputs must not
// alias in.
func (s *LH) Process(in, low, high core.Stereo, n int) {
	smoothing := s.freq.IsSmoothing()

	for i := 0; i < n; i++ {
		if smoothing {
			s.setCutoff(s.freq.Next())
			smoothing = s.freq.IsSmoothing()
		}

		for ch := range 2 {
			low[ch][i], high[ch][i] = s.processSample(ch, in[ch][i])
		}
	}

	s.mix.crossfade(low, high, n)
}

func (s *LH) processSample(ch int, x float64) (lo, hi float64) {
	switch s.order {
	case 1:
		lo, hi = s.poles[0][ch].ProcessLowHigh(x)
		return s.poles[1][ch].ProcessLow(lo), s.poles[2][ch].ProcessHigh(hi)
	case 2:
		lo, hi = s.split[ch].ProcessLowHigh(x)
		return s.lows[0][ch].ProcessLow(lo), s.highs[0][ch].ProcessHigh(hi)
	default:
		lo, hi = s.split[ch].ProcessLowHigh(x)
		for k := range s.lows {
			lo = s.lows[k][ch].ProcessLow(lo)
			hi = s.highs[k][ch].ProcessHigh(hi)
		}

		return lo, hi
	}
}
