package splitter

import (
	"fmt"

	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/delay"
	"github.com/cwbudde/algo-split/dsp/filter/biquad"
	"github.com/cwbudde/algo-split/dsp/filter/design"
	"github.com/cwbudde/algo-split/dsp/filter/reverseiir"
)

const (
	firstOrderStages  = 9
	secondOrderStages = 11
)

// ExtraStages returns the number of reverse-IIR stages added on top of the
// base count so the truncated tails stay below the noise floor at high
// sample rates.
func ExtraStages(sampleRate float64) int {
	switch {
	case sampleRate <= 50000:
		return 0
	case sampleRate <= 100000:
		return 1
	case sampleRate <= 200000:
		return 2
	default:
		return 3
	}
}

// LHFIRLatency returns the latency in samples of an LHFIR splitter with the
// given order at sampleRate.
func LHFIRLatency(order int, sampleRate float64) int {
	extra := ExtraStages(sampleRate)

	switch clampOrder(order) {
	case 1:
		return 1 << (firstOrderStages + extra + 1)
	case 2:
		return 1<<(secondOrderStages+extra+1) + 1
	default:
		return 1<<(secondOrderStages+extra+2) + 2
	}
}

// LHFIR is a linear-phase low/high crossover. The low branch runs each
// Butterworth section through its time-reversed counterpart and then
// forward again, giving the zero-phase magnitude |H|^2 delayed by the
// latency. The high branch is the delayed input minus the low branch, so
// the two outputs always sum to the delayed input.
type LHFIR struct {
	sampleRate float64
	prepared   bool

	order   int
	freq    float64
	latency int

	freqParam  core.Param
	orderParam core.Param
	mix        mixer

	rev1 [2]*reverseiir.FirstOrder
	fwd1 [2]biquad.Section
	rev2 [2][2]*reverseiir.SecondOrder
	fwd2 [2][2]biquad.Section

	delay *delay.Multi
}

// NewLHFIR returns a splitter at DefaultCrossover with DefaultOrder. It
// must be prepared before use.
func NewLHFIR() *LHFIR {
	s := &LHFIR{
		order: DefaultOrder,
		freq:  DefaultCrossover,
		mix:   newMixer(0),
	}
	s.freqParam.Set(DefaultCrossover)
	s.orderParam.Set(DefaultOrder)

	return s
}

// Prepare allocates the reverse filters and the compensation delay for
// sampleRate. Pending parameters are applied.
func (s *LHFIR) Prepare(sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("splitter: sample rate must be > 0: %f", sampleRate)
	}

	extra := ExtraStages(sampleRate)
	maxDelay := LHFIRLatency(4, sampleRate)

	d, err := delay.NewMulti(2, maxDelay)
	if err != nil {
		return fmt.Errorf("splitter: lhfir delay: %w", err)
	}

	for ch := range 2 {
		if s.rev1[ch], err = reverseiir.NewFirstOrder(firstOrderStages + extra); err != nil {
			return fmt.Errorf("splitter: lhfir first order: %w", err)
		}
		for k := range 2 {
			if s.rev2[k][ch], err = reverseiir.NewSecondOrder(secondOrderStages + extra); err != nil {
				return fmt.Errorf("splitter: lhfir second order: %w", err)
			}
		}
	}

	s.sampleRate = sampleRate
	s.delay = d
	s.prepared = true
	s.mix.prepare(sampleRate)

	// Rebuild coefficients and latency from the pending or current values.
	if v, ok := s.orderParam.Take(); ok {
		s.order = clampOrder(int(v))
	}
	if v, ok := s.freqParam.Take(); ok {
		s.freq = v
	}
	s.orderParam.Set(float64(s.order))
	s.freqParam.Set(s.freq)
	s.order = 0
	s.PrepareBuffer()

	return nil
}

// SetFrequency sets the crossover frequency in Hz.
func (s *LHFIR) SetFrequency(hz float64) {
	s.freqParam.Set(hz)
}

// SetOrder sets the crossover order. Values are snapped to 1, 2 or 4.
func (s *LHFIR) SetOrder(order int) {
	s.orderParam.Set(float64(order))
}

// SetMix sets the crossfade amount in [0, 1].
func (s *LHFIR) SetMix(v float64) {
	s.mix.set(core.Clamp(v, 0, 1))
}

// Order returns the order in use.
func (s *LHFIR) Order() int { return s.order }

// Frequency returns the crossover frequency in use.
func (s *LHFIR) Frequency() float64 { return s.freq }

// Latency returns the delay of both outputs relative to the input.
func (s *LHFIR) Latency() int { return s.latency }

// PrepareBuffer applies pending parameter changes. An order change resets
// the branches of the new order and moves the compensation delay.
func (s *LHFIR) PrepareBuffer() {
	s.mix.update(identity)

	if !s.prepared {
		return
	}

	orderValue, orderChanged := s.orderParam.Take()
	freqValue, freqChanged := s.freqParam.Take()
	if !orderChanged && !freqChanged {
		return
	}

	if freqChanged {
		s.freq = core.Clamp(freqValue, minCrossover, s.sampleRate*maxCrossoverRatio)
	}
	if orderChanged {
		if order := clampOrder(int(orderValue)); order != s.order {
			s.order = order
			s.latency = LHFIRLatency(order, s.sampleRate)
			s.delay.SetDelay(s.latency)
			s.resetBranches()
		}
	}

	s.updateCoefficients()
}

// Reset clears all filter and delay state and completes the mix ramp.
func (s *LHFIR) Reset() {
	s.mix.settle()
	if !s.prepared {
		return
	}
	s.resetBranches()
	s.delay.Reset()
}

func (s *LHFIR) resetBranches() {
	for ch := range 2 {
		switch s.order {
		case 1:
			s.rev1[ch].Reset()
			s.fwd1[ch].Reset()
		case 2:
			s.rev2[0][ch].Reset()
			s.fwd2[0][ch].Reset()
		default:
			for k := range 2 {
				s.rev2[k][ch].Reset()
				s.fwd2[k][ch].Reset()
			}
		}
	}
}

func (s *LHFIR) updateCoefficients() {
	switch s.order {
	case 1:
		c := design.FirstOrderLowpass(s.freq, s.sampleRate)
		for ch := range 2 {
			s.rev1[ch].SetCoefficients(c)
			s.fwd1[ch].SetCoefficients(c)
		}
	case 2:
		c := design.Lowpass(s.freq, design.QButterworth2, s.sampleRate)
		for ch := range 2 {
			s.rev2[0][ch].SetCoefficients(c)
			s.fwd2[0][ch].SetCoefficients(c)
		}
	default:
		cs := [2]biquad.Coefficients{
			design.Lowpass(s.freq, design.QButterworth4a, s.sampleRate),
			design.Lowpass(s.freq, design.QButterworth4b, s.sampleRate),
		}
		for k, c := range cs {
			for ch := range 2 {
				s.rev2[k][ch].SetCoefficients(c)
				s.fwd2[k][ch].SetCoefficients(c)
			}
		}
	}
}

// Process splits n samples of in into low and high. The outputs must not
// alias in. An unprepared splitter writes silence.
func (s *LHFIR) Process(in, low, high core.Stereo, n int) {
	if !s.prepared {
		for ch := range 2 {
			core.Zero(low[ch][:n])
			core.Zero(high[ch][:n])
		}
		return
	}

	for ch := range 2 {
		lo := low[ch][:n]
		copy(lo, in[ch][:n])
		copy(high[ch][:n], in[ch][:n])

		switch s.order {
		case 1:
			s.rev1[ch].ProcessBlock(lo)
			s.fwd1[ch].ProcessBlock(lo)
		case 2:
			s.rev2[0][ch].ProcessBlock(lo)
			s.fwd2[0][ch].ProcessBlock(lo)
		default:
			for k := range 2 {
				s.rev2[k][ch].ProcessBlock(lo)
				s.fwd2[k][ch].ProcessBlock(lo)
			}
		}
	}

	s.delay.ProcessBlock(high[:], n)

	for ch := range 2 {
		core.SubtractTo(high[ch], high[ch], low[ch], n)
	}

	s.mix.crossfade(low, high, n)
}
