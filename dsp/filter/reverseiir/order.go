package reverseiir

import "github.com/cwbudde/algo-split/dsp/filter/biquad"

// FirstOrder realizes z^-L H(1/z) for a first-order section H. The
// response is the time-reversed impulse response of H, truncated after
// 2^(N+1) samples.
type FirstOrder struct {
	pole   *RealPole
	b0, b1 float64
	prev   float64
}

// NewFirstOrder returns a reversed first-order filter with N = stages.
func NewFirstOrder(stages int) (*FirstOrder, error) {
	pole, err := NewRealPole(stages)
	if err != nil {
		return nil, err
	}

	return &FirstOrder{pole: pole}, nil
}

// SetStages reallocates the pole cascade and clears the state.
func (f *FirstOrder) SetStages(n int) error {
	if err := f.pole.SetStages(n); err != nil {
		return err
	}
	f.prev = 0

	return nil
}

// Stages returns N.
func (f *FirstOrder) Stages() int { return f.pole.Stages() }

// SetCoefficients takes B0, B1 and A1 of c. Second-order terms are ignored.
func (f *FirstOrder) SetCoefficients(c biquad.Coefficients) {
	f.pole.SetPole(-c.A1)
	f.b0 = c.B0
	f.b1 = c.B1
}

// Latency returns 2^(N+1).
func (f *FirstOrder) Latency() int { return f.pole.Latency() + 1 }

// ProcessSample filters one sample.
func (f *FirstOrder) ProcessSample(x float64) float64 {
	cur := f.pole.ProcessSample(x)
	y := f.b1*cur + f.b0*f.prev
	f.prev = cur

	return y
}

// ProcessBlock filters buf in place.
func (f *FirstOrder) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Reset clears the state. Coefficients are kept.
func (f *FirstOrder) Reset() {
	f.pole.Reset()
	f.prev = 0
}

// SecondOrder realizes z^-L H(1/z) for a biquad H with complex poles. The
// pole part is truncated after 2^N samples.
type SecondOrder struct {
	pole       *ComplexPole
	b0, b1, b2 float64
	s0, s1     float64
}

// NewSecondOrder returns a reversed second-order filter with N = stages.
func NewSecondOrder(stages int) (*SecondOrder, error) {
	pole, err := NewComplexPole(stages)
	if err != nil {
		return nil, err
	}

	return &SecondOrder{pole: pole}, nil
}

// SetStages reallocates the pole cascade and clears the state. Call
// SetCoefficients afterwards.
func (f *SecondOrder) SetStages(n int) error {
	if err := f.pole.SetStages(n); err != nil {
		return err
	}
	f.s0, f.s1 = 0, 0

	return nil
}

// Stages returns N.
func (f *SecondOrder) Stages() int { return f.pole.Stages() }

// SetCoefficients sets the forward biquad whose reverse is realized.
func (f *SecondOrder) SetCoefficients(c biquad.Coefficients) {
	f.pole.SetDenominator(c.A1, c.A2)
	f.b0, f.b1, f.b2 = c.B0, c.B1, c.B2
}

// Latency returns 2^(N+1)+1.
func (f *SecondOrder) Latency() int { return f.pole.Latency() + 2 }

// ProcessSample filters one sample.
func (f *SecondOrder) ProcessSample(x float64) float64 {
	cur := f.pole.ProcessSample(x)
	y := f.b2*cur + f.b1*f.s0 + f.b0*f.s1
	f.s1 = f.s0
	f.s0 = cur

	return y
}

// ProcessBlock filters buf in place.
func (f *SecondOrder) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Reset clears the state. Coefficients are kept.
func (f *SecondOrder) Reset() {
	f.pole.Reset()
	f.s0, f.s1 = 0, 0
}
