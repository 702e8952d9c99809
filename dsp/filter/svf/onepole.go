package svf

import "math"

// OnePole is a first-order TPT lowpass/highpass pair.
type OnePole struct {
	freq, sampleRate float64

	g     float64
	ready bool

	s float64
}

// NewOnePole returns a first-order filter with the given cutoff.
func NewOnePole(freq, sampleRate float64) *OnePole {
	f := &OnePole{}
	f.SetCutoff(freq, sampleRate)

	return f
}

// SetCutoff updates the cutoff frequency without touching the state.
func (f *OnePole) SetCutoff(freq, sampleRate float64) {
	if freq <= 0 {
		freq = defaultCutoff
	}
	if sampleRate <= 0 {
		sampleRate = defaultRate
	}

	f.freq = freq
	f.sampleRate = sampleRate

	t := math.Tan(math.Pi * freq / sampleRate)
	f.g = t / (1 + t)
	f.ready = true
}

// Cutoff returns the current cutoff frequency in Hz.
func (f *OnePole) Cutoff() float64 {
	if !f.ready {
		f.SetCutoff(0, 0)
	}

	return f.freq
}

func (f *OnePole) step(x float64) float64 {
	if !f.ready {
		f.SetCutoff(0, 0)
	}

	v := (x - f.s) * f.g
	low := v + f.s
	f.s = low + v

	return low
}

// ProcessLow returns the lowpass output.
func (f *OnePole) ProcessLow(x float64) float64 {
	return f.step(x)
}

// ProcessHigh returns the inverted highpass output lp - x, so that a
// lowpass and a ProcessHigh stage fed with the same split combine to an
// allpass when added.
func (f *OnePole) ProcessHigh(x float64) float64 {
	return f.step(x) - x
}

// ProcessLowHigh returns the lowpass and the complementary highpass
// x - lp. The two outputs sum to x.
func (f *OnePole) ProcessLowHigh(x float64) (low, high float64) {
	low = f.step(x)
	return low, x - low
}

// Reset clears the integrator state.
func (f *OnePole) Reset() {
	f.s = 0
}
