package svf

import "math"

const (
	defaultCutoff = 1000.0
	defaultQ      = 0.7071067811865476
	defaultRate   = 48000.0
)

// TPT is a second-order state-variable filter discretized with the
// trapezoidal rule. The zero value is usable and behaves as a 1 kHz
// Butterworth section at 48 kHz.
type TPT struct {
	freq, q, sampleRate float64

	g, r2, gR2, h float64
	ready         bool

	s1, s2 float64
}

// NewTPT returns a filter with the given cutoff, sample rate and Q.
func NewTPT(freq, sampleRate, q float64) *TPT {
	f := &TPT{}
	f.SetCutoff(freq, sampleRate)
	f.SetQ(q)

	return f
}

// SetCutoff updates the cutoff frequency. The state is kept so the call is
// safe between any two samples.
func (f *TPT) SetCutoff(freq, sampleRate float64) {
	f.freq = freq
	f.sampleRate = sampleRate
	f.update()
}

// SetQ updates the quality factor. Non-positive values select 1/sqrt(2).
func (f *TPT) SetQ(q float64) {
	f.q = q
	f.update()
}

// Cutoff returns the current cutoff frequency in Hz.
func (f *TPT) Cutoff() float64 {
	f.ensure()
	return f.freq
}

// Q returns the current quality factor.
func (f *TPT) Q() float64 {
	f.ensure()
	return f.q
}

func (f *TPT) ensure() {
	if !f.ready {
		f.update()
	}
}

func (f *TPT) update() {
	if f.freq <= 0 {
		f.freq = defaultCutoff
	}
	if f.sampleRate <= 0 {
		f.sampleRate = defaultRate
	}
	if f.q <= 0 || math.IsNaN(f.q) {
		f.q = defaultQ
	}

	f.g = math.Tan(math.Pi * f.freq / f.sampleRate)
	f.r2 = 1 / f.q
	f.gR2 = f.g + f.r2
	f.h = 1 / (1 + f.r2*f.g + f.g*f.g)
	f.ready = true
}

// Process filters one sample and returns the lowpass, bandpass and highpass
// outputs. They satisfy x == low + band/Q + high.
func (f *TPT) Process(x float64) (low, band, high float64) {
	f.ensure()

	high = f.h * (x - f.s1*f.gR2 - f.s2)
	band = high*f.g + f.s1
	f.s1 = high*f.g + band
	low = band*f.g + f.s2
	f.s2 = band*f.g + low

	return low, band, high
}

// ProcessLowHigh is Process without the bandpass output.
func (f *TPT) ProcessLowHigh(x float64) (low, high float64) {
	low, _, high = f.Process(x)
	return low, high
}

// ProcessLow filters one sample and returns the lowpass output.
func (f *TPT) ProcessLow(x float64) float64 {
	f.ensure()

	band := (f.g*(x-f.s2) + f.s1) * f.h
	v1 := band - f.s1
	f.s1 = band + v1
	v2 := f.g * band
	low := v2 + f.s2
	f.s2 = low + v2

	return low
}

// ProcessHigh filters one sample and returns the highpass output.
func (f *TPT) ProcessHigh(x float64) float64 {
	f.ensure()

	high := f.h * (x - f.s1*f.gR2 - f.s2)
	hg := high * f.g
	band := hg + f.s1
	f.s1 = hg + band
	f.s2 += 2 * band * f.g

	return high
}

// Reset clears the integrator state.
func (f *TPT) Reset() {
	f.s1 = 0
	f.s2 = 0
}
