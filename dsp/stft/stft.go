package stft

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/window"
)

const (
	minSize = 16
	// hopDivisor sets the overlap: four frames cover every sample.
	hopDivisor = 4
)

// ErrInvalidSize is returned for frame sizes that are not a power of two
// of at least 16.
var ErrInvalidSize = errors.New("stft: size must be a power of two >= 16")

// Hook modifies one frame of spectrum bins in place. bins holds the DC to
// Nyquist bins (Size/2+1 values); the negative frequencies are rebuilt from
// them after the call.
type Hook interface {
	ProcessSpectrum(bins []complex128)
}

// HookFunc adapts a function to [Hook].
type HookFunc func(bins []complex128)

// ProcessSpectrum calls f(bins).
func (f HookFunc) ProcessSpectrum(bins []complex128) { f(bins) }

// STFT is a streaming analysis/resynthesis engine. It is mono and not safe
// for concurrent use.
type STFT struct {
	size, hop int
	hook      Hook

	plan      *algofft.Plan[complex128]
	analysis  []float64
	synthesis []float64
	scale     float64

	in, out []float64
	pos     int
	count   int

	frame    []float64
	spectrum []complex128
	time     []complex128

	err error
}

// New returns an STFT with frame size size and the given hook. A nil hook
// leaves the spectrum untouched.
func New(size int, hook Hook) (*STFT, error) {
	if size < minSize || !core.IsPowerOf2(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	hop := size / hopDivisor
	coeffs := window.Generate(window.TypeHann, size, window.WithPeriodic())
	gain, err := window.OverlapAddGain(coeffs, hop)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	// The synthesis window carries the overlap-add normalization.
	synthesis := make([]float64, size)
	for i, w := range coeffs {
		synthesis[i] = w / gain
	}

	return &STFT{
		size:      size,
		hop:       hop,
		hook:      hook,
		plan:      plan,
		analysis:  coeffs,
		synthesis: synthesis,
		scale:     1 / gain,
		in:        make([]float64, size),
		out:       make([]float64, size),
		frame:     make([]float64, size),
		spectrum:  make([]complex128, size),
		time:      make([]complex128, size),
	}, nil
}

// Size returns the frame size.
func (s *STFT) Size() int { return s.size }

// Hop returns the frame advance in samples.
func (s *STFT) Hop() int { return s.hop }

// NumBins returns the number of bins passed to the hook.
func (s *STFT) NumBins() int { return s.size/2 + 1 }

// Latency returns the analysis/resynthesis delay in samples.
func (s *STFT) Latency() int { return s.size }

// SynthesisScale returns the gain applied after overlap-add.
func (s *STFT) SynthesisScale() float64 { return s.scale }

// SetHook replaces the spectrum hook.
func (s *STFT) SetHook(h Hook) { s.hook = h }

// Err returns the first FFT error seen while processing, if any.
func (s *STFT) Err() error { return s.err }

// Reset clears the input and overlap buffers.
func (s *STFT) Reset() {
	core.Zero(s.in)
	core.Zero(s.out)
	s.pos = 0
	s.count = 0
}

// ProcessSample pushes one input sample and returns one output sample.
func (s *STFT) ProcessSample(x float64) float64 {
	y := s.out[s.pos]
	s.out[s.pos] = 0
	s.in[s.pos] = x

	s.pos++
	if s.pos == s.size {
		s.pos = 0
	}

	s.count++
	if s.count == s.hop {
		s.count = 0
		s.processFrame()
	}

	return y
}

// ProcessBlock processes buf in place.
func (s *STFT) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// ProcessBlockTo processes src into dst. Both slices must have the same length.
func (s *STFT) ProcessBlockTo(dst, src []float64) {
	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

func (s *STFT) processFrame() {
	// s.pos is the oldest sample of the input ring.
	n := copy(s.frame, s.in[s.pos:])
	copy(s.frame[n:], s.in[:s.pos])
	vecmath.MulBlockInPlace(s.frame, s.analysis)

	for i, v := range s.frame {
		s.time[i] = complex(v, 0)
	}

	if err := s.plan.Forward(s.spectrum, s.time); err != nil {
		s.fail(err)
		return
	}

	half := s.size / 2
	if s.hook != nil {
		s.hook.ProcessSpectrum(s.spectrum[:half+1])
	}

	s.spectrum[0] = complex(real(s.spectrum[0]), 0)
	s.spectrum[half] = complex(real(s.spectrum[half]), 0)
	for k := 1; k < half; k++ {
		v := s.spectrum[k]
		s.spectrum[s.size-k] = complex(real(v), -imag(v))
	}

	if err := s.plan.Inverse(s.time, s.spectrum); err != nil {
		s.fail(err)
		return
	}

	for i, v := range s.time {
		s.frame[i] = real(v)
	}
	vecmath.MulBlockInPlace(s.frame, s.synthesis)

	// Frame sample j lands on the slot read j+1 samples from now.
	j := 0
	for i := s.pos; i < s.size; i++ {
		s.out[i] += s.frame[j]
		j++
	}
	for i := 0; i < s.pos; i++ {
		s.out[i] += s.frame[j]
		j++
	}
}

func (s *STFT) fail(err error) {
	if s.err == nil {
		s.err = fmt.Errorf("stft: %w", err)
	}
}
